package resource

import "reflect"

// DiffFields computes the partial update payload: the fields whose current
// form values differ from the last-loaded defaults. Only these fields are
// sent with an update, so untouched fields never clobber concurrent edits.
func DiffFields(defaults, current map[string]any) map[string]any {
	changed := make(map[string]any)
	for key, value := range current {
		prev, ok := defaults[key]
		if !ok || !reflect.DeepEqual(prev, value) {
			changed[key] = value
		}
	}
	return changed
}
