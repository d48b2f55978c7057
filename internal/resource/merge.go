package resource

import "encoding/json"

// mergeEntity applies the authoritative mutation response onto a cached row.
//
// When raw (the server's response body) is present, its fields overwrite the
// cached row's fields and everything the response did not mention is
// retained — the shallow merge the reconciliation contract requires. Without
// a raw body the decoded entity replaces the row wholesale.
func mergeEntity[E any](existing any, entity E, raw json.RawMessage) E {
	if len(raw) == 0 {
		return entity
	}

	base, err := toObject(existing)
	if err != nil {
		return entity
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return entity
	}
	for field, value := range overlay {
		base[field] = value
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return entity
	}
	var out E
	if err := json.Unmarshal(merged, &out); err != nil {
		return entity
	}
	return out
}

func toObject(v any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
