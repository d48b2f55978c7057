// Package catalog defines the entity types managed by the dashboard —
// articles, equipment, facilities, broadcast units, services, solutions,
// staff, and site settings — together with the list-query and pagination
// shapes shared by the remote client, the cache layer, and the server.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an entity identifier. IDs arrive as JSON numbers from the API but
// are held as strings in route parameters, so ID accepts both on the wire
// and always compares by its string form.
type ID string

// UnmarshalJSON accepts both "42" and 42.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// NormalizeID coerces any identifier representation to its canonical string
// form. Every place entity identity is tested must compare NormalizeID
// results; comparing raw values silently misses number/string mismatches.
func NormalizeID(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case ID:
		return string(val)
	case string:
		return val
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		// JSON numbers decode as float64; keep integral IDs free of ".0".
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// SameID reports whether two identifier representations denote one entity.
func SameID(a, b any) bool {
	return NormalizeID(a) == NormalizeID(b)
}
