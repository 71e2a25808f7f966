// Package record holds the backend's generic record representation and the
// codec for the URL-shaped references linking records across apps.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is the unit of storage in the hosted-forms backend: an opaque,
// backend-assigned identifier plus a mapping of named field values.
// Field values are text, numbers, booleans, ISO-8601 date strings or
// record references.
type Record struct {
	ID     string                 `json:"record_id"`
	Fields map[string]interface{} `json:"fields"`
}

// Matches reports whether `search` occurs case-insensitively in the string
// form of any field value, including raw (even unresolved) reference strings.
// An empty search matches every record.
func (r Record) Matches(search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, val := range r.Fields {
		if val == nil {
			continue
		}
		if strings.Contains(strings.ToLower(FieldString(val)), search) {
			return true
		}
	}
	return false
}

// FieldString renders a field value the way it is displayed and searched.
func FieldString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64: // JSON numbers decode as float64
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
