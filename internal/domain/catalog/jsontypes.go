package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// AttributeValue holds a custom product attribute: either a single value
// ("Red") or a list of values (["S", "M", "L"]). It serializes to a JSON
// string or array accordingly.
type AttributeValue struct {
	values []string
	multi  bool
}

// NewAttributeValue creates a single-valued attribute
func NewAttributeValue(value string) AttributeValue {
	return AttributeValue{values: []string{value}}
}

// NewAttributeValues creates a multi-valued attribute
func NewAttributeValues(values ...string) AttributeValue {
	copied := make([]string, len(values))
	copy(copied, values)
	return AttributeValue{values: copied, multi: true}
}

// IsMulti returns true for list-valued attributes
func (v AttributeValue) IsMulti() bool {
	return v.multi
}

// Values returns all values; single-valued attributes yield one element
func (v AttributeValue) Values() []string {
	copied := make([]string, len(v.values))
	copy(copied, v.values)
	return copied
}

// First returns the first value or the empty string
func (v AttributeValue) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// MarshalJSON encodes a single value as a string and lists as arrays
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.values)
	}
	return json.Marshal(v.First())
}

// UnmarshalJSON accepts either a JSON string or an array of strings
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = NewAttributeValue(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("attribute value must be a string or an array of strings: %w", err)
	}
	*v = NewAttributeValues(list...)
	return nil
}

// AttributeMap stores custom product attributes as a JSON column
type AttributeMap map[string]AttributeValue

// Value implements driver.Valuer for JSON storage
func (m AttributeMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSON storage
func (m *AttributeMap) Scan(value any) error {
	return scanJSON(value, m, "attribute map")
}

// StringList stores an ordered list of strings as a JSON column
type StringList []string

// Value implements driver.Valuer for JSON storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSON storage
func (l *StringList) Scan(value any) error {
	return scanJSON(value, l, "string list")
}

// Contains reports whether the list holds the given value
func (l StringList) Contains(value string) bool {
	for _, v := range l {
		if v == value {
			return true
		}
	}
	return false
}

// UUIDList stores an ordered list of UUIDs as a JSON column
type UUIDList []uuid.UUID

// Value implements driver.Valuer for JSON storage
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSON storage
func (l *UUIDList) Scan(value any) error {
	return scanJSON(value, l, "uuid list")
}

// Contains reports whether the list holds the given ID
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func scanJSON(value any, target any, what string) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, what)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
