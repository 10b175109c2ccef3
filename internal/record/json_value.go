package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value represents an arbitrary JSON value without using empty interfaces.
// Result logs carry open-shape payloads (provider usage blocks differ per
// schema generation), so records keep their decoded fields as Values.
type Value struct {
	Kind   Kind
	String string
	Number float64
	Bool   bool
	Object map[string]Value
	Array  []Value
}

// UnmarshalJSON decodes a JSON value into the typed Value representation.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty json value")
	}
	switch trimmed[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v.Kind = KindObject
		v.Object = make(map[string]Value, len(raw))
		for key, member := range raw {
			var child Value
			if err := json.Unmarshal(member, &child); err != nil {
				return err
			}
			v.Object[key] = child
		}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v.Kind = KindArray
		v.Array = make([]Value, 0, len(raw))
		for _, member := range raw {
			var child Value
			if err := json.Unmarshal(member, &child); err != nil {
				return err
			}
			v.Array = append(v.Array, child)
		}
		return nil
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		v.Kind = KindString
		v.String = value
		return nil
	case 't', 'f':
		var value bool
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		v.Kind = KindBool
		v.Bool = value
		return nil
	case 'n':
		if string(trimmed) != "null" {
			return fmt.Errorf("invalid json literal")
		}
		v.Kind = KindNull
		return nil
	default:
		var value float64
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		v.Kind = KindNumber
		v.Number = value
		return nil
	}
}

// ObjectValue returns the object map when the value is an object.
func (v Value) ObjectValue() (map[string]Value, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.Object, true
}

// StringValue returns the string when the value is a string.
func (v Value) StringValue() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.String, true
}

// NumberValue returns the number when the value is numeric.
func (v Value) NumberValue() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Number, true
}

// BoolValue returns the boolean when the value is a bool.
func (v Value) BoolValue() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

// Member walks nested object members by key and reports whether the full
// path exists.
func (v Value) Member(keys ...string) (Value, bool) {
	current := v
	for _, key := range keys {
		obj, ok := current.ObjectValue()
		if !ok {
			return Value{}, false
		}
		child, ok := obj[key]
		if !ok {
			return Value{}, false
		}
		current = child
	}
	return current, true
}

// AsNumber coerces the value to a float64, accepting JSON numbers and
// numeric strings. Historical logs serialize some token counts as strings.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Number, true
	case KindString:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
