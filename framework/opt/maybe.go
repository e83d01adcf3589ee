// Package opt provides a minimal optional value type, used anywhere the harness needs
// to distinguish "absent" from a zero value without resorting to pointers.
package opt

import (
	"encoding/json"
	"fmt"
)

// Maybe is a simple implementation of an optional value type.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe that has a defined value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe with no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// FromPtr returns Some(*ptr) if ptr is non-nil, or None otherwise.
func FromPtr[V any](ptr *V) Maybe[V] {
	if ptr != nil {
		return Some[V](*ptr)
	}
	return None[V]()
}

// IsDefined returns true if the Maybe has a value.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the value if one is defined, or the zero value for the type otherwise.
func (m Maybe[V]) Value() V { return m.value }

// AsPtr returns a pointer to the value if one is defined, or nil otherwise.
func (m Maybe[V]) AsPtr() *V {
	if m.defined {
		return &m.value
	}
	return nil
}

// OrElse returns the value of the Maybe if any, or valueIfUndefined otherwise.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// String returns a string representation of the value, or "[none]" if undefined. The
// value's own String() method is used if it has one; otherwise fmt.Sprintf with "%v".
func (m Maybe[V]) String() string {
	if m.defined {
		var v interface{} = m.value
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", m.value)
	}
	return "[none]"
}

// MarshalJSON produces the usual JSON representation of the value if one is defined,
// or a JSON null otherwise.
func (m Maybe[V]) MarshalJSON() ([]byte, error) {
	if m.defined {
		return json.Marshal(m.value)
	}
	return []byte("null"), nil
}

// UnmarshalJSON sets the Maybe to None[V] if the data is a JSON null, or else
// unmarshals a value of type V as usual and sets the Maybe to Some(value).
func (m *Maybe[V]) UnmarshalJSON(data []byte) error {
	var temp interface{}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp == nil {
		*m = None[V]()
		return nil
	}
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*m = Some(value)
	return nil
}
