package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a three-state update field: unset (leave the column unchanged),
// explicitly null (clear the column), or set to a value. JSON decoding maps
// an absent key to unset and a literal null to the clearing state, so a form
// that omits a field can never be confused with a deliberate clear.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was supplied at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was supplied as an explicit null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the carried value; ok is false when the field is unset or null.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Ptr returns the carried value as a pointer, nil when unset or null.
func (o Optional[T]) Ptr() *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
