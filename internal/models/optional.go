package models

import (
	"bytes"
	"encoding/json"
)

// Optional wraps a sparse-update field, distinguishing three states a plain
// pointer cannot: omitted from the payload, explicitly null, and set to a
// value. Omitted fields preserve the stored value during a merge, null
// clears an optional field, and a value overwrites.
type Optional[T any] struct {
	set   bool
	value *T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: &v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field was present in the payload.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.set && o.value == nil }

// Get returns the value and whether a non-null value was supplied.
func (o Optional[T]) Get() (T, bool) {
	if o.value == nil {
		var zero T
		return zero, false
	}
	return *o.value, true
}

// Apply overwrites dst when a non-null value was supplied.
func (o Optional[T]) Apply(dst *T) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}

// ApplyPtr merges into an optional stored field: a supplied value
// overwrites, an explicit null clears, and an omitted field is preserved.
func (o Optional[T]) ApplyPtr(dst **T) {
	if !o.set {
		return
	}
	if o.value == nil {
		*dst = nil
		return
	}
	v := *o.value
	*dst = &v
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for fields
// present in the payload, which is what makes the omitted state observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.value)
}
