package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field. Set reports whether the caller supplied the
// field at all; Value is nil when the caller supplied an explicit null.
//
// In JSON an absent key leaves Set false, while null or a value sets it.
// Use the omitzero tag option so unset fields are not emitted.
type Nullable[T any] struct {
	Value *T
	Set   bool
}

// Some returns a supplied, non-null field.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Value: &v, Set: true}
}

// Null returns a supplied field that clears the stored value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n Nullable[T]) IsZero() bool {
	return !n.Set
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
