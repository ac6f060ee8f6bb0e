// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import (
	"iter"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attrs is an insertion-ordered map from attribute name to Value.
// The zero value is not usable; create with NewAttrs.
type Attrs struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewAttrs creates an empty attribute map.
func NewAttrs() *Attrs {
	return &Attrs{m: orderedmap.New[string, Value]()}
}

// Set stores v under name. A new name is appended; an existing name keeps
// its position and has its value replaced.
func (a *Attrs) Set(name string, v Value) {
	a.m.Set(name, v)
}

// SetIfAbsent stores v only if name is not present and reports whether it did.
func (a *Attrs) SetIfAbsent(name string, v Value) bool {
	if _, ok := a.m.Get(name); ok {
		return false
	}
	a.m.Set(name, v)
	return true
}

// MergeMissing folds ext into a with explicit-wins precedence: keys already
// in a are untouched, keys only in ext are appended in ext's order. This is
// the one merge rule shared by every statement that accepts an extension
// block. A nil ext is a no-op.
func (a *Attrs) MergeMissing(ext *Attrs) {
	if ext == nil {
		return
	}
	for k, v := range ext.All() {
		a.SetIfAbsent(k, v)
	}
}

// Get returns the value stored under name.
func (a *Attrs) Get(name string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	return a.m.Get(name)
}

// Number returns the numeric value stored under name, if any.
func (a *Attrs) Number(name string) (float64, bool) {
	v, ok := a.Get(name)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// Has reports whether name is present.
func (a *Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return a.m.Len()
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil || a.m.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, a.m.Len())
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// All iterates name/value pairs in insertion order.
func (a *Attrs) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if a == nil {
			return
		}
		for p := a.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Clone copies the key order and the top-level entries. Nested values are
// shared; they are never mutated after construction.
func (a *Attrs) Clone() *Attrs {
	out := NewAttrs()
	if a == nil {
		return out
	}
	for k, v := range a.All() {
		out.Set(k, v)
	}
	return out
}

// Equal reports whether both maps hold equal values under the same keys in
// the same order.
func (a *Attrs) Equal(o *Attrs) bool {
	if a.Len() != o.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	for p, q := a.m.Oldest(), o.m.Oldest(); p != nil; p, q = p.Next(), q.Next() {
		if p.Key != q.Key || !p.Value.Equal(q.Value) {
			return false
		}
	}
	return true
}

// String renders the map as "k=v, k=v" in insertion order.
func (a *Attrs) String() string {
	var b strings.Builder
	for k, v := range a.All() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v.String())
	}
	return b.String()
}
