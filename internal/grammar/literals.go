// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package grammar

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Num is a numeric slot. Set reports whether the slot was present in the
// source, which lets optional numeric attributes be told apart from zero.
type Num struct {
	Set bool
	V   float64
}

// Capture implements participle.Capture.
func (n *Num) Capture(values []string) error {
	f, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", values[0], err)
	}
	n.Set, n.V = true, f
	return nil
}

// Text is a quoted-string slot. The lexer has already unquoted the value.
type Text struct {
	Set bool
	V   string
}

// Capture implements participle.Capture.
func (t *Text) Capture(values []string) error {
	t.Set, t.V = true, values[0]
	return nil
}

// Boolean is a true/false slot. A plain bool field would be set on any match,
// so the literal is inspected explicitly.
type Boolean struct {
	Set bool
	V   bool
}

// Capture implements participle.Capture.
func (b *Boolean) Capture(values []string) error {
	b.Set, b.V = true, values[0] == "true"
	return nil
}

// Scalar is a slot that accepts a number, a quoted string or a bare
// identifier, used for free-form ratings such as CT ratios ("2000/5") and
// accuracy classes (5P20, 0.2).
type Scalar struct {
	Number *float64 `  @Number`
	Text   *string  `| @String`
	Ident  *string  `| @Ident`
}

// IdentList is a bracketed list of identifiers, possibly empty.
type IdentList struct {
	Open  string   `@"["`
	Items []string `( @Ident ( "," @Ident )* )? "]"`
}

// NumList is a bracketed list of numbers, possibly empty.
type NumList struct {
	Open  string    `@"["`
	Items []float64 `( @Number ( "," @Number )* )? "]"`
}

// Range is a two-element numeric range such as [-50, 150].
type Range struct {
	Min Num `"[" @Number`
	Max Num `"," @Number "]"`
}

// Value is a generic attribute value used by extension blocks and by the
// key=value statements (STYLE, SET_LAYOUT, LABEL, EMIT_SPEC).
type Value struct {
	Pos lexer.Position

	Bool   *string  `  @("true" | "false")`
	Open   bool     `| @"OPEN_END"`
	Stub   *string  `| "STUB" "(" @String ")"`
	Number *float64 `| @Number`
	Text   *string  `| @String`
	Ident  *string  `| @Ident`
	List   *ListLit `| @@`
	Map    *MapLit  `| @@`
}

// ListLit is a bracketed list of generic values.
type ListLit struct {
	Open  string   `@"["`
	Items []*Value `( @@ ( "," @@ )* )? "]"`
}

// MapLit is a braced set of key=value entries. As the trailing argument of
// a statement it is the free-form extension block.
type MapLit struct {
	Pos lexer.Position

	Open    string   `@"{"`
	Entries []*Entry `( @@ ( "," @@ )* )? "}"`
}

// Entry is one key=value pair.
type Entry struct {
	Pos lexer.Position

	Key   string `@Ident "="`
	Value *Value `@@`
}

// ChainElement is one member of a CONNECT series: an object reference or a
// terminal marker.
type ChainElement struct {
	Pos lexer.Position

	OpenEnd bool    `  @"OPEN_END"`
	Stub    *string `| "STUB" "(" @String ")"`
	Ref     string  `| @Ident`
}
