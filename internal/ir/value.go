// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of Value.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindIdent
	KindNumber
	KindText
	KindBool
	KindList
	KindMap
	KindTerminal
)

func (k ValueKind) String() string {
	switch k {
	case KindIdent:
		return "identifier"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTerminal:
		return "terminal"
	default:
		return "invalid"
	}
}

// TerminalKind discriminates the two terminal placeholders.
type TerminalKind uint8

const (
	OpenEnd TerminalKind = iota + 1
	Stub
)

// Terminal is a non-object chain end: OPEN_END, or STUB with an external label.
type Terminal struct {
	Kind  TerminalKind
	Label string
}

// OpenEndTerminal returns the OPEN_END terminal.
func OpenEndTerminal() Terminal { return Terminal{Kind: OpenEnd} }

// StubTerminal returns a STUB terminal naming an external reference.
func StubTerminal(label string) Terminal { return Terminal{Kind: Stub, Label: label} }

func (t Terminal) String() string {
	switch t.Kind {
	case OpenEnd:
		return "OPEN_END"
	case Stub:
		return "STUB(" + strconv.Quote(t.Label) + ")"
	default:
		return "<invalid terminal>"
	}
}

// Value is the tagged union of every literal the language can express.
// The zero Value is invalid.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Value
	m    *Attrs
	term Terminal
}

// Ident returns an identifier or enum value.
func Ident(s string) Value { return Value{kind: KindIdent, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a string value with delimiters already stripped.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list value holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Map returns a nested key/value group. A nil attrs yields an empty map.
func Map(attrs *Attrs) Value {
	if attrs == nil {
		attrs = NewAttrs()
	}
	return Value{kind: KindMap, m: attrs}
}

// TerminalValue wraps a terminal.
func TerminalValue(t Terminal) Value { return Value{kind: KindTerminal, term: t} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// AsIdent returns the identifier text if v is an identifier.
func (v Value) AsIdent() (string, bool) { return v.str, v.kind == KindIdent }

// AsNumber returns the number if v is numeric.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsText returns the string if v is text.
func (v Value) AsText() (string, bool) { return v.str, v.kind == KindText }

// AsBool returns the boolean if v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsList returns the items if v is a list. The slice must not be modified.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the nested attributes if v is a map.
func (v Value) AsMap() (*Attrs, bool) { return v.m, v.kind == KindMap }

// AsTerminal returns the terminal if v is one.
func (v Value) AsTerminal() (Terminal, bool) { return v.term, v.kind == KindTerminal }

// Str returns the textual payload of identifiers and text values, "" otherwise.
func (v Value) Str() string {
	switch v.kind {
	case KindIdent, KindText:
		return v.str
	default:
		return ""
	}
}

// Equal reports deep equality, including attribute order inside maps.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindIdent, KindText:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(o.m)
	case KindTerminal:
		return v.term == o.term
	default:
		return true
	}
}

// String renders v in the DSL's own literal syntax.
func (v Value) String() string {
	switch v.kind {
	case KindIdent:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		return "{" + v.m.String() + "}"
	case KindTerminal:
		return v.term.String()
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}
