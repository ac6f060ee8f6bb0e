// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package transform

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vk/substationdsl/internal/grammar"
	"github.com/vk/substationdsl/internal/ir"
)

func location(pos lexer.Position) ir.Location {
	return ir.Location{Line: pos.Line, Column: pos.Column}
}

// value converts a generic literal into an IR value.
func value(v *grammar.Value) ir.Value {
	switch {
	case v == nil:
		return ir.Value{}
	case v.Bool != nil:
		return ir.Bool(*v.Bool == "true")
	case v.Open:
		return ir.TerminalValue(ir.OpenEndTerminal())
	case v.Stub != nil:
		return ir.TerminalValue(ir.StubTerminal(*v.Stub))
	case v.Number != nil:
		return ir.Number(*v.Number)
	case v.Text != nil:
		return ir.Text(*v.Text)
	case v.Ident != nil:
		return ir.Ident(*v.Ident)
	case v.List != nil:
		items := make([]ir.Value, 0, len(v.List.Items))
		for _, item := range v.List.Items {
			items = append(items, value(item))
		}
		return ir.List(items...)
	case v.Map != nil:
		return ir.Map(entryAttrs(v.Map.Entries))
	}
	return ir.Value{}
}

// entryAttrs converts key=value entries into ordered attributes. A repeated
// key keeps its first position and takes the last value.
func entryAttrs(entries []*grammar.Entry) *ir.Attrs {
	a := ir.NewAttrs()
	for _, e := range entries {
		a.Set(e.Key, value(e.Value))
	}
	return a
}

// extAttrs returns the attributes of an optional extension block, or nil.
func extAttrs(m *grammar.MapLit) *ir.Attrs {
	if m == nil {
		return nil
	}
	return entryAttrs(m.Entries)
}

func chainElement(e *grammar.ChainElement) ir.Element {
	switch {
	case e.OpenEnd:
		return ir.TerminalElement(ir.OpenEndTerminal())
	case e.Stub != nil:
		return ir.TerminalElement(ir.StubTerminal(*e.Stub))
	default:
		return ir.RefElement(e.Ref)
	}
}
