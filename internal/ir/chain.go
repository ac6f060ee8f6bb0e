// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import "strings"

// Element is one position in a Chain: an object reference or a terminal.
type Element struct {
	ref    string
	term   Terminal
	isTerm bool
}

// RefElement references an object id. The id need not be declared.
func RefElement(id string) Element { return Element{ref: id} }

// TerminalElement places a terminal in a chain.
func TerminalElement(t Terminal) Element { return Element{term: t, isTerm: true} }

// IsTerminal reports whether e is a terminal.
func (e Element) IsTerminal() bool { return e.isTerm }

// Ref returns the referenced id when e is not a terminal.
func (e Element) Ref() (string, bool) { return e.ref, !e.isTerm }

// Terminal returns the terminal when e is one.
func (e Element) Terminal() (Terminal, bool) { return e.term, e.isTerm }

func (e Element) String() string {
	if e.isTerm {
		return e.term.String()
	}
	return e.ref
}

// Chain is one ordered series connection from a CONNECT statement.
type Chain struct {
	Elements []Element
	// Attrs holds the optional extension block of the CONNECT statement.
	Attrs *Attrs
	Loc   Location
}

// Refs returns the plain identifiers of the chain in order, skipping terminals.
func (c *Chain) Refs() []string {
	out := make([]string, 0, len(c.Elements))
	for _, e := range c.Elements {
		if id, ok := e.Ref(); ok {
			out = append(out, id)
		}
	}
	return out
}

func (c *Chain) String() string {
	parts := make([]string, len(c.Elements))
	for i, e := range c.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
