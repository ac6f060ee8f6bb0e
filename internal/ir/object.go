// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import "fmt"

// Location is the 1-based source position of the statement that produced an
// IR entry.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Object is one declared piece of equipment.
type Object struct {
	ID    string
	Kind  Kind
	Attrs *Attrs
	Loc   Location
}

// KV returns the object's nominal voltage attribute when it is numeric.
func (o *Object) KV() (float64, bool) {
	return o.Attrs.Number("kv")
}

// Page is a diagram page declaration, retained for downstream renderers.
type Page struct {
	ID    string
	Attrs *Attrs
	Loc   Location
}

// Label is a LABEL statement, retained and not interpreted.
type Label struct {
	Target string
	Attrs  *Attrs
	Loc    Location
}

// BayMember records one APPEND_TO_BAY statement.
type BayMember struct {
	BayID    string
	ObjectID string
	Loc      Location
}

// DirectiveKind discriminates caller-facing directives.
type DirectiveKind uint8

const (
	DirectiveValidate DirectiveKind = iota + 1
	DirectiveEmitSpec
)

func (d DirectiveKind) String() string {
	switch d {
	case DirectiveValidate:
		return "VALIDATE"
	case DirectiveEmitSpec:
		return "EMIT_SPEC"
	default:
		return "UNKNOWN"
	}
}

// Directive is a VALIDATE or EMIT_SPEC statement. The transformer only
// records it; acting on it is the caller's job.
type Directive struct {
	Kind  DirectiveKind
	Attrs *Attrs
	Loc   Location
}
