// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import (
	"github.com/vk/substationdsl/internal/dslerr"
)

// Builder accumulates IR entries during one transformation pass. It is not
// safe for concurrent use and must not outlive the pass that created it.
type Builder struct {
	parts Parts
	ids   map[string]*Object
	pages map[string]*Page
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		parts: Parts{Style: NewAttrs(), Meta: NewAttrs()},
		ids:   make(map[string]*Object),
		pages: make(map[string]*Page),
	}
}

// AddObject registers obj in the object table. It fails with E.ID.MISSING
// when the object has no id (neither the ID field nor an "id" attribute) and
// with E.ID.DUP when any object, of any kind, already uses the id. On
// success the object is appended after every previously registered object.
func (b *Builder) AddObject(obj *Object) error {
	if obj.ID == "" {
		if v, ok := obj.Attrs.Get("id"); ok {
			obj.ID = v.Str()
		}
	}
	if obj.ID == "" {
		return dslerr.NewSemantic(dslerr.CodeMissingID, "Missing id in %s", obj.Kind).
			At(obj.Loc.Line, obj.Loc.Column)
	}
	if prev, exists := b.ids[obj.ID]; exists {
		return dslerr.NewSemantic(dslerr.CodeDuplicateID,
			"Duplicate id '%s' (first declared as %s at line %d)", obj.ID, prev.Kind, prev.Loc.Line).
			At(obj.Loc.Line, obj.Loc.Column)
	}
	b.ids[obj.ID] = obj
	b.parts.Objects = append(b.parts.Objects, obj)
	return nil
}

// AddChain appends a chain after every previously added chain.
func (b *Builder) AddChain(c *Chain) {
	b.parts.Chains = append(b.parts.Chains, c)
}

// AddPage registers a page. Page ids share no namespace with object ids but
// must be unique among pages.
func (b *Builder) AddPage(p *Page) error {
	if prev, exists := b.pages[p.ID]; exists {
		return dslerr.NewSemantic(dslerr.CodeDuplicatePage,
			"Duplicate page '%s' (first declared at line %d)", p.ID, prev.Loc.Line).
			At(p.Loc.Line, p.Loc.Column)
	}
	b.pages[p.ID] = p
	b.parts.Pages = append(b.parts.Pages, p)
	return nil
}

// MergeStyle applies STYLE settings; a later statement overrides earlier keys.
func (b *Builder) MergeStyle(attrs *Attrs) {
	for k, v := range attrs.All() {
		b.parts.Style.Set(k, v)
	}
}

// SetMeta stores a document-level metadata entry.
func (b *Builder) SetMeta(name string, v Value) {
	b.parts.Meta.Set(name, v)
}

// AddLabel retains a LABEL statement.
func (b *Builder) AddLabel(l *Label) {
	b.parts.Labels = append(b.parts.Labels, l)
}

// AddBayMember retains an APPEND_TO_BAY statement.
func (b *Builder) AddBayMember(m *BayMember) {
	b.parts.Members = append(b.parts.Members, m)
}

// AddDirective records a VALIDATE or EMIT_SPEC statement.
func (b *Builder) AddDirective(d *Directive) {
	b.parts.Directives = append(b.parts.Directives, d)
}

// Build returns the finished IR. The builder must not be used afterwards.
func (b *Builder) Build() *IR {
	return Assemble(b.parts)
}
