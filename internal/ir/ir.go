// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import "iter"

// IR is the read-only result of transforming one document.
type IR struct {
	objectIDs  []string
	objects    map[string]*Object
	chains     []*Chain
	pageIDs    []string
	pages      map[string]*Page
	style      *Attrs
	meta       *Attrs
	labels     []*Label
	members    []*BayMember
	directives []*Directive
}

// Parts is the raw material of an IR. Assemble performs no registration
// checks, which makes it suitable for programmatic construction and for
// exercising the validator's own duplicate-id rule.
type Parts struct {
	Objects    []*Object
	Chains     []*Chain
	Pages      []*Page
	Style      *Attrs
	Meta       *Attrs
	Labels     []*Label
	Members    []*BayMember
	Directives []*Directive
}

// Assemble builds an IR from parts without enforcing id uniqueness. When two
// objects share an id the later one wins the table slot while both stay in
// the id order, so the inconsistency remains observable.
func Assemble(p Parts) *IR {
	out := &IR{
		objects:    make(map[string]*Object, len(p.Objects)),
		chains:     append([]*Chain(nil), p.Chains...),
		pages:      make(map[string]*Page, len(p.Pages)),
		style:      p.Style,
		meta:       p.Meta,
		labels:     append([]*Label(nil), p.Labels...),
		members:    append([]*BayMember(nil), p.Members...),
		directives: append([]*Directive(nil), p.Directives...),
	}
	if out.style == nil {
		out.style = NewAttrs()
	}
	if out.meta == nil {
		out.meta = NewAttrs()
	}
	for _, o := range p.Objects {
		out.objectIDs = append(out.objectIDs, o.ID)
		out.objects[o.ID] = o
	}
	for _, pg := range p.Pages {
		if _, seen := out.pages[pg.ID]; !seen {
			out.pageIDs = append(out.pageIDs, pg.ID)
		}
		out.pages[pg.ID] = pg
	}
	return out
}

// ObjectIDs returns the object ids in declaration order.
func (r *IR) ObjectIDs() []string {
	return append([]string(nil), r.objectIDs...)
}

// NumObjects returns the size of the object table as declared.
func (r *IR) NumObjects() int { return len(r.objectIDs) }

// Object looks up an object by id.
func (r *IR) Object(id string) (*Object, bool) {
	o, ok := r.objects[id]
	return o, ok
}

// Objects iterates the objects in declaration order.
func (r *IR) Objects() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, id := range r.objectIDs {
			if !yield(r.objects[id]) {
				return
			}
		}
	}
}

// ObjectsOfKind returns the objects of kind k in declaration order.
func (r *IR) ObjectsOfKind(k Kind) []*Object {
	var out []*Object
	for o := range r.Objects() {
		if o.Kind == k {
			out = append(out, o)
		}
	}
	return out
}

// Chains returns the chains in source order.
func (r *IR) Chains() []*Chain {
	return append([]*Chain(nil), r.chains...)
}

// PageIDs returns page ids in declaration order.
func (r *IR) PageIDs() []string {
	return append([]string(nil), r.pageIDs...)
}

// Page looks up a page by id.
func (r *IR) Page(id string) (*Page, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// Style returns the merged STYLE settings.
func (r *IR) Style() *Attrs { return r.style }

// Meta returns document-level metadata such as SET_LAYOUT settings.
func (r *IR) Meta() *Attrs { return r.meta }

// Labels returns LABEL statements in source order.
func (r *IR) Labels() []*Label {
	return append([]*Label(nil), r.labels...)
}

// BayMembers returns APPEND_TO_BAY records in source order.
func (r *IR) BayMembers() []*BayMember {
	return append([]*BayMember(nil), r.members...)
}

// Directives returns VALIDATE and EMIT_SPEC statements in source order.
func (r *IR) Directives() []*Directive {
	return append([]*Directive(nil), r.directives...)
}

// HasDirective reports whether the document contains a directive of kind d.
func (r *IR) HasDirective(d DirectiveKind) bool {
	for _, dir := range r.directives {
		if dir.Kind == d {
			return true
		}
	}
	return false
}
