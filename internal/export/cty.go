// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package export

import (
	"github.com/vk/substationdsl/internal/ir"
	"github.com/zclconf/go-cty/cty"
)

// ToCty converts r into a cty object value. cty objects do not keep
// attribute order, so every attribute map is accompanied by an "attr_order"
// list carrying the declaration order.
func ToCty(r *ir.IR) cty.Value {
	objects := make([]cty.Value, 0, r.NumObjects())
	for o := range r.Objects() {
		objects = append(objects, cty.ObjectVal(map[string]cty.Value{
			"id":         cty.StringVal(o.ID),
			"kind":       cty.StringVal(o.Kind.String()),
			"line":       cty.NumberIntVal(int64(o.Loc.Line)),
			"column":     cty.NumberIntVal(int64(o.Loc.Column)),
			"attrs":      attrsToCty(o.Attrs),
			"attr_order": stringList(o.Attrs.Keys()),
		}))
	}

	chains := make([]cty.Value, 0, len(r.Chains()))
	for _, c := range r.Chains() {
		elems := make([]cty.Value, 0, len(c.Elements))
		for _, e := range c.Elements {
			if term, ok := e.Terminal(); ok {
				elems = append(elems, terminalToCty(term))
				continue
			}
			ref, _ := e.Ref()
			elems = append(elems, cty.StringVal(ref))
		}
		chains = append(chains, cty.ObjectVal(map[string]cty.Value{
			"elements": tuple(elems),
			"line":     cty.NumberIntVal(int64(c.Loc.Line)),
			"attrs":    attrsToCty(c.Attrs),
		}))
	}

	pages := make([]cty.Value, 0, len(r.PageIDs()))
	for _, id := range r.PageIDs() {
		p, _ := r.Page(id)
		pages = append(pages, cty.ObjectVal(map[string]cty.Value{
			"id":         cty.StringVal(p.ID),
			"line":       cty.NumberIntVal(int64(p.Loc.Line)),
			"attrs":      attrsToCty(p.Attrs),
			"attr_order": stringList(p.Attrs.Keys()),
		}))
	}

	labels := make([]cty.Value, 0, len(r.Labels()))
	for _, l := range r.Labels() {
		labels = append(labels, cty.ObjectVal(map[string]cty.Value{
			"target": cty.StringVal(l.Target),
			"attrs":  attrsToCty(l.Attrs),
		}))
	}

	members := make([]cty.Value, 0, len(r.BayMembers()))
	for _, m := range r.BayMembers() {
		members = append(members, cty.ObjectVal(map[string]cty.Value{
			"bay_id":    cty.StringVal(m.BayID),
			"object_id": cty.StringVal(m.ObjectID),
		}))
	}

	directives := make([]cty.Value, 0, len(r.Directives()))
	for _, d := range r.Directives() {
		directives = append(directives, cty.ObjectVal(map[string]cty.Value{
			"kind":  cty.StringVal(d.Kind.String()),
			"attrs": attrsToCty(d.Attrs),
		}))
	}

	return cty.ObjectVal(map[string]cty.Value{
		"fingerprint": cty.StringVal(r.Fingerprint()),
		"objects":     tuple(objects),
		"chains":      tuple(chains),
		"pages":       tuple(pages),
		"style":       attrsToCty(r.Style()),
		"meta":        attrsToCty(r.Meta()),
		"labels":      tuple(labels),
		"bay_members": tuple(members),
		"directives":  tuple(directives),
	})
}

// ValueToCty converts a single IR value.
func ValueToCty(v ir.Value) cty.Value {
	switch v.Kind() {
	case ir.KindIdent, ir.KindText:
		return cty.StringVal(v.Str())
	case ir.KindNumber:
		n, _ := v.AsNumber()
		return cty.NumberFloatVal(n)
	case ir.KindBool:
		b, _ := v.AsBool()
		return cty.BoolVal(b)
	case ir.KindList:
		items, _ := v.AsList()
		vals := make([]cty.Value, 0, len(items))
		for _, item := range items {
			vals = append(vals, ValueToCty(item))
		}
		return tuple(vals)
	case ir.KindMap:
		m, _ := v.AsMap()
		return attrsToCty(m)
	case ir.KindTerminal:
		t, _ := v.AsTerminal()
		return terminalToCty(t)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func attrsToCty(a *ir.Attrs) cty.Value {
	if a.Len() == 0 {
		return cty.EmptyObjectVal
	}
	m := make(map[string]cty.Value, a.Len())
	for k, v := range a.All() {
		m[k] = ValueToCty(v)
	}
	return cty.ObjectVal(m)
}

func terminalToCty(t ir.Terminal) cty.Value {
	if t.Kind == ir.Stub {
		return cty.ObjectVal(map[string]cty.Value{
			"terminal": cty.StringVal("STUB"),
			"label":    cty.StringVal(t.Label),
		})
	}
	return cty.ObjectVal(map[string]cty.Value{
		"terminal": cty.StringVal("OPEN_END"),
	})
}

func tuple(vals []cty.Value) cty.Value {
	if len(vals) == 0 {
		return cty.EmptyTupleVal
	}
	return cty.TupleVal(vals)
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(ss))
	for _, s := range ss {
		vals = append(vals, cty.StringVal(s))
	}
	return cty.ListVal(vals)
}
