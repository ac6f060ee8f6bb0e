// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vk/substationdsl/internal/ir"
	"gopkg.in/yaml.v3"
)

// YAML renders r as a YAML document. Attribute maps keep declaration order.
func YAML(w io.Writer, r *ir.IR) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument(r)); err != nil {
		return fmt.Errorf("failed to encode IR as YAML: %w", err)
	}
	return enc.Close()
}

func yamlDocument(r *ir.IR) *yaml.Node {
	objects := seq()
	for o := range r.Objects() {
		objects.Content = append(objects.Content, mapping(
			str("id"), str(o.ID),
			str("kind"), str(o.Kind.String()),
			str("line"), integer(o.Loc.Line),
			str("column"), integer(o.Loc.Column),
			str("attrs"), attrsNode(o.Attrs),
		))
	}

	chains := seq()
	for _, c := range r.Chains() {
		elems := seq()
		elems.Style = yaml.FlowStyle
		for _, e := range c.Elements {
			if term, ok := e.Terminal(); ok {
				elems.Content = append(elems.Content, terminalNode(term))
				continue
			}
			ref, _ := e.Ref()
			elems.Content = append(elems.Content, str(ref))
		}
		chains.Content = append(chains.Content, mapping(
			str("elements"), elems,
			str("line"), integer(c.Loc.Line),
			str("attrs"), attrsNode(c.Attrs),
		))
	}

	pages := seq()
	for _, id := range r.PageIDs() {
		p, _ := r.Page(id)
		pages.Content = append(pages.Content, mapping(
			str("id"), str(p.ID),
			str("line"), integer(p.Loc.Line),
			str("attrs"), attrsNode(p.Attrs),
		))
	}

	labels := seq()
	for _, l := range r.Labels() {
		labels.Content = append(labels.Content, mapping(
			str("target"), str(l.Target),
			str("attrs"), attrsNode(l.Attrs),
		))
	}

	members := seq()
	for _, m := range r.BayMembers() {
		members.Content = append(members.Content, mapping(
			str("bay_id"), str(m.BayID),
			str("object_id"), str(m.ObjectID),
		))
	}

	directives := seq()
	for _, d := range r.Directives() {
		directives.Content = append(directives.Content, mapping(
			str("kind"), str(d.Kind.String()),
			str("attrs"), attrsNode(d.Attrs),
		))
	}

	return mapping(
		str("fingerprint"), str(r.Fingerprint()),
		str("objects"), objects,
		str("chains"), chains,
		str("pages"), pages,
		str("style"), attrsNode(r.Style()),
		str("meta"), attrsNode(r.Meta()),
		str("labels"), labels,
		str("bay_members"), members,
		str("directives"), directives,
	)
}

// ValueNode converts a single IR value into a YAML node.
func ValueNode(v ir.Value) *yaml.Node {
	switch v.Kind() {
	case ir.KindIdent, ir.KindText:
		return str(v.Str())
	case ir.KindNumber:
		n, _ := v.AsNumber()
		return number(n)
	case ir.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
	case ir.KindList:
		items, _ := v.AsList()
		n := seq()
		n.Style = yaml.FlowStyle
		for _, item := range items {
			n.Content = append(n.Content, ValueNode(item))
		}
		return n
	case ir.KindMap:
		m, _ := v.AsMap()
		return attrsNode(m)
	case ir.KindTerminal:
		t, _ := v.AsTerminal()
		return terminalNode(t)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func attrsNode(a *ir.Attrs) *yaml.Node {
	n := mapping()
	for k, v := range a.All() {
		n.Content = append(n.Content, str(k), ValueNode(v))
	}
	if len(n.Content) == 0 {
		n.Style = yaml.FlowStyle
	}
	return n
}

func terminalNode(t ir.Terminal) *yaml.Node {
	if t.Kind == ir.Stub {
		return mapping(str("terminal"), str("STUB"), str("label"), str(t.Label))
	}
	return mapping(str("terminal"), str("OPEN_END"))
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}

func seq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func integer(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

// number emits integral values without a fractional part so that 138 stays
// 138 rather than 138.0.
func number(f float64) *yaml.Node {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatFloat(f, 'f', -1, 64)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}
}
