// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package transform

import (
	"github.com/vk/substationdsl/internal/grammar"
	"github.com/vk/substationdsl/internal/ir"
)

// slot is one named attribute read from a statement node, in grammar order.
type slot struct {
	name     string
	value    ir.Value
	present  bool
	optional bool
}

func idSlot(id string) slot {
	return slot{name: "id", value: ir.Ident(id), present: id != ""}
}

func identSlot(name, v string) slot {
	return slot{name: name, value: ir.Ident(v), present: v != ""}
}

func numSlot(name string, n grammar.Num) slot {
	return slot{name: name, value: ir.Number(n.V), present: n.Set}
}

func textSlot(name string, t grammar.Text) slot {
	return slot{name: name, value: ir.Text(t.V), present: t.Set}
}

func boolSlot(name string, b grammar.Boolean) slot {
	return slot{name: name, value: ir.Bool(b.V), present: b.Set}
}

func scalarSlot(name string, s *grammar.Scalar) slot {
	if s == nil {
		return slot{name: name}
	}
	switch {
	case s.Number != nil:
		return slot{name: name, value: ir.Number(*s.Number), present: true}
	case s.Text != nil:
		return slot{name: name, value: ir.Text(*s.Text), present: true}
	case s.Ident != nil:
		return slot{name: name, value: ir.Ident(*s.Ident), present: true}
	}
	return slot{name: name}
}

func identListSlot(name string, l *grammar.IdentList) slot {
	if l == nil {
		return slot{name: name}
	}
	items := make([]ir.Value, 0, len(l.Items))
	for _, id := range l.Items {
		items = append(items, ir.Ident(id))
	}
	return slot{name: name, value: ir.List(items...), present: true}
}

func numListSlot(name string, l *grammar.NumList) slot {
	if l == nil {
		return slot{name: name}
	}
	items := make([]ir.Value, 0, len(l.Items))
	for _, n := range l.Items {
		items = append(items, ir.Number(n))
	}
	return slot{name: name, value: ir.List(items...), present: true}
}

func rangeSlot(name string, r *grammar.Range) slot {
	if r == nil || !r.Min.Set || !r.Max.Set {
		return slot{name: name}
	}
	return slot{name: name, value: ir.List(ir.Number(r.Min.V), ir.Number(r.Max.V)), present: true}
}

func blockSlot(name string, attrs *ir.Attrs) slot {
	return slot{name: name, value: ir.Map(attrs), present: attrs != nil}
}

// optional marks s as an optional named slot: when absent it is skipped
// rather than reported.
func optional(s slot) slot {
	s.optional = true
	return s
}

func tapAttrs(t *grammar.TapBlock) *ir.Attrs {
	if t == nil {
		return nil
	}
	return slotAttrs(
		identSlot("side", t.Side),
		numSlot("range_pct", t.RangePct),
		numSlot("steps", t.Steps),
		optional(identSlot("regulation_mode", t.RegulationMode)),
	)
}

func seqParamsAttrs(p *grammar.SeqParams) *ir.Attrs {
	if p == nil {
		return nil
	}
	return slotAttrs(
		numSlot("R1_ohm_per_km", p.R1),
		numSlot("X1_ohm_per_km", p.X1),
		optional(numSlot("B1_uS_per_km", p.B1)),
		optional(numSlot("R0_ohm_per_km", p.R0)),
		optional(numSlot("X0_ohm_per_km", p.X0)),
		optional(numSlot("B0_uS_per_km", p.B0)),
	)
}

func tuningAttrs(t *grammar.Tuning) *ir.Attrs {
	if t == nil {
		return nil
	}
	return slotAttrs(numSlot("tuned_Hz", t.TunedHz), numSlot("Q_factor", t.QFactor))
}

func routingAttrs(r *grammar.Routing) *ir.Attrs {
	if r == nil {
		return nil
	}
	return slotAttrs(
		identSlot("pref", r.Pref),
		optional(boolSlot("avoid_crossing", r.AvoidCrossing)),
		optional(numSlot("bus_spacing", r.BusSpacing)),
		optional(numSlot("bay_spacing", r.BaySpacing)),
	)
}

// slotAttrs builds the attributes of a nested block. The grammar makes the
// block's own required keys mandatory, so absent slots are simply skipped.
func slotAttrs(slots ...slot) *ir.Attrs {
	a := ir.NewAttrs()
	for _, s := range slots {
		if s.present {
			a.Set(s.name, s.value)
		}
	}
	return a
}
