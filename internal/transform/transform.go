// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package transform turns a grammar.Document into an ir.IR.
//
// Every ADD_* statement is handled the same way: its named slots are read in
// grammar order into an ordered attribute map, the optional trailing
// extension block contributes only keys that are not already present, and
// the result is registered as an Object. Chains, pages and the passive
// statements (STYLE, LABEL, SET_LAYOUT, APPEND_TO_BAY, VALIDATE, EMIT_SPEC)
// are recorded in source order.
//
// Transform is a pure function of its input. It allocates fresh state per
// call and may be used from any number of goroutines.
package transform

import (
	"context"
	"log/slog"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vk/substationdsl/internal/ctxlog"
	"github.com/vk/substationdsl/internal/dslerr"
	"github.com/vk/substationdsl/internal/grammar"
	"github.com/vk/substationdsl/internal/ir"
)

// Transform converts doc into an IR. On failure no partial IR is returned;
// the error is a *dslerr.SemanticError.
func Transform(ctx context.Context, doc *grammar.Document) (*ir.IR, error) {
	t := &transformer{
		b:      ir.NewBuilder(),
		layout: ir.NewAttrs(),
		logger: ctxlog.FromContext(ctx),
	}
	for _, st := range doc.Statements {
		if err := t.statement(st); err != nil {
			return nil, err
		}
	}

	result := t.b.Build()
	t.logger.Debug("Transformed document.",
		"statements", len(doc.Statements),
		"objects", result.NumObjects(),
		"chains", len(result.Chains()),
		"pages", len(result.PageIDs()),
	)
	return result, nil
}

type transformer struct {
	b      *ir.Builder
	layout *ir.Attrs
	logger *slog.Logger
}

func (t *transformer) statement(st *grammar.Statement) error {
	switch {
	case st.Bus != nil:
		s := st.Bus
		return t.object(ir.Bus, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
		)
	case st.Bay != nil:
		s := st.Bay
		return t.object(ir.Bay, s.Pos, s.Ext,
			idSlot(s.ID),
			identSlot("kind", s.Kind),
			numSlot("kv", s.KV),
			identSlot("bus", s.Bus),
		)
	case st.Coupler != nil:
		s := st.Coupler
		return t.object(ir.Coupler, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			identSlot("from_bus", s.FromBus),
			identSlot("to_bus", s.ToBus),
		)
	case st.Breaker != nil:
		s := st.Breaker
		return t.object(ir.Breaker, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("interrupting_kA", s.InterruptingKA),
			identSlot("type", s.Type),
			numSlot("continuous_A", s.ContinuousA),
		)
	case st.Disconnector != nil:
		s := st.Disconnector
		return t.object(ir.Disconnector, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			identSlot("type", s.Type),
			numSlot("continuous_A", s.ContinuousA),
		)
	case st.EarthingSwitch != nil:
		s := st.EarthingSwitch
		return t.object(ir.EarthingSwitch, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("make_kA", s.MakeKA),
		)
	case st.CT != nil:
		s := st.CT
		return t.object(ir.CT, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			scalarSlot("ratio", s.Ratio),
			scalarSlot("class", s.Class),
			optional(numSlot("burden_VA", s.BurdenVA)),
		)
	case st.VT != nil:
		s := st.VT
		return t.object(ir.VT, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			identSlot("type", s.Type),
			scalarSlot("ratio", s.Ratio),
			scalarSlot("class", s.Class),
		)
	case st.RelayGroup != nil:
		s := st.RelayGroup
		return t.object(ir.RelayGroup, s.Pos, s.Ext,
			idSlot(s.ID),
			identListSlot("functions", s.Functions),
			identSlot("dc_supply", s.DCSupply),
			optional(identListSlot("trip_objects", s.TripObjects)),
		)
	case st.Transformer != nil:
		s := st.Transformer
		return t.object(ir.Transformer, s.Pos, s.Ext,
			idSlot(s.ID),
			identSlot("type", s.Type),
			numSlot("rated_MVA", s.RatedMVA),
			textSlot("vector_group", s.VectorGroup),
			numSlot("percentZ", s.PercentZ),
			optional(blockSlot("tap", tapAttrs(s.Tap))),
		)
	case st.Line != nil:
		s := st.Line
		return t.object(ir.Line, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			identSlot("type", s.Type),
			numSlot("length_km", s.LengthKm),
			numSlot("thermal_A", s.ThermalA),
			optional(blockSlot("seq_params", seqParamsAttrs(s.SeqParams))),
		)
	case st.Cable != nil:
		s := st.Cable
		return t.object(ir.Cable, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("length_km", s.LengthKm),
			numSlot("thermal_A", s.ThermalA),
			scalarSlot("insulation", s.Insulation),
			optional(blockSlot("seq_params", seqParamsAttrs(s.SeqParams))),
		)
	case st.ShuntCapBank != nil:
		s := st.ShuntCapBank
		return t.object(ir.ShuntCapBank, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("mvar_total", s.MvarTotal),
			numSlot("steps", s.Steps),
			identSlot("connection", s.Connection),
			optional(blockSlot("tuning", tuningAttrs(s.Tuning))),
		)
	case st.ShuntReactor != nil:
		s := st.ShuntReactor
		return t.object(ir.ShuntReactor, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("mvar", s.Mvar),
			boolSlot("switchable", s.Switchable),
		)
	case st.SeriesCap != nil:
		s := st.SeriesCap
		return t.object(ir.SeriesCap, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("compensation_pct", s.CompensationPct),
			scalarSlot("protection", s.Protection),
		)
	case st.SVC != nil:
		s := st.SVC
		return t.object(ir.SVC, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			rangeSlot("mvar_range", s.MvarRange),
			identSlot("control_mode", s.ControlMode),
			optional(numSlot("response_ms", s.ResponseMs)),
		)
	case st.STATCOM != nil:
		s := st.STATCOM
		return t.object(ir.STATCOM, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			rangeSlot("mvar_range", s.MvarRange),
			identSlot("control_mode", s.ControlMode),
			optional(numSlot("response_ms", s.ResponseMs)),
		)
	case st.SurgeArrester != nil:
		s := st.SurgeArrester
		return t.object(ir.SurgeArrester, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("mcov_kV", s.McovKV),
			scalarSlot("class", s.Class),
		)
	case st.LineTrap != nil:
		s := st.LineTrap
		return t.object(ir.LineTrap, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("kv", s.KV),
			numSlot("carrier_kHz", s.CarrierKHz),
		)
	case st.StationServiceTransformer != nil:
		s := st.StationServiceTransformer
		return t.object(ir.StationServiceTransformer, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("primary_kv", s.PrimaryKV),
			numSlot("secondary_kV", s.SecondaryKV),
			numSlot("kVA", s.KVA),
		)
	case st.DCSystem != nil:
		s := st.DCSystem
		return t.object(ir.DCSystem, s.Pos, s.Ext,
			idSlot(s.ID),
			numSlot("nominal_V", s.NominalV),
			numSlot("capacity_Ah", s.CapacityAh),
			scalarSlot("redundancy", s.Redundancy),
		)

	case st.Connect != nil:
		t.connect(st.Connect)
		return nil
	case st.AppendToBay != nil:
		s := st.AppendToBay
		t.b.AddBayMember(&ir.BayMember{BayID: s.BayID, ObjectID: s.ObjectID, Loc: location(s.Pos)})
		return nil
	case st.Page != nil:
		return t.page(st.Page)
	case st.Style != nil:
		t.b.MergeStyle(entryAttrs(st.Style.Entries))
		return nil
	case st.SetLayout != nil:
		for k, v := range entryAttrs(st.SetLayout.Entries).All() {
			t.layout.Set(k, v)
		}
		t.b.SetMeta("layout", ir.Map(t.layout.Clone()))
		return nil
	case st.Label != nil:
		s := st.Label
		t.b.AddLabel(&ir.Label{Target: s.Target, Attrs: entryAttrs(s.Entries), Loc: location(s.Pos)})
		return nil
	case st.Validate != nil:
		t.b.AddDirective(&ir.Directive{Kind: ir.DirectiveValidate, Attrs: ir.NewAttrs(), Loc: location(st.Validate.Pos)})
		return nil
	case st.EmitSpec != nil:
		s := st.EmitSpec
		t.b.AddDirective(&ir.Directive{Kind: ir.DirectiveEmitSpec, Attrs: entryAttrs(s.Entries), Loc: location(s.Pos)})
		return nil
	}
	return dslerr.NewSemantic(dslerr.CodeUnknownStatement, "Unrecognised statement")
}

// object builds and registers one equipment object from its named slots and
// optional extension block.
func (t *transformer) object(kind ir.Kind, pos lexer.Position, ext *grammar.MapLit, slots ...slot) error {
	loc := location(pos)
	attrs := ir.NewAttrs()
	for _, s := range slots {
		if s.present {
			attrs.Set(s.name, s.value)
			continue
		}
		if s.optional {
			continue
		}
		if s.name == "id" {
			return dslerr.NewSemantic(dslerr.CodeMissingID, "Missing id in %s", kind).
				At(loc.Line, loc.Column)
		}
		return dslerr.NewSemantic(dslerr.CodeMissingAttr, "Missing mandatory attribute '%s' in %s", s.name, kind).
			At(loc.Line, loc.Column)
	}
	attrs.MergeMissing(extAttrs(ext))

	obj := &ir.Object{Kind: kind, Attrs: attrs, Loc: loc}
	if err := t.b.AddObject(obj); err != nil {
		return err
	}
	t.logger.Debug("Registered object.", "id", obj.ID, "kind", kind.String(), "line", loc.Line)
	return nil
}

func (t *transformer) connect(s *grammar.Connect) {
	c := &ir.Chain{
		Elements: make([]ir.Element, 0, len(s.Elements)),
		Attrs:    ir.NewAttrs(),
		Loc:      location(s.Pos),
	}
	for _, e := range s.Elements {
		c.Elements = append(c.Elements, chainElement(e))
	}
	c.Attrs.MergeMissing(extAttrs(s.Ext))
	t.b.AddChain(c)
	t.logger.Debug("Recorded chain.", "elements", len(c.Elements), "line", c.Loc.Line)
}

func (t *transformer) page(s *grammar.Page) error {
	attrs := slotAttrs(
		identSlot("id", s.ID),
		textSlot("title", s.Title),
		numListSlot("voltage_scope", s.VoltageScope),
		identListSlot("buses", s.Buses),
		identListSlot("bays", s.Bays),
		blockSlot("routing", routingAttrs(s.Routing)),
	)
	attrs.MergeMissing(extAttrs(s.Ext))
	return t.b.AddPage(&ir.Page{ID: s.ID, Attrs: attrs, Loc: location(s.Pos)})
}
