// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package validate checks a completed IR against the structural and
// electrical consistency rules of a substation description.
//
// Rules run in a fixed order and validation stops at the first violation.
// The order and the error codes are part of the package contract:
//
//	E.ID.DUP            object ids are unique
//	E.CONNECT.EMPTY     a chain has at least one element
//	E.CONNECT.ENDPOINT  terminals appear only at either end of a chain
//	E.VOLT.MISMATCH     adjacent devices are within 15% of each other's kv
//	E.PROT.BRK_UNUSED   every breaker is referenced by some chain
//
// Strict mode appends reference checks that the default battery tolerates:
//
//	E.REF.UNRESOLVED    every chain reference names a declared object
//	E.COUPLER.BUS       couplers join two distinct declared buses
//	E.BAY.BUS           bays hang off a declared bus
//	E.BAY.MEMBER        APPEND_TO_BAY names a declared bay and object
package validate

import (
	"context"
	"math"

	"github.com/vk/substationdsl/internal/ctxlog"
	"github.com/vk/substationdsl/internal/dslerr"
	"github.com/vk/substationdsl/internal/ir"
)

// VoltageTolerance is the largest relative kv difference, as a fraction of the
// larger voltage, allowed between adjacent devices in a chain.
const VoltageTolerance = 0.15

type options struct {
	strict bool
}

// Option configures Validate.
type Option func(*options)

// WithStrict enables the reference checks that run after the default rules.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// rule inspects the IR and returns the first violation it finds, or nil.
type rule struct {
	name  string
	check func(*ir.IR) error
}

var defaultRules = []rule{
	{"unique ids", checkUniqueIDs},
	{"chains", checkChains},
	{"breakers connected", checkBreakersConnected},
}

var strictRules = []rule{
	{"references resolved", checkReferencesResolved},
	{"coupler buses", checkCouplerBuses},
	{"bay buses", checkBayBuses},
	{"bay members", checkBayMembers},
}

// Validate runs the rule battery over r. It returns nil when r passes, and
// otherwise the first violation as a *dslerr.SemanticError. r is not
// modified.
func Validate(ctx context.Context, r *ir.IR, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := ctxlog.FromContext(ctx)

	rules := defaultRules
	if o.strict {
		rules = append(append([]rule(nil), defaultRules...), strictRules...)
	}
	for _, rl := range rules {
		if err := rl.check(r); err != nil {
			logger.Debug("Validation failed.", "rule", rl.name, "code", dslerr.CodeOf(err))
			return err
		}
	}
	logger.Debug("Validation passed.", "rules", len(rules), "strict", o.strict)
	return nil
}

func checkUniqueIDs(r *ir.IR) error {
	ids := r.ObjectIDs()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	if len(seen) != r.NumObjects() {
		return dslerr.NewSemantic(dslerr.CodeDuplicateID, "Duplicate object ids found.")
	}
	return nil
}

func checkChains(r *ir.IR) error {
	for _, c := range r.Chains() {
		if len(c.Elements) == 0 {
			return dslerr.NewSemantic(dslerr.CodeConnectEmpty, "Empty CONNECT series.").
				At(c.Loc.Line, c.Loc.Column)
		}
		last := len(c.Elements) - 1
		for i, e := range c.Elements {
			if e.IsTerminal() && i != 0 && i != last {
				return dslerr.NewSemantic(dslerr.CodeConnectEndpoint,
					"OPEN_END/STUB allowed only at start or end of series.").
					At(c.Loc.Line, c.Loc.Column)
			}
		}
		if err := checkAdjacentVoltages(r, c); err != nil {
			return err
		}
	}
	return nil
}

func checkAdjacentVoltages(r *ir.IR, c *ir.Chain) error {
	for i := 0; i+1 < len(c.Elements); i++ {
		a, aok := c.Elements[i].Ref()
		b, bok := c.Elements[i+1].Ref()
		if !aok || !bok {
			continue
		}
		oa, aok := r.Object(a)
		ob, bok := r.Object(b)
		if !aok || !bok {
			continue
		}
		if voltageExempt(oa.Kind) || voltageExempt(ob.Kind) {
			continue
		}
		kva, aok := oa.KV()
		kvb, bok := ob.KV()
		if !aok || !bok {
			continue
		}
		if math.Abs(kva-kvb) > VoltageTolerance*math.Max(kva, kvb) {
			return dslerr.NewSemantic(dslerr.CodeVoltageMismatch,
				"Voltage mismatch between %s(%g) and %s(%g).", a, kva, b, kvb).
				At(c.Loc.Line, c.Loc.Column)
		}
	}
	return nil
}

// voltageExempt reports whether k joins different voltage levels by nature.
func voltageExempt(k ir.Kind) bool {
	return k == ir.Bus || k == ir.Transformer
}

func checkBreakersConnected(r *ir.IR) error {
	referenced := make(map[string]struct{})
	for _, c := range r.Chains() {
		for _, id := range c.Refs() {
			referenced[id] = struct{}{}
		}
	}
	for _, brk := range r.ObjectsOfKind(ir.Breaker) {
		if _, ok := referenced[brk.ID]; !ok {
			return dslerr.NewSemantic(dslerr.CodeBreakerUnused, "Breaker %s is not connected.", brk.ID).
				At(brk.Loc.Line, brk.Loc.Column)
		}
	}
	return nil
}
