// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package validate

import (
	"github.com/vk/substationdsl/internal/dslerr"
	"github.com/vk/substationdsl/internal/ir"
)

func checkReferencesResolved(r *ir.IR) error {
	for _, c := range r.Chains() {
		for _, id := range c.Refs() {
			if _, ok := r.Object(id); !ok {
				return dslerr.NewSemantic(dslerr.CodeUnresolvedRef,
					"CONNECT references undeclared object '%s'.", id).
					At(c.Loc.Line, c.Loc.Column)
			}
		}
	}
	return nil
}

func checkCouplerBuses(r *ir.IR) error {
	for _, cpl := range r.ObjectsOfKind(ir.Coupler) {
		from := attrStr(cpl, "from_bus")
		to := attrStr(cpl, "to_bus")
		for _, bus := range []string{from, to} {
			if !isKind(r, bus, ir.Bus) {
				return dslerr.NewSemantic(dslerr.CodeCouplerBus,
					"Coupler %s references '%s', which is not a declared bus.", cpl.ID, bus).
					At(cpl.Loc.Line, cpl.Loc.Column)
			}
		}
		if from == to {
			return dslerr.NewSemantic(dslerr.CodeCouplerBus,
				"Coupler %s joins bus '%s' to itself.", cpl.ID, from).
				At(cpl.Loc.Line, cpl.Loc.Column)
		}
	}
	return nil
}

func checkBayBuses(r *ir.IR) error {
	for _, bay := range r.ObjectsOfKind(ir.Bay) {
		bus := attrStr(bay, "bus")
		if !isKind(r, bus, ir.Bus) {
			return dslerr.NewSemantic(dslerr.CodeBayBus,
				"Bay %s references '%s', which is not a declared bus.", bay.ID, bus).
				At(bay.Loc.Line, bay.Loc.Column)
		}
	}
	return nil
}

func checkBayMembers(r *ir.IR) error {
	for _, m := range r.BayMembers() {
		if !isKind(r, m.BayID, ir.Bay) {
			return dslerr.NewSemantic(dslerr.CodeBayMember,
				"APPEND_TO_BAY targets '%s', which is not a declared bay.", m.BayID).
				At(m.Loc.Line, m.Loc.Column)
		}
		if _, ok := r.Object(m.ObjectID); !ok {
			return dslerr.NewSemantic(dslerr.CodeBayMember,
				"APPEND_TO_BAY adds undeclared object '%s' to bay %s.", m.ObjectID, m.BayID).
				At(m.Loc.Line, m.Loc.Column)
		}
	}
	return nil
}

func attrStr(o *ir.Object, name string) string {
	v, _ := o.Attrs.Get(name)
	return v.Str()
}

func isKind(r *ir.IR, id string, k ir.Kind) bool {
	o, ok := r.Object(id)
	return ok && o.Kind == k
}
