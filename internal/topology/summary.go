// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package topology

import (
	"context"
	"slices"
	"sort"

	"github.com/vk/substationdsl/internal/ctxlog"
	"github.com/vk/substationdsl/internal/ir"
)

// sampleKinds are the kinds whose first object is shown as a sample in a
// Summary.
var sampleKinds = []ir.Kind{ir.Bus, ir.Breaker, ir.Transformer, ir.Line}

// sampleAttrs is the number of attributes, after the id, shown per sample.
const sampleAttrs = 3

// KindCount is the number of objects of one kind.
type KindCount struct {
	Kind  ir.Kind
	Count int
}

// Sample is the first declared object of a kind with its leading attributes.
type Sample struct {
	ID    string
	Kind  ir.Kind
	Attrs *ir.Attrs
}

// Summary is a read-only digest of a substation IR.
type Summary struct {
	Objects   int
	Chains    int
	Pages     int
	Terminals int

	// VoltageLevels holds the distinct numeric kv values, ascending.
	VoltageLevels []float64
	// Inventory holds the object count per kind, ordered by kind name.
	Inventory []KindCount
	Samples   []Sample

	// Islands are the electrically connected groups of chained equipment.
	Islands [][]string
	// Unconnected lists declared objects that appear in no chain.
	Unconnected []string
	// Undeclared lists chain references that name no declared object.
	Undeclared []string
}

// BuildGraph returns the chain graph of r. Every declared object that
// appears in a chain is a node, in declaration order, followed by undeclared
// references in chain order. Adjacent references in a chain are joined by
// an edge; a terminal breaks adjacency.
func BuildGraph(r *ir.IR) *Graph {
	inChain := make(map[string]bool)
	for _, c := range r.Chains() {
		for _, id := range c.Refs() {
			inChain[id] = true
		}
	}

	g := NewGraph()
	for _, id := range r.ObjectIDs() {
		if inChain[id] {
			g.AddNode(id)
		}
	}
	for _, c := range r.Chains() {
		prev := ""
		for _, e := range c.Elements {
			id, ok := e.Ref()
			if !ok {
				prev = ""
				continue
			}
			g.AddNode(id)
			if prev != "" && prev != id {
				// Both nodes exist and differ, so AddEdge cannot fail.
				_ = g.AddEdge(prev, id)
			}
			prev = id
		}
	}
	return g
}

// Summarize computes the Summary of r.
func Summarize(ctx context.Context, r *ir.IR) *Summary {
	s := &Summary{
		Objects: r.NumObjects(),
		Chains:  len(r.Chains()),
		Pages:   len(r.PageIDs()),
	}

	counts := make(map[ir.Kind]int)
	levels := make(map[float64]bool)
	for o := range r.Objects() {
		counts[o.Kind]++
		if kv, ok := o.KV(); ok {
			levels[kv] = true
		}
	}
	for kv := range levels {
		s.VoltageLevels = append(s.VoltageLevels, kv)
	}
	slices.Sort(s.VoltageLevels)

	for k, n := range counts {
		s.Inventory = append(s.Inventory, KindCount{Kind: k, Count: n})
	}
	sort.Slice(s.Inventory, func(i, j int) bool {
		return s.Inventory[i].Kind.String() < s.Inventory[j].Kind.String()
	})

	for _, k := range sampleKinds {
		objs := r.ObjectsOfKind(k)
		if len(objs) == 0 {
			continue
		}
		first := objs[0]
		attrs := ir.NewAttrs()
		for name, v := range first.Attrs.All() {
			if name == "id" {
				continue
			}
			if attrs.Len() == sampleAttrs {
				break
			}
			attrs.Set(name, v)
		}
		s.Samples = append(s.Samples, Sample{ID: first.ID, Kind: k, Attrs: attrs})
	}

	for _, c := range r.Chains() {
		for _, e := range c.Elements {
			if e.IsTerminal() {
				s.Terminals++
			}
		}
	}

	g := BuildGraph(r)
	s.Islands = g.Components()
	for _, id := range r.ObjectIDs() {
		if !g.Has(id) {
			s.Unconnected = append(s.Unconnected, id)
		}
	}
	for _, island := range s.Islands {
		for _, id := range island {
			if _, ok := r.Object(id); !ok {
				s.Undeclared = append(s.Undeclared, id)
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("Summarized topology.",
		"objects", s.Objects,
		"islands", len(s.Islands),
		"unconnected", len(s.Unconnected),
	)
	return s
}

// OnlyKinds drops the Inventory and Samples entries whose kind is not listed.
// Totals, islands and the connectivity lists still cover every object.
func (s *Summary) OnlyKinds(kinds ...ir.Kind) {
	keep := func(k ir.Kind) bool { return slices.Contains(kinds, k) }
	s.Inventory = slices.DeleteFunc(s.Inventory, func(kc KindCount) bool { return !keep(kc.Kind) })
	s.Samples = slices.DeleteFunc(s.Samples, func(sm Sample) bool { return !keep(sm.Kind) })
}
