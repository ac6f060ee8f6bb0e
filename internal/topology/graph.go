// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package topology

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Graph is an undirected graph of equipment ids. Two ids are joined when
// they sit next to each other in some CONNECT chain. Iteration order is
// insertion order throughout, so every result derived from a Graph is
// deterministic. All operations are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	order []*node
}

type node struct {
	id        string
	rank      int // insertion index
	neighbors []*node
	linked    map[string]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a node with the given id. Adding an existing id does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	n := &node{id: id, rank: len(g.order), linked: make(map[string]bool)}
	g.nodes[id] = n
	g.order = append(g.order, n)
}

// AddEdge joins a and b. Repeated edges are collapsed. An error is returned
// if either node does not exist or if a and b are the same id.
func (g *Graph) AddEdge(a, b string) error {
	if a == b {
		return fmt.Errorf("self-referential edge not allowed: %s -- %s", a, a)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	na, ok := g.nodes[a]
	if !ok {
		return fmt.Errorf("node not found: %s", a)
	}
	nb, ok := g.nodes[b]
	if !ok {
		return fmt.Errorf("node not found: %s", b)
	}
	if na.linked[b] {
		return nil
	}
	na.linked[b], nb.linked[a] = true, true
	na.neighbors = append(na.neighbors, nb)
	nb.neighbors = append(nb.neighbors, na)
	return nil
}

// Has reports whether id is a node of g.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}

// Components returns the connected components of g. Components are ordered
// by their earliest node and list their members in node insertion order.
func (g *Graph) Components() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	seen := make([]bool, len(g.order))
	var components [][]string
	for _, start := range g.order {
		if seen[start.rank] {
			continue
		}
		// Iterative depth-first walk, then members are put back in
		// insertion order.
		var members []*node
		stack := []*node{start}
		seen[start.rank] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, n)
			for _, nb := range n.neighbors {
				if !seen[nb.rank] {
					seen[nb.rank] = true
					stack = append(stack, nb)
				}
			}
		}
		slices.SortFunc(members, func(a, b *node) int { return cmp.Compare(a.rank, b.rank) })

		ids := make([]string, len(members))
		for i, n := range members {
			ids[i] = n.id
		}
		components = append(components, ids)
	}
	return components
}
