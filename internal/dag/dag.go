// Package dag provides a small directed graph keyed by string ids.
// It is used to check lineage definitions for cycles and to group
// nodes into flow levels (sources, transforms, outputs).
package dag

import (
	"fmt"
	"slices"
)

// Graph is a directed graph that remembers insertion order so that every
// query returns ids in the order they were declared.
type Graph struct {
	order    []string
	known    map[string]struct{}
	children map[string][]string // upstream -> downstream
	parents  map[string][]string // downstream -> upstream
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		known:    make(map[string]struct{}),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}
}

// AddNode registers id. Adding an id twice is a no-op.
func (g *Graph) AddNode(id string) {
	if g.Has(id) {
		return
	}
	g.known[id] = struct{}{}
	g.order = append(g.order, id)
}

// Has reports whether id was registered.
func (g *Graph) Has(id string) bool {
	_, ok := g.known[id]
	return ok
}

// AddEdge adds a directed edge from -> to. Both ids must exist.
func (g *Graph) AddEdge(from, to string) error {
	if !g.Has(from) {
		return fmt.Errorf("upstream node %q does not exist", from)
	}
	if !g.Has(to) {
		return fmt.Errorf("downstream node %q does not exist", to)
	}
	if from == to {
		return fmt.Errorf("self-loop detected: %s", from)
	}

	if !slices.Contains(g.children[from], to) {
		g.children[from] = append(g.children[from], to)
	}
	if !slices.Contains(g.parents[to], from) {
		g.parents[to] = append(g.parents[to], from)
	}
	return nil
}

// Parents returns the upstream neighbours of id.
func (g *Graph) Parents(id string) []string {
	return g.parents[id]
}

// Children returns the downstream neighbours of id.
func (g *Graph) Children(id string) []string {
	return g.children[id]
}

// Nodes returns every id in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, out := range g.children {
		count += len(out)
	}
	return count
}

// FindCycle returns the first cycle found as a closed path
// (first and last element equal), or nil when the graph is acyclic.
func (g *Graph) FindCycle() []string {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.order))
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = onStack
		stack = append(stack, id)
		for _, next := range g.children[id] {
			switch state[next] {
			case onStack:
				start := slices.Index(stack, next)
				cycle = append(slices.Clone(stack[start:]), next)
				return true
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	for _, id := range g.order {
		if state[id] == unvisited && visit(id) {
			return cycle
		}
	}
	return nil
}

// Roots returns nodes without parents.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns nodes without children.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, id := range g.order {
		if len(g.children[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// Levels groups nodes by the length of the longest path from a root.
// Level 0 holds the roots. Each level keeps insertion order.
func (g *Graph) Levels() ([][]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("cycle detected: %v", cycle)
	}

	depth := make(map[string]int, len(g.order))
	var levelOf func(id string) int
	levelOf = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		d := 0
		for _, p := range g.parents[id] {
			d = max(d, levelOf(p)+1)
		}
		depth[id] = d
		return d
	}

	var levels [][]string
	for _, id := range g.order {
		d := levelOf(id)
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], id)
	}
	return levels, nil
}

// Downstream returns every node reachable from id, in insertion order.
func (g *Graph) Downstream(id string) []string {
	return g.reach(id, g.children)
}

// Upstream returns every node that reaches id, in insertion order.
func (g *Graph) Upstream(id string) []string {
	return g.reach(id, g.parents)
}

func (g *Graph) reach(id string, adj map[string][]string) []string {
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		for _, next := range adj[cur] {
			if !seen[next] {
				seen[next] = true
				walk(next)
			}
		}
	}
	walk(id)

	var out []string
	for _, n := range g.order {
		if seen[n] {
			out = append(out, n)
		}
	}
	return out
}
