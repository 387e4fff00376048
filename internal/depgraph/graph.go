// Package depgraph turns the catalog's flat node and dependency lists into
// the interactive dependency graph view: platform filtering, focus scoping,
// the view state machine and the rendering projection.
package depgraph

import (
	"fmt"
	"iter"
	"slices"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
)

// IndexSet is a set of node indexes.
type IndexSet map[int]struct{}

// NewIndexSet returns a set holding the given indexes.
func NewIndexSet(indexes ...int) IndexSet {
	s := make(IndexSet, len(indexes))
	for _, i := range indexes {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether i is in the set.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Add puts i into the set.
func (s IndexSet) Add(i int) { s[i] = struct{}{} }

// Sorted returns the members in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Graph is an indexed, read-only view over one dependency graph.
type Graph struct {
	nodes []catalog.Node
	deps  []catalog.Dependency
	// byNode lists, per node, the dependencies having it as source or target.
	byNode [][]int
}

// New indexes d. It panics if a dependency references a node index outside
// d.Nodes: the catalog service guarantees valid indexes, so a bad one is a
// defect rather than an input error.
func New(d catalog.Dependencies) *Graph {
	g := &Graph{
		nodes:  d.Nodes,
		deps:   d.Dependencies,
		byNode: make([][]int, len(d.Nodes)),
	}
	for di, dep := range d.Dependencies {
		g.mustIndex(di, "targetIndex", dep.TargetIndex)
		g.byNode[dep.TargetIndex] = append(g.byNode[dep.TargetIndex], di)
		if dep.SourceIndex != nil {
			src := *dep.SourceIndex
			g.mustIndex(di, "sourceIndex", src)
			if src != dep.TargetIndex {
				g.byNode[src] = append(g.byNode[src], di)
			}
		}
		for _, ri := range dep.RelatedIndexes {
			g.mustIndex(di, "relatedIndexes", ri)
		}
	}
	return g
}

func (g *Graph) mustIndex(dependency int, field string, i int) {
	if i < 0 || i >= len(g.nodes) {
		panic(fmt.Sprintf("depgraph: dependency %d has %s %d outside %d nodes", dependency, field, i, len(g.nodes)))
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// DependencyCount returns the number of dependencies.
func (g *Graph) DependencyCount() int { return len(g.deps) }

// Node returns node i.
func (g *Graph) Node(i int) catalog.Node { return g.nodes[i] }

// Dependency returns dependency i.
func (g *Graph) Dependency(i int) catalog.Dependency { return g.deps[i] }

// Dependencies yields every dependency with its index.
func (g *Graph) Dependencies() iter.Seq2[int, catalog.Dependency] {
	return func(yield func(int, catalog.Dependency) bool) {
		for i, d := range g.deps {
			if !yield(i, d) {
				return
			}
		}
	}
}

// EdgesOf lazily yields the dependencies whose source or target is node i,
// keyed by dependency index.
func (g *Graph) EdgesOf(i int) iter.Seq2[int, catalog.Dependency] {
	return func(yield func(int, catalog.Dependency) bool) {
		for _, di := range g.byNode[i] {
			if !yield(di, g.deps[di]) {
				return
			}
		}
	}
}

// NeighborsOf returns the nodes joined to i by any dependency touching i,
// in either direction, including the related indexes of those dependencies.
// i itself is not included.
func (g *Graph) NeighborsOf(i int) IndexSet {
	neighbors := make(IndexSet)
	for _, d := range g.EdgesOf(i) {
		neighbors.Add(d.TargetIndex)
		if d.SourceIndex != nil {
			neighbors.Add(*d.SourceIndex)
		}
		for _, ri := range d.RelatedIndexes {
			neighbors.Add(ri)
		}
	}
	delete(neighbors, i)
	return neighbors
}
