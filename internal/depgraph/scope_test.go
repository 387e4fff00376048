package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
)

func allVisible(g *Graph) IndexSet {
	return MatchingNodes(g, NewPlatformFilter(), nil)
}

func TestResolveWithoutFocus(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	c := Resolve(g, allVisible(g), NoFocus)

	assert.Equal(t, []NodeClass{NodeScoped, NodeScoped, NodeScoped, NodeScoped}, c.Nodes)
	assert.Equal(t, []EdgeClass{EdgeScoped, EdgeScoped, EdgeScoped, EdgeScoped}, c.Edges)
}

func TestResolveWithFocus(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	c := Resolve(g, allVisible(g), 1)

	assert.Equal(t, []NodeClass{NodeDirect, NodeSelected, NodeDirect, NodeDirect}, c.Nodes)
	assert.Equal(t, []EdgeClass{EdgeScoped, EdgeDirect, EdgeDirect, EdgeDirect}, c.Edges)
}

func TestEntryIntoFocusedNodeIsDirect(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	c := Resolve(g, allVisible(g), 0)

	assert.Equal(t, EdgeDirect, c.Edges[0])
	assert.Equal(t, EdgeDirect, c.Edges[1])
	assert.Equal(t, EdgeScoped, c.Edges[2])
}

func TestRelatedIndexesMakeEdgeDirect(t *testing.T) {
	d := fourNodeGraph(createComponentNode)
	d.Dependencies[3].RelatedIndexes = []int{0}
	g := New(d)
	c := Resolve(g, allVisible(g), 0)

	assert.Equal(t, EdgeDirect, c.Edges[3])
	// Node 3 is only reached through a related index of a dependency that
	// does not touch node 0 as source or target.
	assert.Equal(t, NodeScoped, c.Nodes[3])
}

func TestResolveExcludesInvisible(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	c := Resolve(g, NewIndexSet(0, 1), NoFocus)

	assert.Equal(t, []NodeClass{NodeScoped, NodeScoped, NodeExcluded, NodeExcluded}, c.Nodes)
	assert.Equal(t, []EdgeClass{EdgeScoped, EdgeScoped, EdgeExcluded, EdgeExcluded}, c.Edges)
}

func TestFocusOutsideVisibleSetIsIgnored(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	c := Resolve(g, NewIndexSet(0, 1), 3)

	assert.Equal(t, []NodeClass{NodeScoped, NodeScoped, NodeExcluded, NodeExcluded}, c.Nodes)
	assert.NotContains(t, c.Edges, EdgeDirect)
}

func TestDirectNodeMustBeVisible(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	c := Resolve(g, NewIndexSet(0, 1, 2), 1)

	assert.Equal(t, NodeDirect, c.Nodes[2])
	assert.Equal(t, NodeExcluded, c.Nodes[3])
	assert.Equal(t, EdgeExcluded, c.Edges[3])
}

func TestClassificationsAreExclusiveAndExhaustive(t *testing.T) {
	g := New(fourNodeGraph(createComponentNode))
	visibleSets := []IndexSet{allVisible(g), NewIndexSet(0, 1), NewIndexSet(), NewIndexSet(1, 3)}
	for _, visible := range visibleSets {
		for focus := NoFocus; focus < g.NodeCount(); focus++ {
			c := Resolve(g, visible, focus)
			assert.Len(t, c.Nodes, g.NodeCount())
			assert.Len(t, c.Edges, g.DependencyCount())
			selected := 0
			for _, nc := range c.Nodes {
				assert.Contains(t, []NodeClass{NodeExcluded, NodeSelected, NodeDirect, NodeScoped}, nc)
				if nc == NodeSelected {
					selected++
				}
			}
			assert.LessOrEqual(t, selected, 1)
			for _, ec := range c.Edges {
				assert.Contains(t, []EdgeClass{EdgeExcluded, EdgeDirect, EdgeScoped}, ec)
			}
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	g := New(fourNodeGraph(createSubComponentNode))
	visible := NewIndexSet(0, 1, 2)
	assert.Equal(t, Resolve(g, visible, 1), Resolve(g, visible, 1))
	assert.Equal(t, Resolve(g, visible, NoFocus), Resolve(g, visible, NoFocus))
}

func TestResolveEmptyGraph(t *testing.T) {
	g := New(catalog.Dependencies{})
	c := Resolve(g, allVisible(g), NoFocus)
	assert.Empty(t, c.Nodes)
	assert.Empty(t, c.Edges)
}
