package depgraph

// NodeClass is the scoping state of a node.
type NodeClass string

const (
	NodeExcluded NodeClass = "excluded"
	NodeSelected NodeClass = "selected"
	NodeDirect   NodeClass = "direct"
	NodeScoped   NodeClass = "scoped"
)

// EdgeClass is the scoping state of a dependency.
type EdgeClass string

const (
	EdgeExcluded EdgeClass = "excluded"
	EdgeDirect   EdgeClass = "direct"
	EdgeScoped   EdgeClass = "scoped"
)

// NoFocus is the focus index used when no node is focused.
const NoFocus = -1

// Classification is the outcome of Resolve, indexed like the graph's nodes
// and dependencies.
type Classification struct {
	Nodes []NodeClass
	Edges []EdgeClass
}

// Visible reports whether node i is rendered.
func (c Classification) Visible(i int) bool { return c.Nodes[i] != NodeExcluded }

// Resolve classifies every node and dependency of g against the visible set
// and the focused node (NoFocus for none). It is a pure function of its
// inputs. A focus outside the visible set is ignored.
func Resolve(g *Graph, visible IndexSet, focus int) Classification {
	if focus != NoFocus && !visible.Has(focus) {
		focus = NoFocus
	}

	c := Classification{
		Nodes: make([]NodeClass, g.NodeCount()),
		Edges: make([]EdgeClass, g.DependencyCount()),
	}

	var direct IndexSet
	if focus != NoFocus {
		direct = g.NeighborsOf(focus)
	}
	for i := range c.Nodes {
		switch {
		case !visible.Has(i):
			c.Nodes[i] = NodeExcluded
		case i == focus:
			c.Nodes[i] = NodeSelected
		case direct.Has(i):
			c.Nodes[i] = NodeDirect
		default:
			c.Nodes[i] = NodeScoped
		}
	}

	for di, d := range g.Dependencies() {
		rendered := visible.Has(d.TargetIndex) && (!d.HasSource() || visible.Has(*d.SourceIndex))
		switch {
		case !rendered:
			c.Edges[di] = EdgeExcluded
		case focus != NoFocus && d.Touches(focus):
			c.Edges[di] = EdgeDirect
		default:
			c.Edges[di] = EdgeScoped
		}
	}
	return c
}
