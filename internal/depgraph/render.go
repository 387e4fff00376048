package depgraph

import (
	"fmt"
	"maps"
	"slices"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
)

// IDPrefix prefixes the element ids of rendered nodes and dependencies.
const IDPrefix = "component-dependency-graph"

// CSS classes carried by rendered elements.
const (
	ClassSelectedNode     = "selected-node"
	ClassScopedNode       = "scoped-node"
	ClassDirectDependency = "direct-dependency"
	ClassScopedDependency = "scoped-dependency"
)

// Geometry of the rendered SVG, in pixels.
const (
	NodeWidth    = 220
	NodeHeight   = 40
	columnGap    = 80
	rowGap       = 24
	graphPadding = 16
)

// RenderedNode is a node as drawn.
type RenderedNode struct {
	Index       int
	ID          string
	Class       string
	Relation    NodeClass
	ComponentID string
	SpanName    string
	Tags        []Tag
	X, Y        int
}

// Tag is one key/value pair of a span node.
type Tag struct {
	Key   string
	Value string
}

// RenderedEdge is a dependency as drawn.
type RenderedEdge struct {
	Index          int
	ID             string
	Class          string
	Source, Target int
	X1, Y1, X2, Y2 int
	Manual         bool
	SampleSize     int
	StartTimestamp string
	EndTimestamp   string
	Duration       catalog.DependencyDuration
}

// Rendered is the deterministic projection of a snapshot into drawable
// elements. Excluded nodes and dependencies, and dependencies entering the
// graph from outside, produce no element.
type Rendered struct {
	Mode      FocusMode
	Detail    DetailLevel
	Focus     int
	Platforms []string
	Nodes     []RenderedNode
	Edges     []RenderedEdge
	Width     int
	Height    int
}

// NodeID returns the element id of node i.
func NodeID(i int) string { return fmt.Sprintf("%s-node-%d", IDPrefix, i) }

// DependencyID returns the element id of dependency i.
func DependencyID(i int) string { return fmt.Sprintf("%s-dependency-%d", IDPrefix, i) }

// NodeCSSClass maps a node class to the class its element carries. Direct
// nodes are drawn like scoped ones; only dependencies show directness.
func NodeCSSClass(c NodeClass) string {
	if c == NodeSelected {
		return ClassSelectedNode
	}
	return ClassScopedNode
}

// EdgeCSSClass maps an edge class to the class its element carries.
func EdgeCSSClass(c EdgeClass) string {
	if c == EdgeDirect {
		return ClassDirectDependency
	}
	return ClassScopedDependency
}

// Render projects s into drawable elements.
func Render(s Snapshot) Rendered {
	g, c := s.Graph, s.Classification
	out := Rendered{
		Mode:      s.Mode,
		Detail:    s.Detail,
		Focus:     s.Focus,
		Platforms: s.Filter.IDs(),
		Nodes:     []RenderedNode{},
		Edges:     []RenderedEdge{},
	}

	positions := Layout(g, c)
	maxCol, maxRow := -1, -1
	for i := 0; i < g.NodeCount(); i++ {
		if !c.Visible(i) {
			continue
		}
		p := positions[i]
		maxCol, maxRow = max(maxCol, p.Column), max(maxRow, p.Row)
		n := g.Node(i)
		out.Nodes = append(out.Nodes, RenderedNode{
			Index:       i,
			ID:          NodeID(i),
			Class:       NodeCSSClass(c.Nodes[i]),
			Relation:    c.Nodes[i],
			ComponentID: n.ComponentID,
			SpanName:    n.SpanName,
			Tags:        sortedTags(n.Tags),
			X:           graphPadding + p.Column*(NodeWidth+columnGap),
			Y:           graphPadding + p.Row*(NodeHeight+rowGap),
		})
	}

	for di, d := range g.Dependencies() {
		if c.Edges[di] == EdgeExcluded || !d.HasSource() {
			continue
		}
		src, dst := positions[*d.SourceIndex], positions[d.TargetIndex]
		out.Edges = append(out.Edges, RenderedEdge{
			Index:          di,
			ID:             DependencyID(di),
			Class:          EdgeCSSClass(c.Edges[di]),
			Source:         *d.SourceIndex,
			Target:         d.TargetIndex,
			X1:             graphPadding + src.Column*(NodeWidth+columnGap) + NodeWidth,
			Y1:             graphPadding + src.Row*(NodeHeight+rowGap) + NodeHeight/2,
			X2:             graphPadding + dst.Column*(NodeWidth+columnGap),
			Y2:             graphPadding + dst.Row*(NodeHeight+rowGap) + NodeHeight/2,
			Manual:         d.Manual,
			SampleSize:     d.SampleSize,
			StartTimestamp: d.StartTimestamp,
			EndTimestamp:   d.EndTimestamp,
			Duration:       d.Duration,
		})
	}

	if maxCol >= 0 {
		out.Width = 2*graphPadding + (maxCol+1)*NodeWidth + maxCol*columnGap
		out.Height = 2*graphPadding + (maxRow+1)*NodeHeight + maxRow*rowGap
	}
	return out
}

func sortedTags(tags map[string]string) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, 0, len(tags))
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		out = append(out, Tag{Key: k, Value: tags[k]})
	}
	return out
}
