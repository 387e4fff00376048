package depgraph

import (
	"slices"
)

// PlatformFilter is the set of checked platform ids. The empty filter
// shows everything.
type PlatformFilter map[string]struct{}

// NewPlatformFilter returns a filter with the given platforms checked.
func NewPlatformFilter(platformIDs ...string) PlatformFilter {
	f := make(PlatformFilter, len(platformIDs))
	for _, id := range platformIDs {
		if id != "" {
			f[id] = struct{}{}
		}
	}
	return f
}

// Active reports whether at least one platform is checked.
func (f PlatformFilter) Active() bool { return len(f) > 0 }

// Has reports whether platformID is checked.
func (f PlatformFilter) Has(platformID string) bool {
	_, ok := f[platformID]
	return ok
}

// IDs returns the checked platform ids in sorted order.
func (f PlatformFilter) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// MatchingNodes returns the nodes whose component is on a checked platform,
// or every node when the filter is inactive. platforms maps component ids to
// platform ids; span nodes share their component's id and so inherit its
// platform. Nodes of unknown components only match an inactive filter.
func MatchingNodes(g *Graph, filter PlatformFilter, platforms map[string]string) IndexSet {
	matching := make(IndexSet, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		if !filter.Active() {
			matching.Add(i)
			continue
		}
		platformID, ok := platforms[g.Node(i).ComponentID]
		if ok && filter.Has(platformID) {
			matching.Add(i)
		}
	}
	return matching
}

// VisibleNodes returns the nodes to render for filter: the matching nodes
// plus the nodes one hop away over a sourced dependency touching a matching
// node, so the calls in and out of the filtered components stay visible.
func VisibleNodes(g *Graph, filter PlatformFilter, platforms map[string]string) IndexSet {
	matching := MatchingNodes(g, filter, platforms)
	if !filter.Active() {
		return matching
	}
	visible := make(IndexSet, len(matching))
	for i := range matching {
		visible.Add(i)
		for _, d := range g.EdgesOf(i) {
			if !d.HasSource() {
				continue
			}
			visible.Add(*d.SourceIndex)
			visible.Add(d.TargetIndex)
		}
	}
	return visible
}
