package catalog

import (
	"slices"
)

// Component is a catalog entry as returned by the catalog service.
type Component struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	TypeID           string           `json:"typeId"`
	Tags             []string         `json:"tags,omitempty"`
	Description      string           `json:"description,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Responsibilities []Responsibility `json:"responsibilities,omitempty"`
	Teams            []ComponentTeam  `json:"teams,omitempty"`
	Links            []Link           `json:"links,omitempty"`
	Repo             *Repo            `json:"repo,omitempty"`
	PlatformID       string           `json:"platformId,omitempty"`
}

// Responsibility is one line of what a component is accountable for.
type Responsibility struct {
	Description string `json:"description"`
}

// ComponentTeam references a team owning a component.
type ComponentTeam struct {
	TeamID string `json:"teamId"`
	Type   string `json:"type,omitempty"`
}

// Link is an external link attached to a component.
type Link struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Repo points at the source repository of a component.
type Repo struct {
	URL string `json:"url"`
}

// Node is a vertex of a dependency graph. Component-level graphs only set
// ComponentID; sub-component graphs also carry the span name and its
// identifying tags.
type Node struct {
	ComponentID string            `json:"componentId"`
	SpanName    string            `json:"spanName,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Dependency is an observed call from one node to another. A nil
// SourceIndex marks an entry into TargetIndex from outside the graph.
type Dependency struct {
	SourceIndex    *int               `json:"sourceIndex,omitempty"`
	TargetIndex    int                `json:"targetIndex"`
	RelatedIndexes []int              `json:"relatedIndexes,omitempty"`
	Manual         bool               `json:"manual"`
	SampleSize     int                `json:"sampleSize,omitempty"`
	StartTimestamp string             `json:"startTimestamp,omitempty"`
	EndTimestamp   string             `json:"endTimestamp,omitempty"`
	Duration       DependencyDuration `json:"duration"`
}

// HasSource reports whether the dependency originates inside the graph.
func (d Dependency) HasSource() bool { return d.SourceIndex != nil }

// Touches reports whether i is the source, the target or one of the
// related indexes of the dependency.
func (d Dependency) Touches(i int) bool {
	if d.TargetIndex == i {
		return true
	}
	if d.SourceIndex != nil && *d.SourceIndex == i {
		return true
	}
	return slices.Contains(d.RelatedIndexes, i)
}

// DependencyDuration holds latency statistics, all in microseconds.
type DependencyDuration struct {
	Min       int64 `json:"min"`
	Max       int64 `json:"max"`
	P50       int64 `json:"p50"`
	P90       int64 `json:"p90"`
	P99       int64 `json:"p99"`
	P99Point9 int64 `json:"p99Point9"`
}

// Dependencies is a graph as served by the catalog: nodes plus the edges
// between them, referenced by position.
type Dependencies struct {
	Nodes        []Node       `json:"nodes"`
	Dependencies []Dependency `json:"dependencies"`
}

// Index returns a pointer to i, for building dependencies with a source.
func Index(i int) *int { return &i }

// PlatformIndex maps component ids to their platform ids. Components
// without a platform are left out.
func PlatformIndex(components []Component) map[string]string {
	index := make(map[string]string, len(components))
	for _, c := range components {
		if c.PlatformID != "" {
			index[c.ID] = c.PlatformID
		}
	}
	return index
}

// Platforms returns the sorted distinct platform ids used by components.
func Platforms(components []Component) []string {
	seen := make(map[string]bool)
	var platforms []string
	for _, c := range components {
		if c.PlatformID == "" || seen[c.PlatformID] {
			continue
		}
		seen[c.PlatformID] = true
		platforms = append(platforms, c.PlatformID)
	}
	slices.Sort(platforms)
	return platforms
}
