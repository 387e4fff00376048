package depgraph

import (
	"github.com/moneysupermarket/component-catalog/internal/catalog"
)

// FocusMode is the interaction state of the view.
type FocusMode string

const (
	Idle     FocusMode = "idle"
	Selected FocusMode = "selected"
	Hovered  FocusMode = "hovered"
)

// DetailLevel picks the graph a view shows.
type DetailLevel string

const (
	Coarse   DetailLevel = "coarse"
	Detailed DetailLevel = "detailed"
)

// SelectionMode decides what clicking the already selected node does.
type SelectionMode int

const (
	// ToggleOnReclick returns the view to Idle.
	ToggleOnReclick SelectionMode = iota
	// KeepOnReclick leaves the selection in place.
	KeepOnReclick
)

// Data is everything a view renders from: both graphs and the component
// catalog used for platform lookups.
type Data struct {
	ComponentDependencies    catalog.Dependencies
	SubComponentDependencies catalog.Dependencies
	Components               []catalog.Component
}

// Snapshot is the view's state after the latest transition.
type Snapshot struct {
	Mode           FocusMode
	Focus          int
	Detail         DetailLevel
	Filter         PlatformFilter
	Graph          *Graph
	Classification Classification
}

// View owns the focus and detail state of one dependency graph view. All
// mutations go through the transition methods, each of which recomputes the
// snapshot. A View is not safe for concurrent use: events are applied one at
// a time.
type View struct {
	selection SelectionMode

	coarse    *Graph
	detailed  *Graph
	platforms map[string]string
	platList  []string

	mode   FocusMode
	focus  int
	detail DetailLevel
	filter PlatformFilter

	snapshot Snapshot
}

// NewView returns an Idle, coarse view over data.
func NewView(data Data, selection SelectionMode) *View {
	v := &View{selection: selection, filter: NewPlatformFilter()}
	v.SetData(data)
	return v
}

// SetData replaces the underlying graphs and resets focus and detail level.
// The platform filter is kept.
func (v *View) SetData(data Data) {
	v.coarse = New(data.ComponentDependencies)
	v.detailed = New(data.SubComponentDependencies)
	v.platforms = catalog.PlatformIndex(data.Components)
	v.platList = catalog.Platforms(data.Components)
	v.mode, v.focus, v.detail = Idle, NoFocus, Coarse
	v.recompute()
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot { return v.snapshot }

// Platforms returns the distinct platforms offered by the filter.
func (v *View) Platforms() []string { return v.platList }

// Graph returns the graph for the current detail level.
func (v *View) Graph() *Graph {
	if v.detail == Detailed {
		return v.detailed
	}
	return v.coarse
}

// Click selects node i. Clicking the selected node again returns to Idle
// under ToggleOnReclick. Clicks on nodes that are not rendered are ignored.
// It reports whether the state changed.
func (v *View) Click(i int) bool {
	if !v.rendered(i) {
		return false
	}
	if v.mode == Selected && v.focus == i {
		if v.selection == KeepOnReclick {
			return false
		}
		return v.transition(Idle, NoFocus)
	}
	return v.transition(Selected, i)
}

// Hover focuses node i transiently. A selection takes precedence.
func (v *View) Hover(i int) bool {
	if v.mode == Selected || !v.rendered(i) {
		return false
	}
	return v.transition(Hovered, i)
}

// Unhover drops a hover focus. A selection is kept.
func (v *View) Unhover() bool {
	if v.mode != Hovered {
		return false
	}
	return v.transition(Idle, NoFocus)
}

// ClearFocus returns to Idle from any state.
func (v *View) ClearFocus() bool {
	if v.mode == Idle {
		return false
	}
	return v.transition(Idle, NoFocus)
}

// SetDetailed switches between the coarse and the detailed graph. Focus is
// reset to Idle whatever the previous state, since node indexes differ
// between the two graphs.
func (v *View) SetDetailed(detailed bool) {
	v.detail = Coarse
	if detailed {
		v.detail = Detailed
	}
	v.mode, v.focus = Idle, NoFocus
	v.recompute()
}

// SetPlatform checks or unchecks one platform.
func (v *View) SetPlatform(platformID string, checked bool) {
	if platformID == "" {
		return
	}
	if checked {
		v.filter[platformID] = struct{}{}
	} else {
		delete(v.filter, platformID)
	}
	v.recompute()
	v.dropHiddenFocus()
}

// SetPlatforms replaces the checked platforms.
func (v *View) SetPlatforms(platformIDs ...string) {
	v.filter = NewPlatformFilter(platformIDs...)
	v.recompute()
	v.dropHiddenFocus()
}

// dropHiddenFocus returns to Idle when the filter no longer renders the
// focused node.
func (v *View) dropHiddenFocus() {
	if v.mode != Idle && !v.rendered(v.focus) {
		v.transition(Idle, NoFocus)
	}
}

func (v *View) transition(mode FocusMode, focus int) bool {
	if v.mode == mode && v.focus == focus {
		return false
	}
	v.mode, v.focus = mode, focus
	v.recompute()
	return true
}

func (v *View) rendered(i int) bool {
	c := v.snapshot.Classification
	return i >= 0 && i < len(c.Nodes) && c.Visible(i)
}

func (v *View) recompute() {
	g := v.Graph()
	visible := VisibleNodes(g, v.filter, v.platforms)
	filter := NewPlatformFilter(v.filter.IDs()...)
	v.snapshot = Snapshot{
		Mode:           v.mode,
		Focus:          v.focus,
		Detail:         v.detail,
		Filter:         filter,
		Graph:          g,
		Classification: Resolve(g, visible, v.focus),
	}
}
