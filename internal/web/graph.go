package web

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moneysupermarket/component-catalog/internal/depgraph"
)

const (
	sessionPlatformsKey = "graph.platforms"
	sessionDetailedKey  = "graph.detailed"
)

// graphPrefs are the visitor's choices for the dependency graph view.
type graphPrefs struct {
	Platforms []string
	Detailed  bool
	Selected  int
}

// prefsFromQuery reads the graph choices carried by a request. explicit
// reports whether the query made a filter choice at all; the graph form
// always submits a hidden detailed=false ahead of the checkbox so an
// all-unchecked form still counts.
func prefsFromQuery(q url.Values) (prefs graphPrefs, explicit bool) {
	prefs.Selected = depgraph.NoFocus

	if vals := q["detailed"]; len(vals) > 0 {
		explicit = true
		prefs.Detailed = vals[len(vals)-1] == "true"
	}
	if q.Has("platform") {
		explicit = true
		for _, p := range q["platform"] {
			if p = strings.TrimSpace(p); p != "" {
				prefs.Platforms = append(prefs.Platforms, p)
			}
		}
	}
	if s := q.Get("selected"); s != "" {
		if i, err := strconv.Atoi(s); err == nil && i >= 0 {
			prefs.Selected = i
		}
	}
	return prefs, explicit
}

// query encodes prefs back into graph page parameters, selecting node
// selected (NoFocus for none).
func (p graphPrefs) query(selected int) url.Values {
	q := url.Values{}
	for _, id := range p.Platforms {
		q.Add("platform", id)
	}
	q.Set("detailed", strconv.FormatBool(p.Detailed))
	if selected != depgraph.NoFocus {
		q.Set("selected", strconv.Itoa(selected))
	}
	return q
}

// buildView replays prefs onto a fresh view over data.
func buildView(data depgraph.Data, selection depgraph.SelectionMode, prefs graphPrefs) *depgraph.View {
	v := depgraph.NewView(data, selection)
	v.SetDetailed(prefs.Detailed)
	v.SetPlatforms(prefs.Platforms...)
	if prefs.Selected != depgraph.NoFocus {
		v.Click(prefs.Selected)
	}
	return v
}

type platformOption struct {
	ID      string
	Checked bool
}

type graphPage struct {
	Graph     graphView
	Platforms []platformOption
	Detailed  bool
	LiveURL   string
}

// graphView is the template model of the SVG fragment.
type graphView struct {
	Mode   depgraph.FocusMode
	Detail depgraph.DetailLevel
	Width  int
	Height int
	Nodes  []nodeView
	Edges  []edgeView
}

type nodeView struct {
	depgraph.RenderedNode
	Href   string
	Width  int
	Height int
	TextX  int
	TextY  int
	Title  string
}

type edgeView struct {
	depgraph.RenderedEdge
	Title string
}

func (wb *Web) handleDependencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prefs, explicit := prefsFromQuery(r.URL.Query())
	if explicit {
		wb.sessions.Put(ctx, sessionPlatformsKey, prefs.Platforms)
		wb.sessions.Put(ctx, sessionDetailedKey, prefs.Detailed)
	} else {
		if platforms, ok := wb.sessions.Get(ctx, sessionPlatformsKey).([]string); ok {
			prefs.Platforms = platforms
		}
		prefs.Detailed = wb.sessions.GetBool(ctx, sessionDetailedKey)
	}

	data, err := LoadGraphData(ctx, wb.source)
	if err != nil {
		wb.fetchFailed(w, r, "dependencies", err)
		return
	}

	view := buildView(data, wb.opts.Selection, prefs)
	snap := view.Snapshot()

	checked := snap.Filter
	options := make([]platformOption, 0, len(view.Platforms()))
	for _, id := range view.Platforms() {
		options = append(options, platformOption{ID: id, Checked: checked.Has(id)})
	}

	page := graphPage{
		Graph:     wb.graphModel(depgraph.Render(snap), prefs),
		Platforms: options,
		Detailed:  snap.Detail == depgraph.Detailed,
		LiveURL:   "/ws/dependencies?" + prefs.query(depgraph.NoFocus).Encode(),
	}
	wb.render(w, r, http.StatusOK, "dependencies", "Component Catalog - Dependencies", page)
}

// graphModel turns a rendering into the SVG template model. Node links
// carry prefs so that following one keeps the filter.
func (wb *Web) graphModel(rendered depgraph.Rendered, prefs graphPrefs) graphView {
	gv := graphView{
		Mode:   rendered.Mode,
		Detail: rendered.Detail,
		Width:  rendered.Width,
		Height: rendered.Height,
		Nodes:  make([]nodeView, 0, len(rendered.Nodes)),
		Edges:  make([]edgeView, 0, len(rendered.Edges)),
	}

	componentOf := make(map[int]string, len(rendered.Nodes))
	for _, n := range rendered.Nodes {
		componentOf[n.Index] = n.ComponentID

		target := n.Index
		if rendered.Mode == depgraph.Selected && rendered.Focus == n.Index && wb.opts.Selection == depgraph.ToggleOnReclick {
			target = depgraph.NoFocus
		}
		textY := n.Y + depgraph.NodeHeight/2 + 5
		if n.SpanName != "" {
			textY = n.Y + 16
		}
		gv.Nodes = append(gv.Nodes, nodeView{
			RenderedNode: n,
			Href:         "/all-components/dependencies?" + prefs.query(target).Encode(),
			Width:        depgraph.NodeWidth,
			Height:       depgraph.NodeHeight,
			TextX:        n.X + 10,
			TextY:        textY,
			Title:        nodeTitle(n),
		})
	}

	for _, e := range rendered.Edges {
		title := fmt.Sprintf("%s -> %s", componentOf[e.Source], componentOf[e.Target])
		if e.Manual {
			title += " (manual)"
		} else if e.SampleSize > 0 {
			p50 := time.Duration(e.Duration.P50) * time.Microsecond
			title += fmt.Sprintf(" (%d samples, p50 %s)", e.SampleSize, p50)
		}
		gv.Edges = append(gv.Edges, edgeView{RenderedEdge: e, Title: title})
	}
	return gv
}

func nodeTitle(n depgraph.RenderedNode) string {
	var b strings.Builder
	b.WriteString(n.ComponentID)
	if n.SpanName != "" {
		b.WriteString(": ")
		b.WriteString(n.SpanName)
	}
	for _, t := range n.Tags {
		fmt.Fprintf(&b, "\n%s=%s", t.Key, t.Value)
	}
	return b.String()
}

// renderGraph executes the SVG fragment alone, for live updates.
func (wb *Web) renderGraph(gv graphView) (string, error) {
	var buf bytes.Buffer
	if err := wb.templates.ExecuteTemplate(&buf, "graph", gv); err != nil {
		return "", fmt.Errorf("rendering graph: %w", err)
	}
	return buf.String(), nil
}
