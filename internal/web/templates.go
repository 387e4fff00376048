package web

import "html/template"

func parseTemplates() (*template.Template, error) {
	t := template.New("web")
	for _, src := range []string{layoutTemplates, allComponentsTemplate, componentTemplate, dependenciesTemplate, graphTemplate, errorTemplate} {
		if _, err := t.Parse(src); err != nil {
			return nil, err
		}
	}
	return t, nil
}

const layoutTemplates = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>{{template "style"}}</style>
</head>
<body>
  <nav class="top-nav">
    <a href="/all-components" class="brand">Component Catalog</a>
    <a href="/all-components">All Components</a>
    <a href="/all-components/dependencies">Dependencies</a>
  </nav>
  {{if .Banner}}<div class="banner banner-{{.BannerVariant}}" role="alert">{{.Banner}}</div>{{end}}
  <main class="content">
{{end}}

{{define "footer"}}
  </main>
  {{if .ServiceURL}}<footer class="footer">Data from <a href="{{.ServiceURL}}">{{.ServiceURL}}</a></footer>{{end}}
</body>
</html>
{{end}}

{{define "tags"}}{{if .}}<ul class="tags">{{range .}}<li class="tag">{{.}}</li>{{end}}</ul>{{end}}{{end}}

{{define "style"}}
body { font-family: system-ui, sans-serif; margin: 0; color: #1f2328; }
.top-nav { display: flex; gap: 1rem; padding: 0.75rem 1.5rem; background: #24292f; }
.top-nav a { color: #fff; text-decoration: none; }
.top-nav .brand { font-weight: 600; }
.content { padding: 1.5rem; }
.banner { padding: 0.75rem 1.5rem; }
.banner-info { background: #ddf4ff; }
.banner-warning { background: #fff8c5; }
.banner-danger { background: #ffebe9; }
.banner-success { background: #dafbe1; }
table.components { border-collapse: collapse; width: 100%; }
table.components th, table.components td { text-align: left; padding: 0.5rem; border-bottom: 1px solid #d0d7de; }
ul.tags { list-style: none; display: flex; flex-wrap: wrap; gap: 0.25rem; margin: 0; padding: 0; }
li.tag { background: #eaeef2; border-radius: 1rem; padding: 0 0.5rem; font-size: 0.85rem; }
.graph-controls { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 1rem; }
.dependency-graph .node rect { fill: #f6f8fa; stroke: #8c959f; }
.dependency-graph .node text { font-size: 12px; fill: #1f2328; }
.dependency-graph .selected-node rect { fill: #0969da; stroke: #0550ae; }
.dependency-graph .selected-node text { fill: #fff; }
.dependency-graph .dependency { stroke: #d0d7de; stroke-width: 1.5; }
.dependency-graph .direct-dependency { stroke: #0969da; stroke-width: 2.5; }
.dependency-graph .manual-dependency { stroke-dasharray: 4 3; }
.footer { padding: 1rem 1.5rem; color: #57606a; font-size: 0.85rem; }
{{end}}
`

const allComponentsTemplate = `
{{define "all-components"}}{{template "header" .}}
<h1>All Components</h1>
<table class="components">
  <thead><tr><th>Name</th><th>Type</th><th>Description</th><th>Tags</th></tr></thead>
  <tbody>
  {{range .Content}}
    <tr class="component" data-component-id="{{.ID}}">
      <td><a href="/components/{{.ID}}">{{if .Name}}{{.Name}}{{else}}{{.ID}}{{end}}</a></td>
      <td>{{.TypeID}}</td>
      <td>{{.Description}}</td>
      <td>{{template "tags" .Tags}}</td>
    </tr>
  {{else}}
    <tr><td colspan="4">No components found.</td></tr>
  {{end}}
  </tbody>
</table>
{{template "footer" .}}{{end}}
`

const componentTemplate = `
{{define "component"}}{{template "header" .}}
{{with .Content}}{{with .Component}}
<h1>{{if .Name}}{{.Name}}{{else}}{{.ID}}{{end}}</h1>
<p class="component-meta"><span class="component-id">{{.ID}}</span>{{if .TypeID}} · <span class="component-type">{{.TypeID}}</span>{{end}}{{if .PlatformID}} · <span class="component-platform">{{.PlatformID}}</span>{{end}}</p>
{{template "tags" .Tags}}
{{end}}
{{if .Description}}<section class="description">{{.Description}}</section>{{end}}
{{with .Component}}
{{if .Teams}}<section class="teams"><h2>Teams</h2><ul>{{range .Teams}}<li>{{.TeamID}}{{if .Type}} ({{.Type}}){{end}}</li>{{end}}</ul></section>{{end}}
{{if .Responsibilities}}<section class="responsibilities"><h2>Responsibilities</h2><ul>{{range .Responsibilities}}<li>{{.Description}}</li>{{end}}</ul></section>{{end}}
{{if .Links}}<section class="links"><h2>Links</h2><ul>{{range .Links}}<li><a href="{{.URL}}">{{if .Description}}{{.Description}}{{else}}{{.URL}}{{end}}</a></li>{{end}}</ul></section>{{end}}
{{with .Repo}}<section class="repo"><h2>Repository</h2><a href="{{.URL}}">{{.URL}}</a></section>{{end}}
{{end}}
{{if .Notes}}<section class="notes"><h2>Notes</h2>{{.Notes}}</section>{{end}}
{{end}}
{{template "footer" .}}{{end}}
`

const dependenciesTemplate = `
{{define "dependencies"}}{{template "header" .}}
<h1>Dependencies</h1>
{{with .Content}}
<form class="graph-controls" method="get" action="/all-components/dependencies">
  <fieldset class="platforms">
    <legend>Platforms</legend>
    {{range .Platforms}}<label><input type="checkbox" name="platform" value="{{.ID}}"{{if .Checked}} checked{{end}}> {{.ID}}</label>
    {{end}}
  </fieldset>
  <input type="hidden" name="detailed" value="false">
  <label><input type="checkbox" id="detailed-dependencies" name="detailed" value="true"{{if .Detailed}} checked{{end}}> Detailed dependencies</label>
  <noscript><button type="submit">Apply</button></noscript>
</form>
<div id="dependency-graph-container">{{template "graph" .Graph}}</div>
<script>
(function () {
  const form = document.querySelector(".graph-controls");
  const container = document.getElementById("dependency-graph-container");
  const scheme = location.protocol === "https:" ? "wss://" : "ws://";
  let ws;
  try { ws = new WebSocket(scheme + location.host + {{.LiveURL}}); } catch (e) { ws = null; }

  const live = () => ws && ws.readyState === WebSocket.OPEN;
  const send = (msg) => { if (live()) { ws.send(JSON.stringify(msg)); return true; } return false; };
  const nodeIndex = (el) => {
    const g = el.closest("[data-node-index]");
    return g ? parseInt(g.dataset.nodeIndex, 10) : null;
  };

  if (ws) {
    ws.onmessage = (ev) => {
      const msg = JSON.parse(ev.data);
      if (msg.type === "state") { container.innerHTML = msg.html; }
    };
  }

  container.addEventListener("click", (ev) => {
    const i = nodeIndex(ev.target);
    if (i !== null && send({type: "click", node: i})) { ev.preventDefault(); }
  });
  const sameNode = (ev) => ev.relatedTarget instanceof Element &&
    ev.target.closest("[data-node-index]") === ev.relatedTarget.closest("[data-node-index]");

  container.addEventListener("mouseover", (ev) => {
    const i = nodeIndex(ev.target);
    if (i !== null && !sameNode(ev)) { send({type: "mouseover", node: i}); }
  });
  container.addEventListener("mouseout", (ev) => {
    if (nodeIndex(ev.target) !== null && !sameNode(ev)) { send({type: "mouseout"}); }
  });
  form.addEventListener("change", (ev) => {
    const el = ev.target;
    if (el.id === "detailed-dependencies") {
      if (!send({type: "detail", checked: el.checked})) { form.submit(); }
    } else if (el.name === "platform") {
      if (!send({type: "platform", platform: el.value, checked: el.checked})) { form.submit(); }
    }
  });
})();
</script>
{{end}}
{{template "footer" .}}{{end}}
`

const graphTemplate = `
{{define "graph"}}<svg id="component-dependency-graph" class="dependency-graph" data-mode="{{.Mode}}" data-detail="{{.Detail}}" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <g class="dependencies">
  {{range .Edges}}<line id="{{.ID}}" class="dependency {{.Class}}{{if .Manual}} manual-dependency{{end}}" data-source="{{.Source}}" data-target="{{.Target}}" x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}"><title>{{.Title}}</title></line>
  {{end}}</g>
  <g class="nodes">
  {{range .Nodes}}<a href="{{.Href}}"><g id="{{.ID}}" class="node {{.Class}}" data-node-index="{{.Index}}" data-relation="{{.Relation}}" data-component-id="{{.ComponentID}}">
    <title>{{.Title}}</title>
    <rect x="{{.X}}" y="{{.Y}}" width="{{.Width}}" height="{{.Height}}" rx="6"></rect>
    <text x="{{.TextX}}" y="{{.TextY}}">{{.ComponentID}}</text>{{if .SpanName}}
    <text class="span-name" x="{{.TextX}}" y="{{.TextY}}" dy="16">{{.SpanName}}</text>{{end}}
  </g></a>
  {{end}}</g>
</svg>{{end}}
`

const errorTemplate = `
{{define "error"}}{{template "header" .}}
{{with .Content}}<section class="error"><h1>{{.Status}}</h1><p>{{.Message}}</p><p><a href="/all-components">Back to all components</a></p></section>{{end}}
{{template "footer" .}}{{end}}
`
