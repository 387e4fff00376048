// Package diagrams exports dependency graph renderings as mermaid source.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/moneysupermarket/component-catalog/internal/depgraph"
)

// DependencyGraph generates a mermaid graph LR diagram from a rendering.
// Nodes and dependencies keep the classes they carry in the SVG view.
func DependencyGraph(r depgraph.Rendered) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	for _, n := range r.Nodes {
		label := escapeMermaid(n.ComponentID)
		if n.SpanName != "" {
			label += "<br/>" + escapeMermaid(n.SpanName)
		}
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeID(n.Index), label))
	}

	var direct []string
	for i, e := range r.Edges {
		arrow := "-->"
		if e.Manual {
			arrow = "-.->"
		}
		b.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(e.Source), arrow, nodeID(e.Target)))
		if e.Class == depgraph.ClassDirectDependency {
			direct = append(direct, fmt.Sprint(i))
		}
	}

	b.WriteString("    classDef selectedNode fill:#0969da,color:#fff\n")
	for _, n := range r.Nodes {
		if n.Class == depgraph.ClassSelectedNode {
			b.WriteString(fmt.Sprintf("    class %s selectedNode\n", nodeID(n.Index)))
		}
	}
	if len(direct) > 0 {
		b.WriteString(fmt.Sprintf("    linkStyle %s stroke:#0969da,stroke-width:3px\n", strings.Join(direct, ",")))
	}

	return b.String()
}

func nodeID(i int) string { return fmt.Sprintf("n%d", i) }

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
