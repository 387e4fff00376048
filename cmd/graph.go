package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/moneysupermarket/component-catalog/internal/depgraph"
	"github.com/moneysupermarket/component-catalog/internal/diagrams"
	"github.com/moneysupermarket/component-catalog/internal/web"
)

var (
	graphPlatforms []string
	graphDetailed  bool
	graphSelect    int
	graphFormat    string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the classified dependency graph",
	Long: `Fetches the dependency graph from the catalog service and prints the nodes
and dependencies that the graph view would draw, with their classes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		newLogger(cfg)

		client, err := newCatalogClient(cfg)
		if err != nil {
			return fmt.Errorf("creating catalog client: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		data, err := web.LoadGraphData(ctx, client)
		if err != nil {
			return fmt.Errorf("fetching dependencies: %w", err)
		}

		view := depgraph.NewView(data, selectionMode(cfg))
		view.SetDetailed(graphDetailed)
		view.SetPlatforms(graphPlatforms...)
		if graphSelect >= 0 && !view.Click(graphSelect) {
			fmt.Fprintf(os.Stderr, "Warning: node %d is not drawn, nothing selected\n", graphSelect)
		}

		rendered := depgraph.Render(view.Snapshot())
		switch graphFormat {
		case "text":
			printGraph(cmd.OutOrStdout(), rendered)
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), diagrams.DependencyGraph(rendered))
		default:
			return fmt.Errorf("unknown format %q: must be text or mermaid", graphFormat)
		}
		return nil
	},
}

var (
	selectedStyle = color.New(color.FgGreen, color.Bold)
	directStyle   = color.New(color.FgCyan)
	scopedStyle   = color.New(color.Faint)
	headingStyle  = color.New(color.Bold, color.Underline)
)

// printGraph writes a rendering as two plain lists, coloured by class.
func printGraph(w io.Writer, r depgraph.Rendered) {
	componentOf := make(map[int]string, len(r.Nodes))

	headingStyle.Fprintf(w, "Nodes (%d)", len(r.Nodes))
	fmt.Fprintln(w)
	for _, n := range r.Nodes {
		componentOf[n.Index] = n.ComponentID
		label := n.ComponentID
		if n.SpanName != "" {
			label += " " + n.SpanName
		}
		style := scopedStyle
		switch n.Relation {
		case depgraph.NodeSelected:
			style = selectedStyle
		case depgraph.NodeDirect:
			style = directStyle
		}
		style.Fprintf(w, "  [%d] %-40s %s", n.Index, label, n.Relation)
		fmt.Fprintln(w)
	}

	headingStyle.Fprintf(w, "Dependencies (%d)", len(r.Edges))
	fmt.Fprintln(w)
	for _, e := range r.Edges {
		style := scopedStyle
		if e.Class == depgraph.ClassDirectDependency {
			style = directStyle
		}
		var flags []string
		if e.Manual {
			flags = append(flags, "manual")
		}
		if e.SampleSize > 0 {
			flags = append(flags, fmt.Sprintf("%d samples", e.SampleSize))
		}
		style.Fprintf(w, "  [%d] %s -> %s  %s", e.Index, componentOf[e.Source], componentOf[e.Target], e.Class)
		if len(flags) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(flags, ", "))
		}
		fmt.Fprintln(w)
	}
}

func init() {
	graphCmd.Flags().StringSliceVar(&graphPlatforms, "platform", nil, "only show these platforms (repeatable)")
	graphCmd.Flags().BoolVar(&graphDetailed, "detailed", false, "use the sub-component graph")
	graphCmd.Flags().IntVar(&graphSelect, "select", -1, "select this node index")
	graphCmd.Flags().StringVar(&graphFormat, "format", "text", "output format: text or mermaid")
	rootCmd.AddCommand(graphCmd)
}
