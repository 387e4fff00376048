package depgraph

// Position places a node on the layered layout grid.
type Position struct {
	Column int
	Row    int
}

// Layout assigns grid positions to the visible nodes of g. A node's column is
// its hop distance from the nearest entry point over drawn dependencies;
// entry points are nodes entered from outside the graph and nodes with no
// drawn incoming dependency. Rows follow node order within a column. Nodes
// only reachable through a cycle start new layers from column zero.
func Layout(g *Graph, c Classification) map[int]Position {
	incoming := make(map[int]int)
	outgoing := make(map[int][]int)
	entries := make(IndexSet)
	for di, d := range g.Dependencies() {
		if c.Edges[di] == EdgeExcluded {
			continue
		}
		if !d.HasSource() {
			entries.Add(d.TargetIndex)
			continue
		}
		src := *d.SourceIndex
		if src == d.TargetIndex {
			continue
		}
		outgoing[src] = append(outgoing[src], d.TargetIndex)
		incoming[d.TargetIndex]++
	}

	columns := make(map[int]int)
	var queue []int
	seed := func(i int) {
		if _, done := columns[i]; done {
			return
		}
		columns[i] = 0
		queue = append(queue, i)
	}
	drain := func() {
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for _, t := range outgoing[n] {
				if _, done := columns[t]; done {
					continue
				}
				columns[t] = columns[n] + 1
				queue = append(queue, t)
			}
		}
	}

	for i := 0; i < g.NodeCount(); i++ {
		if c.Visible(i) && (entries.Has(i) || incoming[i] == 0) {
			seed(i)
		}
	}
	drain()
	for i := 0; i < g.NodeCount(); i++ {
		if c.Visible(i) {
			seed(i)
			drain()
		}
	}

	positions := make(map[int]Position, len(columns))
	rows := make(map[int]int)
	for i := 0; i < g.NodeCount(); i++ {
		col, ok := columns[i]
		if !ok {
			continue
		}
		positions[i] = Position{Column: col, Row: rows[col]}
		rows[col]++
	}
	return positions
}
