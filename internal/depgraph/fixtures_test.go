package depgraph

import (
	"fmt"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
)

func createDependency(source *int, target int) catalog.Dependency {
	return catalog.Dependency{
		SourceIndex:    source,
		TargetIndex:    target,
		RelatedIndexes: []int{},
		SampleSize:     1,
		StartTimestamp: "2021-01-01T00:00:00.000Z",
		EndTimestamp:   "2021-01-01T00:00:01.000Z",
		Duration: catalog.DependencyDuration{
			Min: 1_000_000, Max: 1_000_000, P50: 1_000_000,
			P90: 1_000_000, P99: 1_000_000, P99Point9: 1_000_000,
		},
	}
}

func createComponentNode(n int) catalog.Node {
	return catalog.Node{ComponentID: fmt.Sprintf("test-component-id-%d", n)}
}

func createSubComponentNode(n int) catalog.Node {
	return catalog.Node{
		ComponentID: fmt.Sprintf("test-component-id-%d", n),
		SpanName:    fmt.Sprintf("test-span-name-%d", n),
		Tags:        map[string]string{},
	}
}

func createComponent(n, platform int) catalog.Component {
	return catalog.Component{
		ID:         fmt.Sprintf("test-component-id-%d", n),
		Name:       fmt.Sprintf("Test Component Name %d", n),
		PlatformID: fmt.Sprintf("test-platform-id-%d", platform),
	}
}

func src(i int) *int { return catalog.Index(i) }

// fourNodeGraph is the graph used across the view scenarios: an entry into
// node 0, then 0->1, 1->2 and 1->3.
func fourNodeGraph(node func(int) catalog.Node) catalog.Dependencies {
	return catalog.Dependencies{
		Nodes: []catalog.Node{node(1), node(2), node(3), node(4)},
		Dependencies: []catalog.Dependency{
			createDependency(nil, 0),
			createDependency(src(0), 1),
			createDependency(src(1), 2),
			createDependency(src(1), 3),
		},
	}
}

func fourComponents() []catalog.Component {
	return []catalog.Component{
		createComponent(1, 1),
		createComponent(2, 2),
		createComponent(3, 3),
		createComponent(4, 4),
		createComponent(5, 5),
	}
}

func scenarioData() Data {
	return Data{
		ComponentDependencies:    fourNodeGraph(createComponentNode),
		SubComponentDependencies: fourNodeGraph(createSubComponentNode),
		Components:               fourComponents(),
	}
}
