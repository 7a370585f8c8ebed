package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeIsUndirected(t *testing.T) {
	g := NewCoPurchaseGraph()
	g.AddEdge("Laptop", "Charger")
	g.AddEdge("Laptop", "Mouse")

	assert.Equal(t, []string{"charger", "mouse"}, g.neighbors("laptop"))
	assert.Equal(t, []string{"laptop"}, g.neighbors("CHARGER"))
	assert.Equal(t, 3, g.Len())
}

func TestDuplicateEdgesAreKeptButDeduplicatedOnQuery(t *testing.T) {
	g := NewCoPurchaseGraph()
	g.AddEdge("Phone", "Case")
	g.AddEdge("phone", "CASE")
	g.AddEdge("Phone", "Charger")

	assert.Equal(t, []string{"case", "case", "charger"}, g.neighbors("phone"))
	assert.Equal(t, []string{"case", "charger"}, g.Recommendations("Phone", 5))
}

func TestRecommendationsExcludeSelfAndRespectLimit(t *testing.T) {
	g := NewCoPurchaseGraph()
	g.AddEdge("hub", "hub")
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		g.AddEdge("hub", n)
	}

	for _, limit := range []int{-1, 0, 1, 3, 5, 7, 20} {
		got := g.Recommendations("HUB", limit)
		assert.NotContains(t, got, "hub")
		assert.LessOrEqual(t, len(got), max(limit, 0))
	}
	assert.Equal(t, []string{"a", "b", "c"}, g.Recommendations("hub", 3))
	assert.Len(t, g.Recommendations("hub", 20), 7)
}

func TestRecommendationsForUnknownProduct(t *testing.T) {
	g := NewCoPurchaseGraph()
	g.AddEdge("a", "b")

	assert.Empty(t, g.Recommendations("zzz", DefaultMaxRecommendations))
	assert.Empty(t, g.neighbors("zzz"))
}

func TestLoadPipe(t *testing.T) {
	input := `# co-purchase pairs
Laptop|Mouse

 Laptop | Charger
broken line
|missing
`
	edges, err := LoadPipe(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Edge{{A: "Laptop", B: "Mouse"}, {A: "Laptop", B: "Charger"}}, edges)
}

func TestLoadYAML(t *testing.T) {
	input := `
related:
  - product: Phone
    with: [Case, Charger]
edges:
  - {a: Case, b: Screen Protector}
`
	edges, err := LoadYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Edge{
		{A: "Phone", B: "Case"},
		{A: "Phone", B: "Charger"},
		{A: "Case", B: "Screen Protector"},
	}, edges)

	_, err = LoadYAML(strings.NewReader("edges:\n  - {a: Phone}\n"))
	assert.Error(t, err)

	edges, err = LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDefaultEdges(t *testing.T) {
	edges, err := DefaultEdges()
	require.NoError(t, err)
	require.NotEmpty(t, edges)

	g := NewCoPurchaseGraph()
	g.AddEdges(edges)

	recs := g.Recommendations("Apple iPhone 15", DefaultMaxRecommendations)
	assert.Equal(t, []string{
		"apple macbook air m3",
		"apple ipad pro 12.9",
		"apple watch series 9",
		"apple airtag 4-pack",
		"apple airpods pro 2",
	}, recs)
}
