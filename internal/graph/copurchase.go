// Package graph keeps the "frequently bought together" relationships between
// products.
package graph

import "strings"

// DefaultMaxRecommendations caps Recommendations when callers have no
// preference of their own.
const DefaultMaxRecommendations = 5

// Edge is an undirected co-purchase relationship.
type Edge struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// CoPurchaseGraph maps a lowercased product name to the lowercased names it
// was bought together with. Repeated edges are kept as repeated neighbours.
type CoPurchaseGraph struct {
	adjacency map[string][]string
}

func NewCoPurchaseGraph() *CoPurchaseGraph {
	return &CoPurchaseGraph{adjacency: make(map[string][]string)}
}

// AddEdge links a and b in both directions.
func (g *CoPurchaseGraph) AddEdge(a, b string) {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
}

// AddEdges adds every edge in order.
func (g *CoPurchaseGraph) AddEdges(edges []Edge) {
	for _, e := range edges {
		g.AddEdge(e.A, e.B)
	}
}

// Recommendations returns up to maxResults distinct neighbours of name in the
// order they were linked. The queried name itself is never returned.
func (g *CoPurchaseGraph) Recommendations(name string, maxResults int) []string {
	name = strings.ToLower(name)
	neighbours, ok := g.adjacency[name]
	if !ok || maxResults <= 0 {
		return nil
	}

	out := make([]string, 0, min(maxResults, len(neighbours)))
	seen := make(map[string]struct{}, len(neighbours))
	for _, n := range neighbours {
		if n == name {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
		if len(out) >= maxResults {
			break
		}
	}
	return out
}

// neighbors returns the raw adjacency list of name, duplicates included.
func (g *CoPurchaseGraph) neighbors(name string) []string {
	list := g.adjacency[strings.ToLower(name)]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Len returns the number of products that have at least one edge.
func (g *CoPurchaseGraph) Len() int {
	return len(g.adjacency)
}
