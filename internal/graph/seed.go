package graph

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// Seed is the YAML layout of a co-purchase seed file:
//
//	related:
//	  - product: Apple iPhone 15
//	    with: [Apple MagSafe Charger, Apple Pencil 2]
//	edges:
//	  - {a: HP USB-C Dock, b: Dyson Air Purifier HP07}
type Seed struct {
	Related []SeedGroup `yaml:"related"`
	Edges   []Edge      `yaml:"edges"`
}

type SeedGroup struct {
	Product string   `yaml:"product"`
	With    []string `yaml:"with"`
}

// Flatten expands the seed into edges: groups first, then the explicit edges.
func (s Seed) Flatten() []Edge {
	var edges []Edge
	for _, g := range s.Related {
		for _, w := range g.With {
			edges = append(edges, Edge{A: g.Product, B: w})
		}
	}
	return append(edges, s.Edges...)
}

// LoadYAML decodes a YAML seed.
func LoadYAML(r io.Reader) ([]Edge, error) {
	var s Seed
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode co-purchase seed: %w", err)
	}
	edges := s.Flatten()
	for i, e := range edges {
		if strings.TrimSpace(e.A) == "" || strings.TrimSpace(e.B) == "" {
			return nil, fmt.Errorf("co-purchase seed edge %d: both products are required", i)
		}
	}
	return edges, nil
}

// DefaultEdges returns the relationships shipped with the binary.
func DefaultEdges() ([]Edge, error) {
	return LoadYAML(bytes.NewReader(defaultSeed))
}

// LoadPipe reads "product1|product2" lines. Blank lines and lines starting
// with '#' are skipped, as are lines missing either side.
func LoadPipe(r io.Reader) ([]Edge, error) {
	var edges []Edge
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		a, b, ok := strings.Cut(line, "|")
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !ok || a == "" || b == "" {
			continue
		}
		edges = append(edges, Edge{A: a, B: b})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read co-purchase pairs: %w", err)
	}
	return edges, nil
}
