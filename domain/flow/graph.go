// Package flow turns selected gene and lipid records into the deduplicated,
// weighted node/edge graph a Sankey renderer consumes.
package flow

import (
	"math"
	"sort"

	"lipidflow/domain/abundance"
)

// Edge is an aggregated, label-addressed flow between two tiers.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Node is one distinct label with its display color.
type Node struct {
	Label string        `json:"label"`
	Color ColorCategory `json:"color"`
	RGBA  string        `json:"rgba"`
}

// Link references nodes by index, the form chart libraries want.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// Graph is the complete renderable flow graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Links []Link `json:"links"`
}

type edgeKey struct {
	source, target string
}

// Build converts selected lipid and gene records into the three-tier flow
// graph: lipid class → direction → gene. Each lipid contributes weight 1 from
// its class to its direction; each gene contributes |log2fc| from its
// direction to its identifier. Parallel edges are summed, aggregated edges
// are ordered lexicographically by (source, target), and node indices follow
// first appearance in that order, so identical input yields identical output.
func Build(lipids, genes []abundance.Record) *Graph {
	weights := make(map[edgeKey]float64)
	for _, r := range lipids {
		addEdge(weights, r.Class, r.Direction.FlowLabel(), 1)
	}
	for _, r := range genes {
		addEdge(weights, r.Direction.FlowLabel(), r.ID, math.Abs(r.Log2FC))
	}

	keys := make([]edgeKey, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].source != keys[j].source {
			return keys[i].source < keys[j].source
		}
		return keys[i].target < keys[j].target
	})

	g := &Graph{
		Edges: make([]Edge, 0, len(keys)),
		Links: make([]Link, 0, len(keys)),
	}
	index := make(map[string]int)
	for _, k := range keys {
		g.Edges = append(g.Edges, Edge{Source: k.source, Target: k.target, Value: weights[k]})
		g.Links = append(g.Links, Link{
			Source: g.nodeIndex(index, k.source),
			Target: g.nodeIndex(index, k.target),
			Value:  weights[k],
		})
	}
	return g
}

// addEdge accumulates weight for a (source, target) pair. Self-edges are an
// invariant violation and are dropped.
func addEdge(weights map[edgeKey]float64, source, target string, value float64) {
	if source == target {
		return
	}
	weights[edgeKey{source, target}] += value
}

// nodeIndex returns the node's index, appending a new colored node on first
// appearance.
func (g *Graph) nodeIndex(index map[string]int, label string) int {
	if i, ok := index[label]; ok {
		return i
	}
	i := len(g.Nodes)
	index[label] = i
	category := ColorFor(label)
	g.Nodes = append(g.Nodes, Node{Label: label, Color: category, RGBA: category.RGBA()})
	return i
}

// Labels returns the node labels in index order.
func (g *Graph) Labels() []string {
	labels := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		labels[i] = n.Label
	}
	return labels
}
