package netgraph

import (
	"math"
	"sort"
)

// Node is a key point in the network (an entrance, a valid ilot centre, or
// a circulation anchor), identified by a stable ID for edge reporting.
type Node struct {
	ID string
	X  float64
	Y  float64
}

// Edge connects two nodes by ID with the Euclidean distance between them.
type Edge struct {
	From   string
	To     string
	Weight float64
}

func dist(a, b Node) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// BuildCompleteGraph returns every unordered pair of nodes as an edge,
// weighted by Euclidean distance.
func BuildCompleteGraph(nodes []Node) []Edge {
	edges := make([]Edge, 0, len(nodes)*(len(nodes)-1)/2)
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, Edge{From: nodes[i].ID, To: nodes[j].ID, Weight: dist(nodes[i], nodes[j])})
		}
	}
	return edges
}

// MST computes a minimum spanning tree over nodes via Kruskal's algorithm
// with union-find, returning |V|-1 edges when nodes is connected (the
// complete graph always is, nodes >= 1). Ties break by input edge order for
// determinism.
func MST(nodes []Node) []Edge {
	if len(nodes) < 2 {
		return nil
	}
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	edges := BuildCompleteGraph(nodes)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight < edges[j].Weight })

	uf := newUnionFind(len(nodes))
	tree := make([]Edge, 0, len(nodes)-1)
	for _, e := range edges {
		if uf.union(index[e.From], index[e.To]) {
			tree = append(tree, e)
			if len(tree) == len(nodes)-1 {
				break
			}
		}
	}
	return tree
}

// RedundantOverlay adds every non-MST edge whose weight is within factor
// times the largest MST edge weight, for callers that want
// require_redundant_paths-style network resilience beyond a bare MST.
func RedundantOverlay(nodes []Node, mst []Edge, factor float64) []Edge {
	if len(mst) == 0 {
		return nil
	}
	maxWeight := 0.0
	inTree := make(map[[2]string]bool, len(mst))
	for _, e := range mst {
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
		inTree[[2]string{e.From, e.To}] = true
		inTree[[2]string{e.To, e.From}] = true
	}
	bound := maxWeight * factor

	var extra []Edge
	for _, e := range BuildCompleteGraph(nodes) {
		if inTree[[2]string{e.From, e.To}] {
			continue
		}
		if e.Weight <= bound {
			extra = append(extra, e)
		}
	}
	return extra
}
