// Package netgraph builds the key-point connectivity network consumed by
// the corridor generator: a minimum spanning tree over weighted key-point
// pairs (Kruskal's algorithm with union-find), plus BFS reachability
// checks used to validate the resulting network.
package netgraph
