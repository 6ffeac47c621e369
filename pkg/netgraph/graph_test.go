package netgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_IsConnectedTrueAfterAllEdges(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	assert.True(t, g.IsConnected())
}

func TestGraph_IsConnectedFalseWhenEdgeDropped(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")
	g.AddEdge("a", "b")
	assert.False(t, g.IsConnected())

	components := g.Components()
	assert.Len(t, components, 2)
}

func TestGraph_EmptyGraphIsConnected(t *testing.T) {
	g := NewGraph()
	assert.True(t, g.IsConnected())
}

func TestGraph_ReachableIncludesStart(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	reachable := g.Reachable("a")
	assert.True(t, reachable["a"])
	assert.True(t, reachable["b"])
}
