// This file contains thin wrappers around the graph module
// for managing the match dependency graph of a bracket.
package internal

import (
	"iter"

	"github.com/dominikbraun/graph"
)

type GraphNode interface {
	// A unique ID that is used as the node hash
	GraphID() string
}

func getNodeID[T GraphNode](node T) string {
	return node.GraphID()
}

// A DependencyGraph holds the matches of a bracket as its
// nodes. The directed edges between the nodes model the
// advancement paths of the competitors.
//
// The graph is cycle-preventing: adding an edge that would
// close a cycle fails. Brackets mirror their winner/loser
// edges into the graph so that structural validation and
// downstream traversal come for free.
type DependencyGraph[T GraphNode] struct {
	graph.Graph[string, T]
	adjacencyMap map[string]map[string]graph.Edge[string]
}

func NewDependencyGraph[T GraphNode]() *DependencyGraph[T] {
	g := graph.New(getNodeID[T], graph.Directed(), graph.PreventCycles())
	return &DependencyGraph[T]{Graph: g}
}

func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	err := g.Graph.AddEdge(source.GraphID(), target.GraphID())
	return err
}

func (g *DependencyGraph[T]) BreadthSearchIter(start T) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key string, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start.GraphID(), visitor)
	}
	return iterator
}

// Returns the nodes that are on the outgoing edges of the given
// source node (the dependants).
func (g *DependencyGraph[T]) Dependants(source T) []T {
	if g.adjacencyMap == nil {
		// Since the graphs do not change after their initialization
		// the adjacency map is stored on the first call
		g.adjacencyMap, _ = g.Graph.AdjacencyMap()
	}

	outEdges := g.adjacencyMap[source.GraphID()]
	dependants := make([]T, 0, len(outEdges))
	for k := range outEdges {
		dependant, _ := g.Vertex(k)
		dependants = append(dependants, dependant)
	}

	return dependants
}
