package dag

import "sync"

// Graph holds service IDs and the edges between them. Edges point from a
// dependency to the node that needs it.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

type node struct {
	id string
	// deps are the predecessors: nodes that must be up first.
	deps map[string]*node
	// dependents are the successors.
	dependents map[string]*node
}
