package inmemorytopology

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/topologystore"
)

type entry struct {
	node   *service.Node
	status service.Status
	value  any
}

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	deps    map[string]map[string]servicename.Name // Key: node ID, Value: set of dependency names
}

// New creates a new, empty in-memory topology store.
func New() *Store {
	return &Store{
		entries: make(map[string]*entry),
		deps:    make(map[string]map[string]servicename.Name),
	}
}

var _ topologystore.Store = (*Store)(nil)

// AddNode adds a new node to the store.
func (s *Store) AddNode(ctx context.Context, n *service.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := n.ID()
	if _, exists := s.entries[key]; exists {
		return fmt.Errorf("%w: %s", topologystore.ErrDuplicateNode, key)
	}
	s.entries[key] = &entry{node: n, status: service.StatusPending}
	return nil
}

// AddDependency creates a dependency link from one node to another.
func (s *Store) AddDependency(ctx context.Context, from, to servicename.Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromKey := from.String()
	toKey := to.String()

	if _, exists := s.entries[fromKey]; !exists {
		return fmt.Errorf("dependency source: %w: %s", topologystore.ErrNodeNotFound, fromKey)
	}
	if _, exists := s.entries[toKey]; !exists {
		return fmt.Errorf("dependency target: %w: %s", topologystore.ErrNodeNotFound, toKey)
	}

	if s.deps[toKey] == nil {
		s.deps[toKey] = make(map[string]servicename.Name)
	}
	s.deps[toKey][fromKey] = from
	return nil
}

// GetNode retrieves a single node by its name.
func (s *Store) GetNode(ctx context.Context, name servicename.Name) (*service.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name.String()]
	if !ok {
		return nil, false
	}
	return e.node, true
}

// AllNodes returns a slice of all nodes ordered by name.
func (s *Store) AllNodes(ctx context.Context) []*service.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*service.Node, 0, len(s.entries))
	for _, e := range s.entries {
		nodes = append(nodes, e.node)
	}
	slices.SortFunc(nodes, func(a, b *service.Node) int { return strings.Compare(a.ID(), b.ID()) })
	return nodes
}

// DependenciesOf returns the names of all nodes that the given node depends on.
func (s *Store) DependenciesOf(ctx context.Context, name servicename.Name) ([]servicename.Name, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := name.String()
	if _, exists := s.entries[key]; !exists {
		return nil, fmt.Errorf("%w: %s", topologystore.ErrNodeNotFound, key)
	}

	depSet := s.deps[key]
	keys := make([]string, 0, len(depSet))
	for k := range depSet {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	deps := make([]servicename.Name, 0, len(keys))
	for _, k := range keys {
		deps = append(deps, depSet[k])
	}
	return deps, nil
}

// SetStatus records the status of a node.
func (s *Store) SetStatus(ctx context.Context, name servicename.Name, status service.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name.String()]
	if !ok {
		return fmt.Errorf("%w: %s", topologystore.ErrNodeNotFound, name)
	}
	e.status = status
	return nil
}

// Status returns the status of a node.
func (s *Store) Status(ctx context.Context, name servicename.Name) (service.Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name.String()]
	if !ok {
		return 0, false
	}
	return e.status, true
}

// SetValue records the started value of a node and marks it up.
func (s *Store) SetValue(ctx context.Context, name servicename.Name, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name.String()]
	if !ok {
		return fmt.Errorf("%w: %s", topologystore.ErrNodeNotFound, name)
	}
	e.value = value
	e.status = service.StatusUp
	return nil
}

// Value returns the started value of a node that is up.
func (s *Store) Value(ctx context.Context, name servicename.Name) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name.String()]
	if !ok || e.status != service.StatusUp {
		return nil, false
	}
	return e.value, true
}

// Remove deletes a node, the edges pointing at it and its state.
func (s *Store) Remove(ctx context.Context, name servicename.Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := name.String()
	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("%w: %s", topologystore.ErrNodeNotFound, key)
	}
	delete(s.entries, key)
	delete(s.deps, key)
	for _, set := range s.deps {
		delete(set, key)
	}
	return nil
}
