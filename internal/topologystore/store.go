// Package topologystore defines the installation target for service nodes:
// the registry a deployment's timer-service factories are installed into and
// looked up from.
//
// # Structure and State
//
// The store keeps two kinds of data per node:
//   - **Structure**: the node itself and its dependency edges, written once when
//     the node is installed.
//   - **State**: the node's status and, once it is up, its started value.
//
// The installer writes both. Consumers such as the component create service
// only read values, by name, after the installer has returned.
//
// # Uniqueness
//
// Names are unique within a store. Installing a name twice is an error, which
// is what catches two units or two components claiming the same factory name.
package topologystore

import (
	"context"
	"errors"

	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/servicename"
)

var (
	// ErrDuplicateNode is returned when a node is added under a name already present.
	ErrDuplicateNode = errors.New("duplicate service name")
	// ErrNodeNotFound is returned when an operation names a node that is not present.
	ErrNodeNotFound = errors.New("service not found")
)

// Store is the interface for a service installation target.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use. The installer starts
// independent nodes concurrently and each start records status and value.
//
// # Typical Implementation
//
// See internal/inmemorytopology for the in-process implementation using maps
// and sync.RWMutex.
type Store interface {
	// AddNode registers a node in the pending state. A node whose name is
	// already present is rejected with ErrDuplicateNode.
	AddNode(ctx context.Context, n *service.Node) error

	// AddDependency records that 'to' depends on 'from'. Both nodes must exist.
	AddDependency(ctx context.Context, from, to servicename.Name) error

	// GetNode retrieves a node by name.
	GetNode(ctx context.Context, name servicename.Name) (*service.Node, bool)

	// AllNodes returns a snapshot of all nodes ordered by name.
	AllNodes(ctx context.Context) []*service.Node

	// DependenciesOf returns the names of the nodes the given node depends on,
	// ordered by name, or ErrNodeNotFound.
	DependenciesOf(ctx context.Context, name servicename.Name) ([]servicename.Name, error)

	// SetStatus records the status of a node.
	SetStatus(ctx context.Context, name servicename.Name, status service.Status) error

	// Status returns the status of a node.
	Status(ctx context.Context, name servicename.Name) (service.Status, bool)

	// SetValue records the started value of a node and marks it up.
	SetValue(ctx context.Context, name servicename.Name, value any) error

	// Value returns the started value of a node. It reports false for nodes
	// that are missing or not up.
	Value(ctx context.Context, name servicename.Name) (any, bool)

	// Remove deletes a node with its edges and state. Removing a missing node
	// returns ErrNodeNotFound.
	Remove(ctx context.Context, name servicename.Name) error
}
