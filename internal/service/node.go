// Package service defines the installable units of work produced for a
// deployment: nodes identified by a service name, with declared dependency
// edges and a typed spec describing how the node's value is started.
package service

import (
	"context"
	"fmt"

	"github.com/specialistvlad/timerwire/internal/servicename"
)

// Kind distinguishes the timer-service factory variants a node can realize.
type Kind int

const (
	// PlainFactory is the single factory used when no distributable provider exists.
	PlainFactory Kind = iota
	// TransientFactory manages in-memory timers only.
	TransientFactory
	// PersistentFactory manages timers through a distributable provider.
	PersistentFactory
	// CompositeFactory routes between a transient and a persistent factory.
	CompositeFactory
	// NonFunctionalFactory rejects every timer operation.
	NonFunctionalFactory
)

func (k Kind) String() string {
	switch k {
	case PlainFactory:
		return "plain"
	case TransientFactory:
		return "transient"
	case PersistentFactory:
		return "persistent"
	case CompositeFactory:
		return "composite"
	case NonFunctionalFactory:
		return "non-functional"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Values gives a starting node access to the started values of the nodes it
// declared as dependencies.
type Values interface {
	Value(name servicename.Name) (any, bool)
}

// Spec builds a node's value once all its dependencies are started.
type Spec interface {
	Start(ctx context.Context, deps Values) (any, error)
}

// Node is a single vertex of the service graph.
type Node struct {
	// Name is the unique identifier the node is installed under.
	Name servicename.Name
	Kind Kind
	// Component is the name of the component the node was built for.
	Component string
	// Deps are the names of the nodes that must be started before this one.
	Deps []servicename.Name
	Spec Spec
}

// DependsOn reports whether n declares a dependency on name.
func (n *Node) DependsOn(name servicename.Name) bool {
	for _, d := range n.Deps {
		if d.Equal(name) {
			return true
		}
	}
	return false
}

// ID returns the canonical string form of the node's name.
func (n *Node) ID() string {
	return n.Name.String()
}

// Status is the installation state of a node in a target.
type Status int

const (
	// StatusPending indicates the node is registered but not yet started.
	StatusPending Status = iota
	// StatusStarting indicates the node's spec is running.
	StatusStarting
	// StatusUp indicates the node has started and its value is available.
	StatusUp
	// StatusFailed indicates the node's spec returned an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusStarting:
		return "starting"
	case StatusUp:
		return "up"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
