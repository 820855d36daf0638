package provider

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/timerwire/internal/ctxlog"
	"github.com/specialistvlad/timerwire/internal/timerservice"
)

// ErrAmbiguousProvider is returned when more than one factory shares the
// highest priority.
var ErrAmbiguousProvider = errors.New("ambiguous distributable timer provider")

// Factory creates a distributable timer-management provider.
type Factory interface {
	CreateTimerManagementProvider() (timerservice.TimerManagementProvider, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func() (timerservice.TimerManagementProvider, error)

// CreateTimerManagementProvider implements Factory.
func (f FactoryFunc) CreateTimerManagementProvider() (timerservice.TimerManagementProvider, error) {
	return f()
}

// Module is implemented by provider modules compiled into the binary.
type Module interface {
	Register(r *Registry)
}

type registration struct {
	name     string
	priority int
	factory  Factory
}

// Registry holds the provider factories registered for one processor.
type Registry struct {
	registrations []registration
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a named factory. Registering the same name twice is a
// programming error and panics.
func (r *Registry) Register(name string, priority int, f Factory) {
	for _, reg := range r.registrations {
		if reg.name == name {
			panic(fmt.Sprintf("timer provider factory with name '%s' already registered", name))
		}
	}
	r.registrations = append(r.registrations, registration{name: name, priority: priority, factory: f})
}

// Names returns the registered factory names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.registrations))
	for i, reg := range r.registrations {
		names[i] = reg.name
	}
	return names
}

// Selection is the outcome of Select. The zero value means no provider.
type Selection struct {
	Name     string
	Provider timerservice.TimerManagementProvider
}

// Present reports whether a provider was selected.
func (s Selection) Present() bool {
	return s.Provider != nil
}

// Select picks the highest-priority factory and creates its provider. An
// empty registry yields the zero Selection and no error.
func (r *Registry) Select(ctx context.Context) (Selection, error) {
	logger := ctxlog.FromContext(ctx)
	if r == nil || len(r.registrations) == 0 {
		logger.Debug("No distributable timer provider registered, using legacy timer service.")
		return Selection{}, nil
	}

	ordered := slices.Clone(r.registrations)
	slices.SortStableFunc(ordered, func(a, b registration) int { return b.priority - a.priority })

	top := ordered[0]
	var tied []string
	for _, reg := range ordered[1:] {
		if reg.priority == top.priority {
			tied = append(tied, reg.name)
		}
	}
	if len(tied) > 0 {
		return Selection{}, fmt.Errorf("%w: %s and %s share priority %d",
			ErrAmbiguousProvider, top.name, strings.Join(tied, ", "), top.priority)
	}

	p, err := top.factory.CreateTimerManagementProvider()
	if err != nil {
		return Selection{}, fmt.Errorf("creating timer provider %s: %w", top.name, err)
	}
	if p == nil {
		return Selection{}, fmt.Errorf("timer provider factory %s returned no provider", top.name)
	}

	if len(ordered) > 1 {
		logger.Info("Selected distributable timer provider over lower-priority candidates.", "provider", top.name, "candidates", len(ordered))
	} else {
		logger.Debug("Selected distributable timer provider.", "provider", top.name)
	}
	return Selection{Name: top.name, Provider: p}, nil
}
