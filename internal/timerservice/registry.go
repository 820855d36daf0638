package timerservice

import (
	"context"
	"sync"
)

// Registry tracks every active TimerService of one deployment unit. A single
// instance is shared by all factory configurations of the unit and is safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	services map[TimerService]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{services: make(map[TimerService]struct{})}
}

// Register adds a timer service to the registry.
func (r *Registry) Register(s TimerService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s] = struct{}{}
}

// Unregister removes a timer service from the registry.
func (r *Registry) Unregister(s TimerService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, s)
}

// Len returns the number of registered services.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}

// AllTimers collects the timers of every registered service.
func (r *Registry) AllTimers(ctx context.Context) ([]*Timer, error) {
	r.mu.RLock()
	services := make([]TimerService, 0, len(r.services))
	for s := range r.services {
		services = append(services, s)
	}
	r.mu.RUnlock()

	var all []*Timer
	for _, s := range services {
		timers, err := s.Timers(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, timers...)
	}
	return all, nil
}
