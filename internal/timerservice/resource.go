package timerservice

import (
	"slices"
	"sync"
)

// TimerListener is notified when timers are added to or removed from a
// component's timer service.
type TimerListener interface {
	TimerAdded(t *Timer)
	TimerRemoved(id string)
}

// Resource is the management view of one component's timers. It is attached
// to a component description only when the component requires a functional
// timer service.
type Resource struct {
	mu     sync.RWMutex
	timers map[string]*Timer
}

// NewResource creates an empty resource.
func NewResource() *Resource {
	return &Resource{timers: make(map[string]*Timer)}
}

// TimerAdded implements TimerListener.
func (r *Resource) TimerAdded(t *Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers[t.ID] = t
}

// TimerRemoved implements TimerListener.
func (r *Resource) TimerRemoved(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, id)
}

// TimerIDs returns the ids of the tracked timers in sorted order.
func (r *Resource) TimerIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
