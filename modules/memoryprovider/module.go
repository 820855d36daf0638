// Package memoryprovider is a distributable timer provider that keeps every
// bean's timers in process memory. It stands in for a clustered provider in
// single-node setups and in tests.
package memoryprovider

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/specialistvlad/timerwire/internal/provider"
	"github.com/specialistvlad/timerwire/internal/timerservice"
)

// Name is the name the provider registers under.
const Name = "memory"

// Module implements the provider.Module interface for this package.
type Module struct {
	// Priority is the selection priority of the provider.
	Priority int
}

// Register registers the provider factory with the registry.
func (m *Module) Register(r *provider.Registry) {
	r.Register(Name, m.Priority, provider.FactoryFunc(func() (timerservice.TimerManagementProvider, error) {
		return New(), nil
	}))
}

// Provider implements timerservice.TimerManagementProvider.
type Provider struct {
	mu       sync.Mutex
	managers map[string]*Manager
}

// New creates an empty provider.
func New() *Provider {
	return &Provider{managers: make(map[string]*Manager)}
}

// Name implements timerservice.TimerManagementProvider.
func (p *Provider) Name() string { return Name }

// CreateTimerManager returns the manager of a bean. Asking twice for the same
// bean and filter returns the same manager.
func (p *Provider) CreateTimerManager(_ context.Context, bean timerservice.BeanConfiguration, filter timerservice.Filter) (timerservice.TimerManager, error) {
	key := bean.Name + "$" + filter.String()
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.managers[key]
	if !ok {
		m = &Manager{bean: bean.Name, timers: make(map[string]*timerservice.Timer)}
		p.managers[key] = m
	}
	return m, nil
}

// Beans returns the names of the beans with a manager, sorted.
func (p *Provider) Beans() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var beans []string
	for _, m := range p.managers {
		if !slices.Contains(beans, m.bean) {
			beans = append(beans, m.bean)
		}
	}
	slices.Sort(beans)
	return beans
}

// Manager implements timerservice.TimerManager.
type Manager struct {
	bean string

	mu     sync.Mutex
	timers map[string]*timerservice.Timer
}

// Add implements timerservice.TimerManager.
func (m *Manager) Add(_ context.Context, t *timerservice.Timer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timers[t.ID] = t
	return nil
}

// Remove implements timerservice.TimerManager.
func (m *Manager) Remove(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[id]
	delete(m.timers, id)
	return ok, nil
}

// List implements timerservice.TimerManager.
func (m *Manager) List(context.Context) ([]*timerservice.Timer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*timerservice.Timer, 0, len(m.timers))
	for _, t := range m.timers {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *timerservice.Timer) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
