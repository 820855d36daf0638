package timerservice

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LocalFactory creates timer services whose timers live in this process.
// Without a Filter it manages both classes and stamps persistent timers with
// Store; with a Filter it manages only the timers the filter accepts.
type LocalFactory struct {
	Config         FactoryConfiguration
	ThreadPoolName string
	// Store is empty for factories that never persist, e.g. the transient half of a composite.
	Store  string
	Filter Filter
}

// CreateTimerService implements ManagedTimerServiceFactory.
func (f *LocalFactory) CreateTimerService(ctx context.Context, component ComponentRef) (TimerService, error) {
	if f.ThreadPoolName == "" {
		return nil, fmt.Errorf("timer service for %s: thread pool name is required", component.Name)
	}
	s := &localService{
		component: component,
		factory:   f,
		timers:    make(map[string]*Timer),
	}
	if f.Config.InvokerFactory != nil {
		s.invoker = f.Config.InvokerFactory.CreateInvoker(component)
	}
	if f.Config.Registry != nil {
		f.Config.Registry.Register(s)
	}
	return s, nil
}

type localService struct {
	component ComponentRef
	factory   *LocalFactory
	invoker   Invoker

	mu     sync.Mutex
	timers map[string]*Timer
}

func (s *localService) CreateTimer(ctx context.Context, cfg TimerConfig) (*Timer, error) {
	if s.factory.Filter != 0 && !s.factory.Filter.Accepts(cfg.Persistent) {
		return nil, fmt.Errorf("%w: %s timer on %s factory of %s",
			ErrFilterMismatch, strings.ToLower(FilterFor(cfg.Persistent).String()), s.factory.Filter, s.component.Name)
	}

	t := &Timer{
		ID:         uuid.NewString(),
		Component:  s.component.Name,
		Persistent: cfg.Persistent,
		Expiration: cfg.Expiration,
		Info:       cfg.Info,
	}
	if cfg.Persistent {
		t.Store = s.factory.Store
	}

	s.mu.Lock()
	s.timers[t.ID] = t
	s.mu.Unlock()

	if l := s.factory.Config.Listener; l != nil {
		l.TimerAdded(t)
	}
	return t, nil
}

func (s *localService) Timers(ctx context.Context) ([]*Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Timer, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Timer) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *localService) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.timers[id]
	delete(s.timers, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrTimerNotFound, id)
	}
	if l := s.factory.Config.Listener; l != nil {
		l.TimerRemoved(id)
	}
	return nil
}
