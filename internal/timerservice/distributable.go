package timerservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TimerManagementProvider is the distributable collaborator that stores
// timers on behalf of a component, typically across a cluster.
type TimerManagementProvider interface {
	// Name identifies the provider in logs and on created timers.
	Name() string
	// CreateTimerManager returns the manager holding the timers of one bean.
	CreateTimerManager(ctx context.Context, bean BeanConfiguration, filter Filter) (TimerManager, error)
}

// TimerManager holds the timers of one bean inside a provider.
type TimerManager interface {
	Add(ctx context.Context, t *Timer) error
	Remove(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*Timer, error)
}

// DistributableFactory creates timer services backed by a TimerManagementProvider.
type DistributableFactory struct {
	Config   FactoryConfiguration
	Bean     BeanConfiguration
	Provider TimerManagementProvider
	Filter   Filter
}

// CreateTimerService implements ManagedTimerServiceFactory.
func (f *DistributableFactory) CreateTimerService(ctx context.Context, component ComponentRef) (TimerService, error) {
	if f.Provider == nil {
		return nil, fmt.Errorf("distributable timer service for %s: no provider", component.Name)
	}
	manager, err := f.Provider.CreateTimerManager(ctx, f.Bean, f.Filter)
	if err != nil {
		return nil, fmt.Errorf("distributable timer service for %s: %w", component.Name, err)
	}
	s := &distributableService{component: component, factory: f, manager: manager}
	if f.Config.Registry != nil {
		f.Config.Registry.Register(s)
	}
	return s, nil
}

type distributableService struct {
	component ComponentRef
	factory   *DistributableFactory
	manager   TimerManager
}

func (s *distributableService) CreateTimer(ctx context.Context, cfg TimerConfig) (*Timer, error) {
	if s.factory.Filter != 0 && !s.factory.Filter.Accepts(cfg.Persistent) {
		return nil, fmt.Errorf("%w: %s factory of %s", ErrFilterMismatch, s.factory.Filter, s.component.Name)
	}
	t := &Timer{
		ID:         uuid.NewString(),
		Component:  s.component.Name,
		Persistent: cfg.Persistent,
		Expiration: cfg.Expiration,
		Info:       cfg.Info,
		Store:      s.factory.Provider.Name(),
	}
	if err := s.manager.Add(ctx, t); err != nil {
		return nil, fmt.Errorf("adding timer for %s: %w", s.component.Name, err)
	}
	if l := s.factory.Config.Listener; l != nil {
		l.TimerAdded(t)
	}
	return t, nil
}

func (s *distributableService) Timers(ctx context.Context) ([]*Timer, error) {
	return s.manager.List(ctx)
}

func (s *distributableService) Cancel(ctx context.Context, id string) error {
	removed, err := s.manager.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrTimerNotFound, id)
	}
	if l := s.factory.Config.Listener; l != nil {
		l.TimerRemoved(id)
	}
	return nil
}
