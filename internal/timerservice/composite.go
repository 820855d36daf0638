package timerservice

import (
	"context"
	"errors"
	"fmt"
)

// CompositeFactory presents one factory in front of a transient and a
// persistent factory. It holds exactly those two and nothing else.
type CompositeFactory struct {
	Config     FactoryConfiguration
	Transient  ManagedTimerServiceFactory
	Persistent ManagedTimerServiceFactory
}

// CreateTimerService implements ManagedTimerServiceFactory.
func (f *CompositeFactory) CreateTimerService(ctx context.Context, component ComponentRef) (TimerService, error) {
	if f.Transient == nil || f.Persistent == nil {
		return nil, fmt.Errorf("composite timer service for %s: both sub-factories are required", component.Name)
	}
	transient, err := f.Transient.CreateTimerService(ctx, component)
	if err != nil {
		return nil, fmt.Errorf("composite timer service for %s: transient: %w", component.Name, err)
	}
	persistent, err := f.Persistent.CreateTimerService(ctx, component)
	if err != nil {
		return nil, fmt.Errorf("composite timer service for %s: persistent: %w", component.Name, err)
	}
	return &compositeService{transient: transient, persistent: persistent}, nil
}

type compositeService struct {
	transient  TimerService
	persistent TimerService
}

// route selects the sub-service for a persistence class.
func (s *compositeService) route(f Filter) TimerService {
	switch f {
	case Persistent:
		return s.persistent
	default:
		return s.transient
	}
}

func (s *compositeService) CreateTimer(ctx context.Context, cfg TimerConfig) (*Timer, error) {
	return s.route(FilterFor(cfg.Persistent)).CreateTimer(ctx, cfg)
}

func (s *compositeService) Timers(ctx context.Context) ([]*Timer, error) {
	transient, err := s.transient.Timers(ctx)
	if err != nil {
		return nil, err
	}
	persistent, err := s.persistent.Timers(ctx)
	if err != nil {
		return nil, err
	}
	return append(transient, persistent...), nil
}

func (s *compositeService) Cancel(ctx context.Context, id string) error {
	err := s.transient.Cancel(ctx, id)
	if err == nil || !errors.Is(err, ErrTimerNotFound) {
		return err
	}
	return s.persistent.Cancel(ctx, id)
}
