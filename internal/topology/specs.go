package topology

import (
	"context"
	"fmt"

	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerservice"
)

// LocalSpec starts a timerservice.LocalFactory. It backs both the plain node
// and the transient half of a composite.
type LocalSpec struct {
	Config         timerservice.FactoryConfiguration
	ThreadPoolName string
	Store          string
	Filter         timerservice.Filter
}

// Start implements service.Spec.
func (s *LocalSpec) Start(context.Context, service.Values) (any, error) {
	return &timerservice.LocalFactory{
		Config:         s.Config,
		ThreadPoolName: s.ThreadPoolName,
		Store:          s.Store,
		Filter:         s.Filter,
	}, nil
}

// DistributableSpec starts a timerservice.DistributableFactory.
type DistributableSpec struct {
	Config   timerservice.FactoryConfiguration
	Bean     timerservice.BeanConfiguration
	Provider timerservice.TimerManagementProvider
	Filter   timerservice.Filter
}

// Start implements service.Spec.
func (s *DistributableSpec) Start(context.Context, service.Values) (any, error) {
	if s.Provider == nil {
		return nil, fmt.Errorf("bean %s: distributable factory requires a provider", s.Bean.Name)
	}
	return &timerservice.DistributableFactory{
		Config:   s.Config,
		Bean:     s.Bean,
		Provider: s.Provider,
		Filter:   s.Filter,
	}, nil
}

// CompositeSpec starts a timerservice.CompositeFactory over the factories
// installed under Transient and Persistent.
type CompositeSpec struct {
	Config     timerservice.FactoryConfiguration
	Transient  servicename.Name
	Persistent servicename.Name
}

// Start implements service.Spec.
func (s *CompositeSpec) Start(_ context.Context, deps service.Values) (any, error) {
	transient, err := factoryAt(deps, s.Transient)
	if err != nil {
		return nil, err
	}
	persistent, err := factoryAt(deps, s.Persistent)
	if err != nil {
		return nil, err
	}
	return &timerservice.CompositeFactory{
		Config:     s.Config,
		Transient:  transient,
		Persistent: persistent,
	}, nil
}

// NonFunctionalSpec starts a timerservice.NonFunctionalFactory.
type NonFunctionalSpec struct {
	Config  timerservice.FactoryConfiguration
	Message string
}

// Start implements service.Spec.
func (s *NonFunctionalSpec) Start(context.Context, service.Values) (any, error) {
	return &timerservice.NonFunctionalFactory{Config: s.Config, Message: s.Message}, nil
}

func factoryAt(deps service.Values, name servicename.Name) (timerservice.ManagedTimerServiceFactory, error) {
	v, ok := deps.Value(name)
	if !ok {
		return nil, fmt.Errorf("dependency %s is not available", name)
	}
	f, ok := v.(timerservice.ManagedTimerServiceFactory)
	if !ok {
		return nil, fmt.Errorf("dependency %s is a %T, not a timer service factory", name, v)
	}
	return f, nil
}
