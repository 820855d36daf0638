// Package component binds a component's create service to the services it
// consumes. Binding only records a name; the value behind the name is looked
// up when the create service is assembled, after installation.
package component

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/timerwire/internal/deployment"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerservice"
	"github.com/specialistvlad/timerwire/internal/topologystore"
)

// ErrUnresolvedDependency is returned by Assemble when a bound name has no
// started service behind it.
var ErrUnresolvedDependency = errors.New("unresolved create dependency")

// Bind records that the component's create service consumes the timer-service
// factory installed under name.
func Bind(desc *deployment.ComponentDescription, name servicename.Name) {
	desc.AddCreateDependency(deployment.Dependency{
		Name:       name,
		Capability: deployment.TimerServiceFactoryCapability,
	})
}

// CreateService is the assembled create service of a component.
type CreateService struct {
	Component           string
	TimerServiceFactory timerservice.ManagedTimerServiceFactory
}

// TimerService creates the component's timer service from the injected factory.
func (s *CreateService) TimerService(ctx context.Context) (timerservice.TimerService, error) {
	if s.TimerServiceFactory == nil {
		return nil, fmt.Errorf("component %s has no timer service factory", s.Component)
	}
	return s.TimerServiceFactory.CreateTimerService(ctx, timerservice.ComponentRef{Name: s.Component})
}

// Assemble resolves every create dependency of desc from target.
func Assemble(ctx context.Context, target topologystore.Store, desc *deployment.ComponentDescription) (*CreateService, error) {
	cs := &CreateService{Component: desc.ComponentName}
	for _, dep := range desc.CreateDependencies() {
		v, ok := target.Value(ctx, dep.Name)
		if !ok {
			return nil, fmt.Errorf("%w: component %s needs %s", ErrUnresolvedDependency, desc.ComponentName, dep.Name)
		}
		switch dep.Capability {
		case deployment.TimerServiceFactoryCapability:
			f, ok := v.(timerservice.ManagedTimerServiceFactory)
			if !ok {
				return nil, fmt.Errorf("component %s: %s is a %T, not a timer service factory", desc.ComponentName, dep.Name, v)
			}
			cs.TimerServiceFactory = f
		default:
			return nil, fmt.Errorf("component %s: unknown capability %q for %s", desc.ComponentName, dep.Capability, dep.Name)
		}
	}
	return cs, nil
}
