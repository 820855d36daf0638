package topology

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/timerwire/internal/ctxlog"
	"github.com/specialistvlad/timerwire/internal/deployment"
	"github.com/specialistvlad/timerwire/internal/provider"
	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerservice"
)

// ErrInvalidBeanIdentity is returned when a component's bean identity cannot
// be derived from its deployment unit.
var ErrInvalidBeanIdentity = errors.New("invalid bean identity")

// Input carries everything the builder needs for one component.
type Input struct {
	Unit      *deployment.Unit
	Component *deployment.ComponentDescription
	// Store is the data store resolved for the component.
	Store          string
	ThreadPoolName string
	Provider       provider.Selection
	// Registry is the unit-wide registry shared by every node of the unit.
	Registry       *timerservice.Registry
	InvokerFactory *timerservice.InvokerFactory
	// Resource is the component-scoped timer listener.
	Resource *timerservice.Resource
}

// Build returns the nodes realizing the component's timer service. It
// returns no nodes for components to which timer services do not apply.
//
// When the component requires a timer service, Resource is attached to the
// component description before any node is built.
func Build(ctx context.Context, in Input) ([]*service.Node, error) {
	c := in.Component
	if c == nil {
		return nil, errors.New("topology: component is required")
	}
	if !c.TimerServiceApplicable {
		return nil, nil
	}
	if c.ServiceName.IsZero() {
		return nil, fmt.Errorf("component %s has no service name", c.ComponentName)
	}

	logger := ctxlog.FromContext(ctx).With("component", c.ComponentName)
	name := servicename.Allocate(c.ServiceName, servicename.Plain)

	if !c.TimerServiceRequired {
		message := NoTimeoutMethodsMessage(c.ComponentName)
		if c.Stateful {
			message = StatefulMessage(c.ComponentName)
		}
		logger.Debug("Component declares no timeout methods, binding non-functional timer service.", "service", name.String())
		cfg := timerservice.FactoryConfiguration{Registry: in.Registry, InvokerFactory: in.InvokerFactory}
		return []*service.Node{{
			Name:      name,
			Kind:      service.NonFunctionalFactory,
			Component: c.ComponentName,
			Spec:      &NonFunctionalSpec{Config: cfg, Message: message},
		}}, nil
	}

	if in.Resource == nil {
		return nil, fmt.Errorf("component %s requires a timer service but no resource was supplied", c.ComponentName)
	}
	c.SetTimerServiceResource(in.Resource)
	cfg := timerservice.FactoryConfiguration{
		Registry:       in.Registry,
		Listener:       in.Resource,
		InvokerFactory: in.InvokerFactory,
	}

	if !in.Provider.Present() {
		logger.Debug("Building plain timer service factory.", "service", name.String(), "store", in.Store)
		return []*service.Node{{
			Name:      name,
			Kind:      service.PlainFactory,
			Component: c.ComponentName,
			Spec:      &LocalSpec{Config: cfg, ThreadPoolName: in.ThreadPoolName, Store: in.Store},
		}}, nil
	}

	bean, err := BeanIdentity(in.Unit, c.ComponentName)
	if err != nil {
		return nil, err
	}

	name = servicename.Allocate(c.ServiceName, servicename.Composite)
	transientName := servicename.Allocate(c.ServiceName, servicename.Transient)
	persistentName := servicename.Allocate(c.ServiceName, servicename.Persistent)
	logger.Debug("Building composite timer service factory.", "service", name.String(), "provider", in.Provider.Name, "bean", bean)

	return []*service.Node{
		{
			Name:      transientName,
			Kind:      service.TransientFactory,
			Component: c.ComponentName,
			Spec: &LocalSpec{
				Config:         cfg,
				ThreadPoolName: in.ThreadPoolName,
				Filter:         timerservice.Transient,
			},
		},
		{
			Name:      persistentName,
			Kind:      service.PersistentFactory,
			Component: c.ComponentName,
			Spec: &DistributableSpec{
				Config:   cfg,
				Bean:     timerservice.BeanConfiguration{Name: bean, DeploymentName: in.Unit.Name},
				Provider: in.Provider.Provider,
				Filter:   timerservice.Persistent,
			},
		},
		{
			Name:      name,
			Kind:      service.CompositeFactory,
			Component: c.ComponentName,
			Deps:      []servicename.Name{transientName, persistentName},
			Spec:      &CompositeSpec{Config: cfg, Transient: transientName, Persistent: persistentName},
		},
	}, nil
}

// BeanIdentity derives `<parent>.<deployment>.<component>` for a component,
// omitting the parent segment when the unit has no parent.
func BeanIdentity(u *deployment.Unit, component string) (string, error) {
	if component == "" {
		return "", fmt.Errorf("%w: empty component name", ErrInvalidBeanIdentity)
	}
	if u == nil || u.Name == "" {
		return "", fmt.Errorf("%w: component %s has no deployment name", ErrInvalidBeanIdentity, component)
	}
	parts := make([]string, 0, 3)
	if u.Parent != nil {
		if u.Parent.Name == "" {
			return "", fmt.Errorf("%w: component %s has a parent deployment without a name", ErrInvalidBeanIdentity, component)
		}
		parts = append(parts, u.Parent.Name)
	}
	parts = append(parts, u.Name, component)
	return strings.Join(parts, "."), nil
}

// StatefulMessage is reported by the timer service of a stateful component.
func StatefulMessage(component string) string {
	return fmt.Sprintf("timer service is not allowed on stateful session bean %s", component)
}

// NoTimeoutMethodsMessage is reported by the timer service of a component
// without timeout methods.
func NoTimeoutMethodsMessage(component string) string {
	return fmt.Sprintf("component %s has no timeout methods, its timer service is not available", component)
}
