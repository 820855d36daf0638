package deployment

import (
	"context"

	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerservice"
)

// Capability names what a create dependency injects into a component.
type Capability string

// TimerServiceFactoryCapability injects a timerservice.ManagedTimerServiceFactory.
const TimerServiceFactoryCapability Capability = "timer-service-factory"

// Dependency is a late-bound edge from a component's create service to an
// installed service. Only the name is recorded; the value is looked up when
// the create service is assembled.
type Dependency struct {
	Name       servicename.Name
	Capability Capability
}

// Configurator is a deferred work item run for a component during the
// configuration pass of a unit.
type Configurator interface {
	Configure(ctx context.Context, pc *PhaseContext, desc *ComponentDescription) error
}

// ComponentDescription identifies one deployable component.
type ComponentDescription struct {
	ComponentName string
	// ServiceName is the base name of every service installed for the component.
	ServiceName servicename.Name

	TimerServiceApplicable bool
	TimerServiceRequired   bool
	Stateful               bool

	configurators      []Configurator
	createDependencies []Dependency
	resource           *timerservice.Resource
}

// NewComponentDescription creates a description whose service name is
// `<name>-service`.
func NewComponentDescription(name string) *ComponentDescription {
	return &ComponentDescription{
		ComponentName: name,
		ServiceName:   servicename.New(name + "-service"),
	}
}

// AddConfigurator appends a work item.
func (c *ComponentDescription) AddConfigurator(cfg Configurator) {
	c.configurators = append(c.configurators, cfg)
}

// Configurators returns the appended work items in order.
func (c *ComponentDescription) Configurators() []Configurator {
	return append([]Configurator(nil), c.configurators...)
}

// AddCreateDependency appends a late-bound dependency of the component's create service.
func (c *ComponentDescription) AddCreateDependency(d Dependency) {
	c.createDependencies = append(c.createDependencies, d)
}

// CreateDependencies returns the late-bound dependencies in order.
func (c *ComponentDescription) CreateDependencies() []Dependency {
	return append([]Dependency(nil), c.createDependencies...)
}

// SetTimerServiceResource attaches the management resource of the
// component's functional timer service.
func (c *ComponentDescription) SetTimerServiceResource(r *timerservice.Resource) {
	c.resource = r
}

// TimerServiceResource returns the attached resource, or nil.
func (c *ComponentDescription) TimerServiceResource() *timerservice.Resource {
	return c.resource
}

// PhaseContext collects the service nodes produced while configuring the
// components of one unit.
type PhaseContext struct {
	Unit  *Unit
	nodes []*service.Node
}

// NewPhaseContext creates an empty phase context for a unit.
func NewPhaseContext(u *Unit) *PhaseContext {
	return &PhaseContext{Unit: u}
}

// Add records nodes to be installed.
func (pc *PhaseContext) Add(nodes ...*service.Node) {
	pc.nodes = append(pc.nodes, nodes...)
}

// Nodes returns the recorded nodes in the order they were added.
func (pc *PhaseContext) Nodes() []*service.Node {
	return append([]*service.Node(nil), pc.nodes...)
}
