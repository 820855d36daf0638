package processor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/timerwire/internal/component"
	"github.com/specialistvlad/timerwire/internal/ctxlog"
	"github.com/specialistvlad/timerwire/internal/deployment"
	"github.com/specialistvlad/timerwire/internal/installer"
	"github.com/specialistvlad/timerwire/internal/metrics"
	"github.com/specialistvlad/timerwire/internal/provider"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerservice"
	"github.com/specialistvlad/timerwire/internal/timerstore"
	"github.com/specialistvlad/timerwire/internal/topology"
	"github.com/specialistvlad/timerwire/internal/topologystore"
)

// DefaultThreadPoolName is used when Config.ThreadPoolName is empty.
const DefaultThreadPoolName = "default"

// Config holds the processor-wide settings.
type Config struct {
	// ThreadPoolName is the executor every local timer service runs on.
	ThreadPoolName string
	// DefaultDataStore is used for components without an assignment. It may
	// be empty.
	DefaultDataStore string
}

// ComponentError identifies the component whose timer service could not be
// built.
type ComponentError struct {
	Unit      string
	Component string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("unit %s, component %s: %v", e.Unit, e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// Processor adds timer services to deployment units.
type Processor struct {
	cfg       Config
	selection provider.Selection
	installer *installer.Installer
	metrics   *metrics.Metrics
}

// Option configures a Processor.
type Option func(*Processor)

// WithInstaller replaces the default installer.
func WithInstaller(i *installer.Installer) Option {
	return func(p *Processor) {
		p.installer = i
	}
}

// WithMetrics reports processed units and the selected provider to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// New creates a processor and selects its distributable provider from
// providers. A nil or empty registry selects legacy mode.
func New(ctx context.Context, cfg Config, providers *provider.Registry, opts ...Option) (*Processor, error) {
	if cfg.ThreadPoolName == "" {
		cfg.ThreadPoolName = DefaultThreadPoolName
	}
	p := &Processor{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.installer == nil {
		p.installer = installer.New(installer.WithMetrics(p.metrics))
	}

	sel, err := providers.Select(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting distributable timer provider: %w", err)
	}
	p.selection = sel
	p.metrics.SetProvider(sel.Name)
	return p, nil
}

// Config returns the effective configuration.
func (p *Processor) Config() Config {
	return p.cfg
}

// Provider returns the provider selected at construction.
func (p *Processor) Provider() provider.Selection {
	return p.selection
}

// Process runs Deploy and Configure for u.
func (p *Processor) Process(ctx context.Context, u *deployment.Unit, target topologystore.Store) error {
	if err := p.Deploy(ctx, u); err != nil {
		return err
	}
	return p.Configure(ctx, u, target)
}

// Deploy appends a timer work item to every component of u that timer
// services apply to. It never mutates the unit's metadata.
func (p *Processor) Deploy(ctx context.Context, u *deployment.Unit) error {
	if u == nil {
		return fmt.Errorf("deploy: unit is required")
	}
	logger := ctxlog.FromContext(ctx).With("unit", u.Name)

	assignments := timerstore.FromMetaData(u.TimerServices)
	registry := timerservice.NewRegistry()
	invokers := timerservice.NewInvokerFactory(u.DeploymentName())

	added := 0
	for _, c := range u.Components {
		if !c.TimerServiceApplicable {
			continue
		}
		c.AddConfigurator(&timerWorkItem{
			processor: p,
			store:     timerstore.Resolve(c.ComponentName, assignments, p.cfg.DefaultDataStore),
			registry:  registry,
			invokers:  invokers,
		})
		added++
	}
	logger.Debug("Timer work items added.", "components", len(u.Components), "applicable", added, "provider", p.selection.Name)
	return nil
}

// Configure runs the work items of u, installs the resulting nodes into
// target as one batch and binds each component to its factory. If anything
// fails, nothing is installed and no component is bound.
func (p *Processor) Configure(ctx context.Context, u *deployment.Unit, target topologystore.Store) (err error) {
	if u == nil {
		return fmt.Errorf("configure: unit is required")
	}
	defer func() { p.metrics.DeploymentProcessed(err) }()

	ctx = ctxlog.With(ctx, "unit", u.Name)
	logger := ctxlog.FromContext(ctx)

	pc := deployment.NewPhaseContext(u)
	var bound []*deployment.ComponentDescription
	for _, c := range u.Components {
		configurators := c.Configurators()
		for _, cfg := range configurators {
			if err := cfg.Configure(ctx, pc, c); err != nil {
				return &ComponentError{Unit: u.Name, Component: c.ComponentName, Err: err}
			}
		}
		if len(configurators) > 0 {
			bound = append(bound, c)
		}
	}

	nodes := pc.Nodes()
	if err := p.installer.Install(ctx, target, nodes); err != nil {
		return fmt.Errorf("installing timer services of unit %s: %w", u.Name, err)
	}

	for _, c := range bound {
		component.Bind(c, servicename.Allocate(c.ServiceName, servicename.Plain))
	}
	logger.Info("Timer services installed.", "nodes", len(nodes), "components", len(bound))
	return nil
}

// timerWorkItem builds the factory nodes of one component. Each item holds
// the unit-wide inputs resolved by Deploy; the component arrives through
// Configure.
type timerWorkItem struct {
	processor *Processor
	store     string
	registry  *timerservice.Registry
	invokers  *timerservice.InvokerFactory
}

func (w *timerWorkItem) Configure(ctx context.Context, pc *deployment.PhaseContext, desc *deployment.ComponentDescription) error {
	ctx = ctxlog.With(ctx, "component", desc.ComponentName)
	ctxlog.FromContext(ctx).Debug("Installing timer service factory for component", "store", w.store)

	nodes, err := topology.Build(ctx, topology.Input{
		Unit:           pc.Unit,
		Component:      desc,
		Store:          w.store,
		ThreadPoolName: w.processor.cfg.ThreadPoolName,
		Provider:       w.processor.selection,
		Registry:       w.registry,
		InvokerFactory: w.invokers,
		Resource:       timerservice.NewResource(),
	})
	if err != nil {
		return err
	}
	pc.Add(nodes...)
	return nil
}
