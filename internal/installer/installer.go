package installer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/timerwire/internal/ctxlog"
	"github.com/specialistvlad/timerwire/internal/dag"
	"github.com/specialistvlad/timerwire/internal/metrics"
	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/topologystore"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrMissingDependency is returned when a node depends on a name that is
	// neither in the batch nor installed in the target.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrCycle is returned when the batch's dependency edges form a cycle.
	ErrCycle = errors.New("dependency cycle")
)

// DefaultWorkers is the worker pool size used when none is configured.
const DefaultWorkers = 4

// Installer starts batches of nodes in dependency order.
type Installer struct {
	workers int
	metrics *metrics.Metrics
}

// Option configures an Installer.
type Option func(*Installer)

// WithWorkers bounds the number of nodes started concurrently. Values below
// one are ignored.
func WithWorkers(n int) Option {
	return func(i *Installer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// WithMetrics reports installs to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(i *Installer) {
		i.metrics = m
	}
}

// New creates an installer.
func New(opts ...Option) *Installer {
	i := &Installer{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install validates nodes as one batch, adds them to target and starts them.
// On failure the target is left as it was before the call.
func (i *Installer) Install(ctx context.Context, target topologystore.Store, nodes []*service.Node) error {
	started := time.Now()
	defer func() { i.metrics.ObserveInstall(time.Since(started)) }()

	logger := ctxlog.FromContext(ctx)
	if len(nodes) == 0 {
		return nil
	}

	byID, levels, err := i.plan(ctx, target, nodes)
	if err != nil {
		return err
	}

	added := make([]*service.Node, 0, len(nodes))
	rollback := func(cause error) error {
		i.rollback(ctx, target, added)
		return cause
	}

	for _, n := range nodes {
		if err := target.AddNode(ctx, n); err != nil {
			i.metrics.InstallFailed(metrics.ReasonDuplicate)
			return rollback(fmt.Errorf("installing %s: %w", n.Name, err))
		}
		added = append(added, n)
	}
	for _, n := range nodes {
		for _, dep := range n.Deps {
			if err := target.AddDependency(ctx, dep, n.Name); err != nil {
				i.metrics.InstallFailed(metrics.ReasonMissingDependency)
				return rollback(fmt.Errorf("installing %s: %w", n.Name, err))
			}
		}
	}

	logger.Debug("Starting service nodes.", "nodes", len(nodes), "levels", len(levels), "workers", i.workers)
	for depth, level := range levels {
		if err := ctx.Err(); err != nil {
			i.metrics.InstallFailed(metrics.ReasonCanceled)
			return rollback(fmt.Errorf("install canceled before level %d: %w", depth, err))
		}
		if err := i.startLevel(ctx, target, byID, level); err != nil {
			i.metrics.InstallFailed(metrics.ReasonStart)
			return rollback(err)
		}
	}

	for _, n := range nodes {
		i.metrics.NodeInstalled(n.Kind.String())
	}
	logger.Debug("Service nodes installed.", "nodes", len(nodes))
	return nil
}

// plan validates the batch and returns it indexed by ID together with its
// start levels.
func (i *Installer) plan(ctx context.Context, target topologystore.Store, nodes []*service.Node) (map[string]*service.Node, [][]string, error) {
	byID := make(map[string]*service.Node, len(nodes))
	g := dag.New()

	for _, n := range nodes {
		id := n.ID()
		if n.Spec == nil {
			return nil, nil, fmt.Errorf("node %s has no spec", id)
		}
		if _, dup := byID[id]; dup {
			i.metrics.InstallFailed(metrics.ReasonDuplicate)
			return nil, nil, fmt.Errorf("%w: %s appears twice in the batch", topologystore.ErrDuplicateNode, id)
		}
		if _, installed := target.GetNode(ctx, n.Name); installed {
			i.metrics.InstallFailed(metrics.ReasonDuplicate)
			return nil, nil, fmt.Errorf("%w: %s is already installed", topologystore.ErrDuplicateNode, id)
		}
		byID[id] = n
		g.AddNode(id)
	}

	for _, n := range nodes {
		for _, dep := range n.Deps {
			depID := dep.String()
			if _, inBatch := byID[depID]; inBatch {
				if err := g.AddEdge(depID, n.ID()); err != nil {
					i.metrics.InstallFailed(metrics.ReasonCycle)
					return nil, nil, fmt.Errorf("%w: %w", ErrCycle, err)
				}
				continue
			}
			if _, up := target.Value(ctx, dep); !up {
				i.metrics.InstallFailed(metrics.ReasonMissingDependency)
				return nil, nil, fmt.Errorf("%w: %s requires %s", ErrMissingDependency, n.ID(), depID)
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		i.metrics.InstallFailed(metrics.ReasonCycle)
		return nil, nil, fmt.Errorf("%w: %w", ErrCycle, err)
	}
	levels, err := g.Levels()
	if err != nil {
		i.metrics.InstallFailed(metrics.ReasonCycle)
		return nil, nil, fmt.Errorf("%w: %w", ErrCycle, err)
	}
	return byID, levels, nil
}

func (i *Installer) startLevel(ctx context.Context, target topologystore.Store, byID map[string]*service.Node, level []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for _, id := range level {
		n := byID[id]
		g.Go(func() error {
			return startNode(gctx, target, n)
		})
	}
	return g.Wait()
}

func startNode(ctx context.Context, target topologystore.Store, n *service.Node) error {
	logger := ctxlog.FromContext(ctx).With("service", n.ID(), "kind", n.Kind.String())

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("starting %s: %w", n.Name, err)
	}
	if err := target.SetStatus(ctx, n.Name, service.StatusStarting); err != nil {
		return err
	}

	value, err := n.Spec.Start(ctx, &targetValues{ctx: ctx, target: target})
	if err != nil {
		logger.Error("Service failed to start.", "error", err)
		_ = target.SetStatus(ctx, n.Name, service.StatusFailed)
		return fmt.Errorf("starting %s: %w", n.Name, err)
	}
	if err := target.SetValue(ctx, n.Name, value); err != nil {
		return err
	}
	logger.Debug("Service started.")
	return nil
}

func (i *Installer) rollback(ctx context.Context, target topologystore.Store, added []*service.Node) {
	logger := ctxlog.FromContext(ctx)
	// Cancellation must not leave half an install behind.
	ctx = context.WithoutCancel(ctx)
	for j := len(added) - 1; j >= 0; j-- {
		if err := target.Remove(ctx, added[j].Name); err != nil {
			logger.Warn("Failed to remove service during rollback.", "service", added[j].ID(), "error", err)
		}
	}
	if len(added) > 0 {
		logger.Debug("Rolled back service nodes.", "nodes", len(added))
	}
}

type targetValues struct {
	ctx    context.Context
	target topologystore.Store
}

func (v *targetValues) Value(name servicename.Name) (any, bool) {
	return v.target.Value(v.ctx, name)
}
