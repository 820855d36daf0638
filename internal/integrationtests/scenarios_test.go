package integration_tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/timerwire/internal/app"
	"github.com/specialistvlad/timerwire/internal/component"
	"github.com/specialistvlad/timerwire/internal/provider"
	"github.com/specialistvlad/timerwire/internal/service"
	"github.com/specialistvlad/timerwire/internal/timerservice"
	"github.com/specialistvlad/timerwire/internal/topology"
	"github.com/specialistvlad/timerwire/modules/memoryprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installedKinds(t *testing.T, r *harnessResult) map[string]string {
	t.Helper()
	kinds := map[string]string{}
	for _, n := range r.App.Target().AllNodes(context.Background()) {
		kinds[n.ID()] = n.Kind.String()
	}
	return kinds
}

// TestLegacyStoreResolution checks that without a distributable provider
// every required component gets one plain factory bound to its resolved store.
func TestLegacyStoreResolution(t *testing.T) {
	// --- Arrange ---
	descriptor := `
deployment "app.mod" {
  application = "app"
  module      = "mod"

  component "A" {
    timeout_methods = true
  }
  component "B" {
    timeout_methods = true
  }

  timer_service {
    ejb_name   = "B"
    data_store = "db1"
  }
}
`

	// --- Act ---
	result := runIntegrationTest(t, map[string]string{"main.hcl": descriptor}, app.Config{DefaultDataStore: "def"})

	// --- Assert ---
	require.NoError(t, result.Err)
	want := map[string]string{
		"A-service.timer-service-factory": "plain",
		"B-service.timer-service-factory": "plain",
	}
	if diff := cmp.Diff(want, installedKinds(t, result)); diff != "" {
		t.Fatalf("installed services mismatch (-want +got):\n%s", diff)
	}

	ctx := context.Background()
	stores := map[string]string{}
	for _, n := range result.App.Target().AllNodes(ctx) {
		stores[n.Component] = n.Spec.(*topology.LocalSpec).Store
	}
	assert.Equal(t, map[string]string{"A": "def", "B": "db1"}, stores)
	assert.Contains(t, result.Output, `msg="Installing timer service factory for component"`)
}

// TestDistributableTopology checks the transient, persistent and composite
// triple and that the component binds to the composite.
func TestDistributableTopology(t *testing.T) {
	// --- Arrange ---
	descriptor := `
deployment "app.mod" {
  application = "app"
  module      = "mod"

  component "Foo" {
    timeout_methods = true
  }
}
`

	// --- Act ---
	result := runIntegrationTest(t, map[string]string{"main.hcl": descriptor}, app.Config{Distributable: true})

	// --- Assert ---
	require.NoError(t, result.Err)
	want := map[string]string{
		"Foo-service.timer-service-factory":            "composite",
		"Foo-service.timer-service-factory$TRANSIENT":  "transient",
		"Foo-service.timer-service-factory$PERSISTENT": "persistent",
	}
	if diff := cmp.Diff(want, installedKinds(t, result)); diff != "" {
		t.Fatalf("installed services mismatch (-want +got):\n%s", diff)
	}

	ctx := context.Background()
	target := result.App.Target()
	for _, n := range target.AllNodes(ctx) {
		if n.Kind != service.PersistentFactory {
			continue
		}
		assert.Equal(t, "app.mod.Foo", n.Spec.(*topology.DistributableSpec).Bean.Name)
	}

	foo, ok := result.App.Units()[0].Component("Foo")
	require.True(t, ok)
	cs, err := component.Assemble(ctx, target, foo)
	require.NoError(t, err)

	svc, err := cs.TimerService(ctx)
	require.NoError(t, err)
	transient, err := svc.CreateTimer(ctx, timerservice.TimerConfig{})
	require.NoError(t, err)
	persistent, err := svc.CreateTimer(ctx, timerservice.TimerConfig{Persistent: true})
	require.NoError(t, err)

	assert.Empty(t, transient.Store)
	assert.Equal(t, memoryprovider.Name, persistent.Store)
	assert.ElementsMatch(t, []string{transient.ID, persistent.ID}, foo.TimerServiceResource().TimerIDs())
}

// TestNestedDeploymentBeanIdentity checks that a sub-deployment's bean
// identity carries its parent's name.
func TestNestedDeploymentBeanIdentity(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"ear.hcl": `
deployment "shop.ear" {
  application = "shop"
  module      = "shop"
}
`,
		"jar/orders.hcl": `
deployment "orders.jar" {
  application = "shop"
  module      = "orders"
  parent      = "shop.ear"

  component "Scheduler" {
    timeout_methods = true
  }
}
`,
	}

	// --- Act ---
	result := runIntegrationTest(t, files, app.Config{Distributable: true})

	// --- Assert ---
	require.NoError(t, result.Err)
	ctx := context.Background()
	var beans []string
	for _, n := range result.App.Target().AllNodes(ctx) {
		if spec, ok := n.Spec.(*topology.DistributableSpec); ok {
			beans = append(beans, spec.Bean.Name)
		}
	}
	assert.Equal(t, []string{"shop.ear.orders.jar.Scheduler"}, beans)
}

// TestNonFunctionalAndNotApplicable checks stateful and timer-less components.
func TestNonFunctionalAndNotApplicable(t *testing.T) {
	// --- Arrange ---
	descriptor := `
deployment "app.mod" {
  application = "app"
  module      = "mod"

  component "Cart" {
    stateful = true
  }
  component "Helper" {
    applicable = false
  }
}
`

	// --- Act ---
	result := runIntegrationTest(t, map[string]string{"main.hcl": descriptor}, app.Config{Distributable: true})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, map[string]string{"Cart-service.timer-service-factory": "non-functional"}, installedKinds(t, result))

	ctx := context.Background()
	unit := result.App.Units()[0]
	helper, _ := unit.Component("Helper")
	assert.Empty(t, helper.CreateDependencies())

	cart, _ := unit.Component("Cart")
	cs, err := component.Assemble(ctx, result.App.Target(), cart)
	require.NoError(t, err)
	svc, err := cs.TimerService(ctx)
	require.NoError(t, err)
	_, err = svc.Timers(ctx)
	require.ErrorIs(t, err, timerservice.ErrNonFunctional)
	assert.Contains(t, err.Error(), "stateful session bean Cart")
}

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }

func (failingProvider) CreateTimerManager(context.Context, timerservice.BeanConfiguration, timerservice.Filter) (timerservice.TimerManager, error) {
	return nil, errors.New("cluster unavailable")
}

type failingModule struct{}

func (failingModule) Register(r *provider.Registry) {
	r.Register("failing", 100, provider.FactoryFunc(func() (timerservice.TimerManagementProvider, error) {
		return failingProvider{}, nil
	}))
}

// TestProviderPriority checks that the higher-priority provider wins.
func TestProviderPriority(t *testing.T) {
	// --- Arrange ---
	descriptor := `
deployment "app.mod" {
  application = "app"
  module      = "mod"

  component "Foo" {
    timeout_methods = true
  }
}
`

	// --- Act ---
	result := runIntegrationTest(t, map[string]string{"main.hcl": descriptor}, app.Config{},
		&memoryprovider.Module{Priority: 1}, failingModule{})

	// --- Assert ---
	require.NoError(t, result.Err, "installing factories does not contact the provider")
	assert.Contains(t, result.Output, "Provider: failing")

	ctx := context.Background()
	foo, _ := result.App.Units()[0].Component("Foo")
	cs, err := component.Assemble(ctx, result.App.Target(), foo)
	require.NoError(t, err)
	_, err = cs.TimerService(ctx)
	assert.ErrorContains(t, err, "cluster unavailable")
}

// TestDuplicateAcrossDeployments checks that a second unit claiming an
// installed name is rejected and leaves no trace.
func TestDuplicateAcrossDeployments(t *testing.T) {
	// --- Arrange ---
	descriptor := `
deployment "first" {
  application = "app"
  module      = "first"

  component "Foo" {
    timeout_methods = true
  }
}

deployment "second" {
  application = "app"
  module      = "second"

  component "Bar" {
    timeout_methods = true
  }
  component "Foo" {
    service_name    = "Foo-service"
    timeout_methods = true
  }
}
`

	// --- Act ---
	result := runIntegrationTest(t, map[string]string{"main.hcl": descriptor}, app.Config{Distributable: true})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "processing deployment second")
	assert.Len(t, installedKinds(t, result), 3, "only the first deployment's triple remains")
}

// TestEmptyDescriptorDirectory checks that a directory without descriptors
// installs nothing and still succeeds.
func TestEmptyDescriptorDirectory(t *testing.T) {
	result := runIntegrationTest(t, map[string]string{"README.txt": "no descriptors here"}, app.Config{})

	require.NoError(t, result.Err)
	assert.Empty(t, installedKinds(t, result))
	assert.Contains(t, result.Output, "No deployments found")
	assert.Contains(t, result.Output, "Provider: none")
}

// TestJSONSummary checks the machine-readable summary of a distributable run.
func TestJSONSummary(t *testing.T) {
	// --- Arrange ---
	descriptor := `
deployment "app.mod" {
  application = "app"
  module      = "mod"

  component "Foo" {
    timeout_methods = true
  }
}
`
	cfg := app.Config{Distributable: true, OutputFormat: "json", LogLevel: "error"}

	// --- Act ---
	result := runIntegrationTest(t, map[string]string{"main.hcl": descriptor}, cfg)

	// --- Assert ---
	require.NoError(t, result.Err)
	var summary app.Summary
	require.NoError(t, json.Unmarshal([]byte(result.Output), &summary))

	assert.Equal(t, memoryprovider.Name, summary.Provider)
	require.Len(t, summary.Services, 3)
	want := []app.BindingSummary{{Unit: "app.mod", Component: "Foo", Service: "Foo-service.timer-service-factory"}}
	if diff := cmp.Diff(want, summary.Bindings); diff != "" {
		t.Fatalf("bindings mismatch (-want +got):\n%s", diff)
	}
	for _, svc := range summary.Services {
		assert.Equal(t, "up", svc.Status, svc.Name)
	}
}
