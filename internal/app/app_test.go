package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/timerwire/internal/config"
	"github.com/specialistvlad/timerwire/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	model    *config.Model
	err      error
	defaults config.Defaults
}

func (l *staticLoader) Load(_ context.Context, defaults config.Defaults, _ ...string) (*config.Model, error) {
	l.defaults = defaults
	return l.model, l.err
}

func shopModel() *config.Model {
	return &config.Model{Deployments: []*config.Deployment{{
		Name:        "app.mod",
		Application: "app",
		Module:      "mod",
		Components: []*config.Component{
			{Name: "Foo", Applicable: true, TimeoutMethods: true},
			{Name: "Cart", Applicable: true, Stateful: true},
		},
	}}}
}

func newTestApp(t *testing.T, cfg Config, loader config.Loader) (*App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.DescriptorPath = "unused"
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	out := &testutil.SafeBuffer{}
	return NewApp(out, &cfg, loader), out
}

func TestRun_Legacy(t *testing.T) {
	loader := &staticLoader{model: shopModel()}
	a, out := newTestApp(t, Config{ThreadPool: "default", DefaultDataStore: "db"}, loader)

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, config.Defaults{DataStore: "db", ThreadPool: "default"}, loader.defaults)
	assert.Len(t, a.Target().AllNodes(context.Background()), 2)
	assert.Contains(t, out.String(), "Provider: none")
	assert.Contains(t, out.String(), "Foo-service.timer-service-factory")
	assert.Contains(t, out.String(), "non-functional")
}

func TestRun_DistributableJSON(t *testing.T) {
	loader := &staticLoader{model: shopModel()}
	a, out := newTestApp(t, Config{Distributable: true, OutputFormat: "json"}, loader)

	require.NoError(t, a.Run(context.Background()))

	var s Summary
	require.NoError(t, json.Unmarshal([]byte(out.String()), &s))
	assert.Equal(t, "memory", s.Provider)
	require.Len(t, s.Services, 4)

	byName := map[string]ServiceSummary{}
	for _, svc := range s.Services {
		byName[svc.Name] = svc
		assert.Equal(t, "up", svc.Status)
	}
	composite := byName["Foo-service.timer-service-factory"]
	assert.Equal(t, "composite", composite.Kind)
	assert.ElementsMatch(t, []string{
		"Foo-service.timer-service-factory$TRANSIENT",
		"Foo-service.timer-service-factory$PERSISTENT",
	}, composite.DependsOn)

	assert.ElementsMatch(t, []BindingSummary{
		{Unit: "app.mod", Component: "Foo", Service: "Foo-service.timer-service-factory"},
		{Unit: "app.mod", Component: "Cart", Service: "Cart-service.timer-service-factory"},
	}, s.Bindings)
}

func TestRun_Errors(t *testing.T) {
	t.Run("loader", func(t *testing.T) {
		a, _ := newTestApp(t, Config{}, &staticLoader{err: errors.New("disk on fire")})
		assert.ErrorContains(t, a.Run(context.Background()), "disk on fire")
	})

	t.Run("invalid descriptors", func(t *testing.T) {
		model := &config.Model{Deployments: []*config.Deployment{{Name: "a", Parent: "ghost"}}}
		a, _ := newTestApp(t, Config{}, &staticLoader{model: model})
		assert.ErrorContains(t, a.Run(context.Background()), "invalid descriptors")
	})

	t.Run("duplicate across units", func(t *testing.T) {
		model := shopModel()
		second := *model.Deployments[0]
		second.Name = "other.mod"
		model.Deployments = append(model.Deployments, &second)

		a, _ := newTestApp(t, Config{}, &staticLoader{model: model})
		err := a.Run(context.Background())
		assert.ErrorContains(t, err, "processing deployment other.mod")
		assert.Len(t, a.Target().AllNodes(context.Background()), 2, "the failing unit is rolled back")
	})
}

func TestHandler(t *testing.T) {
	a, _ := newTestApp(t, Config{}, &staticLoader{model: shopModel()})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, a.Run(context.Background()))

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `timerwire_installer_nodes_installed_total{kind="plain"} 1`)
	assert.Contains(t, body.String(), `timerwire_processor_deployments_total{status="ok"} 1`)
}
