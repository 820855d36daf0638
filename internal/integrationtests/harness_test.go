package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/timerwire/internal/app"
	"github.com/specialistvlad/timerwire/internal/hcl_adapter"
	"github.com/specialistvlad/timerwire/internal/provider"
	"github.com/specialistvlad/timerwire/internal/testutil"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// runIntegrationTest writes files to a temporary directory, points a fresh
// app at it and runs it once.
func runIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...provider.Module) *harnessResult {
	t.Helper()

	cfg.DescriptorPath = testutil.WriteFiles(t, files)
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 4
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	cfg.LogFormat = "text"

	out := &testutil.SafeBuffer{}
	a := app.NewApp(out, &cfg, hcl_adapter.NewLoader(), modules...)
	err := a.Run(context.Background())

	return &harnessResult{Output: out.String(), Err: err, App: a}
}
