package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/timerwire/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		want       *app.Config
		shouldExit bool
		wantErr    string
	}{
		{
			name: "positional path with defaults",
			args: []string{"descriptors/"},
			want: &app.Config{
				DescriptorPath: "descriptors/",
				ThreadPool:     "default",
				LogFormat:      "json",
				LogLevel:       "info",
				OutputFormat:   "text",
				WorkerCount:    4,
			},
		},
		{
			name: "all flags",
			args: []string{
				"-d", "a.hcl", "-thread-pool", "timers", "-default-data-store", "db",
				"-distributable", "-healthcheck-port", "8080", "-log-format", "TEXT",
				"-log-level", "debug", "-output", "json", "-workers", "2",
			},
			want: &app.Config{
				DescriptorPath:   "a.hcl",
				ThreadPool:       "timers",
				DefaultDataStore: "db",
				Distributable:    true,
				HealthcheckPort:  8080,
				LogFormat:        "text",
				LogLevel:         "debug",
				OutputFormat:     "json",
				WorkerCount:      2,
			},
		},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "no path", args: []string{}, shouldExit: true},
		{name: "unknown flag", args: []string{"-bogus"}, wantErr: "flag provided but not defined"},
		{name: "bad log format", args: []string{"-log-format", "xml", "a"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "a"}, wantErr: "invalid log-level"},
		{name: "bad output", args: []string{"-output", "xml", "a"}, wantErr: "OutputFormat"},
		{name: "zero workers", args: []string{"-workers", "0", "a"}, wantErr: "WorkerCount"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			if tc.wantErr != "" {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.shouldExit, shouldExit)
			if tc.shouldExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.want, cfg)
		})
	}
}

func TestParse_SettingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte(`
thread_pool: from-file
default_data_store: file-db
distributable: true
workers: 9
`), 0644))

	cfg, _, err := Parse([]string{"-settings", settings, "-workers", "3", "a.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.ThreadPool)
	assert.Equal(t, "file-db", cfg.DefaultDataStore)
	assert.True(t, cfg.Distributable)
	assert.Equal(t, 3, cfg.WorkerCount, "explicit flags win over the settings file")
}

func TestParse_MissingSettingsFile(t *testing.T) {
	_, _, err := Parse([]string{"-settings", filepath.Join(t.TempDir(), "nope.yaml"), "a.hcl"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "opening settings file")
}
