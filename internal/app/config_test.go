package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{DescriptorPath: "d", WorkerCount: 1}},
		{name: "json output", cfg: Config{DescriptorPath: "d", WorkerCount: 1, OutputFormat: "json"}},
		{name: "missing path", cfg: Config{WorkerCount: 1}, wantErr: "DescriptorPath"},
		{name: "no workers", cfg: Config{DescriptorPath: "d"}, wantErr: "WorkerCount"},
		{name: "bad output", cfg: Config{DescriptorPath: "d", WorkerCount: 1, OutputFormat: "xml"}, wantErr: "OutputFormat"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, *cfg)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	t.Run("all fields", func(t *testing.T) {
		s, err := LoadSettings(write("full.yaml", `
thread_pool: timers
default_data_store: db
distributable: false
workers: 8
`))
		require.NoError(t, err)
		require.NotNil(t, s.Distributable)
		assert.False(t, *s.Distributable)
		assert.Equal(t, Settings{ThreadPool: "timers", DefaultDataStore: "db", Distributable: s.Distributable, Workers: 8}, *s)
	})

	t.Run("empty file", func(t *testing.T) {
		s, err := LoadSettings(write("empty.yaml", ""))
		require.NoError(t, err)
		assert.Nil(t, s.Distributable)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadSettings(write("unknown.yaml", "threads: 3\n"))
		assert.ErrorContains(t, err, "parsing settings file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "opening settings file")
	})
}
