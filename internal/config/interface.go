package config

import "context"

// Defaults are the processor-wide values a descriptor may refer to, e.g.
// `defaults.data_store` in HCL.
type Defaults struct {
	DataStore  string
	ThreadPool string
}

// Loader is the interface for a format-specific descriptor loader.
type Loader interface {
	// Load reads descriptors from the given paths and translates them into
	// the format-agnostic model.
	Load(ctx context.Context, defaults Defaults, paths ...string) (*Model, error)
}
