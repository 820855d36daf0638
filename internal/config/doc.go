// Package config defines the format-agnostic descriptor model for deployment
// units, along with the Loader interface for reading descriptors from
// various sources.
//
// The `config.Model` is the single source of truth for the `deployment`
// package. Concrete loaders, such as the HCL one, are provided in separate
// packages.
package config
