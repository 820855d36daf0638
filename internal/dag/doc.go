// Package dag is a small, concurrency-safe directed acyclic graph over string
// IDs. The installer uses it to validate a batch of service nodes and to
// split the batch into levels that can be started in order.
package dag
