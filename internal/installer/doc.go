// Package installer installs batches of service nodes into a
// topologystore.Store.
//
// A batch is validated as a whole before anything is written: names must be
// unique both within the batch and against the target, every dependency must
// be in the batch or already installed, and the batch must be acyclic. Valid
// batches are started level by level. Nodes of the same level do not depend
// on each other and start concurrently on a bounded worker pool.
//
// An install call is all or nothing. If any node fails to start, every node
// the call added is removed from the target before the error is returned.
package installer
