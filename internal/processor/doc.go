// Package processor wires timer services into deployment units.
//
// Processing a unit takes two passes. Deploy resolves the unit-wide inputs
// (store assignments, the shared timer registry, the invoker factory) and
// appends one work item to every component timer services apply to.
// Configure runs the work items, which build each component's factory nodes,
// installs all nodes of the unit in a single call, and binds every component's
// create service to its factory name.
//
// The distributable provider is selected once, when the processor is created,
// and is the same for every unit it processes.
package processor
