// Package provider selects the distributable timer-management provider of
// the process.
//
// Provider modules register a named Factory with an explicit priority. The
// selection is made once, when the deployment processor is constructed, and
// the result gates the topology built for every component: no provider means
// a single plain factory per component, a provider means the transient,
// persistent and composite triple.
//
// Selection is deterministic. The factory with the highest priority wins;
// two factories sharing the highest priority are rejected rather than one
// being silently ignored.
package provider
