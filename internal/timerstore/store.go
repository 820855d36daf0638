// Package timerstore resolves which timer data store each component of a
// deployment unit persists its timers to.
//
// Assignments come from the assembly descriptor's timer-service entries. An
// entry for a named component wins over the wildcard entry ("*"), which wins
// over the process-wide default store.
package timerstore

// Wildcard is the entity name that assigns a store to every component.
const Wildcard = "*"

// MetaData is one assembly-descriptor timer-service entry.
type MetaData struct {
	EJBName       string
	DataStoreName string
}

// Assignments maps component names to store identifiers. The wildcard entry
// is kept apart from named entries so that no component name can shadow it.
type Assignments struct {
	named    map[string]string
	wildcard string
	hasAll   bool
}

// NewAssignments creates an empty set of assignments.
func NewAssignments() *Assignments {
	return &Assignments{named: make(map[string]string)}
}

// FromMetaData builds assignments by scanning entries in order. A later entry
// for the same name overwrites an earlier one.
func FromMetaData(entries []MetaData) *Assignments {
	a := NewAssignments()
	for _, e := range entries {
		a.Put(e.EJBName, e.DataStoreName)
	}
	return a
}

// Put assigns store to the named component, or to all components when name is
// Wildcard. Last write wins.
func (a *Assignments) Put(name, store string) {
	if name == Wildcard {
		a.wildcard = store
		a.hasAll = true
		return
	}
	a.named[name] = store
}

// Lookup returns the store assigned to name without any fallback.
func (a *Assignments) Lookup(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	store, ok := a.named[name]
	return store, ok
}

// WildcardStore returns the store assigned to all components, if any.
func (a *Assignments) WildcardStore() (string, bool) {
	if a == nil {
		return "", false
	}
	return a.wildcard, a.hasAll
}

// Len reports the number of entries, counting the wildcard entry once.
func (a *Assignments) Len() int {
	if a == nil {
		return 0
	}
	n := len(a.named)
	if a.hasAll {
		n++
	}
	return n
}

// Resolve returns the store for entityName: its own entry if present, else the
// wildcard entry if present, else defaultStore. It never fails; a nil
// assignments value behaves like an empty one.
func Resolve(entityName string, assignments *Assignments, defaultStore string) string {
	if store, ok := assignments.Lookup(entityName); ok {
		return store
	}
	if store, ok := assignments.WildcardStore(); ok {
		return store
	}
	return defaultStore
}
