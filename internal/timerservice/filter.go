package timerservice

import (
	"fmt"

	"github.com/specialistvlad/timerwire/internal/servicename"
)

// Filter restricts the timers a factory manages by persistence class. It also
// qualifies the service name of the factory node it is applied to.
type Filter int

const (
	// Transient selects in-memory timers.
	Transient Filter = iota + 1
	// Persistent selects durably stored timers.
	Persistent
)

func (f Filter) String() string {
	switch f {
	case Transient:
		return "TRANSIENT"
	case Persistent:
		return "PERSISTENT"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Variant returns the service name variant the filter corresponds to.
func (f Filter) Variant() servicename.Variant {
	if f == Persistent {
		return servicename.Persistent
	}
	return servicename.Transient
}

// Apply qualifies an unfiltered factory name, e.g.
// `Foo-service.timer-service-factory` becomes `Foo-service.timer-service-factory$TRANSIENT`.
func (f Filter) Apply(name servicename.Name) servicename.Name {
	return name.WithSuffix("$" + f.String())
}

// Accepts reports whether a timer of the given persistence class passes the filter.
func (f Filter) Accepts(persistent bool) bool {
	if f == Persistent {
		return persistent
	}
	return !persistent
}

// FilterFor returns the filter whose class matches a timer.
func FilterFor(persistent bool) Filter {
	if persistent {
		return Persistent
	}
	return Transient
}
