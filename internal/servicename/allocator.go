package servicename

import "fmt"

// FactorySegment is the segment appended to a component's service name to
// address its timer-service factory.
const FactorySegment = "timer-service-factory"

// Variant selects which timer-service factory node a name is allocated for.
type Variant int

const (
	// Plain is the single factory installed when no distributable provider exists.
	Plain Variant = iota
	// Transient is the factory managing in-memory timers only.
	Transient
	// Persistent is the factory managing durable timers only.
	Persistent
	// Composite is the router in front of the transient and persistent factories.
	Composite
)

func (v Variant) String() string {
	switch v {
	case Plain:
		return "PLAIN"
	case Transient:
		return "TRANSIENT"
	case Persistent:
		return "PERSISTENT"
	case Composite:
		return "COMPOSITE"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Allocate derives the service name of a timer-service factory node for the
// component whose service name is base.
//
// Plain and Composite share `<base>.timer-service-factory` so that consumers
// bind to the same name whichever topology was chosen. The filtered variants
// append `$TRANSIENT` or `$PERSISTENT` to that name.
func Allocate(base Name, variant Variant) Name {
	name := base.Append(FactorySegment)
	switch variant {
	case Transient, Persistent:
		return name.WithSuffix("$" + variant.String())
	default:
		return name
	}
}
