package timerservice

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNonFunctional is returned by every operation of a non-functional timer service.
	ErrNonFunctional = errors.New("timer service is not functional")
	// ErrFilterMismatch is returned when a factory is asked for a timer its filter excludes.
	ErrFilterMismatch = errors.New("timer persistence class not managed by this timer service")
	// ErrTimerNotFound is returned when cancelling an unknown timer.
	ErrTimerNotFound = errors.New("timer not found")
)

// ComponentRef identifies the component a timer service is created for.
type ComponentRef struct {
	Name string
}

// TimerConfig describes a timer to create. Schedule computation is left to
// the engine; Expiration is recorded as given.
type TimerConfig struct {
	Persistent bool
	Expiration time.Time
	Info       any
}

// Timer is a created timer as seen through a TimerService.
type Timer struct {
	ID         string
	Component  string
	Persistent bool
	Expiration time.Time
	Info       any
	// Store is the data store the timer is kept in. Empty for transient timers.
	Store string
}

// TimerService manages the timers of one component.
type TimerService interface {
	CreateTimer(ctx context.Context, cfg TimerConfig) (*Timer, error)
	Timers(ctx context.Context) ([]*Timer, error)
	Cancel(ctx context.Context, id string) error
}

// ManagedTimerServiceFactory creates the TimerService of a component. Every
// installed timer-service factory node resolves to one of these.
type ManagedTimerServiceFactory interface {
	CreateTimerService(ctx context.Context, component ComponentRef) (TimerService, error)
}
