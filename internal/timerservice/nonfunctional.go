package timerservice

import "context"

// NonFunctionalError carries the diagnostic message of a non-functional
// timer service.
type NonFunctionalError struct {
	Message string
}

func (e *NonFunctionalError) Error() string { return e.Message }

func (e *NonFunctionalError) Unwrap() error { return ErrNonFunctional }

// NonFunctionalFactory is installed for components that structurally support
// timers but declare no timeout methods. Creating the service succeeds so the
// component can start; every timer operation on it fails with Message.
type NonFunctionalFactory struct {
	Config  FactoryConfiguration
	Message string
}

// CreateTimerService implements ManagedTimerServiceFactory.
func (f *NonFunctionalFactory) CreateTimerService(ctx context.Context, component ComponentRef) (TimerService, error) {
	return &nonFunctionalService{err: &NonFunctionalError{Message: f.Message}}, nil
}

type nonFunctionalService struct {
	err *NonFunctionalError
}

func (s *nonFunctionalService) CreateTimer(context.Context, TimerConfig) (*Timer, error) {
	return nil, s.err
}

func (s *nonFunctionalService) Timers(context.Context) ([]*Timer, error) {
	return nil, s.err
}

func (s *nonFunctionalService) Cancel(context.Context, string) error {
	return s.err
}
