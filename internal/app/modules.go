package app

import (
	"github.com/specialistvlad/timerwire/internal/provider"
	"github.com/specialistvlad/timerwire/modules/memoryprovider"
)

// coreProviders is the definitive list of distributable timer providers
// compiled into the timerwire binary. They are registered only when the
// configuration asks for distributable timers.
var coreProviders = []provider.Module{
	&memoryprovider.Module{},
}
