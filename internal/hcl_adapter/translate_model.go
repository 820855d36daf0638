// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"

	"github.com/specialistvlad/timerwire/internal/config"
	"github.com/specialistvlad/timerwire/internal/ctxlog"
)

// translateDeployment converts the HCL-specific deployment schema into the agnostic model.
func (l *Loader) translateDeployment(ctx context.Context, d *Deployment) *config.Deployment {
	logger := ctxlog.FromContext(ctx).With("deployment", d.Name)
	logger.Debug("Translating HCL deployment to internal config model.", "components", len(d.Components), "timer_services", len(d.TimerServices))

	out := &config.Deployment{
		Name:        d.Name,
		Parent:      d.Parent,
		Application: d.Application,
		Module:      d.Module,
		Distinct:    d.Distinct,
	}
	for _, c := range d.Components {
		out.Components = append(out.Components, translateComponent(c))
	}
	for _, ts := range d.TimerServices {
		out.TimerServices = append(out.TimerServices, &config.TimerService{
			EJBName:   ts.EJBName,
			DataStore: ts.DataStore,
		})
	}
	return out
}

func translateComponent(c *Component) *config.Component {
	applicable := true
	if c.Applicable != nil {
		applicable = *c.Applicable
	}
	return &config.Component{
		Name:           c.Name,
		ServiceName:    c.ServiceName,
		Applicable:     applicable,
		TimeoutMethods: c.TimeoutMethods,
		Stateful:       c.Stateful,
	}
}
