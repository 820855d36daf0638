package config

import (
	"fmt"

	"github.com/specialistvlad/timerwire/internal/deployment"
	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerstore"
)

// Units translates the model into deployment units, in descriptor order.
// Parents are resolved by name and must be declared in the same model.
func (m *Model) Units() ([]*deployment.Unit, error) {
	byName := make(map[string]*deployment.Unit, len(m.Deployments))
	units := make([]*deployment.Unit, 0, len(m.Deployments))

	for _, d := range m.Deployments {
		if d.Name == "" {
			return nil, fmt.Errorf("deployment without a name")
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("deployment %q is declared more than once", d.Name)
		}
		u, err := d.unit()
		if err != nil {
			return nil, err
		}
		byName[d.Name] = u
		units = append(units, u)
	}

	for _, d := range m.Deployments {
		if d.Parent == "" {
			continue
		}
		parent, ok := byName[d.Parent]
		if !ok {
			return nil, fmt.Errorf("deployment %q: parent %q is not declared", d.Name, d.Parent)
		}
		byName[d.Name].Parent = parent
	}

	for _, u := range units {
		seen := map[*deployment.Unit]bool{}
		for p := u; p != nil; p = p.Parent {
			if seen[p] {
				return nil, fmt.Errorf("deployment %q: parent chain loops back to %q", u.Name, p.Name)
			}
			seen[p] = true
		}
	}
	return units, nil
}

func (d *Deployment) unit() (*deployment.Unit, error) {
	u := &deployment.Unit{
		Name:            d.Name,
		ApplicationName: d.Application,
		ModuleName:      d.Module,
		DistinctName:    d.Distinct,
	}

	seen := make(map[string]bool, len(d.Components))
	for _, c := range d.Components {
		if seen[c.Name] {
			return nil, fmt.Errorf("deployment %q: component %q is declared more than once", d.Name, c.Name)
		}
		seen[c.Name] = true

		desc := deployment.NewComponentDescription(c.Name)
		if c.ServiceName != "" {
			name, err := servicename.Parse(c.ServiceName)
			if err != nil {
				return nil, fmt.Errorf("deployment %q, component %q: %w", d.Name, c.Name, err)
			}
			desc.ServiceName = name
		}
		desc.TimerServiceApplicable = c.Applicable
		desc.TimerServiceRequired = c.Applicable && c.TimeoutMethods
		desc.Stateful = c.Stateful
		u.Components = append(u.Components, desc)
	}

	for _, ts := range d.TimerServices {
		u.TimerServices = append(u.TimerServices, timerstore.MetaData{
			EJBName:       ts.EJBName,
			DataStoreName: ts.DataStore,
		})
	}
	return u, nil
}
