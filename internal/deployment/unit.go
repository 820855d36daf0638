// Package deployment holds the read-mostly model of a deployment unit and
// its components, as produced by the descriptor loader and consumed by the
// deployment processors.
//
// Processors never mutate a unit's metadata. They only append work items
// (configurators) and late-bound create dependencies to component
// descriptions, and attach a timer-service resource where one is required.
package deployment

import (
	"strings"

	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/specialistvlad/timerwire/internal/timerstore"
)

// Unit is one deployable artifact being processed.
type Unit struct {
	// Name is the unit's own name, e.g. "app.mod" or "orders.jar".
	Name string
	// Parent is the enclosing unit for sub-deployments of an application archive.
	Parent *Unit

	ApplicationName string
	ModuleName      string
	DistinctName    string

	// Components are kept in descriptor order.
	Components []*ComponentDescription
	// TimerServices are the assembly-descriptor timer-service entries, in order.
	TimerServices []timerstore.MetaData
}

// DeploymentName joins application, module and distinct name with '.',
// omitting an empty distinct name.
func (u *Unit) DeploymentName() string {
	parts := []string{u.ApplicationName, u.ModuleName}
	if u.DistinctName != "" {
		parts = append(parts, u.DistinctName)
	}
	return strings.Join(parts, ".")
}

// ServiceName is the name under which the unit itself is installed.
func (u *Unit) ServiceName() servicename.Name {
	if u.Parent != nil {
		return u.Parent.ServiceName().Append(u.Name)
	}
	return servicename.New("deployment", "unit", u.Name)
}

// Component returns the description with the given component name.
func (u *Unit) Component(name string) (*ComponentDescription, bool) {
	for _, c := range u.Components {
		if c.ComponentName == name {
			return c, true
		}
	}
	return nil, false
}
