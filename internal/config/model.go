package config

// Model is the unified, format-agnostic representation of every deployment
// descriptor that was loaded.
type Model struct {
	Deployments []*Deployment
}

// Deployment is the format-agnostic representation of a `deployment` block.
type Deployment struct {
	Name string
	// Parent names the enclosing deployment, if any.
	Parent      string
	Application string
	Module      string
	Distinct    string

	Components    []*Component
	TimerServices []*TimerService
}

// Component is the format-agnostic representation of a `component` block.
type Component struct {
	Name string
	// ServiceName overrides the default `<name>-service` base name.
	ServiceName string
	// Applicable reports whether timer services apply to the component at all.
	Applicable     bool
	TimeoutMethods bool
	Stateful       bool
}

// TimerService is one assembly-descriptor entry assigning a data store to a
// component, or to every component when EJBName is "*".
type TimerService struct {
	EJBName   string
	DataStore string
}
