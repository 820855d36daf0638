package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Deployments []*Deployment `hcl:"deployment,block"`
	Remain      hcl.Body      `hcl:",remain"`
}

// Deployment is the HCL schema of a `deployment` block.
type Deployment struct {
	Name          string          `hcl:"name,label"`
	Application   string          `hcl:"application,optional"`
	Module        string          `hcl:"module,optional"`
	Distinct      string          `hcl:"distinct,optional"`
	Parent        string          `hcl:"parent,optional"`
	Components    []*Component    `hcl:"component,block"`
	TimerServices []*TimerService `hcl:"timer_service,block"`
}

// Component is the HCL schema of a `component` block. Timer services apply
// unless `applicable = false`.
type Component struct {
	Name           string `hcl:"name,label"`
	ServiceName    string `hcl:"service_name,optional"`
	Applicable     *bool  `hcl:"applicable,optional"`
	TimeoutMethods bool   `hcl:"timeout_methods,optional"`
	Stateful       bool   `hcl:"stateful,optional"`
}

// TimerService is the HCL schema of a `timer_service` block.
type TimerService struct {
	EJBName   string `hcl:"ejb_name"`
	DataStore string `hcl:"data_store"`
}
