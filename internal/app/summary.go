package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Summary is the machine-readable report written after a run.
type Summary struct {
	Provider string           `json:"provider"`
	Services []ServiceSummary `json:"services"`
	Bindings []BindingSummary `json:"bindings"`
}

// ServiceSummary describes one installed node.
type ServiceSummary struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Component string   `json:"component"`
	Status    string   `json:"status"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// BindingSummary describes the factory a component's create service is bound to.
type BindingSummary struct {
	Unit      string `json:"unit"`
	Component string `json:"component"`
	Service   string `json:"service"`
}

func (a *App) summary(ctx context.Context, providerName string) (*Summary, error) {
	if providerName == "" {
		providerName = "none"
	}
	s := &Summary{Provider: providerName, Services: []ServiceSummary{}, Bindings: []BindingSummary{}}

	for _, n := range a.target.AllNodes(ctx) {
		status, _ := a.target.Status(ctx, n.Name)
		deps, err := a.target.DependenciesOf(ctx, n.Name)
		if err != nil {
			return nil, err
		}
		svc := ServiceSummary{Name: n.ID(), Kind: n.Kind.String(), Component: n.Component, Status: status.String()}
		for _, d := range deps {
			svc.DependsOn = append(svc.DependsOn, d.String())
		}
		s.Services = append(s.Services, svc)
	}

	for _, u := range a.units {
		for _, c := range u.Components {
			for _, dep := range c.CreateDependencies() {
				s.Bindings = append(s.Bindings, BindingSummary{Unit: u.Name, Component: c.ComponentName, Service: dep.Name.String()})
			}
		}
	}
	return s, nil
}

func (a *App) writeSummary(ctx context.Context, providerName string) error {
	s, err := a.summary(ctx, providerName)
	if err != nil {
		return err
	}

	if a.config.OutputFormat == "json" {
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Fprintf(a.outW, "Provider: %s\n\n", s.Provider)
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tKIND\tCOMPONENT\tSTATUS\tDEPENDS ON")
	for _, svc := range s.Services {
		deps := strings.Join(svc.DependsOn, ", ")
		if deps == "" {
			deps = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", svc.Name, svc.Kind, svc.Component, svc.Status, deps)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.outW)
	tw = tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tCOMPONENT\tBOUND TO")
	for _, b := range s.Bindings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Unit, b.Component, b.Service)
	}
	return tw.Flush()
}
