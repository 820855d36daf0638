package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/timerwire/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// newEvalContext exposes the processor defaults to descriptor expressions as
// `defaults.data_store` and `defaults.thread_pool`. An unset default is null,
// so a descriptor referring to it fails to decode instead of silently
// receiving an empty string.
func newEvalContext(d config.Defaults) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"data_store":  stringOrNull(d.DataStore),
				"thread_pool": stringOrNull(d.ThreadPool),
			}),
		},
	}
}

func stringOrNull(s string) cty.Value {
	if s == "" {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(s)
}
