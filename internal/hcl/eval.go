package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes `path.root` (the directory of the file being
// decoded) and a small set of string functions to puzzle expressions.
func newEvalContext(dir string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path": cty.ObjectVal(map[string]cty.Value{
				"root": cty.StringVal(dir),
			}),
		},
		Functions: map[string]function.Function{
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"lower":     stdlib.LowerFunc,
			"reverse":   stdlib.ReverseFunc,
			"strlen":    stdlib.StrlenFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"upper":     stdlib.UpperFunc,
		},
	}
}
