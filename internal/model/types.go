package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCty converts an HCL expression that represents a type keyword
// (e.g. `string`) into its cty.Type. Only primitive keywords are accepted;
// complex type constructors are reported as diagnostics, not supported.
func typeExprToCty(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	traversal, hclDiags := hcl.AbsTraversalForExpr(expr)
	if hclDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a simple type keyword like 'string', 'number', or 'bool'.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	switch name := traversal.RootName(); name {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	case "any":
		return cty.DynamicPseudoType, diags
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid field type. Supported types are: string, number, bool, any.", name),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
