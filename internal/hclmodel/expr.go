package hclmodel

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/implicit"
	"github.com/zclconf/go-cty/cty"
)

// isNullExpr reports whether an optional attribute was left out. gohcl
// fills missing hcl.Expression fields with a static null.
func isNullExpr(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

// portTypeFromExpr reads a port type keyword such as `vector`.
func portTypeFromExpr(expr hcl.Expression) (implicit.PortType, hcl.Diagnostics) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be one of the keywords scalar, vector, matrix or resourceid.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	t, err := implicit.PortTypeFromString(traversal.RootName())
	if err != nil {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a port type. Supported types are: scalar, vector, matrix, resourceid.", traversal.RootName()),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return t, nil
}

// referenceFromExpr reads a port reference written either as a traversal
// (`add.result`) or as a string (`"c.1.value"`).
func referenceFromExpr(expr hcl.Expression) (string, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		parts := []string{traversal.RootName()}
		for _, step := range traversal[1:] {
			attr, ok := step.(hcl.TraverseAttr)
			if !ok {
				return "", invalidReference(expr)
			}
			parts = append(parts, attr.Name)
		}
		if len(parts) < 2 {
			return "", invalidReference(expr)
		}
		return strings.Join(parts, "."), nil
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || v.Type() != cty.String {
		return "", invalidReference(expr)
	}
	return v.AsString(), nil
}

func invalidReference(expr hcl.Expression) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid port reference",
		Detail:   `A reference must be written as <node>.<port>, for example add.result or inputs.pos, or as a string.`,
		Subject:  expr.Range().Ptr(),
	}}
}

// transformFromValues builds a transform from the 12 values of the 3MF
// transform attribute. No values means identity.
func transformFromValues(values []float64, subject *hcl.Range) (geom.Matrix4x4, hcl.Diagnostics) {
	if len(values) == 0 {
		return geom.Identity(), nil
	}
	m, err := geom.NewTransform(values)
	if err != nil {
		return geom.Identity(), hcl.Diagnostics{errorDiag("Invalid transform", err, subject)}
	}
	return m, nil
}

func errorDiag(summary string, err error, subject *hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  subject,
	}
}
