package hclmodel

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/threemf/internal/ctxlog"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/resource"
)

func buildFunction(ctx context.Context, m *resource.Model, block *hcl.Block, b *functionBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	fn, err := implicit.NewFunction(m, resource.ModelResourceID(b.ID))
	if err != nil {
		return nil, declareError(block, err)
	}
	fn.SetIdentifier(block.Labels[0])
	fn.SetDisplayName(b.DisplayName)

	var diags hcl.Diagnostics
	for _, pb := range b.Inputs {
		if !isNullExpr(pb.Reference) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected reference",
				Detail:   fmt.Sprintf("Function input %q is fed by callers and cannot have a reference.", pb.Name),
				Subject:  pb.Reference.Range().Ptr(),
			})
		}
		diags = append(diags, addBoundaryPort(fn.AddInput, pb, &block.DefRange)...)
	}
	for _, pb := range b.Outputs {
		diags = append(diags, addBoundaryPort(fn.AddOutput, pb, &block.DefRange)...)
		if p := fn.FindOutput(pb.Name); p != nil && !isNullExpr(pb.Reference) {
			ref, refDiags := referenceFromExpr(pb.Reference)
			diags = append(diags, refDiags...)
			if !refDiags.HasErrors() {
				p.SetReference(ref)
			}
		}
	}
	for _, nb := range b.Nodes {
		diags = append(diags, addNode(fn, nb, &block.DefRange)...)
	}

	logger.Debug("Function declared.", "id", b.ID, "nodes", len(fn.Nodes()), "inputs", len(fn.Inputs()), "outputs", len(fn.Outputs()))
	return fn.PackageResourceID(), diags
}

func addBoundaryPort(add func(string, string, implicit.PortType) (*implicit.Port, error), pb *portBlock, subject *hcl.Range) hcl.Diagnostics {
	if isNullExpr(pb.Type) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing port type",
			Detail:   fmt.Sprintf("Function port %q needs a type.", pb.Name),
			Subject:  subject,
		}}
	}
	t, diags := portTypeFromExpr(pb.Type)
	if diags.HasErrors() {
		return diags
	}
	if _, err := add(pb.Name, pb.DisplayName, t); err != nil {
		return hcl.Diagnostics{errorDiag("Invalid function port", err, pb.Type.Range().Ptr())}
	}
	return nil
}

func addNode(fn *implicit.Function, nb *nodeBlock, subject *hcl.Range) hcl.Diagnostics {
	nt, err := implicit.NodeTypeFromString(nb.Type)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Unknown node type", err, subject)}
	}
	cfg, err := implicit.ConfigurationFromString(nb.Configuration)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Invalid node configuration", err, subject)}
	}
	n, err := fn.AddNode(nt, cfg, nb.Name, nb.DisplayName, nb.Tag)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Invalid node", err, subject)}
	}

	var diags hcl.Diagnostics
	if !isNullExpr(nb.Value) {
		v, valDiags := nb.Value.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			if err := n.SetLiteral(v); err != nil {
				diags = append(diags, errorDiag("Invalid node value", err, nb.Value.Range().Ptr()))
			}
		}
	}

	for _, pb := range nb.OutputPorts {
		diags = append(diags, configurePort(n, implicit.Output, pb, subject)...)
	}
	for _, pb := range nb.InputPorts {
		diags = append(diags, configurePort(n, implicit.Input, pb, subject)...)
	}

	if !isNullExpr(nb.Inputs) {
		pairs, mapDiags := hcl.ExprMap(nb.Inputs)
		diags = append(diags, mapDiags...)
		for _, pair := range pairs {
			name := hcl.ExprAsKeyword(pair.Key)
			if name == "" {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid input name",
					Detail:   "Input names must be bare identifiers.",
					Subject:  pair.Key.Range().Ptr(),
				})
				continue
			}
			p := n.FindInput(name)
			if p == nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unknown input",
					Detail:   fmt.Sprintf("Node %q of type %s has no input %q.", nb.Name, nt, name),
					Subject:  pair.Key.Range().Ptr(),
				})
				continue
			}
			ref, refDiags := referenceFromExpr(pair.Value)
			diags = append(diags, refDiags...)
			if !refDiags.HasErrors() {
				p.SetReference(ref)
			}
		}
	}
	return diags
}

// configurePort adds or retypes a node port declared in a nested block.
func configurePort(n *implicit.Node, dir implicit.Direction, pb *portBlock, subject *hcl.Range) hcl.Diagnostics {
	find, add := n.FindInput, n.AddInput
	if dir == implicit.Output {
		find, add = n.FindOutput, n.AddOutput
	}

	p := find(pb.Name)
	if p == nil {
		var err error
		if p, err = add(pb.Name, pb.DisplayName); err != nil {
			return hcl.Diagnostics{errorDiag("Invalid node port", err, subject)}
		}
	} else if pb.DisplayName != "" {
		p.SetDisplayName(pb.DisplayName)
	}

	var diags hcl.Diagnostics
	if !isNullExpr(pb.Type) {
		t, typeDiags := portTypeFromExpr(pb.Type)
		diags = append(diags, typeDiags...)
		if !typeDiags.HasErrors() {
			p.SetType(t)
		}
	}
	if !isNullExpr(pb.Reference) {
		if dir == implicit.Output {
			return append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected reference",
				Detail:   fmt.Sprintf("Output %q of node %q cannot have a reference; link it from the consuming input.", pb.Name, n.Identifier()),
				Subject:  pb.Reference.Range().Ptr(),
			})
		}
		ref, refDiags := referenceFromExpr(pb.Reference)
		diags = append(diags, refDiags...)
		if !refDiags.HasErrors() {
			p.SetReference(ref)
		}
	}
	return diags
}
