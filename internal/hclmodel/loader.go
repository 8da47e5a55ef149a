package hclmodel

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/threemf/internal/ctxlog"
	"github.com/vk/threemf/internal/fsutil"
	"github.com/vk/threemf/internal/resource"
	"github.com/zclconf/go-cty/cty"
)

// Extension is the file extension searched for in directories.
const Extension = ".hcl"

// Document is a loaded model together with what is needed to report on it.
type Document struct {
	Model *resource.Model
	// Names maps every declared resource to its block label.
	Names map[*resource.PackageResourceID]string
	// Kinds maps every declared resource to its block type.
	Kinds map[*resource.PackageResourceID]string
	// Files holds the parsed sources for diagnostic rendering.
	Files map[string]*hcl.File
}

// Name returns the label of the block that declared pid.
func (d *Document) Name(pid *resource.PackageResourceID) string {
	return d.Names[pid]
}

// Loader turns HCL files into a Document.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files returns every file parsed so far, for rendering diagnostics.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// declared is one top-level block waiting to be turned into a resource.
type declared struct {
	block *hcl.Block
	file  string
}

// blockOrder is the order in which block types are materialized. Level sets
// come last because they hold package ids of other resources.
var blockOrder = []string{
	"function", "image3d", "scalar_field", "function_field", "image_field",
	"composed_field", "volume_data", "mesh", "components", "levelset",
}

// LoadPaths collects the .hcl files under paths and loads them.
func (l *Loader) LoadPaths(ctx context.Context, paths ...string) (*Document, hcl.Diagnostics) {
	files, err := fsutil.CollectFiles(Extension, paths...)
	if err != nil {
		return nil, hcl.Diagnostics{{Severity: hcl.DiagError, Summary: "Failed to collect model files", Detail: err.Error()}}
	}
	if len(files) == 0 {
		return nil, hcl.Diagnostics{{Severity: hcl.DiagError, Summary: "No model files found",
			Detail: fmt.Sprintf("No %s files were found under %v.", Extension, paths)}}
	}
	return l.LoadFiles(ctx, files...)
}

// LoadFiles parses every file and declares all their blocks in one model.
func (l *Loader) LoadFiles(ctx context.Context, files ...string) (*Document, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL model loader started.", "file_count", len(files))

	var diags hcl.Diagnostics
	byType := make(map[string][]declared)
	for _, file := range files {
		hclFile, fileDiags := l.parser.ParseHCLFile(file)
		diags = append(diags, fileDiags...)
		if fileDiags.HasErrors() {
			continue
		}
		content, contentDiags := hclFile.Body.Content(rootSchema)
		diags = append(diags, contentDiags...)
		for _, block := range content.Blocks {
			byType[block.Type] = append(byType[block.Type], declared{block: block, file: file})
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	doc := &Document{
		Model: resource.NewModel(""),
		Names: make(map[*resource.PackageResourceID]string),
		Kinds: make(map[*resource.PackageResourceID]string),
		Files: l.parser.Files(),
	}
	for _, blockType := range blockOrder {
		for _, d := range byType[blockType] {
			pid, blockDiags := l.declare(ctx, doc.Model, d.block)
			diags = append(diags, blockDiags...)
			if pid != nil {
				doc.Names[pid] = d.block.Labels[0]
				doc.Kinds[pid] = blockType
			}
		}
		logger.Debug("Declared blocks.", "type", blockType, "count", len(byType[blockType]))
	}

	logger.Info("Model loaded.", "files", len(files), "resources", len(doc.Model.Resources()), "errors", len(diags.Errs()))
	return doc, diags
}

// declare decodes one block and registers the resource it describes.
func (l *Loader) declare(ctx context.Context, m *resource.Model, block *hcl.Block) (*resource.PackageResourceID, hcl.Diagnostics) {
	ctx = ctxlog.With(ctx, "block", block.Type, "name", block.Labels[0])
	if diags := checkResourceID(block); diags.HasErrors() {
		return nil, diags
	}
	switch block.Type {
	case "function":
		var b functionBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildFunction(ctx, m, block, &b)
	case "mesh":
		var b meshBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildMesh(m, block, &b)
	case "components":
		var b componentsBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildComponents(m, block, &b)
	case "levelset":
		var b levelSetBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildLevelSet(m, block, &b)
	case "scalar_field":
		var b scalarFieldBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildScalarField(m, block, &b)
	case "composed_field":
		var b composedFieldBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildComposedField(m, block, &b)
	case "function_field":
		var b functionFieldBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildFunctionField(m, block, &b)
	case "image3d":
		var b image3DBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildImage3D(m, block, &b)
	case "image_field":
		var b imageFieldBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildImageField(m, block, &b)
	case "volume_data":
		var b volumeDataBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags
		}
		return buildVolumeData(m, block, &b)
	}
	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported block type",
		Detail:   fmt.Sprintf("Blocks of type %q are not supported.", block.Type),
		Subject:  &block.DefRange,
	}}
}

// checkResourceID rejects an explicit zero id. The model would otherwise
// assign the next free id and a later block declaring that id would be
// reported instead. A missing id is left to the block decoder.
func checkResourceID(block *hcl.Block) hcl.Diagnostics {
	content, _, _ := block.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "id"}},
	})
	if content == nil {
		return nil
	}
	attr, ok := content.Attributes["id"]
	if !ok {
		return nil
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || !v.IsKnown() || v.IsNull() || v.Type() != cty.Number {
		return nil
	}
	if v.AsBigFloat().Sign() != 0 {
		return nil
	}
	subject := attr.Expr.Range()
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid resource id",
		Detail:   fmt.Sprintf("The id of %s %q must be a positive integer.", block.Type, block.Labels[0]),
		Subject:  &subject,
	}}
}

// declareError reports a failure to register the resource of block.
func declareError(block *hcl.Block, err error) hcl.Diagnostics {
	return hcl.Diagnostics{errorDiag(fmt.Sprintf("Cannot declare %s %q", block.Type, block.Labels[0]), err, &block.DefRange)}
}

// lookup turns a local id written in block into a package id. Zero means
// the attribute was left out.
func lookup(m *resource.Model, block *hcl.Block, attr string, id uint32) (*resource.PackageResourceID, hcl.Diagnostics) {
	if id == 0 {
		return nil, nil
	}
	pid, ok := m.FindPackageResourceID(m.Path(), resource.ModelResourceID(id))
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown resource",
			Detail:   fmt.Sprintf("The %s attribute refers to resource %d, which is not declared.", attr, id),
			Subject:  &block.DefRange,
		}}
	}
	return pid, nil
}
