package hclmodel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/threemf/internal/field"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/object"
	"github.com/vk/threemf/internal/resource"
)

const sphereModel = `
function "sphere" {
  id = 1

  input "pos" {
    type = vector
  }
  output "shape" {
    type      = scalar
    reference = sub.result
  }
  output "color" {
    type      = vector
    reference = inputs.pos
  }

  node "subtraction" "sub" {
    inputs = { A = len.result, B = radius.value }
  }
  node "length" "len" {
    inputs = { A = inputs.pos }
  }
  node "constant" "radius" {
    value = 10
  }
}

mesh "domain" {
  id        = 2
  vertices  = [[0, 0, 0], [1, 0, 0], [0, 1, 0], [0, 0, 1]]
  triangles = [[0, 2, 1], [0, 1, 3], [1, 2, 3], [0, 3, 2]]
}

levelset "part" {
  id          = 3
  function    = 1
  mesh        = 2
  volume_data = 6
  uuid        = "0a6f9c52-5d3e-4c9b-8d7e-1f2a3b4c5d6e"
  part_number = "LS-1"
}
`

const fieldsModel = `
scalar_field "half" {
  id    = 4
  value = 0.5
}

composed_field "both" {
  id      = 5
  method  = "min"
  field1  = 4
  field2  = 8
  factor1 = 2
}

volume_data "vd" {
  id = 6
  color {
    function = 1
    channel  = "color"
  }
  property "density" {
    function = 1
    channel  = "shape"
  }
}

components "asm" {
  id = 7
  component {
    object    = 2
    transform = [1, 0, 0, 0, 1, 0, 0, 0, 1, 5, 0, 0]
  }
}

function_field "distance" {
  id       = 8
  function = 1
  channel  = "shape"
}

image3d "stack" {
  id     = 9
  sheets = ["/3D/img/0.png", "/3D/img/1.png"]
}

image_field "green" {
  id      = 10
  image   = 9
  channel = "G"
  scale   = 0.5
}
`

func writeModel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, files map[string]string) (*Document, hcl.Diagnostics) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeModel(t, dir, name, content)
	}
	return NewLoader().LoadPaths(context.Background(), dir)
}

func TestLoadModel(t *testing.T) {
	doc, diags := load(t, map[string]string{"sphere.hcl": sphereModel, "fields.hcl": fieldsModel})
	require.False(t, diags.HasErrors(), diags.Error())
	m := doc.Model
	require.Len(t, m.Resources(), 10)

	r, err := m.Resolve("", 1)
	require.NoError(t, err)
	fn, ok := r.(*implicit.Function)
	require.True(t, ok)
	assert.Equal(t, "sphere", fn.Identifier())
	assert.Equal(t, "sphere", doc.Name(fn.PackageResourceID()))
	assert.Equal(t, "function", doc.Kinds[fn.PackageResourceID()])
	require.NoError(t, fn.Validate())
	require.NoError(t, fn.SortNodesTopologically())
	assert.Equal(t, []string{"len", "radius", "sub"}, nodeIDs(fn.Nodes()))

	radius, err := fn.FindNode("radius").Constant()
	require.NoError(t, err)
	assert.Equal(t, 10.0, radius)

	r, err = m.Resolve("", 3)
	require.NoError(t, err)
	ls, ok := r.(*object.LevelSetObject)
	require.True(t, ok)
	assert.Equal(t, "part", ls.Name())
	assert.Equal(t, "LS-1", ls.PartNumber())
	assert.Equal(t, "0a6f9c52-5d3e-4c9b-8d7e-1f2a3b4c5d6e", ls.UUID().String())
	assert.NoError(t, ls.Validate())

	r, err = m.Resolve("", 5)
	require.NoError(t, err)
	composed := r.(*field.Composed)
	assert.Equal(t, field.MethodMin, composed.Method())
	assert.Equal(t, 2.0, composed.Factor1())
	assert.Equal(t, 1.0, composed.Factor2())
	assert.NoError(t, composed.Validate())

	for _, res := range m.Resources() {
		if v, ok := res.(interface{ Validate() error }); ok {
			assert.NoError(t, v.Validate(), doc.Name(res.PackageResourceID()))
		}
	}

	sorted, err := m.SortedResources()
	require.NoError(t, err)
	assert.Len(t, sorted, 10)
}

func TestLoadForwardAndStringReferences(t *testing.T) {
	doc, diags := load(t, map[string]string{"f.hcl": `
function "f" {
  id = 1
  output "shape" {
    type      = scalar
    reference = "c.1.value"
  }
  node "addition" "add" {
    inputs = { A = "c.1.value", B = c2.value }
  }
  node "constant" "c.1" {
    value = 1
  }
  node "constant" "c2" {
    value = 2
  }
}
`})
	require.False(t, diags.HasErrors(), diags.Error())
	r, err := doc.Model.Resolve("", 1)
	require.NoError(t, err)
	fn := r.(*implicit.Function)
	require.NoError(t, fn.SortNodesTopologically())
	assert.Equal(t, []string{"c.1", "c2", "add"}, nodeIDs(fn.Nodes()))
}

func TestLoadLiterals(t *testing.T) {
	doc, diags := load(t, map[string]string{"f.hcl": `
function "f" {
  id = 1
  node "constvec" "v" {
    value = [1, 2, 3]
  }
  node "constmat" "m" {
    value = [[1, 0, 0, 0], [0, 1, 0, 0], [0, 0, 1, 0], [0, 0, 0, 1]]
  }
  node "resource" "r" {
    value = 7
  }
  node "functioncall" "call" {
    inputs = { functionID = r.value }
    input "x" {
      type      = vector
      reference = v.vector
    }
    output "y" {
      type = scalar
    }
  }
}
`})
	require.False(t, diags.HasErrors(), diags.Error())
	r, err := doc.Model.Resolve("", 1)
	require.NoError(t, err)
	fn := r.(*implicit.Function)

	vec, err := fn.FindNode("v").Vector()
	require.NoError(t, err)
	assert.Equal(t, 3.0, vec.Z)
	id, err := fn.FindNode("r").ModelResourceID()
	require.NoError(t, err)
	assert.Equal(t, resource.ModelResourceID(7), id)

	call := fn.FindNode("call")
	assert.Equal(t, implicit.PortVector, call.FindInput("x").Type())
	assert.Equal(t, implicit.PortScalar, call.FindOutput("y").Type())
	assert.True(t, call.ArePortsValid())
	assert.NoError(t, fn.ResolveAll())
}

func TestLoadDanglingReferenceFailsAtValidation(t *testing.T) {
	doc, diags := load(t, map[string]string{"f.hcl": `
function "f" {
  id = 1
  node "sin" "s" {
    inputs = { A = ghost.value }
  }
}
`})
	require.False(t, diags.HasErrors(), diags.Error())
	r, err := doc.Model.Resolve("", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, r.(*implicit.Function).Validate(), implicit.ErrUnresolvedReference)
}

func TestLoadDiagnostics(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		summary string
	}{
		{
			name:    "syntax error",
			content: `function "f" {`,
			summary: "Unclosed configuration block",
		},
		{
			name:    "unknown node type",
			content: "function \"f\" {\n  id = 1\n  node \"teleport\" \"t\" {}\n}\n",
			summary: "Unknown node type",
		},
		{
			name:    "unsupported port type",
			content: "function \"f\" {\n  id = 1\n  input \"p\" {\n    type = string\n  }\n}\n",
			summary: "Unsupported type",
		},
		{
			name:    "unknown input",
			content: "function \"f\" {\n  id = 1\n  node \"sin\" \"s\" {\n    inputs = { Q = s.result }\n  }\n}\n",
			summary: "Unknown input",
		},
		{
			name:    "invalid literal",
			content: "function \"f\" {\n  id = 1\n  node \"constvec\" \"v\" {\n    value = [1, 2]\n  }\n}\n",
			summary: "Invalid node value",
		},
		{
			name:    "duplicate resource id",
			content: "scalar_field \"a\" {\n  id = 1\n  value = 0\n}\nscalar_field \"b\" {\n  id = 1\n  value = 0\n}\n",
			summary: `Cannot declare scalar_field "b"`,
		},
		{
			name:    "zero resource id",
			content: "scalar_field \"a\" {\n  id = 0\n  value = 0\n}\n",
			summary: "Invalid resource id",
		},
		{
			name:    "unknown level set reference",
			content: "levelset \"ls\" {\n  id = 1\n  function = 42\n}\n",
			summary: "Unknown resource",
		},
		{
			name:    "invalid composition method",
			content: "composed_field \"c\" {\n  id = 1\n  method = \"average\"\n}\n",
			summary: "Invalid composition method",
		},
		{
			name:    "invalid uuid",
			content: "mesh \"m\" {\n  id = 1\n  uuid = \"nope\"\n  vertices = []\n  triangles = []\n}\n",
			summary: "Invalid UUID",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, diags := load(t, map[string]string{"model.hcl": tc.content})
			require.True(t, diags.HasErrors())
			var summaries []string
			for _, d := range diags.Errs() {
				summaries = append(summaries, d.(*hcl.Diagnostic).Summary)
			}
			assert.Contains(t, summaries, tc.summary)
		})
	}
}

func TestLoadZeroIDReportsOwnBlock(t *testing.T) {
	doc, diags := load(t, map[string]string{
		"m.hcl": "function \"f\" {\n  id = 0\n}\n\nmesh \"m\" {\n  id        = 1\n  vertices  = []\n  triangles = []\n}\n",
	})
	errs := diags.Errs()
	require.Len(t, errs, 1, diags.Error())
	diag := errs[0].(*hcl.Diagnostic)
	assert.Equal(t, "Invalid resource id", diag.Summary)
	require.NotNil(t, diag.Subject)
	assert.Equal(t, 2, diag.Subject.Start.Line)

	require.Len(t, doc.Model.Resources(), 1)
	r, err := doc.Model.Resolve("", 1)
	require.NoError(t, err)
	assert.IsType(t, &object.MeshObject{}, r)
}

func TestLoadPathsWithoutFiles(t *testing.T) {
	_, diags := NewLoader().LoadPaths(context.Background(), t.TempDir())
	require.True(t, diags.HasErrors())
	assert.Equal(t, "No model files found", diags[0].Summary)
}

func nodeIDs(nodes []*implicit.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Identifier()
	}
	return ids
}
