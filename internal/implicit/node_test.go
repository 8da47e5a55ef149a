package implicit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/resource"
	"github.com/zclconf/go-cty/cty"
)

func TestLiteralRoundTrip(t *testing.T) {
	f := newTestFunction(t)

	c := mustAddNode(t, f, NodeConstant, "c")
	require.NoError(t, c.SetConstant(2.5))
	got, err := c.Constant()
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	v := mustAddNode(t, f, NodeConstVec, "v")
	_, err = v.Vector()
	assert.ErrorIs(t, err, ErrInvalidLiteralAccess, "vector read before it is set")
	require.NoError(t, v.SetVector(geom.Vector3{X: 1, Y: 2, Z: 3}))
	vec, err := v.Vector()
	require.NoError(t, err)
	assert.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3}, vec)

	m := mustAddNode(t, f, NodeConstMat, "m")
	_, err = m.Matrix()
	assert.ErrorIs(t, err, ErrInvalidLiteralAccess)
	require.NoError(t, m.SetMatrix(geom.Identity()))
	mat, err := m.Matrix()
	require.NoError(t, err)
	assert.Equal(t, geom.Identity(), mat)

	r := mustAddNode(t, f, NodeConstResourceID, "r")
	assert.False(t, r.HasLiteral())
	require.NoError(t, r.SetModelResourceID(4))
	id, err := r.ModelResourceID()
	require.NoError(t, err)
	assert.Equal(t, resource.ModelResourceID(4), id)
}

func TestLiteralMismatch(t *testing.T) {
	f := newTestFunction(t)
	add := mustAddNode(t, f, NodeAddition, "add")
	vec := mustAddNode(t, f, NodeConstVec, "v")

	_, err := add.Constant()
	assert.ErrorIs(t, err, ErrInvalidLiteralAccess)
	assert.ErrorIs(t, add.SetConstant(1), ErrInvalidLiteralAccess)
	assert.ErrorIs(t, vec.SetMatrix(geom.Identity()), ErrInvalidLiteralAccess)
	_, err = vec.ModelResourceID()
	assert.ErrorIs(t, err, ErrInvalidLiteralAccess)

	var ge *GraphError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "v", ge.Node)
	assert.Equal(t, "f", ge.Function)
}

func TestSetLiteral(t *testing.T) {
	f := newTestFunction(t)

	c := mustAddNode(t, f, NodeConstant, "c")
	require.NoError(t, c.SetLiteral(cty.NumberFloatVal(3)))
	got, _ := c.Constant()
	assert.Equal(t, 3.0, got)

	v := mustAddNode(t, f, NodeConstVec, "v")
	require.NoError(t, v.SetLiteral(cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3)})))
	vec, _ := v.Vector()
	assert.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3}, vec)
	assert.ErrorIs(t, v.SetLiteral(cty.TupleVal([]cty.Value{cty.NumberIntVal(1)})), ErrInvalidLiteralValue)

	m := mustAddNode(t, f, NodeConstMat, "m")
	rows := make([]cty.Value, 4)
	for i := range rows {
		row := make([]cty.Value, 4)
		for j := range row {
			if i == j {
				row[j] = cty.NumberIntVal(1)
			} else {
				row[j] = cty.NumberIntVal(0)
			}
		}
		rows[i] = cty.TupleVal(row)
	}
	require.NoError(t, m.SetLiteral(cty.TupleVal(rows)))
	mat, _ := m.Matrix()
	assert.Equal(t, geom.Identity(), mat)

	flat := make([]cty.Value, 16)
	for i := range flat {
		flat[i] = cty.NumberIntVal(int64(i))
	}
	require.NoError(t, m.SetLiteral(cty.ListVal(flat)))
	mat, _ = m.Matrix()
	assert.Equal(t, 7.0, mat[1][3])

	r := mustAddNode(t, f, NodeConstResourceID, "r")
	require.NoError(t, r.SetLiteral(cty.NumberIntVal(12)))
	id, _ := r.ModelResourceID()
	assert.Equal(t, resource.ModelResourceID(12), id)
	assert.ErrorIs(t, r.SetLiteral(cty.StringVal("twelve")), ErrInvalidLiteralValue)

	add := mustAddNode(t, f, NodeAddition, "add")
	assert.ErrorIs(t, add.SetLiteral(cty.NumberIntVal(1)), ErrInvalidLiteralAccess)
	assert.ErrorIs(t, c.SetLiteral(cty.NullVal(cty.Number)), ErrInvalidLiteralValue)
}

func TestNodePorts(t *testing.T) {
	f := newTestFunction(t)
	n := mustAddNode(t, f, NodeAddition, "add")

	// Duplicate port identifiers are rejected eagerly.
	_, err := n.AddInput("A", "again")
	assert.ErrorIs(t, err, ErrDuplicatePortIdentifier)
	_, err = n.AddOutput("a.b", "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	assert.Nil(t, n.FindInput("missing"))
	assert.Same(t, n, n.FindInput("A").Node())
	assert.False(t, n.FindInput("A").IsBoundary())
	assert.Equal(t, "add.result", n.FindOutput("result").QualifiedIdentifier())

	assert.ErrorIs(t, n.FindInput("A").SetIdentifier("B"), ErrDuplicatePortIdentifier)
	require.NoError(t, n.FindInput("A").SetIdentifier("X"))
	assert.NotNil(t, n.FindInput("X"))
	assert.False(t, n.ArePortsValid())
}
