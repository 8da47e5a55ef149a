package implicit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCompleteness(t *testing.T) {
	for _, nt := range AllNodeTypes() {
		t.Run(nt.String(), func(t *testing.T) {
			info, err := Lookup(nt)
			require.NoError(t, err)
			require.NotEmpty(t, info.Rules)
			assert.Equal(t, nt, info.Type)

			parsed, err := NodeTypeFromString(info.Name)
			require.NoError(t, err)
			assert.Equal(t, nt, parsed)

			for _, rule := range info.Rules {
				f := newTestFunction(t)
				n, err := f.AddNode(nt, rule.Configuration, "n", "", "")
				require.NoError(t, err)

				assert.Equal(t, defIDs(rule.Inputs), portIDs(n.Inputs()))
				assert.Equal(t, defIDs(rule.Outputs), portIDs(n.Outputs()))
				for _, def := range rule.Inputs {
					assert.Equal(t, def.Type, n.FindInput(def.Identifier).Type())
				}
				assert.True(t, n.ArePortsValid())
			}
		})
	}
}

func TestRegistryPortIdentifiers(t *testing.T) {
	testCases := []struct {
		name    string
		inputs  []string
		outputs []string
	}{
		{"mesh", []string{"mesh", "pos"}, []string{"distance"}},
		{"unsignedmesh", []string{"mesh", "pos"}, []string{"distance"}},
		{"beamlattice", []string{"beamlattice", "pos"}, []string{"distance"}},
		{"composematrix", []string{
			"m00", "m01", "m02", "m03", "m10", "m11", "m12", "m13",
			"m20", "m21", "m22", "m23", "m30", "m31", "m32", "m33",
		}, []string{"result"}},
		{"clamp", []string{"A", "min", "max"}, []string{"result"}},
		{"decomposevector", []string{"A"}, []string{"x", "y", "z"}},
		{"composevector", []string{"x", "y", "z"}, []string{"result"}},
		{"matvecmultiplication", []string{"A", "B"}, []string{"result"}},
		{"select", []string{"A", "B", "C", "D"}, []string{"result"}},
		{"constant", nil, []string{"value"}},
		{"constvec", nil, []string{"vector"}},
		{"constmat", nil, []string{"matrix"}},
		{"resource", nil, []string{"value"}},
		{"functioncall", []string{"functionID"}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nt, err := NodeTypeFromString(tc.name)
			require.NoError(t, err)
			info, err := Lookup(nt)
			require.NoError(t, err)
			rule, err := info.Rule(ConfigDefault)
			require.NoError(t, err)

			assert.Equal(t, tc.inputs, nilIfEmpty(defIDs(rule.Inputs)))
			assert.Equal(t, tc.outputs, nilIfEmpty(defIDs(rule.Outputs)))
		})
	}
}

func nilIfEmpty(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func TestLookupUnknownNodeType(t *testing.T) {
	_, err := Lookup(nodeTypeCount)
	assert.ErrorIs(t, err, ErrUnknownNodeType)

	_, err = NodeTypeFromString("Addition")
	assert.ErrorIs(t, err, ErrUnknownNodeType, "tags are case-sensitive")

	f := newTestFunction(t)
	_, err = f.AddNode(NodeType(-1), ConfigDefault, "x", "", "")
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.Nil(t, f.FindNode("x"))
}

func TestLegacyNodeTypeNames(t *testing.T) {
	nt, err := NodeTypeFromString("composeMatrixFromColumnVectors")
	require.NoError(t, err)
	assert.Equal(t, NodeMatrixFromColumns, nt)
	assert.Equal(t, "matrixfromcolumns", nt.String())
}

func TestConfigurations(t *testing.T) {
	f := newTestFunction(t)

	vec, err := f.AddNode(NodeAddition, ConfigVectorToVector, "vadd", "", "")
	require.NoError(t, err)
	assert.Equal(t, PortVector, vec.FindInput("A").Type())
	assert.Equal(t, PortVector, vec.FindOutput("result").Type())

	def := mustAddNode(t, f, NodeAddition, "sadd")
	assert.Equal(t, PortScalar, def.FindInput("A").Type())

	_, err = f.AddNode(NodeSin, ConfigMatrixToMatrix, "msin", "", "")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	cfg, err := ConfigurationFromString("Vector")
	require.NoError(t, err)
	assert.Equal(t, ConfigVectorToVector, cfg)
	_, err = ConfigurationFromString("tensor")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestArePortsValid(t *testing.T) {
	t.Run("extra port invalidates a fixed node", func(t *testing.T) {
		f := newTestFunction(t)
		n := mustAddNode(t, f, NodeAddition, "add")
		_, err := n.AddInput("C", "C")
		require.NoError(t, err)
		assert.False(t, n.ArePortsValid())
	})

	t.Run("changed port type invalidates the node", func(t *testing.T) {
		f := newTestFunction(t)
		n := mustAddNode(t, f, NodeDot, "dot")
		n.FindInput("A").SetType(PortScalar)
		assert.False(t, n.ArePortsValid())
	})

	t.Run("default configuration accepts any rule", func(t *testing.T) {
		f := newTestFunction(t)
		n := mustAddNode(t, f, NodeSin, "sin")
		n.FindInput("A").SetType(PortVector)
		n.FindOutput("result").SetType(PortVector)
		assert.True(t, n.ArePortsValid())
	})

	t.Run("function call accepts user ports", func(t *testing.T) {
		f := newTestFunction(t)
		n := mustAddNode(t, f, NodeFunctionCall, "call")
		pos, err := n.AddInput("pos", "position")
		require.NoError(t, err)
		pos.SetType(PortVector)
		_, err = n.AddOutput("shape", "shape")
		require.NoError(t, err)
		assert.True(t, n.ArePortsValid())
	})
}
