package implicit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/threemf/internal/resource"
)

func newTestFunction(t *testing.T) *Function {
	t.Helper()
	f, err := NewFunction(resource.NewModel(""), 0)
	require.NoError(t, err)
	f.SetIdentifier("f")
	return f
}

func mustAddNode(t *testing.T, f *Function, nt NodeType, id string) *Node {
	t.Helper()
	n, err := f.AddNode(nt, ConfigDefault, id, id, "")
	require.NoError(t, err)
	return n
}

func portIDs(ports []*Port) []string {
	ids := make([]string, len(ports))
	for i, p := range ports {
		ids[i] = p.Identifier()
	}
	return ids
}

func defIDs(defs []PortDef) []string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.Identifier
	}
	return ids
}

func nodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Identifier()
	}
	return ids
}

func indexOf(nodes []*Node, id string) int {
	for i, n := range nodes {
		if n.Identifier() == id {
			return i
		}
	}
	return -1
}
