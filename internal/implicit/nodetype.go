package implicit

import (
	"fmt"
	"strings"
)

// NodeType identifies the operation a node performs.
type NodeType int

const (
	NodeAddition NodeType = iota
	NodeSubtraction
	NodeMultiplication
	NodeDivision
	NodeConstant
	NodeConstVec
	NodeConstMat
	NodeComposeVector
	NodeDecomposeVector
	NodeComposeMatrix
	NodeMatrixFromColumns
	NodeMatrixFromRows
	NodeDot
	NodeCross
	NodeMatVecMultiplication
	NodeTranspose
	NodeInverse
	NodeSin
	NodeCos
	NodeTan
	NodeArcSin
	NodeArcCos
	NodeArcTan
	NodeArcTan2
	NodeMin
	NodeMax
	NodeAbs
	NodeFmod
	NodePow
	NodeSqrt
	NodeExp
	NodeLog
	NodeLog2
	NodeLog10
	NodeSelect
	NodeClamp
	NodeSinh
	NodeCosh
	NodeTanh
	NodeRound
	NodeCeil
	NodeFloor
	NodeSign
	NodeFract
	NodeFunctionCall
	NodeMesh
	NodeLength
	NodeConstResourceID
	NodeVectorFromScalar
	NodeUnsignedMesh
	NodeMod
	NodeBeamLattice

	nodeTypeCount
)

// AllNodeTypes lists every node type in declaration order.
func AllNodeTypes() []NodeType {
	out := make([]NodeType, 0, nodeTypeCount)
	for t := NodeType(0); t < nodeTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// String returns the canonical document tag, e.g. "addition".
func (t NodeType) String() string {
	if info, err := Lookup(t); err == nil {
		return info.Name
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// legacyNodeTypeNames maps tags written by older producers to current types.
var legacyNodeTypeNames = map[string]NodeType{
	"composeMatrixFromColumnVectors": NodeMatrixFromColumns,
	"composeMatrixFromRowVectors":    NodeMatrixFromRows,
}

// NodeTypeFromString resolves a document tag. Matching is case-sensitive.
func NodeTypeFromString(name string) (NodeType, error) {
	if t, ok := registry().byName[name]; ok {
		return t, nil
	}
	if t, ok := legacyNodeTypeNames[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNodeType, name)
}

// Configuration selects one input/output rule of a node type.
type Configuration int

const (
	// ConfigDefault selects the first rule of the node type.
	ConfigDefault Configuration = iota
	ConfigScalarToScalar
	ConfigVectorToVector
	ConfigMatrixToMatrix
)

var configurationNames = []string{"default", "scalar", "vector", "matrix"}

func (c Configuration) String() string {
	if c >= 0 && int(c) < len(configurationNames) {
		return configurationNames[c]
	}
	return fmt.Sprintf("Configuration(%d)", int(c))
}

// ConfigurationFromString parses "default", "scalar", "vector" or "matrix".
// The empty string selects ConfigDefault.
func ConfigurationFromString(s string) (Configuration, error) {
	if s == "" {
		return ConfigDefault, nil
	}
	for i, name := range configurationNames {
		if strings.EqualFold(name, s) {
			return Configuration(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidConfiguration, s)
}
