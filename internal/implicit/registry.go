package implicit

import (
	"fmt"
	"sync"
)

// PortDef is one port prescribed by a rule.
type PortDef struct {
	Identifier string
	Type       PortType
}

// Rule is the exact port contract of one configuration of a node type.
type Rule struct {
	Configuration Configuration
	Inputs        []PortDef
	Outputs       []PortDef
}

// NodeTypeInfo is the registry entry of a node type.
type NodeTypeInfo struct {
	Type  NodeType
	Name  string
	Rules []Rule
	// Dynamic node types accept user-defined ports in addition to the
	// prescribed ones.
	Dynamic bool
}

// Rule returns the rule for cfg. ConfigDefault selects the first rule.
func (info *NodeTypeInfo) Rule(cfg Configuration) (Rule, error) {
	if cfg == ConfigDefault {
		return info.Rules[0], nil
	}
	for _, r := range info.Rules {
		if r.Configuration == cfg {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: %s does not offer %s", ErrInvalidConfiguration, info.Name, cfg)
}

type nodeTypeRegistry struct {
	byType map[NodeType]*NodeTypeInfo
	byName map[string]NodeType
}

// registry is built once and never mutated afterwards.
var registry = sync.OnceValue(buildRegistry)

// Lookup returns the registry entry for t.
func Lookup(t NodeType) (*NodeTypeInfo, error) {
	info, ok := registry().byType[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNodeType, int(t))
	}
	return info, nil
}

// addExpectedPorts creates the ports the rule for n's configuration prescribes.
func addExpectedPorts(n *Node) error {
	info, err := Lookup(n.nodeType)
	if err != nil {
		return err
	}
	rule, err := info.Rule(n.configuration)
	if err != nil {
		return err
	}
	for _, def := range rule.Inputs {
		p, err := n.AddInput(def.Identifier, def.Identifier)
		if err != nil {
			return err
		}
		p.portType = def.Type
	}
	for _, def := range rule.Outputs {
		p, err := n.AddOutput(def.Identifier, def.Identifier)
		if err != nil {
			return err
		}
		p.portType = def.Type
	}
	return nil
}

// arePortsValid compares n's ports against the rule for its configuration,
// or against every rule when the configuration is ConfigDefault.
func arePortsValid(n *Node) bool {
	info, err := Lookup(n.nodeType)
	if err != nil {
		return false
	}
	if n.configuration != ConfigDefault {
		rule, err := info.Rule(n.configuration)
		return err == nil && portsMatch(n, rule, info.Dynamic)
	}
	for _, rule := range info.Rules {
		if portsMatch(n, rule, info.Dynamic) {
			return true
		}
	}
	return false
}

func portsMatch(n *Node, rule Rule, dynamic bool) bool {
	return portSetMatches(n.inputs, rule.Inputs, dynamic) && portSetMatches(n.outputs, rule.Outputs, dynamic)
}

func portSetMatches(ports []*Port, defs []PortDef, dynamic bool) bool {
	if !dynamic && len(ports) != len(defs) {
		return false
	}
	for _, def := range defs {
		p := findPort(ports, def.Identifier)
		if p == nil || p.portType != def.Type {
			return false
		}
	}
	return true
}

func defs(t PortType, identifiers ...string) []PortDef {
	out := make([]PortDef, len(identifiers))
	for i, id := range identifiers {
		out[i] = PortDef{Identifier: id, Type: t}
	}
	return out
}

func configPortType(cfg Configuration) PortType {
	switch cfg {
	case ConfigVectorToVector:
		return PortVector
	case ConfigMatrixToMatrix:
		return PortMatrix
	default:
		return PortScalar
	}
}

// uniform builds one rule per configuration where every port has the
// configuration's type.
func uniform(inputs, outputs []string, configs ...Configuration) []Rule {
	rules := make([]Rule, len(configs))
	for i, cfg := range configs {
		t := configPortType(cfg)
		rules[i] = Rule{Configuration: cfg, Inputs: defs(t, inputs...), Outputs: defs(t, outputs...)}
	}
	return rules
}

func single(inputs, outputs []PortDef) []Rule {
	return []Rule{{Configuration: ConfigDefault, Inputs: inputs, Outputs: outputs}}
}

func concat(groups ...[]PortDef) []PortDef {
	var out []PortDef
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func buildRegistry() *nodeTypeRegistry {
	var (
		sv      = []Configuration{ConfigScalarToScalar, ConfigVectorToVector}
		svm     = []Configuration{ConfigScalarToScalar, ConfigVectorToVector, ConfigMatrixToMatrix}
		a       = []string{"A"}
		ab      = []string{"A", "B"}
		abcd    = []string{"A", "B", "C", "D"}
		result  = []string{"result"}
		xyz     = []string{"x", "y", "z"}
		domain  = defs(PortVector, "pos")
		dist    = defs(PortScalar, "distance")
		mElems  []string
		entries []*NodeTypeInfo
	)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			mElems = append(mElems, fmt.Sprintf("m%d%d", row, col))
		}
	}

	add := func(t NodeType, name string, rules []Rule) {
		entries = append(entries, &NodeTypeInfo{Type: t, Name: name, Rules: rules})
	}

	add(NodeAddition, "addition", uniform(ab, result, svm...))
	add(NodeSubtraction, "subtraction", uniform(ab, result, svm...))
	add(NodeMultiplication, "multiplication", uniform(ab, result, svm...))
	add(NodeDivision, "division", uniform(ab, result, svm...))

	add(NodeConstant, "constant", single(nil, defs(PortScalar, "value")))
	add(NodeConstVec, "constvec", single(nil, defs(PortVector, "vector")))
	add(NodeConstMat, "constmat", single(nil, defs(PortMatrix, "matrix")))
	add(NodeConstResourceID, "resource", single(nil, defs(PortResourceID, "value")))

	add(NodeComposeVector, "composevector", single(defs(PortScalar, xyz...), defs(PortVector, result...)))
	add(NodeVectorFromScalar, "vectorfromscalar", single(defs(PortScalar, a...), defs(PortVector, result...)))
	add(NodeDecomposeVector, "decomposevector", single(defs(PortVector, a...), defs(PortScalar, xyz...)))
	add(NodeComposeMatrix, "composematrix", single(defs(PortScalar, mElems...), defs(PortMatrix, result...)))
	add(NodeMatrixFromColumns, "matrixfromcolumns", single(defs(PortVector, abcd...), defs(PortMatrix, result...)))
	add(NodeMatrixFromRows, "matrixfromrows", single(defs(PortVector, abcd...), defs(PortMatrix, result...)))

	add(NodeDot, "dot", single(defs(PortVector, ab...), defs(PortScalar, result...)))
	add(NodeCross, "cross", single(defs(PortVector, ab...), defs(PortVector, result...)))
	add(NodeLength, "length", single(defs(PortVector, a...), defs(PortScalar, result...)))
	add(NodeMatVecMultiplication, "matvecmultiplication",
		single(concat(defs(PortMatrix, "A"), defs(PortVector, "B")), defs(PortVector, result...)))
	add(NodeTranspose, "transpose", single(defs(PortMatrix, a...), defs(PortMatrix, result...)))
	add(NodeInverse, "inverse", single(defs(PortMatrix, a...), defs(PortMatrix, result...)))

	for _, u := range []struct {
		t    NodeType
		name string
	}{
		{NodeSin, "sin"}, {NodeCos, "cos"}, {NodeTan, "tan"},
		{NodeArcSin, "arcsin"}, {NodeArcCos, "arccos"}, {NodeArcTan, "arctan"},
		{NodeSinh, "sinh"}, {NodeCosh, "cosh"}, {NodeTanh, "tanh"},
		{NodeAbs, "abs"}, {NodeSqrt, "sqrt"}, {NodeExp, "exp"},
		{NodeLog, "log"}, {NodeLog2, "log2"}, {NodeLog10, "log10"},
		{NodeRound, "round"}, {NodeCeil, "ceil"}, {NodeFloor, "floor"},
		{NodeSign, "sign"}, {NodeFract, "fract"},
	} {
		add(u.t, u.name, uniform(a, result, sv...))
	}

	for _, b := range []struct {
		t    NodeType
		name string
	}{
		{NodeMin, "min"}, {NodeMax, "max"}, {NodeFmod, "fmod"},
		{NodePow, "pow"}, {NodeMod, "mod"}, {NodeArcTan2, "arctan2"},
	} {
		add(b.t, b.name, uniform(ab, result, sv...))
	}

	add(NodeSelect, "select", uniform(abcd, result, sv...))
	add(NodeClamp, "clamp", uniform([]string{"A", "min", "max"}, result, sv...))

	add(NodeMesh, "mesh", single(concat(defs(PortResourceID, "mesh"), domain), dist))
	add(NodeUnsignedMesh, "unsignedmesh", single(concat(defs(PortResourceID, "mesh"), domain), dist))
	add(NodeBeamLattice, "beamlattice", single(concat(defs(PortResourceID, "beamlattice"), domain), dist))

	entries = append(entries, &NodeTypeInfo{
		Type:    NodeFunctionCall,
		Name:    "functioncall",
		Rules:   single(defs(PortResourceID, "functionID"), nil),
		Dynamic: true,
	})

	reg := &nodeTypeRegistry{
		byType: make(map[NodeType]*NodeTypeInfo, len(entries)),
		byName: make(map[string]NodeType, len(entries)),
	}
	for _, e := range entries {
		if _, dup := reg.byType[e.Type]; dup {
			panic(fmt.Sprintf("implicit: node type %d registered twice", int(e.Type)))
		}
		if _, dup := reg.byName[e.Name]; dup {
			panic(fmt.Sprintf("implicit: node type name %q registered twice", e.Name))
		}
		reg.byType[e.Type] = e
		reg.byName[e.Name] = e.Type
	}
	return reg
}
