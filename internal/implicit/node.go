package implicit

import (
	"fmt"

	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/resource"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// literalKinds names the literal each literal-bearing node type carries.
var literalKinds = map[NodeType]PortType{
	NodeConstant:        PortScalar,
	NodeConstVec:        PortVector,
	NodeConstMat:        PortMatrix,
	NodeConstResourceID: PortResourceID,
}

// Node is one operation of an implicit function graph.
type Node struct {
	function      *Function
	identifier    string
	displayName   string
	tag           string
	nodeType      NodeType
	configuration Configuration
	inputs        []*Port
	outputs       []*Port

	constant   float64
	vector     *geom.Vector3
	matrix     *geom.Matrix4x4
	resourceID *resource.ModelResourceID
}

func (n *Node) Identifier() string           { return n.identifier }
func (n *Node) DisplayName() string          { return n.displayName }
func (n *Node) Tag() string                  { return n.tag }
func (n *Node) Type() NodeType               { return n.nodeType }
func (n *Node) Configuration() Configuration { return n.configuration }

// Function returns the owning function, or nil once the node was removed.
func (n *Node) Function() *Function { return n.function }

func (n *Node) SetDisplayName(name string) { n.displayName = name }
func (n *Node) SetTag(tag string)          { n.tag = tag }

// SetIdentifier renames the node. References to the old identifier are not
// rewritten and will fail to resolve.
func (n *Node) SetIdentifier(id string) error {
	if n.function == nil {
		if err := validateNodeIdentifier(id); err != nil {
			return err
		}
		n.identifier = id
		return nil
	}
	return n.function.renameNode(n, id)
}

// Inputs returns a snapshot of the input ports in order.
func (n *Node) Inputs() []*Port {
	return append([]*Port(nil), n.inputs...)
}

// Outputs returns a snapshot of the output ports in order.
func (n *Node) Outputs() []*Port {
	return append([]*Port(nil), n.outputs...)
}

// AddInput appends an input port. Identifiers must be unique among the inputs.
func (n *Node) AddInput(identifier, displayName string) (*Port, error) {
	return n.addPort(&n.inputs, Input, identifier, displayName)
}

// AddOutput appends an output port. Identifiers must be unique among the outputs.
func (n *Node) AddOutput(identifier, displayName string) (*Port, error) {
	return n.addPort(&n.outputs, Output, identifier, displayName)
}

func (n *Node) addPort(ports *[]*Port, dir Direction, identifier, displayName string) (*Port, error) {
	if err := validatePortIdentifier(identifier); err != nil {
		return nil, n.errorf(identifier, err)
	}
	if findPort(*ports, identifier) != nil {
		return nil, n.errorf(identifier, ErrDuplicatePortIdentifier)
	}
	p := &Port{node: n, direction: dir, identifier: identifier, displayName: displayName}
	*ports = append(*ports, p)
	if n.function != nil {
		n.function.touch()
	}
	return p, nil
}

// FindInput returns the input port with the given identifier, or nil.
func (n *Node) FindInput(identifier string) *Port { return findPort(n.inputs, identifier) }

// FindOutput returns the output port with the given identifier, or nil.
func (n *Node) FindOutput(identifier string) *Port { return findPort(n.outputs, identifier) }

// ArePortsValid reports whether the node's ports match the registry contract.
func (n *Node) ArePortsValid() bool {
	return arePortsValid(n)
}

// Constant returns the literal of a constant node. It is zero until set.
func (n *Node) Constant() (float64, error) {
	if err := n.checkLiteral(NodeConstant); err != nil {
		return 0, err
	}
	return n.constant, nil
}

func (n *Node) SetConstant(v float64) error {
	if err := n.checkLiteral(NodeConstant); err != nil {
		return err
	}
	n.constant = v
	return nil
}

// Vector returns the literal of a constvec node.
func (n *Node) Vector() (geom.Vector3, error) {
	if err := n.checkLiteral(NodeConstVec); err != nil {
		return geom.Vector3{}, err
	}
	if n.vector == nil {
		return geom.Vector3{}, n.errorf("", fmt.Errorf("%w: vector is not set", ErrInvalidLiteralAccess))
	}
	return *n.vector, nil
}

func (n *Node) SetVector(v geom.Vector3) error {
	if err := n.checkLiteral(NodeConstVec); err != nil {
		return err
	}
	n.vector = &v
	return nil
}

// Matrix returns the literal of a constmat node.
func (n *Node) Matrix() (geom.Matrix4x4, error) {
	if err := n.checkLiteral(NodeConstMat); err != nil {
		return geom.Matrix4x4{}, err
	}
	if n.matrix == nil {
		return geom.Matrix4x4{}, n.errorf("", fmt.Errorf("%w: matrix is not set", ErrInvalidLiteralAccess))
	}
	return *n.matrix, nil
}

func (n *Node) SetMatrix(m geom.Matrix4x4) error {
	if err := n.checkLiteral(NodeConstMat); err != nil {
		return err
	}
	n.matrix = &m
	return nil
}

// ModelResourceID returns the literal of a resource node.
func (n *Node) ModelResourceID() (resource.ModelResourceID, error) {
	if err := n.checkLiteral(NodeConstResourceID); err != nil {
		return 0, err
	}
	if n.resourceID == nil {
		return 0, n.errorf("", fmt.Errorf("%w: resource id is not set", ErrInvalidLiteralAccess))
	}
	return *n.resourceID, nil
}

func (n *Node) SetModelResourceID(id resource.ModelResourceID) error {
	if err := n.checkLiteral(NodeConstResourceID); err != nil {
		return err
	}
	n.resourceID = &id
	return nil
}

// HasLiteral reports whether a literal-bearing node has its literal set.
// Constant nodes always have one.
func (n *Node) HasLiteral() bool {
	switch n.nodeType {
	case NodeConstant:
		return true
	case NodeConstVec:
		return n.vector != nil
	case NodeConstMat:
		return n.matrix != nil
	case NodeConstResourceID:
		return n.resourceID != nil
	}
	return false
}

// SetLiteral converts a dynamically typed value into the node's literal.
// Vectors are lists of three numbers; matrices are four rows of four numbers
// or a flat list of sixteen.
func (n *Node) SetLiteral(v cty.Value) error {
	kind, ok := literalKinds[n.nodeType]
	if !ok {
		return n.errorf("", fmt.Errorf("%w: %s nodes carry no literal", ErrInvalidLiteralAccess, n.nodeType))
	}
	if v.IsNull() || !v.IsWhollyKnown() {
		return n.errorf("", fmt.Errorf("%w: literal must be a known, non-null value", ErrInvalidLiteralValue))
	}

	switch kind {
	case PortScalar:
		var f float64
		if err := decodeLiteral(v, cty.Number, &f); err != nil {
			return n.errorf("", err)
		}
		return n.SetConstant(f)
	case PortVector:
		var values []float64
		if err := decodeLiteral(v, cty.List(cty.Number), &values); err != nil {
			return n.errorf("", err)
		}
		vec, err := geom.NewVector3(values)
		if err != nil {
			return n.errorf("", fmt.Errorf("%w: %w", ErrInvalidLiteralValue, err))
		}
		return n.SetVector(vec)
	case PortMatrix:
		values, err := matrixValues(v)
		if err != nil {
			return n.errorf("", err)
		}
		m, err := geom.NewMatrix4x4(values)
		if err != nil {
			return n.errorf("", fmt.Errorf("%w: %w", ErrInvalidLiteralValue, err))
		}
		return n.SetMatrix(m)
	default:
		var id uint32
		if err := decodeLiteral(v, cty.Number, &id); err != nil {
			return n.errorf("", err)
		}
		return n.SetModelResourceID(resource.ModelResourceID(id))
	}
}

func matrixValues(v cty.Value) ([]float64, error) {
	var rows [][]float64
	if err := decodeLiteral(v, PortMatrix.CtyType(), &rows); err == nil {
		var flat []float64
		for _, row := range rows {
			if len(row) != 4 {
				return nil, fmt.Errorf("%w: matrix rows need 4 components, got %d", ErrInvalidLiteralValue, len(row))
			}
			flat = append(flat, row...)
		}
		return flat, nil
	}
	var flat []float64
	if err := decodeLiteral(v, cty.List(cty.Number), &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func decodeLiteral(v cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(v, want)
	if err != nil {
		return fmt.Errorf("%w: expected %s: %w", ErrInvalidLiteralValue, want.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLiteralValue, err)
	}
	return nil
}

func (n *Node) checkLiteral(want NodeType) error {
	if n.nodeType != want {
		return n.errorf("", fmt.Errorf("%w: node of type %s is not %s", ErrInvalidLiteralAccess, n.nodeType, want))
	}
	return nil
}

func (n *Node) errorf(port string, err error) error {
	ge := &GraphError{Node: n.identifier, Port: port, Err: err}
	if n.function != nil {
		ge.Function = n.function.label()
	}
	return ge
}
