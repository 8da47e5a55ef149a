package implicit

import (
	"fmt"
	"strings"

	"github.com/vk/threemf/internal/portref"
)

// Reserved node identifiers addressing the function boundary.
const (
	BoundaryInputs  = "inputs"
	BoundaryOutputs = "outputs"
)

// Port is a named, typed connection point on a node or on a function boundary.
type Port struct {
	// function is set for boundary ports; node ports reach it through node.
	function    *Function
	node        *Node
	direction   Direction
	identifier  string
	displayName string
	portType    PortType
	reference   string

	// resolution cache, valid while reference and the function generation
	// are unchanged.
	resolved    *Port
	resolvedRef string
	resolvedGen uint64
}

func (p *Port) Identifier() string  { return p.identifier }
func (p *Port) DisplayName() string { return p.displayName }
func (p *Port) Type() PortType      { return p.portType }
func (p *Port) Direction() Direction {
	return p.direction
}

// Node returns the owning node, or nil for function boundary ports.
func (p *Port) Node() *Node { return p.node }

// IsBoundary reports whether p belongs to the function rather than a node.
func (p *Port) IsBoundary() bool { return p.node == nil }

// Reference is the textual link of the port. For inputs of nodes and outputs
// of the function it names the source; on the producing side it names the
// last target linked through AddLink and is informational only.
func (p *Port) Reference() string { return p.reference }

func (p *Port) SetDisplayName(name string) { p.displayName = name }

// SetType changes the port type. Links are re-checked by ResolveAll.
func (p *Port) SetType(t PortType) {
	p.portType = t
	p.touch()
}

// SetReference stores a link without resolving it, so forward references
// are allowed while a graph is being built.
func (p *Port) SetReference(ref string) {
	p.reference = ref
	p.touch()
}

// SetIdentifier renames the port; the identifier must stay unique among its
// siblings.
func (p *Port) SetIdentifier(id string) error {
	if id == p.identifier {
		return nil
	}
	if err := validatePortIdentifier(id); err != nil {
		return err
	}
	if findPort(p.siblings(), id) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicatePortIdentifier, id)
	}
	p.identifier = id
	p.touch()
	return nil
}

// QualifiedIdentifier is the reference other ports use to address p.
func (p *Port) QualifiedIdentifier() string {
	switch {
	case p.node != nil:
		return portref.New(p.node.identifier, p.identifier).String()
	case p.direction == Input:
		return portref.New(BoundaryInputs, p.identifier).String()
	default:
		return portref.New(BoundaryOutputs, p.identifier).String()
	}
}

// Source resolves the port feeding p. It is only defined for node inputs
// and function outputs.
func (p *Port) Source() (*Port, error) {
	f := p.owner()
	if f == nil {
		return nil, &GraphError{Port: p.identifier, Reference: p.reference,
			Err: fmt.Errorf("%w: port is detached from its function", ErrUnresolvedReference)}
	}
	return f.resolveSource(p)
}

// isSink reports whether p consumes a value through its reference.
func (p *Port) isSink() bool {
	if p.node != nil {
		return p.direction == Input
	}
	return p.direction == Output
}

func (p *Port) owner() *Function {
	if p.node != nil {
		return p.node.function
	}
	return p.function
}

func (p *Port) siblings() []*Port {
	if p.node != nil {
		if p.direction == Input {
			return p.node.inputs
		}
		return p.node.outputs
	}
	if p.function == nil {
		return nil
	}
	if p.direction == Input {
		return p.function.inputs
	}
	return p.function.outputs
}

func (p *Port) touch() {
	if f := p.owner(); f != nil {
		f.touch()
	}
}

func findPort(ports []*Port, id string) *Port {
	for _, p := range ports {
		if p.identifier == id {
			return p
		}
	}
	return nil
}

func validatePortIdentifier(id string) error {
	if id == "" || strings.Contains(id, ".") {
		return fmt.Errorf("%w: port identifier %q", ErrInvalidIdentifier, id)
	}
	return nil
}
