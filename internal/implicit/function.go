package implicit

import (
	"fmt"

	"github.com/vk/threemf/internal/resource"
)

// State is the position of a function in its build/validate/sort lifecycle.
type State int

const (
	StateEmpty State = iota
	StateBuilding
	StateValidated
	StateSorted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateValidated:
		return "validated"
	case StateSorted:
		return "sorted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Function is an implicit function resource: an ordered node graph with its
// own boundary ports. Use NewFunction to obtain one registered in a model; a
// zero Function can hold a graph but has no resource id.
type Function struct {
	resource.Base

	identifier  string
	displayName string
	nodes       []*Node
	index       map[string]*Node
	inputs      []*Port
	outputs     []*Port

	// generation changes on every structural mutation and invalidates
	// cached port resolutions.
	generation uint64
	state      State
}

// NewFunction creates a function and registers it in m. A zero id picks the
// next free local resource id.
func NewFunction(m *resource.Model, id resource.ModelResourceID) (*Function, error) {
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	f := &Function{Base: base, index: make(map[string]*Node)}
	if err := m.Add(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Function) Identifier() string  { return f.identifier }
func (f *Function) DisplayName() string { return f.displayName }
func (f *Function) State() State        { return f.state }

func (f *Function) SetIdentifier(id string)    { f.identifier = id }
func (f *Function) SetDisplayName(name string) { f.displayName = name }

// AddNode creates a node of type t with the ports its configuration
// prescribes and appends it to the function.
func (f *Function) AddNode(t NodeType, cfg Configuration, identifier, displayName, tag string) (*Node, error) {
	if err := validateNodeIdentifier(identifier); err != nil {
		return nil, f.errorf(identifier, err)
	}
	if _, exists := f.index[identifier]; exists {
		return nil, f.errorf(identifier, ErrDuplicateNodeIdentifier)
	}

	n := &Node{
		identifier:    identifier,
		displayName:   displayName,
		tag:           tag,
		nodeType:      t,
		configuration: cfg,
	}
	if err := addExpectedPorts(n); err != nil {
		return nil, f.errorf(identifier, err)
	}

	n.function = f
	f.nodes = append(f.nodes, n)
	if f.index == nil {
		f.index = make(map[string]*Node)
	}
	f.index[identifier] = n
	f.touch()
	return n, nil
}

// FindNode returns the node with the given identifier, or nil.
func (f *Function) FindNode(identifier string) *Node {
	return f.index[identifier]
}

// Nodes returns a snapshot of the nodes in their current order.
func (f *Function) Nodes() []*Node {
	return append([]*Node(nil), f.nodes...)
}

// RemoveNode deletes a node. Links from other nodes to it are left in place
// and fail when next resolved.
func (f *Function) RemoveNode(identifier string) error {
	n, ok := f.index[identifier]
	if !ok {
		return f.errorf(identifier, ErrNodeNotFound)
	}
	for i, candidate := range f.nodes {
		if candidate == n {
			f.nodes = append(f.nodes[:i], f.nodes[i+1:]...)
			break
		}
	}
	delete(f.index, identifier)
	n.function = nil
	f.touch()
	return nil
}

// AddInput adds a boundary input that nodes consume as "inputs.<identifier>".
func (f *Function) AddInput(identifier, displayName string, t PortType) (*Port, error) {
	return f.addBoundaryPort(&f.inputs, Input, identifier, displayName, t)
}

// AddOutput adds a boundary output, fed through "outputs.<identifier>".
func (f *Function) AddOutput(identifier, displayName string, t PortType) (*Port, error) {
	return f.addBoundaryPort(&f.outputs, Output, identifier, displayName, t)
}

func (f *Function) addBoundaryPort(ports *[]*Port, dir Direction, identifier, displayName string, t PortType) (*Port, error) {
	if err := validatePortIdentifier(identifier); err != nil {
		return nil, &GraphError{Function: f.label(), Port: identifier, Err: err}
	}
	if findPort(*ports, identifier) != nil {
		return nil, &GraphError{Function: f.label(), Port: identifier, Err: ErrDuplicatePortIdentifier}
	}
	p := &Port{function: f, direction: dir, identifier: identifier, displayName: displayName, portType: t}
	*ports = append(*ports, p)
	f.touch()
	return p, nil
}

func (f *Function) FindInput(identifier string) *Port  { return findPort(f.inputs, identifier) }
func (f *Function) FindOutput(identifier string) *Port { return findPort(f.outputs, identifier) }

// Inputs returns a snapshot of the boundary inputs.
func (f *Function) Inputs() []*Port { return append([]*Port(nil), f.inputs...) }

// Outputs returns a snapshot of the boundary outputs.
func (f *Function) Outputs() []*Port { return append([]*Port(nil), f.outputs...) }

// Clear removes all nodes and boundary ports.
func (f *Function) Clear() {
	for _, n := range f.nodes {
		n.function = nil
	}
	for _, p := range append(f.inputs, f.outputs...) {
		p.function = nil
	}
	f.nodes = nil
	f.index = make(map[string]*Node)
	f.inputs = nil
	f.outputs = nil
	f.touch()
}

// ReplaceResourceID rewrites resource literals equal to oldID and returns
// how many nodes changed.
func (f *Function) ReplaceResourceID(oldID, newID resource.ModelResourceID) int {
	replaced := 0
	for _, n := range f.nodes {
		if n.resourceID != nil && *n.resourceID == oldID {
			id := newID
			n.resourceID = &id
			replaced++
		}
	}
	return replaced
}

// Dependencies lists the resources referenced by resource literals in the
// same part as the function.
func (f *Function) Dependencies() []*resource.PackageResourceID {
	if f.PackageResourceID() == nil {
		return nil
	}
	var deps []*resource.PackageResourceID
	path := f.PackageResourceID().Path()
	for _, n := range f.nodes {
		if n.resourceID == nil {
			continue
		}
		if pid, ok := f.Model().FindPackageResourceID(path, *n.resourceID); ok {
			deps = append(deps, pid)
		}
	}
	return deps
}

func (f *Function) renameNode(n *Node, id string) error {
	if id == n.identifier {
		return nil
	}
	if err := validateNodeIdentifier(id); err != nil {
		return f.errorf(id, err)
	}
	if _, exists := f.index[id]; exists {
		return f.errorf(id, ErrDuplicateNodeIdentifier)
	}
	delete(f.index, n.identifier)
	n.identifier = id
	f.index[id] = n
	f.touch()
	return nil
}

func (f *Function) touch() {
	f.generation++
	if len(f.nodes) == 0 && len(f.inputs) == 0 && len(f.outputs) == 0 {
		f.state = StateEmpty
		return
	}
	f.state = StateBuilding
}

// label names the function in error messages.
func (f *Function) label() string {
	if f.identifier != "" {
		return f.identifier
	}
	if f.PackageResourceID() == nil {
		return "function"
	}
	return f.PackageResourceID().String()
}

func (f *Function) errorf(node string, err error) error {
	return &GraphError{Function: f.label(), Node: node, Err: err}
}

func validateNodeIdentifier(id string) error {
	switch id {
	case "":
		return fmt.Errorf("%w: empty node identifier", ErrInvalidIdentifier)
	case BoundaryInputs, BoundaryOutputs:
		return fmt.Errorf("%w: %q addresses the function boundary", ErrReservedIdentifier, id)
	}
	return nil
}
