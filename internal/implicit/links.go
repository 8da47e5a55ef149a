package implicit

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/threemf/internal/portref"
)

// AddLink connects the output named by source to the input named by target.
// Both are "<node>.<port>" references; "inputs.<port>" names a boundary
// input as source and "outputs.<port>" a boundary output as target. Both
// halves must exist when the link is added.
func (f *Function) AddLink(source, target string) error {
	src, err := f.lookupSource(source)
	if err != nil {
		return err
	}
	tgt, err := f.lookupTarget(target)
	if err != nil {
		return err
	}
	f.link(src, tgt)
	return nil
}

// LinkPorts connects two port objects of this function directly.
func (f *Function) LinkPorts(source, target *Port) error {
	if source == nil || source.owner() != f || source.isSink() {
		return &GraphError{Function: f.label(), Err: ErrInvalidSourcePort}
	}
	if target == nil || target.owner() != f || !target.isSink() {
		return &GraphError{Function: f.label(), Err: ErrInvalidTargetPort}
	}
	f.link(source, target)
	return nil
}

func (f *Function) link(src, tgt *Port) {
	tgt.reference = src.QualifiedIdentifier()
	src.reference = tgt.QualifiedIdentifier()
	tgt.resolved, tgt.resolvedRef = nil, ""
	f.touch()
}

func (f *Function) lookupSource(raw string) (*Port, error) {
	fail := func(err error) error {
		return &GraphError{Function: f.label(), Reference: raw, Err: err}
	}
	ref, err := portref.Parse(raw)
	if err != nil {
		if errors.Is(err, portref.ErrMissingNode) {
			return nil, fail(fmt.Errorf("%w: %w", ErrInvalidSourceNode, err))
		}
		return nil, fail(fmt.Errorf("%w: %w", ErrInvalidSourcePort, err))
	}
	if ref.Node == BoundaryInputs {
		if p := f.FindInput(ref.Port); p != nil {
			return p, nil
		}
		return nil, fail(ErrInvalidSourcePort)
	}
	n := f.FindNode(ref.Node)
	if n == nil {
		return nil, fail(ErrInvalidSourceNode)
	}
	p := n.FindOutput(ref.Port)
	if p == nil {
		return nil, fail(ErrInvalidSourcePort)
	}
	return p, nil
}

func (f *Function) lookupTarget(raw string) (*Port, error) {
	fail := func(err error) error {
		return &GraphError{Function: f.label(), Reference: raw, Err: err}
	}
	ref, err := portref.Parse(raw)
	if err != nil {
		if errors.Is(err, portref.ErrMissingNode) {
			return nil, fail(fmt.Errorf("%w: %w", ErrInvalidTargetNode, err))
		}
		return nil, fail(fmt.Errorf("%w: %w", ErrInvalidTargetPort, err))
	}
	if ref.Node == BoundaryOutputs {
		if p := f.FindOutput(ref.Port); p != nil {
			return p, nil
		}
		return nil, fail(ErrInvalidTargetPort)
	}
	n := f.FindNode(ref.Node)
	if n == nil {
		return nil, fail(ErrInvalidTargetNode)
	}
	p := n.FindInput(ref.Port)
	if p == nil {
		return nil, fail(ErrInvalidTargetPort)
	}
	return p, nil
}

// resolveSource resolves p's reference, reusing the cached port while
// neither the reference nor the graph changed.
func (f *Function) resolveSource(p *Port) (*Port, error) {
	portErr := func(err error) error {
		ge := &GraphError{Function: f.label(), Port: p.identifier, Reference: p.reference, Err: err}
		if p.node != nil {
			ge.Node = p.node.identifier
		} else {
			ge.Node = BoundaryOutputs
		}
		return ge
	}
	if !p.isSink() {
		return nil, portErr(fmt.Errorf("%w: %s ports have no source", ErrInvalidTargetPort, p.direction))
	}
	if p.reference == "" {
		return nil, portErr(ErrUnconnectedPort)
	}
	if p.resolved != nil && p.resolvedRef == p.reference && p.resolvedGen == f.generation {
		return p.resolved, nil
	}
	src, err := f.lookupSource(p.reference)
	if err != nil {
		var ge *GraphError
		if errors.As(err, &ge) {
			err = ge.Err
		}
		return nil, portErr(fmt.Errorf("%w: %w", ErrUnresolvedReference, err))
	}
	p.resolved, p.resolvedRef, p.resolvedGen = src, p.reference, f.generation
	return src, nil
}

// sinks returns every port that consumes a value: node inputs in node order
// followed by the boundary outputs.
func (f *Function) sinks() []*Port {
	var out []*Port
	for _, n := range f.nodes {
		out = append(out, n.inputs...)
	}
	return append(out, f.outputs...)
}

// ResolveAll resolves every non-empty reference and checks that linked
// ports have the same type. All failures are reported together.
func (f *Function) ResolveAll() error {
	if err := f.resolveLinks(); err != nil {
		return err
	}
	if f.state == StateBuilding {
		f.state = StateValidated
	}
	return nil
}

func (f *Function) resolveLinks() error {
	var result *multierror.Error
	for _, p := range f.sinks() {
		if p.reference == "" {
			continue
		}
		src, err := f.resolveSource(p)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if src.portType != p.portType {
			result = multierror.Append(result, &GraphError{
				Function:  f.label(),
				Node:      ownerName(p),
				Port:      p.identifier,
				Reference: p.reference,
				Err:       fmt.Errorf("%w: %s feeds %s", ErrPortTypeMismatch, src.portType, p.portType),
			})
		}
	}
	return result.ErrorOrNil()
}

// Validate resolves every link and additionally requires every node to
// satisfy its port contract, every input and boundary output to be connected
// and every literal-bearing node to have its literal set. The function
// reaches StateValidated only when all of these hold; a failure moves a
// validated or sorted function back to StateBuilding.
func (f *Function) Validate() error {
	var result *multierror.Error
	if err := f.resolveLinks(); err != nil {
		result = multierror.Append(result, err)
	}
	for _, n := range f.nodes {
		if !n.ArePortsValid() {
			result = multierror.Append(result, n.errorf("", ErrInvalidPorts))
		}
		if _, literal := literalKinds[n.nodeType]; literal && !n.HasLiteral() {
			result = multierror.Append(result, n.errorf("", fmt.Errorf("%w: literal is not set", ErrInvalidLiteralAccess)))
		}
	}
	for _, p := range f.sinks() {
		if p.reference == "" {
			result = multierror.Append(result, &GraphError{
				Function: f.label(), Node: ownerName(p), Port: p.identifier, Err: ErrUnconnectedPort,
			})
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		if f.state == StateValidated || f.state == StateSorted {
			f.state = StateBuilding
		}
		return err
	}
	if f.state == StateBuilding {
		f.state = StateValidated
	}
	return nil
}

func ownerName(p *Port) string {
	if p.node != nil {
		return p.node.identifier
	}
	if p.direction == Input {
		return BoundaryInputs
	}
	return BoundaryOutputs
}
