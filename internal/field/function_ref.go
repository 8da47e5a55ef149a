package field

import (
	"fmt"

	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/resource"
)

// FunctionReference samples one output channel of an implicit function.
type FunctionReference struct {
	FunctionID     resource.ModelResourceID
	Channel        string
	Transform      geom.Matrix4x4
	MinFeatureSize float64
	FallBackValue  float64
}

// NewFunctionReference references a function output with an identity
// transform.
func NewFunctionReference(id resource.ModelResourceID, channel string) FunctionReference {
	return FunctionReference{FunctionID: id, Channel: channel, Transform: geom.Identity()}
}

// Resolve finds the referenced function in owner's part and checks that
// Channel names one of its outputs. With allowed types given the output
// must have one of them.
func (r FunctionReference) Resolve(owner resource.Resource, allowed ...implicit.PortType) (*implicit.Function, error) {
	pid := owner.PackageResourceID()
	if r.FunctionID == 0 {
		return nil, fmt.Errorf("resource %s: %w: function is not set", pid, resource.ErrInvalidModelResource)
	}
	res, err := owner.Model().Resolve(pid.Path(), r.FunctionID)
	if err != nil {
		return nil, err
	}
	fn, ok := res.(*implicit.Function)
	if !ok {
		return nil, &resource.Error{Path: pid.Path(), ID: r.FunctionID, Err: fmt.Errorf("%w: not an implicit function", resource.ErrUnknownModelResource)}
	}
	out := fn.FindOutput(r.Channel)
	if out == nil {
		return nil, &resource.Error{Path: pid.Path(), ID: r.FunctionID, Err: fmt.Errorf("%w: no output %q", ErrInvalidChannel, r.Channel)}
	}
	if len(allowed) == 0 {
		return fn, nil
	}
	for _, t := range allowed {
		if out.Type() == t {
			return fn, nil
		}
	}
	return nil, &resource.Error{Path: pid.Path(), ID: r.FunctionID,
		Err: fmt.Errorf("%w: output %q is %s", ErrInvalidChannel, r.Channel, out.Type())}
}
