package field

import (
	"fmt"

	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/resource"
)

// Kind discriminates the scalar field variants.
type Kind int

const (
	KindConstant Kind = iota
	KindComposed
	KindFunction
	KindImage3D
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindComposed:
		return "composed"
	case KindFunction:
		return "function"
	case KindImage3D:
		return "image3d"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ScalarField is a resource producing one scalar per point in space.
type ScalarField interface {
	resource.Resource
	Kind() Kind
	Validate() error
}

// Reference points at another field of the same model part.
type Reference struct {
	ID        resource.ModelResourceID
	Transform geom.Matrix4x4
}

// NewReference references id with an identity transform.
func NewReference(id resource.ModelResourceID) Reference {
	return Reference{ID: id, Transform: geom.Identity()}
}

// IsSet reports whether the reference names a resource.
func (r Reference) IsSet() bool { return r.ID != 0 }

// Constant is a field with the same value everywhere.
type Constant struct {
	resource.Base
	Value float64
}

// NewConstant creates a constant field and registers it in m.
func NewConstant(m *resource.Model, id resource.ModelResourceID, value float64) (*Constant, error) {
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	c := &Constant{Base: base, Value: value}
	if err := m.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Constant) Kind() Kind      { return KindConstant }
func (c *Constant) Validate() error { return nil }

// FromFunction samples one output channel of an implicit function.
type FromFunction struct {
	resource.Base
	Function FunctionReference
}

// NewFromFunction creates a function-backed field and registers it in m.
func NewFromFunction(m *resource.Model, id resource.ModelResourceID, ref FunctionReference) (*FromFunction, error) {
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	f := &FromFunction{Base: base, Function: ref}
	if err := m.Add(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FromFunction) Kind() Kind { return KindFunction }

// Validate checks that the function exists and Channel is a scalar output.
func (f *FromFunction) Validate() error {
	_, err := f.Function.Resolve(f, implicit.PortScalar)
	return err
}

func (f *FromFunction) Dependencies() []*resource.PackageResourceID {
	return dependencies(f, f.Function.FunctionID)
}

// resolveField resolves a field reference relative to owner's part.
func resolveField(owner resource.Resource, id resource.ModelResourceID) (ScalarField, error) {
	pid := owner.PackageResourceID()
	r, err := owner.Model().Resolve(pid.Path(), id)
	if err != nil {
		return nil, err
	}
	sf, ok := r.(ScalarField)
	if !ok {
		return nil, &resource.Error{Path: pid.Path(), ID: id, Err: fmt.Errorf("%w: not a scalar field", resource.ErrUnknownModelResource)}
	}
	return sf, nil
}

// dependencies maps the registered ids among ids to package ids.
func dependencies(owner resource.Resource, ids ...resource.ModelResourceID) []*resource.PackageResourceID {
	var deps []*resource.PackageResourceID
	path := owner.PackageResourceID().Path()
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if pid, ok := owner.Model().FindPackageResourceID(path, id); ok {
			deps = append(deps, pid)
		}
	}
	return deps
}
