package object

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/resource"
)

// ErrInvalidUUID is returned when an object UUID does not parse.
var ErrInvalidUUID = errors.New("invalid object uuid")

// Kind discriminates the object variants.
type Kind int

const (
	KindMesh Kind = iota
	KindComponents
	KindLevelSet
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindComponents:
		return "components"
	case KindLevelSet:
		return "levelset"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Object is the contract shared by every model object.
type Object interface {
	resource.Resource
	resource.Dependent

	Kind() Kind
	UUID() uuid.UUID
	Name() string
	PartNumber() string

	// IsValid reports whether the object can be written to a package.
	IsValid() bool
	// HasSlices reports whether the object, or with recursive set any
	// object it contains, carries a slice stack.
	HasSlices(recursive bool) bool
	// IsValidForSlices reports whether the object's slices survive transform.
	IsValidForSlices(transform geom.Matrix4x4) bool
	// ExtendOutbox grows box by the object's geometry under transform.
	ExtendOutbox(box *geom.Box, transform geom.Matrix4x4) error
	// MergeToMesh appends the object's triangles under transform to dst.
	MergeToMesh(dst *Mesh, transform geom.Matrix4x4) error

	base() *Base
}

// Base holds the attributes common to all objects.
type Base struct {
	resource.Base

	uuid       uuid.UUID
	name       string
	partNumber string
}

func newBase(m *resource.Model, id resource.ModelResourceID) (Base, error) {
	rb, err := m.NewBase(id)
	if err != nil {
		return Base{}, err
	}
	return Base{Base: rb, uuid: uuid.New()}, nil
}

func (b *Base) UUID() uuid.UUID    { return b.uuid }
func (b *Base) Name() string       { return b.name }
func (b *Base) PartNumber() string { return b.partNumber }

func (b *Base) SetName(name string)     { b.name = name }
func (b *Base) SetPartNumber(pn string) { b.partNumber = pn }

// SetUUID parses and assigns s.
func (b *Base) SetUUID(s string) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidUUID, s, err)
	}
	b.uuid = id
	return nil
}

func (b *Base) base() *Base { return b }

// register adds o to its model.
func register[T Object](o T) (T, error) {
	if err := o.Model().Add(o); err != nil {
		var zero T
		return zero, err
	}
	return o, nil
}

// resolveObject resolves a local object id relative to owner's part.
func resolveObject(owner resource.Resource, id resource.ModelResourceID) (Object, error) {
	pid := owner.PackageResourceID()
	r, err := owner.Model().Resolve(pid.Path(), id)
	if err != nil {
		return nil, err
	}
	o, ok := r.(Object)
	if !ok {
		return nil, &resource.Error{Path: pid.Path(), ID: id, Err: fmt.Errorf("%w: not an object", resource.ErrUnknownModelResource)}
	}
	return o, nil
}

// Objects returns the objects registered in m in registration order.
func Objects(m *resource.Model) []Object {
	var out []Object
	for _, r := range m.Resources() {
		if o, ok := r.(Object); ok {
			out = append(out, o)
		}
	}
	return out
}
