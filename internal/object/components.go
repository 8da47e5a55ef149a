package object

import (
	"fmt"

	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/resource"
)

// Component places another object of the same part under a transform.
type Component struct {
	ObjectID  resource.ModelResourceID
	Transform geom.Matrix4x4
}

// ComponentsObject is an assembly of other objects.
type ComponentsObject struct {
	Base

	components []Component
}

// NewComponentsObject creates an empty assembly and registers it in m.
func NewComponentsObject(m *resource.Model, id resource.ModelResourceID) (*ComponentsObject, error) {
	b, err := newBase(m, id)
	if err != nil {
		return nil, err
	}
	return register(&ComponentsObject{Base: b})
}

func (o *ComponentsObject) Kind() Kind { return KindComponents }

// AddComponent appends a component with the given transform.
func (o *ComponentsObject) AddComponent(id resource.ModelResourceID, transform geom.Matrix4x4) {
	o.components = append(o.components, Component{ObjectID: id, Transform: transform})
}

func (o *ComponentsObject) Components() []Component {
	return append([]Component(nil), o.components...)
}

// IsValid requires at least one component, each resolving to a valid
// object. An assembly containing itself is invalid.
func (o *ComponentsObject) IsValid() bool {
	if len(o.components) == 0 {
		return false
	}
	err := o.walk(func(obj Object, _ geom.Matrix4x4) error {
		if !obj.IsValid() {
			return fmt.Errorf("object %s is invalid", obj.PackageResourceID())
		}
		return nil
	}, geom.Identity(), map[*ComponentsObject]bool{})
	return err == nil
}

func (o *ComponentsObject) HasSlices(recursive bool) bool {
	if !recursive {
		return false
	}
	found := false
	_ = o.walk(func(obj Object, _ geom.Matrix4x4) error {
		found = found || obj.HasSlices(false)
		return nil
	}, geom.Identity(), map[*ComponentsObject]bool{})
	return found
}

func (o *ComponentsObject) IsValidForSlices(transform geom.Matrix4x4) bool {
	err := o.walk(func(obj Object, t geom.Matrix4x4) error {
		if !obj.IsValidForSlices(t) {
			return fmt.Errorf("object %s is not valid for slices", obj.PackageResourceID())
		}
		return nil
	}, transform, map[*ComponentsObject]bool{})
	return err == nil
}

func (o *ComponentsObject) ExtendOutbox(box *geom.Box, transform geom.Matrix4x4) error {
	return o.walk(func(obj Object, t geom.Matrix4x4) error {
		return obj.ExtendOutbox(box, t)
	}, transform, map[*ComponentsObject]bool{})
}

func (o *ComponentsObject) MergeToMesh(dst *Mesh, transform geom.Matrix4x4) error {
	return o.walk(func(obj Object, t geom.Matrix4x4) error {
		return obj.MergeToMesh(dst, t)
	}, transform, map[*ComponentsObject]bool{})
}

func (o *ComponentsObject) Dependencies() []*resource.PackageResourceID {
	var deps []*resource.PackageResourceID
	path := o.PackageResourceID().Path()
	for _, c := range o.components {
		if pid, ok := o.Model().FindPackageResourceID(path, c.ObjectID); ok {
			deps = append(deps, pid)
		}
	}
	return deps
}

// walk calls visit for every non-assembly object reachable from o with its
// accumulated transform. Nested assemblies are expanded in place.
func (o *ComponentsObject) walk(visit func(Object, geom.Matrix4x4) error, transform geom.Matrix4x4, active map[*ComponentsObject]bool) error {
	if active[o] {
		return fmt.Errorf("object %s: %w: assembly contains itself", o.PackageResourceID(), resource.ErrCircularDependency)
	}
	active[o] = true
	defer delete(active, o)

	for _, c := range o.components {
		obj, err := resolveObject(o, c.ObjectID)
		if err != nil {
			return err
		}
		t := transform.Mul(c.Transform)
		if nested, ok := obj.(*ComponentsObject); ok {
			if err := nested.walk(visit, t, active); err != nil {
				return err
			}
			continue
		}
		if err := visit(obj, t); err != nil {
			return err
		}
	}
	return nil
}
