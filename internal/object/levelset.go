package object

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/threemf/internal/field"
	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/resource"
)

// LevelSetObject is bounded by the zero level of one function output,
// evaluated over the domain of a mesh.
type LevelSetObject struct {
	Base

	function   *resource.PackageResourceID
	mesh       *resource.PackageResourceID
	volumeData *resource.PackageResourceID

	Channel        string
	Transform      geom.Matrix4x4
	MinFeatureSize float64
	FallBackValue  float64
	MeshBBoxOnly   bool
}

// NewLevelSetObject creates a level set without references and registers
// it in m. The default channel is "shape".
func NewLevelSetObject(m *resource.Model, id resource.ModelResourceID) (*LevelSetObject, error) {
	b, err := newBase(m, id)
	if err != nil {
		return nil, err
	}
	return register(&LevelSetObject{Base: b, Channel: "shape", Transform: geom.Identity()})
}

func (o *LevelSetObject) Kind() Kind { return KindLevelSet }

func (o *LevelSetObject) SetFunction(pid *resource.PackageResourceID)   { o.function = pid }
func (o *LevelSetObject) SetMesh(pid *resource.PackageResourceID)       { o.mesh = pid }
func (o *LevelSetObject) SetVolumeData(pid *resource.PackageResourceID) { o.volumeData = pid }

func (o *LevelSetObject) FunctionID() *resource.PackageResourceID   { return o.function }
func (o *LevelSetObject) MeshID() *resource.PackageResourceID       { return o.mesh }
func (o *LevelSetObject) VolumeDataID() *resource.PackageResourceID { return o.volumeData }

// Function resolves the referenced implicit function.
func (o *LevelSetObject) Function() (*implicit.Function, error) {
	if o.function == nil {
		return nil, o.errorf(fmt.Errorf("%w: function is not set", resource.ErrInvalidModelResource))
	}
	r, err := o.lookup(o.function)
	if err != nil {
		return nil, err
	}
	fn, ok := r.(*implicit.Function)
	if !ok {
		return nil, o.errorf(fmt.Errorf("%w: %s is not an implicit function", resource.ErrUnknownModelResource, o.function))
	}
	return fn, nil
}

// Mesh resolves the mesh providing the evaluation domain.
func (o *LevelSetObject) Mesh() (*MeshObject, error) {
	if o.mesh == nil {
		return nil, o.errorf(fmt.Errorf("%w: mesh is not set", resource.ErrInvalidModelResource))
	}
	r, err := o.lookup(o.mesh)
	if err != nil {
		return nil, err
	}
	mesh, ok := r.(*MeshObject)
	if !ok {
		return nil, o.errorf(fmt.Errorf("%w: %s is not a mesh object", resource.ErrUnknownModelResource, o.mesh))
	}
	return mesh, nil
}

// VolumeData resolves the optional volume data. It returns nil without an
// error when none is set.
func (o *LevelSetObject) VolumeData() (*field.VolumeData, error) {
	if o.volumeData == nil {
		return nil, nil
	}
	r, err := o.lookup(o.volumeData)
	if err != nil {
		return nil, err
	}
	vd, ok := r.(*field.VolumeData)
	if !ok {
		return nil, o.errorf(fmt.Errorf("%w: %s is not volume data", resource.ErrUnknownModelResource, o.volumeData))
	}
	return vd, nil
}

// Validate checks that function and mesh are set, live in the same model
// part as the level set, have the right kinds, and that Channel names a
// scalar output of the function.
func (o *LevelSetObject) Validate() error {
	var result *multierror.Error
	fn, err := o.Function()
	if err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := o.Mesh(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := o.VolumeData(); err != nil {
		result = multierror.Append(result, err)
	}
	if fn != nil {
		out := fn.FindOutput(o.Channel)
		switch {
		case out == nil:
			result = multierror.Append(result, o.errorf(fmt.Errorf("%w: function has no output %q", field.ErrInvalidChannel, o.Channel)))
		case out.Type() != implicit.PortScalar:
			result = multierror.Append(result, o.errorf(fmt.Errorf("%w: output %q is %s", field.ErrInvalidChannel, o.Channel, out.Type())))
		}
	}
	return result.ErrorOrNil()
}

func (o *LevelSetObject) IsValid() bool { return o.Validate() == nil }

// HasSlices is always false; a level set is never built from slices.
func (o *LevelSetObject) HasSlices(bool) bool { return false }

func (o *LevelSetObject) IsValidForSlices(transform geom.Matrix4x4) bool {
	mesh, err := o.Mesh()
	if err != nil {
		return false
	}
	return mesh.IsValidForSlices(transform)
}

// ExtendOutbox uses the bounding box of the mesh domain.
func (o *LevelSetObject) ExtendOutbox(box *geom.Box, transform geom.Matrix4x4) error {
	mesh, err := o.Mesh()
	if err != nil {
		return err
	}
	return mesh.ExtendOutbox(box, transform)
}

// MergeToMesh contributes no triangles.
func (o *LevelSetObject) MergeToMesh(*Mesh, geom.Matrix4x4) error { return nil }

// Dependencies lists function, mesh and volume data in that order,
// skipping references into other models.
func (o *LevelSetObject) Dependencies() []*resource.PackageResourceID {
	var deps []*resource.PackageResourceID
	for _, pid := range []*resource.PackageResourceID{o.function, o.mesh, o.volumeData} {
		if pid == nil {
			continue
		}
		if own, ok := o.Model().FindByUniqueID(pid.UniqueID()); ok && own == pid {
			deps = append(deps, pid)
		}
	}
	return deps
}

// lookup resolves pid and rejects ids from another model or part.
func (o *LevelSetObject) lookup(pid *resource.PackageResourceID) (resource.Resource, error) {
	if pid.Path() != o.PackageResourceID().Path() {
		return nil, o.errorf(fmt.Errorf("%w: %s is in another part", resource.ErrModelMismatch, pid))
	}
	if own, ok := o.Model().FindByUniqueID(pid.UniqueID()); !ok || own != pid {
		return nil, o.errorf(fmt.Errorf("%w: %s", resource.ErrModelMismatch, pid))
	}
	return o.Model().Find(pid)
}

func (o *LevelSetObject) errorf(err error) error {
	return fmt.Errorf("level set %s: %w", o.PackageResourceID(), err)
}
