package object

import (
	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/resource"
)

// Triangle indexes three vertices of a mesh.
type Triangle [3]uint32

// Mesh is plain triangle geometry.
type Mesh struct {
	Vertices  []geom.Vector3
	Triangles []Triangle
}

// valid reports whether the mesh has triangles and every triangle uses
// three distinct in-range vertices.
func (m *Mesh) valid() bool {
	if len(m.Triangles) == 0 {
		return false
	}
	n := uint32(len(m.Vertices))
	for _, t := range m.Triangles {
		if t[0] >= n || t[1] >= n || t[2] >= n {
			return false
		}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			return false
		}
	}
	return true
}

// Append adds src transformed by transform to m.
func (m *Mesh) Append(src *Mesh, transform geom.Matrix4x4) {
	offset := uint32(len(m.Vertices))
	for _, v := range src.Vertices {
		m.Vertices = append(m.Vertices, transform.TransformPoint(v))
	}
	for _, t := range src.Triangles {
		m.Triangles = append(m.Triangles, Triangle{t[0] + offset, t[1] + offset, t[2] + offset})
	}
}

// MeshObject is an object made of triangles, optionally with a slice stack.
type MeshObject struct {
	Base
	Mesh

	sliceStackID resource.ModelResourceID
}

// NewMeshObject creates an empty mesh object and registers it in m.
func NewMeshObject(m *resource.Model, id resource.ModelResourceID) (*MeshObject, error) {
	b, err := newBase(m, id)
	if err != nil {
		return nil, err
	}
	return register(&MeshObject{Base: b})
}

func (o *MeshObject) Kind() Kind { return KindMesh }

func (o *MeshObject) SliceStackID() resource.ModelResourceID { return o.sliceStackID }

func (o *MeshObject) SetSliceStackID(id resource.ModelResourceID) { o.sliceStackID = id }

func (o *MeshObject) IsValid() bool { return o.Mesh.valid() }

func (o *MeshObject) HasSlices(bool) bool { return o.sliceStackID != 0 }

// IsValidForSlices requires a planar transform once a slice stack is attached.
func (o *MeshObject) IsValidForSlices(transform geom.Matrix4x4) bool {
	if o.sliceStackID == 0 {
		return true
	}
	return transform.IsPlanar()
}

func (o *MeshObject) ExtendOutbox(box *geom.Box, transform geom.Matrix4x4) error {
	for _, v := range o.Vertices {
		box.Extend(transform.TransformPoint(v))
	}
	return nil
}

func (o *MeshObject) MergeToMesh(dst *Mesh, transform geom.Matrix4x4) error {
	dst.Append(&o.Mesh, transform)
	return nil
}

func (o *MeshObject) Dependencies() []*resource.PackageResourceID {
	if o.sliceStackID == 0 {
		return nil
	}
	if pid, ok := o.Model().FindPackageResourceID(o.PackageResourceID().Path(), o.sliceStackID); ok {
		return []*resource.PackageResourceID{pid}
	}
	return nil
}
