package hclmodel

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/threemf/internal/field"
	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/object"
	"github.com/vk/threemf/internal/resource"
)

func buildMesh(m *resource.Model, block *hcl.Block, b *meshBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	o, err := object.NewMeshObject(m, resource.ModelResourceID(b.ID))
	if err != nil {
		return nil, declareError(block, err)
	}
	diags := setObjectAttrs(&o.Base, block, b.UUID, b.PartNumber)
	for i, values := range b.Vertices {
		v, err := geom.NewVector3(values)
		if err != nil {
			diags = append(diags, errorDiag("Invalid vertex", fmt.Errorf("vertex %d: %w", i, err), &block.DefRange))
			continue
		}
		o.Vertices = append(o.Vertices, v)
	}
	for i, indices := range b.Triangles {
		if len(indices) != 3 {
			diags = append(diags, errorDiag("Invalid triangle", fmt.Errorf("triangle %d has %d indices, want 3", i, len(indices)), &block.DefRange))
			continue
		}
		var t object.Triangle
		for k, idx := range indices {
			if idx < 0 {
				diags = append(diags, errorDiag("Invalid triangle", fmt.Errorf("triangle %d has negative index %d", i, idx), &block.DefRange))
			}
			t[k] = uint32(idx)
		}
		o.Triangles = append(o.Triangles, t)
	}
	o.SetSliceStackID(resource.ModelResourceID(b.SliceStack))
	return o.PackageResourceID(), diags
}

func buildComponents(m *resource.Model, block *hcl.Block, b *componentsBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	o, err := object.NewComponentsObject(m, resource.ModelResourceID(b.ID))
	if err != nil {
		return nil, declareError(block, err)
	}
	diags := setObjectAttrs(&o.Base, block, b.UUID, b.PartNumber)
	for _, c := range b.Components {
		t, tDiags := transformFromValues(c.Transform, &block.DefRange)
		diags = append(diags, tDiags...)
		o.AddComponent(resource.ModelResourceID(c.Object), t)
	}
	return o.PackageResourceID(), diags
}

func buildLevelSet(m *resource.Model, block *hcl.Block, b *levelSetBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	o, err := object.NewLevelSetObject(m, resource.ModelResourceID(b.ID))
	if err != nil {
		return nil, declareError(block, err)
	}
	diags := setObjectAttrs(&o.Base, block, b.UUID, b.PartNumber)

	fn, d := lookup(m, block, "function", b.Function)
	diags = append(diags, d...)
	mesh, d := lookup(m, block, "mesh", b.Mesh)
	diags = append(diags, d...)
	vd, d := lookup(m, block, "volume_data", b.VolumeData)
	diags = append(diags, d...)
	o.SetFunction(fn)
	o.SetMesh(mesh)
	o.SetVolumeData(vd)

	if b.Channel != nil {
		o.Channel = *b.Channel
	}
	o.Transform, d = transformFromValues(b.Transform, &block.DefRange)
	diags = append(diags, d...)
	o.MinFeatureSize = b.MinFeatureSize
	o.FallBackValue = b.FallBackValue
	o.MeshBBoxOnly = b.MeshBBoxOnly
	return o.PackageResourceID(), diags
}

func setObjectAttrs(o *object.Base, block *hcl.Block, uuid, partNumber string) hcl.Diagnostics {
	o.SetName(block.Labels[0])
	o.SetPartNumber(partNumber)
	if uuid == "" {
		return nil
	}
	if err := o.SetUUID(uuid); err != nil {
		return hcl.Diagnostics{errorDiag("Invalid UUID", err, &block.DefRange)}
	}
	return nil
}

func buildScalarField(m *resource.Model, block *hcl.Block, b *scalarFieldBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	f, err := field.NewConstant(m, resource.ModelResourceID(b.ID), b.Value)
	if err != nil {
		return nil, declareError(block, err)
	}
	return f.PackageResourceID(), nil
}

func buildComposedField(m *resource.Model, block *hcl.Block, b *composedFieldBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	method, err := field.MethodFromString(b.Method)
	if err != nil {
		return nil, hcl.Diagnostics{errorDiag("Invalid composition method", err, &block.DefRange)}
	}
	f, err := field.NewComposed(m, resource.ModelResourceID(b.ID), method)
	if err != nil {
		return nil, declareError(block, err)
	}

	var diags hcl.Diagnostics
	reference := func(id uint32, values []float64) field.Reference {
		ref := field.NewReference(resource.ModelResourceID(id))
		t, d := transformFromValues(values, &block.DefRange)
		diags = append(diags, d...)
		ref.Transform = t
		return ref
	}
	f.SetField1(reference(b.Field1, b.Transform1))
	f.SetField2(reference(b.Field2, b.Transform2))
	if b.Mask != 0 {
		f.SetMask(reference(b.Mask, b.MaskTransform))
	}
	if b.Factor1 != nil {
		f.SetFactor1(*b.Factor1)
	}
	if b.Factor2 != nil {
		f.SetFactor2(*b.Factor2)
	}
	return f.PackageResourceID(), diags
}

func functionReference(b *functionRefBlock, subject *hcl.Range) (field.FunctionReference, hcl.Diagnostics) {
	ref := field.NewFunctionReference(resource.ModelResourceID(b.Function), b.Channel)
	t, diags := transformFromValues(b.Transform, subject)
	ref.Transform = t
	ref.MinFeatureSize = b.MinFeatureSize
	ref.FallBackValue = b.FallBackValue
	return ref, diags
}

func buildFunctionField(m *resource.Model, block *hcl.Block, b *functionFieldBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	ref, diags := functionReference(b.ref(), &block.DefRange)
	f, err := field.NewFromFunction(m, resource.ModelResourceID(b.ID), ref)
	if err != nil {
		return nil, append(diags, declareError(block, err)...)
	}
	return f.PackageResourceID(), diags
}

func buildImage3D(m *resource.Model, block *hcl.Block, b *image3DBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	img, err := field.NewImage3D(m, resource.ModelResourceID(b.ID), block.Labels[0], b.Sheets...)
	if err != nil {
		return nil, declareError(block, err)
	}
	return img.PackageResourceID(), nil
}

func buildImageField(m *resource.Model, block *hcl.Block, b *imageFieldBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	channel := field.ChannelRed
	if b.Channel != "" {
		var err error
		if channel, err = field.ChannelFromString(b.Channel); err != nil {
			return nil, hcl.Diagnostics{errorDiag("Invalid color channel", err, &block.DefRange)}
		}
	}
	f, err := field.NewFromImage3D(m, resource.ModelResourceID(b.ID), resource.ModelResourceID(b.Image), channel)
	if err != nil {
		return nil, declareError(block, err)
	}
	var diags hcl.Diagnostics
	f.Transform, diags = transformFromValues(b.Transform, &block.DefRange)
	if b.Scale != nil {
		f.Scale = *b.Scale
	}
	f.Offset = b.Offset
	return f.PackageResourceID(), diags
}

func buildVolumeData(m *resource.Model, block *hcl.Block, b *volumeDataBlock) (*resource.PackageResourceID, hcl.Diagnostics) {
	vd, err := field.NewVolumeData(m, resource.ModelResourceID(b.ID))
	if err != nil {
		return nil, declareError(block, err)
	}
	var diags hcl.Diagnostics
	if b.Color != nil {
		ref, d := functionReference(b.Color, &block.DefRange)
		diags = append(diags, d...)
		vd.SetColor(ref)
	}
	for _, p := range b.Properties {
		ref, d := functionReference(p.ref(), &block.DefRange)
		diags = append(diags, d...)
		if err := vd.AddProperty(field.Property{Name: p.Name, Function: ref, Required: p.Required}); err != nil {
			diags = append(diags, errorDiag("Invalid property", err, &block.DefRange))
		}
	}
	return vd.PackageResourceID(), diags
}
