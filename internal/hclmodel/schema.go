package hclmodel

import "github.com/hashicorp/hcl/v2"

// rootSchema lists the top-level blocks. Every block carries one name label.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "function", LabelNames: []string{"name"}},
		{Type: "mesh", LabelNames: []string{"name"}},
		{Type: "components", LabelNames: []string{"name"}},
		{Type: "levelset", LabelNames: []string{"name"}},
		{Type: "scalar_field", LabelNames: []string{"name"}},
		{Type: "composed_field", LabelNames: []string{"name"}},
		{Type: "function_field", LabelNames: []string{"name"}},
		{Type: "image3d", LabelNames: []string{"name"}},
		{Type: "image_field", LabelNames: []string{"name"}},
		{Type: "volume_data", LabelNames: []string{"name"}},
	},
}

type functionBlock struct {
	ID          uint32       `hcl:"id"`
	DisplayName string       `hcl:"display_name,optional"`
	Inputs      []*portBlock `hcl:"input,block"`
	Outputs     []*portBlock `hcl:"output,block"`
	Nodes       []*nodeBlock `hcl:"node,block"`
}

type portBlock struct {
	Name        string         `hcl:"name,label"`
	DisplayName string         `hcl:"display_name,optional"`
	Type        hcl.Expression `hcl:"type,optional"`
	Reference   hcl.Expression `hcl:"reference,optional"`
}

type nodeBlock struct {
	Type          string         `hcl:"type,label"`
	Name          string         `hcl:"name,label"`
	DisplayName   string         `hcl:"display_name,optional"`
	Tag           string         `hcl:"tag,optional"`
	Configuration string         `hcl:"configuration,optional"`
	Value         hcl.Expression `hcl:"value,optional"`
	Inputs        hcl.Expression `hcl:"inputs,optional"`
	InputPorts    []*portBlock   `hcl:"input,block"`
	OutputPorts   []*portBlock   `hcl:"output,block"`
}

type meshBlock struct {
	ID         uint32      `hcl:"id"`
	UUID       string      `hcl:"uuid,optional"`
	PartNumber string      `hcl:"part_number,optional"`
	Vertices   [][]float64 `hcl:"vertices"`
	Triangles  [][]int     `hcl:"triangles"`
	SliceStack uint32      `hcl:"slice_stack,optional"`
}

type componentsBlock struct {
	ID         uint32            `hcl:"id"`
	UUID       string            `hcl:"uuid,optional"`
	PartNumber string            `hcl:"part_number,optional"`
	Components []*componentBlock `hcl:"component,block"`
}

type componentBlock struct {
	Object    uint32    `hcl:"object"`
	Transform []float64 `hcl:"transform,optional"`
}

type levelSetBlock struct {
	ID             uint32    `hcl:"id"`
	UUID           string    `hcl:"uuid,optional"`
	PartNumber     string    `hcl:"part_number,optional"`
	Function       uint32    `hcl:"function,optional"`
	Mesh           uint32    `hcl:"mesh,optional"`
	VolumeData     uint32    `hcl:"volume_data,optional"`
	Channel        *string   `hcl:"channel,optional"`
	Transform      []float64 `hcl:"transform,optional"`
	MinFeatureSize float64   `hcl:"min_feature_size,optional"`
	FallBackValue  float64   `hcl:"fallback_value,optional"`
	MeshBBoxOnly   bool      `hcl:"mesh_bbox_only,optional"`
}

type scalarFieldBlock struct {
	ID    uint32  `hcl:"id"`
	Value float64 `hcl:"value"`
}

type composedFieldBlock struct {
	ID            uint32    `hcl:"id"`
	Method        string    `hcl:"method"`
	Field1        uint32    `hcl:"field1,optional"`
	Field2        uint32    `hcl:"field2,optional"`
	Mask          uint32    `hcl:"mask,optional"`
	Factor1       *float64  `hcl:"factor1,optional"`
	Factor2       *float64  `hcl:"factor2,optional"`
	Transform1    []float64 `hcl:"transform1,optional"`
	Transform2    []float64 `hcl:"transform2,optional"`
	MaskTransform []float64 `hcl:"mask_transform,optional"`
}

type functionRefBlock struct {
	Function       uint32    `hcl:"function"`
	Channel        string    `hcl:"channel"`
	Transform      []float64 `hcl:"transform,optional"`
	MinFeatureSize float64   `hcl:"min_feature_size,optional"`
	FallBackValue  float64   `hcl:"fallback_value,optional"`
}

type functionFieldBlock struct {
	ID             uint32    `hcl:"id"`
	Function       uint32    `hcl:"function"`
	Channel        string    `hcl:"channel"`
	Transform      []float64 `hcl:"transform,optional"`
	MinFeatureSize float64   `hcl:"min_feature_size,optional"`
	FallBackValue  float64   `hcl:"fallback_value,optional"`
}

func (b *functionFieldBlock) ref() *functionRefBlock {
	return &functionRefBlock{b.Function, b.Channel, b.Transform, b.MinFeatureSize, b.FallBackValue}
}

type image3DBlock struct {
	ID     uint32   `hcl:"id"`
	Sheets []string `hcl:"sheets,optional"`
}

type imageFieldBlock struct {
	ID        uint32    `hcl:"id"`
	Image     uint32    `hcl:"image"`
	Channel   string    `hcl:"channel,optional"`
	Transform []float64 `hcl:"transform,optional"`
	Scale     *float64  `hcl:"scale,optional"`
	Offset    float64   `hcl:"offset,optional"`
}

type volumeDataBlock struct {
	ID         uint32            `hcl:"id"`
	Color      *functionRefBlock `hcl:"color,block"`
	Properties []*propertyBlock  `hcl:"property,block"`
}

type propertyBlock struct {
	Name           string    `hcl:"name,label"`
	Required       bool      `hcl:"required,optional"`
	Function       uint32    `hcl:"function"`
	Channel        string    `hcl:"channel"`
	Transform      []float64 `hcl:"transform,optional"`
	MinFeatureSize float64   `hcl:"min_feature_size,optional"`
	FallBackValue  float64   `hcl:"fallback_value,optional"`
}

func (b *propertyBlock) ref() *functionRefBlock {
	return &functionRefBlock{b.Function, b.Channel, b.Transform, b.MinFeatureSize, b.FallBackValue}
}
