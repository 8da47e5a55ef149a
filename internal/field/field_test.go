package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/resource"
)

// newShapeFunction registers a function with a scalar "shape" and a vector
// "color" output.
func newShapeFunction(t *testing.T, m *resource.Model, id resource.ModelResourceID) *implicit.Function {
	t.Helper()
	fn, err := implicit.NewFunction(m, id)
	require.NoError(t, err)
	_, err = fn.AddOutput("shape", "", implicit.PortScalar)
	require.NoError(t, err)
	_, err = fn.AddOutput("color", "", implicit.PortVector)
	require.NoError(t, err)
	return fn
}

func TestMethodFromString(t *testing.T) {
	testCases := []struct {
		in   string
		want Method
	}{
		{"min", MethodMin},
		{"Max", MethodMax},
		{"weightedsum", MethodWeightedSum},
		{"multiply", MethodMultiply},
		{"MASK", MethodMask},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := MethodFromString(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := MethodFromString("average")
	assert.ErrorIs(t, err, ErrInvalidCompositionMethod)
	assert.False(t, Method(42).Valid())
	assert.Equal(t, "Method(42)", Method(42).String())
}

func TestChannelFromString(t *testing.T) {
	got, err := ChannelFromString("g")
	require.NoError(t, err)
	assert.Equal(t, ChannelGreen, got)
	assert.Equal(t, "A", ChannelAlpha.String())

	_, err = ChannelFromString("X")
	assert.ErrorIs(t, err, ErrInvalidColorChannel)
}

func TestComposedValidate(t *testing.T) {
	m := resource.NewModel("")
	_, err := NewConstant(m, 1, 0.5)
	require.NoError(t, err)
	_, err = NewConstant(m, 2, 2)
	require.NoError(t, err)
	newShapeFunction(t, m, 3)

	t.Run("valid min", func(t *testing.T) {
		c, err := NewComposed(m, 0, MethodMin)
		require.NoError(t, err)
		c.SetField1(NewReference(1))
		c.SetField2(NewReference(2))
		assert.NoError(t, c.Validate())
		assert.Len(t, c.Dependencies(), 2)
		assert.Equal(t, 1.0, c.Factor1())
	})

	t.Run("unset inputs", func(t *testing.T) {
		c, err := NewComposed(m, 0, MethodMax)
		require.NoError(t, err)
		err = c.Validate()
		assert.ErrorIs(t, err, resource.ErrInvalidModelResource)
		assert.ErrorContains(t, err, "field2 is not set")
	})

	t.Run("reference to a function", func(t *testing.T) {
		c, err := NewComposed(m, 0, MethodMultiply)
		require.NoError(t, err)
		c.SetField1(NewReference(1))
		c.SetField2(NewReference(3))
		assert.ErrorIs(t, c.Validate(), resource.ErrUnknownModelResource)
	})

	t.Run("missing resource", func(t *testing.T) {
		c, err := NewComposed(m, 0, MethodMultiply)
		require.NoError(t, err)
		c.SetField1(NewReference(1))
		c.SetField2(NewReference(99))
		assert.ErrorIs(t, c.Validate(), resource.ErrResourceNotFound)
	})

	t.Run("mask requires a mask field", func(t *testing.T) {
		c, err := NewComposed(m, 0, MethodMask)
		require.NoError(t, err)
		c.SetField1(NewReference(1))
		c.SetField2(NewReference(2))
		assert.ErrorIs(t, c.Validate(), ErrMaskRequired)

		c.SetMask(NewReference(2))
		assert.NoError(t, c.Validate())
		assert.Len(t, c.Dependencies(), 3)
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := NewComposed(m, 0, Method(9))
		assert.ErrorIs(t, err, ErrInvalidCompositionMethod)

		c, err := NewComposed(m, 0, MethodMin)
		require.NoError(t, err)
		assert.ErrorIs(t, c.SetMethod(Method(-1)), ErrInvalidCompositionMethod)
		assert.Equal(t, MethodMin, c.Method())
	})
}

func TestComposedCycle(t *testing.T) {
	m := resource.NewModel("")
	_, err := NewConstant(m, 1, 0)
	require.NoError(t, err)
	a, err := NewComposed(m, 10, MethodMin)
	require.NoError(t, err)
	b, err := NewComposed(m, 11, MethodMax)
	require.NoError(t, err)

	a.SetField1(NewReference(1))
	a.SetField2(NewReference(11))
	b.SetField1(NewReference(10))
	b.SetField2(NewReference(1))

	assert.ErrorIs(t, a.Validate(), resource.ErrCircularDependency)
	_, err = m.SortedResources()
	assert.ErrorIs(t, err, resource.ErrCircularDependency)

	b.SetField1(NewReference(1))
	require.NoError(t, a.Validate())
	sorted, err := m.SortedResources()
	require.NoError(t, err)
	assert.Less(t, position(sorted, b), position(sorted, a))
}

func TestFromFunction(t *testing.T) {
	m := resource.NewModel("")
	fn := newShapeFunction(t, m, 1)

	f, err := NewFromFunction(m, 2, NewFunctionReference(1, "shape"))
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	require.Len(t, f.Dependencies(), 1)
	assert.Same(t, fn.PackageResourceID(), f.Dependencies()[0])

	f.Function.Channel = "color"
	assert.ErrorIs(t, f.Validate(), ErrInvalidChannel, "vector output feeding a scalar field")
	f.Function.Channel = "missing"
	assert.ErrorIs(t, f.Validate(), ErrInvalidChannel)
	f.Function.FunctionID = 0
	assert.ErrorIs(t, f.Validate(), resource.ErrInvalidModelResource)
}

func TestFromImage3D(t *testing.T) {
	m := resource.NewModel("")
	_, err := NewImage3D(m, 1, "stack", "/3D/img/0.png", "/3D/img/1.png")
	require.NoError(t, err)
	_, err = NewConstant(m, 2, 0)
	require.NoError(t, err)

	f, err := NewFromImage3D(m, 3, 1, ChannelBlue)
	require.NoError(t, err)
	assert.NoError(t, f.Validate())
	assert.Equal(t, KindImage3D, f.Kind())

	f.ImageID = 2
	assert.ErrorIs(t, f.Validate(), resource.ErrUnknownModelResource)
	f.ImageID = 1
	f.Channel = ColorChannel(7)
	assert.ErrorIs(t, f.Validate(), ErrInvalidColorChannel)
}

func TestVolumeData(t *testing.T) {
	m := resource.NewModel("")
	fn := newShapeFunction(t, m, 1)
	vd, err := NewVolumeData(m, 2)
	require.NoError(t, err)
	assert.NoError(t, vd.Validate(), "empty volume data is valid")

	vd.SetColor(NewFunctionReference(1, "color"))
	require.NoError(t, vd.AddProperty(Property{Name: "density", Function: NewFunctionReference(1, "shape")}))
	assert.ErrorIs(t, vd.AddProperty(Property{Name: "density"}), ErrDuplicateProperty)
	assert.ErrorIs(t, vd.AddProperty(Property{}), implicit.ErrInvalidIdentifier)
	require.NoError(t, vd.Validate())

	deps := vd.Dependencies()
	require.Len(t, deps, 2)
	assert.Same(t, fn.PackageResourceID(), deps[0])

	vd.SetColor(NewFunctionReference(1, "shape"))
	require.NoError(t, vd.AddProperty(Property{Name: "temperature", Function: NewFunctionReference(5, "shape")}))
	err = vd.Validate()
	assert.ErrorIs(t, err, ErrInvalidChannel)
	assert.ErrorIs(t, err, resource.ErrResourceNotFound)
	assert.ErrorContains(t, err, `property "temperature"`)

	assert.True(t, vd.RemoveProperty("temperature"))
	assert.False(t, vd.RemoveProperty("temperature"))
	vd.ClearColor()
	_, ok := vd.Color()
	assert.False(t, ok)
	assert.NoError(t, vd.Validate())
}

func position(resources []resource.Resource, r resource.Resource) int {
	for i, candidate := range resources {
		if candidate == r {
			return i
		}
	}
	return -1
}
