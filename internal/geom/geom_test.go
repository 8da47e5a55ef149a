package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransform(t *testing.T) {
	m, err := NewTransform([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1, 10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, Vector3{11, 22, 33}, m.TransformPoint(Vector3{1, 2, 3}))
	assert.True(t, m.IsPlanar())

	_, err = NewTransform([]float64{1, 2})
	assert.ErrorContains(t, err, "12 components")
}

func TestIsPlanar(t *testing.T) {
	m := Identity()
	m[0][2] = 0.5
	assert.False(t, m.IsPlanar())

	m = Identity()
	m[2][2] = 2
	assert.False(t, m.IsPlanar())
}

func TestMatrixRoundTrip(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = float64(i)
	}
	m, err := NewMatrix4x4(values)
	require.NoError(t, err)
	assert.Equal(t, values, m.Slice())
	assert.Equal(t, m, Identity().Mul(m))
}

func TestBox(t *testing.T) {
	var b Box
	assert.True(t, b.Empty())
	assert.Nil(t, b.Corners())

	b.Extend(Vector3{1, 1, 1})
	b.Extend(Vector3{-1, 2, 0})
	assert.False(t, b.Empty())
	assert.Equal(t, Vector3{-1, 1, 0}, b.Min)
	assert.Equal(t, Vector3{1, 2, 1}, b.Max)
	assert.Len(t, b.Corners(), 8)
}
