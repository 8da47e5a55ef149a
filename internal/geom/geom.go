// Package geom holds the small double-precision vector and matrix types shared
// by implicit function literals, object transforms and bounding boxes.
package geom

import (
	"fmt"
	"math"
)

// Vector3 is a point or direction in model space.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 builds a vector from a slice of exactly three components.
func NewVector3(values []float64) (Vector3, error) {
	if len(values) != 3 {
		return Vector3{}, fmt.Errorf("vector requires 3 components, got %d", len(values))
	}
	return Vector3{X: values[0], Y: values[1], Z: values[2]}, nil
}

// Slice returns the components in x, y, z order.
func (v Vector3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Matrix4x4 is a row-major 4x4 matrix. Points are transformed as column
// vectors: p' = M * (x, y, z, 1).
type Matrix4x4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Matrix4x4 {
	return Matrix4x4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix4x4 builds a matrix from 16 row-major values.
func NewMatrix4x4(values []float64) (Matrix4x4, error) {
	var m Matrix4x4
	if len(values) != 16 {
		return m, fmt.Errorf("matrix requires 16 components, got %d", len(values))
	}
	for i, v := range values {
		m[i/4][i%4] = v
	}
	return m, nil
}

// NewTransform builds an affine matrix from the 12 values of a 3MF transform
// attribute ("m00 m01 m02 m10 m11 m12 m20 m21 m22 m30 m31 m32"). The 3MF
// convention multiplies row vectors, so the values are transposed here.
func NewTransform(values []float64) (Matrix4x4, error) {
	m := Identity()
	if len(values) != 12 {
		return m, fmt.Errorf("transform requires 12 components, got %d", len(values))
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			m[col][row] = values[row*3+col]
		}
	}
	return m, nil
}

// Slice returns the 16 values in row-major order.
func (m Matrix4x4) Slice() []float64 {
	out := make([]float64, 0, 16)
	for _, row := range m {
		out = append(out, row[:]...)
	}
	return out
}

// Mul returns m * o.
func (m Matrix4x4) Mul(o Matrix4x4) Matrix4x4 {
	var r Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// TransformPoint applies the affine part of m to p.
func (m Matrix4x4) TransformPoint(p Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// IsPlanar reports whether m keeps z-planes parallel to the xy-plane and
// leaves z unscaled, which is what sliced objects require.
func (m Matrix4x4) IsPlanar() bool {
	const eps = 1e-9
	return math.Abs(m[0][2]) < eps && math.Abs(m[1][2]) < eps &&
		math.Abs(m[2][0]) < eps && math.Abs(m[2][1]) < eps &&
		math.Abs(m[2][2]-1) < eps
}

// Box is an axis-aligned bounding box. The zero value is empty.
type Box struct {
	Min, Max Vector3
	valid    bool
}

// Empty reports whether no point has been added to b.
func (b *Box) Empty() bool {
	return !b.valid
}

// Extend grows b to contain p.
func (b *Box) Extend(p Vector3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min = Vector3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
	b.Max = Vector3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
}

// Corners returns the eight corners of a non-empty box.
func (b *Box) Corners() []Vector3 {
	if !b.valid {
		return nil
	}
	out := make([]Vector3, 0, 8)
	for _, x := range []float64{b.Min.X, b.Max.X} {
		for _, y := range []float64{b.Min.Y, b.Max.Y} {
			for _, z := range []float64{b.Min.Z, b.Max.Z} {
				out = append(out, Vector3{x, y, z})
			}
		}
	}
	return out
}
