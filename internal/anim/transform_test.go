package anim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLerpEndpoints(t *testing.T) {
	a := DefaultCameraPose()
	b := Transform{Position: mgl64.Vec3{4, 4, 4}, Rotation: mgl64.Vec3{1, 1, 1}, Scale: mgl64.Vec3{2, 2, 2}}

	assert.True(t, Lerp(a, b, 0).Equal(a))
	assert.True(t, Lerp(a, b, 1).ApproxEqual(b))
}

func TestTransformFinite(t *testing.T) {
	assert.True(t, Identity().Finite())

	tr := Identity()
	tr.Rotation[1] = math.NaN()
	assert.False(t, tr.Finite())

	tr = Identity()
	tr.Scale[2] = math.Inf(-1)
	assert.False(t, tr.Finite())
}

func TestTransformMatrix(t *testing.T) {
	assert.True(t, Identity().Matrix().ApproxEqual(mgl64.Ident4()))

	tr := Identity()
	tr.Position = mgl64.Vec3{1, 2, 3}
	tr.Scale = mgl64.Vec3{2, 2, 2}
	p := tr.Matrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	assert.True(t, p.ApproxEqual(mgl64.Vec4{3, 2, 3, 1}), "%v", p)

	tr = Identity()
	tr.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	p = tr.Matrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	// cos(pi/2) is not exactly zero, compare with an absolute tolerance
	assert.InDeltaSlice(t, []float64{0, 1, 0, 1}, p[:], 1e-9)
}
