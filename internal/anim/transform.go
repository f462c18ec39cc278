package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the pose of an animated target. Rotation holds Euler angles in radians.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// Identity returns the rest pose: origin, no rotation, unit scale.
func Identity() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// DefaultCameraPose is where a fresh editor session puts the camera.
func DefaultCameraPose() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 2, 5},
		Rotation: mgl64.Vec3{-0.1, 0, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Lerp blends a towards b component-wise. Rotation is blended per axis, not slerped.
func Lerp(a, b Transform, t float64) Transform {
	return Transform{
		Position: lerpVec(a.Position, b.Position, t),
		Rotation: lerpVec(a.Rotation, b.Rotation, t),
		Scale:    lerpVec(a.Scale, b.Scale, t),
	}
}

// Equal reports exact equality of all nine components.
func (tr Transform) Equal(o Transform) bool {
	return tr.Position == o.Position && tr.Rotation == o.Rotation && tr.Scale == o.Scale
}

// ApproxEqual compares with mathgl's default epsilon.
func (tr Transform) ApproxEqual(o Transform) bool {
	return tr.Position.ApproxEqual(o.Position) &&
		tr.Rotation.ApproxEqual(o.Rotation) &&
		tr.Scale.ApproxEqual(o.Scale)
}

// Finite reports whether no component is NaN or infinite.
func (tr Transform) Finite() bool {
	for _, v := range [...]mgl64.Vec3{tr.Position, tr.Rotation, tr.Scale} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// Matrix composes translate * rotateZ * rotateY * rotateX * scale, the XYZ Euler order
// used by three.js objects.
func (tr Transform) Matrix() mgl64.Mat4 {
	m := mgl64.Translate3D(tr.Position.X(), tr.Position.Y(), tr.Position.Z())
	m = m.Mul4(mgl64.HomogRotate3DZ(tr.Rotation.Z()))
	m = m.Mul4(mgl64.HomogRotate3DY(tr.Rotation.Y()))
	m = m.Mul4(mgl64.HomogRotate3DX(tr.Rotation.X()))
	return m.Mul4(mgl64.Scale3D(tr.Scale.X(), tr.Scale.Y(), tr.Scale.Z()))
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}
