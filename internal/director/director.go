package director

import (
	"errors"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/sceneanim/internal/scene"
)

var ErrNoAssets = errors.New("scene has no assets to visit")

// Director generates a camera path that opens on the whole scene, visits each asset in
// turn and pulls back out again.
type Director struct {
	MinDwellMs float64 // Minimum time per asset
	MaxDwellMs float64 // Maximum time per asset
	IntroMs    float64 // Time on the overview before the first asset
	Distance   float64 // Camera distance from a unit-sized asset
	Height     float64 // Camera height above the asset
}

// NewDirector creates a Director with default settings
func NewDirector() *Director {
	return &Director{
		MinDwellMs: 1000,
		MaxDwellMs: 3000,
		IntroMs:    1000,
		Distance:   4,
		Height:     1.5,
	}
}

// GenerateCameraPath creates camera keyframes spread over roughly totalMs.
func (d *Director) GenerateCameraPath(assets []scene.Asset, totalMs float64) ([]scene.CameraKeyframe, error) {
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}

	sorted := d.sortAssets(assets)
	dwell := d.calculateDwellTime(totalMs, len(sorted))
	overview := d.overview(sorted)

	keyframes := []scene.CameraKeyframe{overview.at(0)}

	current := d.IntroMs
	for _, a := range sorted {
		keyframes = append(keyframes, d.visit(a).at(current))
		current += dwell
	}

	keyframes = append(keyframes, overview.at(current))
	return keyframes, nil
}

// Apply replaces the camera keyframes of s with a generated path.
func (d *Director) Apply(s *scene.Scene, totalMs float64) error {
	path, err := d.GenerateCameraPath(s.Assets, totalMs)
	if err != nil {
		return err
	}
	s.CameraKeyframes = path
	return nil
}

// sortAssets orders assets back to front, then left to right
func (d *Director) sortAssets(assets []scene.Asset) []scene.Asset {
	sorted := make([]scene.Asset, len(assets))
	copy(sorted, assets)

	sort.SliceStable(sorted, func(i, j int) bool {
		// Threshold for "same row" in world units
		const threshold = 0.5

		zDiff := sorted[i].Position.Z - sorted[j].Position.Z
		if math.Abs(zDiff) > threshold {
			return sorted[i].Position.Z < sorted[j].Position.Z
		}
		return sorted[i].Position.X < sorted[j].Position.X
	})
	return sorted
}

// calculateDwellTime determines how long the camera stays on each asset
func (d *Director) calculateDwellTime(totalMs float64, count int) float64 {
	available := totalMs - 2*d.IntroMs
	if available <= 0 {
		available = totalMs
	}

	dwell := available / float64(count)
	if dwell < d.MinDwellMs {
		dwell = d.MinDwellMs
	}
	if dwell > d.MaxDwellMs {
		dwell = d.MaxDwellMs
	}
	return dwell
}

type pose struct {
	position mgl64.Vec3
	rotation mgl64.Vec3
}

func (p pose) at(ms float64) scene.CameraKeyframe {
	return scene.CameraKeyframe{
		Time:     scene.Ms(ms),
		Position: scene.Vec3{X: p.position[0], Y: p.position[1], Z: p.position[2]},
		Rotation: scene.Vec3{X: p.rotation[0], Y: p.rotation[1], Z: p.rotation[2]},
	}
}

// visit frames one asset, backing off for larger models
func (d *Director) visit(a scene.Asset) pose {
	target := vec(a.Position)
	zoom := calculateZoom(a.Scale)
	eye := target.Add(mgl64.Vec3{0, d.Height * zoom, d.Distance * zoom})
	return pose{position: eye, rotation: lookAt(eye, target)}
}

// overview frames every asset from above the centroid
func (d *Director) overview(assets []scene.Asset) pose {
	var center mgl64.Vec3
	for _, a := range assets {
		center = center.Add(vec(a.Position))
	}
	center = center.Mul(1 / float64(len(assets)))

	extent := 0.0
	for _, a := range assets {
		extent = math.Max(extent, vec(a.Position).Sub(center).Len())
	}

	eye := center.Add(mgl64.Vec3{0, d.Height + extent, d.Distance + 2*extent})
	return pose{position: eye, rotation: lookAt(eye, center)}
}

// calculateZoom scales the camera distance with the largest axis of the model
func calculateZoom(scale scene.Vec3) float64 {
	zoom := math.Max(math.Abs(scale.X), math.Max(math.Abs(scale.Y), math.Abs(scale.Z)))

	// Clamp zoom to reasonable range
	if zoom < 0.5 {
		zoom = 0.5
	}
	if zoom > 3.0 {
		zoom = 3.0
	}
	return zoom
}

// lookAt returns the XYZ Euler rotation of a camera at eye facing target, for a
// camera looking down -Z at rest.
func lookAt(eye, target mgl64.Vec3) mgl64.Vec3 {
	dir := eye.Sub(target)
	flat := math.Hypot(dir[0], dir[2])
	pitch := -math.Atan2(dir[1], flat)
	yaw := math.Atan2(dir[0], dir[2])
	return mgl64.Vec3{pitch, yaw, 0}
}

func vec(v scene.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }
