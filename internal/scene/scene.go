package scene

// Scene is the persisted record of an animated scene, shared by the editor's save
// action, the preview overlay and the playback page.
type Scene struct {
	Assets          []Asset          `json:"assets" yaml:"assets"`
	CameraKeyframes []CameraKeyframe `json:"cameraKeyframes" yaml:"cameraKeyframes"`
}

// Asset is a placed 3D model together with its keyframe track
type Asset struct {
	ID        string     `json:"id" yaml:"id"`
	URL       string     `json:"url" yaml:"url"`
	Position  Vec3       `json:"position" yaml:"position"`
	Rotation  Vec3       `json:"rotation" yaml:"rotation"` // Euler radians
	Scale     Vec3       `json:"scale" yaml:"scale"`
	Keyframes []Keyframe `json:"keyframes" yaml:"keyframes"`
}

// Keyframe is an asset pose at a time offset
type Keyframe struct {
	Time     *float64 `json:"time" yaml:"time"` // Milliseconds, required
	Position Vec3     `json:"position" yaml:"position"`
	Rotation Vec3     `json:"rotation" yaml:"rotation"`
	Scale    Vec3     `json:"scale" yaml:"scale"`
}

// CameraKeyframe is a camera pose at a time offset. The camera has no scale.
type CameraKeyframe struct {
	Time     *float64 `json:"time" yaml:"time"`
	Position Vec3     `json:"position" yaml:"position"`
	Rotation Vec3     `json:"rotation" yaml:"rotation"`
}

// Vec3 is the {x,y,z} object used for every vector in the record
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Ms returns a pointer to t, for building keyframes in code.
func Ms(t float64) *float64 {
	return &t
}

// TimeOf returns the keyframe time, 0 when unset.
func (k Keyframe) TimeOf() float64 {
	if k.Time == nil {
		return 0
	}
	return *k.Time
}

func (k CameraKeyframe) TimeOf() float64 {
	if k.Time == nil {
		return 0
	}
	return *k.Time
}
