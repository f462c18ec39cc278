package renderer

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sceneanim/internal/anim"
	"github.com/ivlev/sceneanim/internal/engine"
)

func TestTimelineRender(t *testing.T) {
	tl := Timeline{Width: 1200, RowHeight: 28, DurationMs: 5000, PlayheadMs: 2500}
	rows := []Row{
		{Label: "camera", Camera: true, Times: []float64{0, 3000}},
		{Label: "cube", Times: []float64{1000, 4000}},
	}

	img, err := tl.Render(rows)
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, rulerH+2*28, img.Bounds().Dy())

	assert.Equal(t, CameraColor, img.RGBAAt(tl.X(3000), tl.RowY(0)))
	assert.Equal(t, AssetColor, img.RGBAAt(tl.X(1000), tl.RowY(1)))
	assert.Equal(t, AssetColor, img.RGBAAt(tl.X(4000)+markerSize, tl.RowY(1)+markerSize))
	assert.Equal(t, PlayheadColor, img.RGBAAt(tl.X(2500), tl.RowY(1)))

	// no marker between keyframes
	assert.NotEqual(t, AssetColor, img.RGBAAt(tl.X(2000), tl.RowY(1)))
}

func TestTimelineX(t *testing.T) {
	tl := Timeline{Width: 1140, RowHeight: 20, DurationMs: 10000}

	assert.Equal(t, labelWidth+margin, tl.X(0))
	assert.Equal(t, labelWidth+margin+500, tl.X(5000))
	assert.Equal(t, labelWidth+margin+1000, tl.X(10000))
	assert.Equal(t, tl.X(10000), tl.X(99999), "clamped to the track")
	assert.Equal(t, tl.X(0), tl.X(-5))
}

func TestTimelineTooSmall(t *testing.T) {
	_, err := Timeline{Width: 100, RowHeight: 28, DurationMs: 1000}.Render(nil)
	assert.Error(t, err)
	_, err = Timeline{Width: 800, RowHeight: 4, DurationMs: 1000}.Render(nil)
	assert.Error(t, err)
}

func TestRowsFromEngine(t *testing.T) {
	e := engine.NewEditor()
	_, err := e.AddAsset("lamp", "", anim.Identity())
	require.NoError(t, err)
	require.NoError(t, e.UpsertKeyframe("lamp", 2000, anim.Identity()))
	require.NoError(t, e.UpsertKeyframe("lamp", 500, anim.Identity()))

	rows := RowsFromEngine(e)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Label: "camera", Camera: true, Times: []float64{0}}, rows[0])
	assert.Equal(t, Row{Label: "lamp", Times: []float64{500, 2000}}, rows[1])
}

func TestWritePNG(t *testing.T) {
	img, err := Timeline{Width: 400, RowHeight: 20, DurationMs: 3000}.Render([]Row{{Label: "a", Times: []float64{0}}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "timeline.png")
	require.NoError(t, WritePNG(img, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestShareURL(t *testing.T) {
	u, err := ShareURL("http://localhost:8080/play?theme=dark", "saved-scene")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/play?scene=saved-scene&theme=dark", u)

	_, err = ShareURL("/relative", "k")
	assert.Error(t, err)
}

func TestShareQR(t *testing.T) {
	data, err := ShareQR("http://localhost:8080/?scene=saved-scene", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "share.png")
	require.NoError(t, WriteShareQR("http://localhost:8080/", 128, path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
