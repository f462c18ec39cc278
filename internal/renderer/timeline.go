package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/sceneanim/internal/engine"
)

var (
	Background    = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	RowShade      = color.RGBA{0x27, 0x33, 0x44, 0xff}
	GridColor     = color.RGBA{0x4b, 0x55, 0x63, 0xff}
	LabelColor    = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	AssetColor    = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	CameraColor   = color.RGBA{0x22, 0xc5, 0x5e, 0xff}
	PlayheadColor = color.RGBA{0xef, 0x44, 0x44, 0xff}
)

const (
	labelWidth = 120
	margin     = 10
	rulerH     = 16
	markerSize = 4
)

// Row is one target line on the timeline strip.
type Row struct {
	Label  string
	Camera bool
	Times  []float64
}

// RowsFromEngine lists the camera and every asset of e with their keyframe times.
func RowsFromEngine(e *engine.Engine) []Row {
	var rows []Row
	for _, t := range e.Targets() {
		row := Row{Label: string(t.ID), Camera: t.ID == engine.CameraID}
		for _, k := range t.Track.Keyframes() {
			row.Times = append(row.Times, k.Time)
		}
		rows = append(rows, row)
	}
	return rows
}

// Timeline lays out the editor's keyframe strip.
type Timeline struct {
	Width      int
	RowHeight  int
	DurationMs float64
	PlayheadMs float64
}

func (tl Timeline) trackWidth() int {
	return tl.Width - labelWidth - 2*margin
}

// X returns the horizontal pixel of time ms, clamped to the track area.
func (tl Timeline) X(ms float64) int {
	x0 := labelWidth + margin
	if tl.DurationMs <= 0 {
		return x0
	}
	frac := ms / tl.DurationMs
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return x0 + int(frac*float64(tl.trackWidth()))
}

// RowY returns the vertical centre of row i.
func (tl Timeline) RowY(i int) int {
	return rulerH + i*tl.RowHeight + tl.RowHeight/2
}

// Render draws one row per target with a marker per keyframe, a one second ruler and
// the playhead.
func (tl Timeline) Render(rows []Row) (*image.RGBA, error) {
	if tl.Width <= labelWidth+2*margin || tl.RowHeight < 2*markerSize+2 {
		return nil, fmt.Errorf("timeline %dx%d per row is too small", tl.Width, tl.RowHeight)
	}

	height := rulerH + len(rows)*tl.RowHeight
	img := image.NewRGBA(image.Rect(0, 0, tl.Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for i := range rows {
		if i%2 == 1 {
			y0 := rulerH + i*tl.RowHeight
			fill(img, image.Rect(0, y0, tl.Width, y0+tl.RowHeight), RowShade)
		}
	}

	for s := 0.0; s <= tl.DurationMs; s += 1000 {
		x := tl.X(s)
		fill(img, image.Rect(x, 0, x+1, height), GridColor)
		drawLabel(img, x+2, rulerH-4, fmt.Sprintf("%gs", s/1000), GridColor)
	}

	for i, row := range rows {
		y := tl.RowY(i)
		drawLabel(img, margin, y+4, row.Label, LabelColor)

		c := AssetColor
		if row.Camera {
			c = CameraColor
		}
		for _, t := range row.Times {
			x := tl.X(t)
			fill(img, image.Rect(x-markerSize, y-markerSize, x+markerSize+1, y+markerSize+1), c)
		}
	}

	x := tl.X(tl.PlayheadMs)
	fill(img, image.Rect(x, 0, x+1, height), PlayheadColor)

	return img, nil
}

// WritePNG saves img, creating the parent directory.
func WritePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawLabel(img *image.RGBA, x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
