package studio

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Brush defaults.
const (
	DefaultBrushSize = 50.0
	MinBrushSize     = 1.0
	MaxBrushSize     = 200.0

	// MarkerColor is the mask paint color sent to the model.
	MarkerColor = "#FF0000"
)

// MaskSurface is a freehand paint surface used to mark regions for the next
// AI edit. It is sized to the workspace display dimensions and starts fully
// transparent.
//
// Each ContinueStroke paints one independent round-capped segment from the
// previous point, so long strokes never accumulate into one path.
type MaskSurface struct {
	dc        *gg.Context
	width     int
	height    int
	brushSize float64

	drawing bool
	last    Point
}

// NewMaskSurface creates a transparent surface of the given pixel size.
// Non-positive dimensions are raised to 1.
func NewMaskSurface(width, height int) *MaskSurface {
	width, height = max(width, 1), max(height, 1)
	return &MaskSurface{
		dc:        gg.NewContext(width, height),
		width:     width,
		height:    height,
		brushSize: DefaultBrushSize,
	}
}

// Width returns the surface width in pixels.
func (m *MaskSurface) Width() int { return m.width }

// Height returns the surface height in pixels.
func (m *MaskSurface) Height() int { return m.height }

// BrushSize returns the stroke width in pixels.
func (m *MaskSurface) BrushSize() float64 { return m.brushSize }

// SetBrushSize sets the stroke width, clamped to [MinBrushSize, MaxBrushSize].
func (m *MaskSurface) SetBrushSize(size float64) {
	m.brushSize = clamp(size, MinBrushSize, MaxBrushSize)
}

// Drawing reports whether a stroke is in progress.
func (m *MaskSurface) Drawing() bool { return m.drawing }

// StartStroke begins a new stroke at p (zoom-normalized local pixels).
func (m *MaskSurface) StartStroke(p Point) {
	m.drawing = true
	m.last = p
}

// ContinueStroke paints a segment from the previous point to p and makes p
// the new origin. It does nothing outside a stroke.
func (m *MaskSurface) ContinueStroke(p Point) {
	if !m.drawing {
		return
	}
	m.dc.SetHexColor(MarkerColor)
	if math.Hypot(p.X-m.last.X, p.Y-m.last.Y) < 1e-9 {
		// A zero-length segment still leaves a round dot, like a round cap
		// on a canvas would.
		m.dc.DrawCircle(p.X, p.Y, m.brushSize/2)
		if err := m.dc.Fill(); err != nil {
			Logger().Warn("studio: mask dot fill failed", "err", err)
		}
	} else {
		m.dc.SetLineWidth(m.brushSize)
		m.dc.SetLineCap(gg.LineCapRound)
		m.dc.SetLineJoin(gg.LineJoinRound)
		m.dc.DrawLine(m.last.X, m.last.Y, p.X, p.Y)
		if err := m.dc.Stroke(); err != nil {
			Logger().Warn("studio: mask stroke failed", "err", err)
		}
	}
	m.dc.ClearPath()
	m.last = p
}

// EndStroke finishes the current stroke.
func (m *MaskSurface) EndStroke() {
	m.drawing = false
	m.dc.ClearPath()
}

// HasMarks reports whether any pixel has nonzero alpha.
func (m *MaskSurface) HasMarks() bool {
	img := m.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		for i := 3; i < len(rgba.Pix); i += 4 {
			if rgba.Pix[i] != 0 {
				return true
			}
		}
		return false
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				return true
			}
		}
	}
	return false
}

// Clear erases all marks.
func (m *MaskSurface) Clear() {
	m.dc.ClearPath()
	m.dc.Clear()
	m.drawing = false
}

// Image returns a snapshot of the mask raster.
func (m *MaskSurface) Image() image.Image {
	return snapshot(m.dc)
}

// snapshot flushes any accelerated drawing and copies the pixels out.
func snapshot(dc *gg.Context) image.Image {
	if err := dc.FlushGPU(); err != nil {
		Logger().Warn("studio: flush failed", "err", err)
	}
	return dc.Image()
}

// Resize replaces the surface with a transparent one of the new size, the
// way resizing a canvas element drops its content. Same-size calls keep the
// marks.
func (m *MaskSurface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == m.width && height == m.height {
		return
	}
	_ = m.dc.Close()
	m.dc = gg.NewContext(width, height)
	m.width, m.height = width, height
	m.drawing = false
}

// Close releases the drawing context.
func (m *MaskSurface) Close() error {
	return m.dc.Close()
}
