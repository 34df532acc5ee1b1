package studio

import "math"

// Point is a 2D point or offset in pixels or percent, depending on context.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an on-screen rectangle, typically the workspace bounding box as
// reported by the host UI.
type Rect struct {
	Left, Top, Width, Height float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Zoom limits. Zoom moves in ZoomStep increments.
const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0
)

// Geometry limits in percent of the base image.
const (
	MinPercent = 0.0
	MaxPercent = 100.0

	// MinElementSize keeps resized elements from collapsing to nothing.
	MinElementSize = 2.0
)

// DefaultContainer is the workspace size assumed before the host reports
// one.
var DefaultContainer = Size{Width: 800, Height: 600}

// displayFill is the share of the container the image is fitted into.
const displayFill = 0.8

// Space converts pointer input into the percentage coordinates used by
// design elements.
//
// Display is the workspace size at zoom=1, i.e. the base image fitted into
// the container, not its intrinsic pixel size.
type Space struct {
	Display Size
	Zoom    float64
}

// Local returns the zoom-normalized position of client inside rect.
func (s Space) Local(client Point, rect Rect) Point {
	z := s.zoom()
	return Point{
		X: (client.X - rect.Left) / z,
		Y: (client.Y - rect.Top) / z,
	}
}

// ToPercent converts a zoom-normalized pixel delta into percent of the
// display size. A zero display dimension yields zero on that axis.
func (s Space) ToPercent(d Point) Point {
	var out Point
	if s.Display.Width > 0 {
		out.X = d.X / s.Display.Width * 100
	}
	if s.Display.Height > 0 {
		out.Y = d.Y / s.Display.Height * 100
	}
	return out
}

// ScreenDeltaToPercent divides out the zoom and converts to percent.
func (s Space) ScreenDeltaToPercent(d Point) Point {
	z := s.zoom()
	return s.ToPercent(Point{X: d.X / z, Y: d.Y / z})
}

func (s Space) zoom() float64 {
	if s.Zoom <= 0 {
		return DefaultZoom
	}
	return s.Zoom
}

// FitDisplay fits an image of the given intrinsic size into container the way
// the workspace does: 80% of the container width, or 80% of its height when
// the width-fitted image would be too tall.
func FitDisplay(img Size, container Size) Size {
	if img.Width <= 0 || img.Height <= 0 {
		return Size{}
	}
	if container.Width <= 0 || container.Height <= 0 {
		container = DefaultContainer
	}
	ratio := img.Width / img.Height
	w := container.Width * displayFill
	h := w / ratio
	if h > container.Height*displayFill {
		h = container.Height * displayFill
		w = h * ratio
	}
	return Size{Width: w, Height: h}
}

// ClampZoom snaps z to the zoom grid and clamps it to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return DefaultZoom
	}
	z = math.Round(z/ZoomStep) * ZoomStep
	// Round again to drop float noise like 1.2000000000000002.
	z = math.Round(z*100) / 100
	return clamp(z, MinZoom, MaxZoom)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampPercent(v float64) float64 {
	return clamp(v, MinPercent, MaxPercent)
}

func clampSize(v float64) float64 {
	return clamp(v, MinElementSize, MaxPercent)
}
