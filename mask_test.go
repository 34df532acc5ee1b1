package studio

import (
	"image"
	"testing"
)

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestMaskSurfaceStartsEmpty(t *testing.T) {
	m := NewMaskSurface(100, 80)
	defer m.Close()
	if m.HasMarks() {
		t.Error("new surface has marks")
	}
	if m.Width() != 100 || m.Height() != 80 {
		t.Errorf("size = %dx%d, want 100x80", m.Width(), m.Height())
	}
	if m.BrushSize() != DefaultBrushSize {
		t.Errorf("BrushSize() = %v, want %v", m.BrushSize(), DefaultBrushSize)
	}
}

func TestMaskSurfaceStroke(t *testing.T) {
	m := NewMaskSurface(100, 100)
	defer m.Close()
	m.SetBrushSize(10)

	m.StartStroke(Pt(10, 20))
	if !m.Drawing() {
		t.Fatal("Drawing() = false after StartStroke")
	}
	m.ContinueStroke(Pt(50, 20))
	m.ContinueStroke(Pt(90, 20))
	m.EndStroke()

	img := m.Image()
	r, g, b, a := img.At(50, 20).RGBA()
	if a == 0 || r < 0xc000 || g > 0x4000 || b > 0x4000 {
		t.Errorf("stroke pixel = (%x, %x, %x, %x), want opaque red", r, g, b, a)
	}
	if alphaAt(img, 50, 80) != 0 {
		t.Error("pixel far from the stroke is painted")
	}
	if !m.HasMarks() {
		t.Error("HasMarks() = false after a stroke")
	}
}

func TestMaskSurfaceDot(t *testing.T) {
	m := NewMaskSurface(100, 100)
	defer m.Close()
	m.SetBrushSize(20)
	m.StartStroke(Pt(50, 50))
	m.ContinueStroke(Pt(50, 50))
	m.EndStroke()
	if alphaAt(m.Image(), 50, 50) == 0 {
		t.Error("zero-length segment left no mark")
	}
}

func TestMaskSurfaceContinueWithoutStart(t *testing.T) {
	m := NewMaskSurface(50, 50)
	defer m.Close()
	m.ContinueStroke(Pt(10, 10))
	m.ContinueStroke(Pt(40, 40))
	if m.HasMarks() {
		t.Error("ContinueStroke outside a stroke painted")
	}
}

func TestMaskSurfaceClear(t *testing.T) {
	m := NewMaskSurface(50, 50)
	defer m.Close()
	m.StartStroke(Pt(10, 10))
	m.ContinueStroke(Pt(40, 40))
	m.Clear()
	if m.HasMarks() {
		t.Error("HasMarks() = true after Clear")
	}
	if m.Drawing() {
		t.Error("Clear() left a stroke open")
	}
}

func TestMaskSurfaceResize(t *testing.T) {
	m := NewMaskSurface(50, 50)
	defer m.Close()
	m.StartStroke(Pt(10, 10))
	m.ContinueStroke(Pt(40, 40))

	m.Resize(50, 50)
	if !m.HasMarks() {
		t.Error("same-size Resize dropped marks")
	}
	m.Resize(60, 40)
	if m.HasMarks() {
		t.Error("Resize to a new size kept marks")
	}
	if b := m.Image().Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 60x40", b)
	}
}

func TestMaskSurfaceBrushClamp(t *testing.T) {
	m := NewMaskSurface(1, 1)
	defer m.Close()
	m.SetBrushSize(0)
	if m.BrushSize() != MinBrushSize {
		t.Errorf("BrushSize() = %v, want %v", m.BrushSize(), MinBrushSize)
	}
	m.SetBrushSize(1e6)
	if m.BrushSize() != MaxBrushSize {
		t.Errorf("BrushSize() = %v, want %v", m.BrushSize(), MaxBrushSize)
	}
}
