package studio

import (
	"errors"
	"testing"
)

// newLayoutSession returns a session showing a 1000x800 base image in the
// default 800x600 container, i.e. a 600x480 display.
func newLayoutSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if _, err := s.BeginUpload(solid(1000, 800)); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("BeginUpload() error = %v, want ErrMissingCredential", err)
	}
	if d := s.Display(); d.Width != 600 || d.Height != 480 {
		t.Fatalf("Display() = %v, want 600x480", d)
	}
	return s
}

func frameOf(t *testing.T, s *Session, id string) Frame {
	t.Helper()
	el, ok := s.Element(id)
	if !ok {
		t.Fatalf("element %q missing", id)
	}
	return *el.Common()
}

func TestDragZeroNetDisplacement(t *testing.T) {
	for _, zoom := range []float64{1, 2, 3} {
		s := newLayoutSession(t)
		s.SetZoom(zoom)
		id, _ := s.AddText()
		before := frameOf(t, s, id)

		g, err := s.BeginDrag(id, Pt(300, 300))
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range []Point{{310, 305}, {250, 400}, {420, 220}, {300, 300}} {
			g.Move(p)
		}
		g.End()

		after := frameOf(t, s, id)
		if !approx(after.X, before.X) || !approx(after.Y, before.Y) {
			t.Errorf("zoom %v: position %v,%v, want %v,%v", zoom, after.X, after.Y, before.X, before.Y)
		}
	}
}

func TestDragZoomEquivalence(t *testing.T) {
	var got []Frame
	for _, zoom := range []float64{1, 2} {
		s := newLayoutSession(t)
		s.SetZoom(zoom)
		id, _ := s.AddText()
		g, err := s.BeginDrag(id, Pt(0, 0))
		if err != nil {
			t.Fatal(err)
		}
		// The same on-content movement covers twice the screen at zoom 2.
		g.Move(Pt(60*zoom, 48*zoom))
		g.End()
		got = append(got, frameOf(t, s, id))
	}
	if !approx(got[0].X, got[1].X) || !approx(got[0].Y, got[1].Y) {
		t.Errorf("zoom 1 -> %v,%v; zoom 2 -> %v,%v", got[0].X, got[0].Y, got[1].X, got[1].Y)
	}
	if !approx(got[0].X, 60) || !approx(got[0].Y, 60) {
		t.Errorf("position = %v,%v, want 60,60", got[0].X, got[0].Y)
	}
}

func TestDragClampsToImage(t *testing.T) {
	s := newLayoutSession(t)
	id, _ := s.AddText()
	g, _ := s.BeginDrag(id, Pt(0, 0))
	g.Move(Pt(-5000, 5000))
	f := frameOf(t, s, id)
	if f.X != 0 || f.Y != 100 {
		t.Errorf("position = %v,%v, want 0,100", f.X, f.Y)
	}
	// Coming back within range recovers the exact position.
	g.Move(Pt(0, 0))
	f = frameOf(t, s, id)
	if f.X != 50 || f.Y != 50 {
		t.Errorf("position = %v,%v, want 50,50", f.X, f.Y)
	}
}

func TestResize(t *testing.T) {
	s := newLayoutSession(t)
	id, _ := s.AddText()

	g, err := s.BeginResize(id, Pt(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	g.Move(Pt(160, 148))
	f := frameOf(t, s, id)
	if !approx(f.Width, 40) || !approx(f.Height, 20) {
		t.Errorf("size = %v x %v, want 40 x 20", f.Width, f.Height)
	}
	if f.X != 50 || f.Y != 50 {
		t.Error("resize moved the element")
	}

	g.Move(Pt(-10000, -10000))
	f = frameOf(t, s, id)
	if f.Width != MinElementSize || f.Height != MinElementSize {
		t.Errorf("size = %v x %v, want floor %v", f.Width, f.Height, MinElementSize)
	}
}

func TestResizeRequiresSelection(t *testing.T) {
	s := newLayoutSession(t)
	a, _ := s.AddText()
	s.AddText()
	if _, err := s.BeginResize(a, Pt(0, 0)); !errors.Is(err, ErrNotSelected) {
		t.Errorf("BeginResize() error = %v, want ErrNotSelected", err)
	}
}

func TestGestureEnd(t *testing.T) {
	s := newLayoutSession(t)
	id, _ := s.AddText()
	g, _ := s.BeginDrag(id, Pt(0, 0))
	if s.ActiveGesture() != g {
		t.Fatal("ActiveGesture() is not the started gesture")
	}
	g.End()
	g.End()
	if g.Active() || s.ActiveGesture() != nil {
		t.Error("gesture still active after End")
	}
	g.Move(Pt(600, 0))
	if f := frameOf(t, s, id); f.X != 50 {
		t.Errorf("Move after End changed X to %v", f.X)
	}
}

func TestBeginGestureEndsPrevious(t *testing.T) {
	s := newLayoutSession(t)
	a, _ := s.AddText()
	b, _ := s.AddText()
	g1, _ := s.BeginDrag(a, Pt(0, 0))
	g2, _ := s.BeginDrag(b, Pt(0, 0))
	if g1.Active() {
		t.Error("first gesture still active")
	}
	if s.ActiveGesture() != g2 || s.Selected() != b {
		t.Error("second gesture not current")
	}
}

func TestGestureErrors(t *testing.T) {
	s := newLayoutSession(t)
	id, _ := s.AddText()
	if _, err := s.BeginDrag("missing", Pt(0, 0)); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: error = %v, want ErrNotFound", err)
	}
	s.SetMode(ModeBrush)
	if _, err := s.BeginDrag(id, Pt(0, 0)); !errors.Is(err, ErrWrongMode) {
		t.Errorf("brush mode: error = %v, want ErrWrongMode", err)
	}
}

func TestDeleteEndsGesture(t *testing.T) {
	s := newLayoutSession(t)
	id, _ := s.AddText()
	g, _ := s.BeginDrag(id, Pt(0, 0))
	s.DeleteElement(id)
	if g.Active() {
		t.Error("gesture on a deleted element still active")
	}
}
