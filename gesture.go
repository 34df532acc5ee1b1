package studio

// GestureKind identifies what a gesture changes.
type GestureKind int

// Gesture kinds.
const (
	GestureDrag GestureKind = iota
	GestureResize
)

// String returns the gesture name.
func (k GestureKind) String() string {
	switch k {
	case GestureDrag:
		return "drag"
	case GestureResize:
		return "resize"
	default:
		return "unknown"
	}
}

// gestureStart is the immutable snapshot taken when a gesture begins.
// Moves are computed against it, never against live session state.
type gestureStart struct {
	pointer Point
	frame   Frame
	space   Space
}

// Gesture is the lifetime of one pointer drag or resize. It is created by
// Session.BeginDrag or Session.BeginResize and must be ended exactly once;
// End is idempotent so callers can simply defer it:
//
//	g, err := s.BeginDrag(id, down)
//	if err != nil {
//	    return err
//	}
//	defer g.End()
//	for _, p := range moves {
//	    g.Move(p)
//	}
type Gesture struct {
	kind  GestureKind
	id    string
	start gestureStart
	store *Store
	owner *Session
	ended bool
}

func newGesture(kind GestureKind, s *Session, f Frame, pointer Point) *Gesture {
	return &Gesture{
		kind:  kind,
		id:    f.ID,
		store: s.store,
		owner: s,
		start: gestureStart{
			pointer: pointer,
			frame:   f,
			space:   s.Space(),
		},
	}
}

// Kind returns the gesture kind.
func (g *Gesture) Kind() GestureKind { return g.kind }

// ElementID returns the id of the element being moved or resized.
func (g *Gesture) ElementID() string { return g.id }

// Active reports whether the gesture still accepts moves.
func (g *Gesture) Active() bool { return !g.ended }

// Move applies the pointer position client (screen pixels). The element's
// new geometry is derived from the starting snapshot plus the total
// displacement, so intermediate positions never accumulate error.
// Moves after End are ignored.
func (g *Gesture) Move(client Point) {
	if g.ended {
		return
	}
	d := g.start.space.ScreenDeltaToPercent(client.Sub(g.start.pointer))
	f := g.start.frame
	var p FramePatch
	switch g.kind {
	case GestureDrag:
		p.X = Ptr(clampPercent(f.X + d.X))
		p.Y = Ptr(clampPercent(f.Y + d.Y))
	case GestureResize:
		p.Width = Ptr(clampSize(f.Width + d.X))
		p.Height = Ptr(clampSize(f.Height + d.Y))
	}
	g.store.Update(g.id, p)
}

// End finishes the gesture. Further calls do nothing.
func (g *Gesture) End() {
	if g.ended {
		return
	}
	g.ended = true
	if g.owner != nil && g.owner.gesture == g {
		g.owner.gesture = nil
	}
	Logger().Debug("studio: gesture ended", "kind", g.kind.String(), "id", g.id)
}
