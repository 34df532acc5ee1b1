package studio

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"strings"
)

// Mode is the workspace edit mode. Layout and Brush are mutually exclusive.
type Mode int

// Edit modes.
const (
	// ModeLayout moves, resizes and edits design elements.
	ModeLayout Mode = iota
	// ModeBrush paints the mask surface. No element is selected.
	ModeBrush
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLayout:
		return "layout"
	case ModeBrush:
		return "brush"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "layout", "text":
		return ModeLayout, nil
	case "brush", "eraser":
		return ModeBrush, nil
	}
	return 0, fmt.Errorf("studio: unknown mode %q", s)
}

// EditRequest is the input of one remote edit: the base image, an optional
// mask and an optional free-text instruction.
type EditRequest struct {
	Base        image.Image
	Mask        image.Image
	Instruction string
}

// Editor is the remote AI edit collaborator.
type Editor interface {
	Edit(ctx context.Context, req EditRequest) (image.Image, error)
}

// EditorFunc adapts a function to Editor.
type EditorFunc func(ctx context.Context, req EditRequest) (image.Image, error)

// Edit implements Editor.
func (f EditorFunc) Edit(ctx context.Context, req EditRequest) (image.Image, error) {
	return f(ctx, req)
}

// PendingKind tells an upload clean-up apart from a manual edit.
type PendingKind int

// Pending kinds.
const (
	PendingUpload PendingKind = iota
	PendingEdit
)

// Pending is an edit that has been started by BeginUpload or BeginEdit and
// not yet finished. Its request is a snapshot; later session changes do not
// affect it.
type Pending struct {
	kind   PendingKind
	req    EditRequest
	editor Editor
}

// Kind returns what started the edit.
func (p *Pending) Kind() PendingKind { return p.kind }

// Request returns the request snapshot.
func (p *Pending) Request() EditRequest { return p.req }

// Run calls the editor. The call is detached from ctx cancellation: once
// started, a remote edit runs to completion.
func (p *Pending) Run(ctx context.Context) (image.Image, error) {
	return p.editor.Edit(context.WithoutCancel(ctx), p.req)
}

// Session is the complete editor state for one base image.
// All changes go through its methods.
//
// A Session is not safe for concurrent use.
type Session struct {
	editor     Editor
	compositor *Compositor

	base    image.Image
	result  image.Image
	history History
	store   *Store
	mask    *MaskSurface

	zoom         float64
	mode         Mode
	container    Size
	display      Size
	instruction  string
	showOriginal bool

	busy    bool
	pending *Pending
	gesture *Gesture
}

// NewSession creates an empty session. Nothing can be edited until an image
// is uploaded.
func NewSession(opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := NewCompositor()
	if o.fonts != nil {
		c.Fonts = o.fonts
	}
	if o.images != nil {
		c.Images = o.images
	}
	s := &Session{
		editor:     o.editor,
		compositor: c,
		store:      NewStore(),
		zoom:       DefaultZoom,
		container:  o.container,
	}
	s.mask = NewMaskSurface(1, 1)
	s.mask.SetBrushSize(o.brushSize)
	return s
}

// SetEditor replaces the AI edit collaborator, e.g. after the API key
// changed. A nil editor disables uploads and edits.
func (s *Session) SetEditor(e Editor) { s.editor = e }

// HasEditor reports whether an editor is configured.
func (s *Session) HasEditor() bool { return s.editor != nil }

// Compositor returns the compositor used by Export.
func (s *Session) Compositor() *Compositor { return s.compositor }

// --- Upload, edit, undo/redo ---

// BeginUpload installs img as the new base image, resets every piece of
// per-image state and prepares the automatic text-removal call.
//
// The reset happens even when no editor is configured; in that case
// ErrMissingCredential is returned and no call is pending.
func (s *Session) BeginUpload(img image.Image) (*Pending, error) {
	if s.busy {
		return nil, ErrBusy
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	s.reset(img)
	Logger().Info("studio: image uploaded",
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	if s.editor == nil {
		return nil, ErrMissingCredential
	}
	return s.begin(PendingUpload, EditRequest{Base: img}), nil
}

func (s *Session) reset(img image.Image) {
	s.EndGesture()
	s.base = img
	s.result = nil
	s.history.Reset()
	s.store.Reset()
	s.mode = ModeLayout
	s.zoom = DefaultZoom
	s.instruction = ""
	s.showOriginal = false
	s.refit()
	s.mask.Clear()
}

// BeginEdit prepares a manual edit of the base image. The current result,
// if any, is pushed onto the history and the redo stack is cleared before
// the call; a failed call keeps that history entry so the undo point
// survives a retry. The mask is attached only when it has marks.
func (s *Session) BeginEdit() (*Pending, error) {
	if s.base == nil {
		return nil, ErrNoImage
	}
	if s.busy {
		return nil, ErrBusy
	}
	if s.editor == nil {
		return nil, ErrMissingCredential
	}
	if s.result != nil {
		s.history.Push(s.result)
	}
	s.history.ClearRedo()

	req := EditRequest{
		Base:        s.base,
		Instruction: strings.TrimSpace(s.instruction),
	}
	if s.mask.HasMarks() {
		req.Mask = s.mask.Image()
	}
	return s.begin(PendingEdit, req), nil
}

func (s *Session) begin(kind PendingKind, req EditRequest) *Pending {
	p := &Pending{kind: kind, req: req, editor: s.editor}
	s.busy = true
	s.pending = p
	return p
}

// Finish commits the outcome of p. On success the result is replaced and,
// for manual edits, the mask is cleared. On failure err is returned and the
// result stays as it was. A nil image without an error counts as
// ErrNoImageResult.
func (s *Session) Finish(p *Pending, img image.Image, err error) error {
	if p == nil || p != s.pending {
		return ErrStalePending
	}
	s.busy = false
	s.pending = nil

	if err == nil && img == nil {
		err = ErrNoImageResult
	}
	if err != nil {
		Logger().Warn("studio: edit failed", "kind", p.kind, "err", err)
		return err
	}
	s.result = img
	if p.kind == PendingEdit {
		s.mask.Clear()
	}
	Logger().Info("studio: edit applied", "kind", p.kind,
		"masked", p.req.Mask != nil, "history", s.history.Len())
	return nil
}

// Upload runs BeginUpload, the editor call and Finish in sequence.
func (s *Session) Upload(ctx context.Context, img image.Image) error {
	p, err := s.BeginUpload(img)
	if err != nil {
		return err
	}
	out, err := p.Run(ctx)
	return s.Finish(p, out, err)
}

// Edit runs BeginEdit, the editor call and Finish in sequence, using the
// current instruction and mask.
func (s *Session) Edit(ctx context.Context) error {
	p, err := s.BeginEdit()
	if err != nil {
		return err
	}
	out, err := p.Run(ctx)
	return s.Finish(p, out, err)
}

// Busy reports whether an edit is in flight.
func (s *Session) Busy() bool { return s.busy }

// Undo restores the previous result. It reports false, changing nothing,
// when there is no history, no current result, or an edit is in flight.
func (s *Session) Undo() bool {
	if s.busy {
		return false
	}
	prev, ok := s.history.Undo(s.result)
	if !ok {
		return false
	}
	s.result = prev
	Logger().Info("studio: undo", "history", s.history.Len(), "redo", s.history.RedoLen())
	return true
}

// Redo re-applies the last undone result. Same rules as Undo.
func (s *Session) Redo() bool {
	if s.busy {
		return false
	}
	next, ok := s.history.Redo(s.result)
	if !ok {
		return false
	}
	s.result = next
	Logger().Info("studio: redo", "history", s.history.Len(), "redo", s.history.RedoLen())
	return true
}

// SetInstruction sets the free-text instruction sent with manual edits.
func (s *Session) SetInstruction(text string) { s.instruction = text }

// Instruction returns the current instruction.
func (s *Session) Instruction() string { return s.instruction }

// Base returns the uploaded image, or nil.
func (s *Session) Base() image.Image { return s.base }

// Result returns the latest AI result, or nil.
func (s *Session) Result() image.Image { return s.result }

// History returns the undo points, oldest first.
func (s *Session) History() []image.Image { return s.history.Entries() }

// HistoryLen returns the number of undo points.
func (s *Session) HistoryLen() int { return s.history.Len() }

// RedoLen returns the number of redo entries.
func (s *Session) RedoLen() int { return s.history.RedoLen() }

// RedoStack returns the redo entries, oldest first.
func (s *Session) RedoStack() []image.Image { return s.history.RedoEntries() }

// SetShowOriginal toggles previewing the base image instead of the result.
func (s *Session) SetShowOriginal(on bool) { s.showOriginal = on }

// ShowOriginal reports whether the base image is being previewed.
func (s *Session) ShowOriginal() bool { return s.showOriginal }

// Displayed returns the image the workspace shows: the base image while
// previewing the original or before any result exists, the result otherwise.
func (s *Session) Displayed() image.Image {
	if s.showOriginal || s.result == nil {
		return s.base
	}
	return s.result
}

// --- Viewport ---

// Zoom returns the display zoom.
func (s *Session) Zoom() float64 { return s.zoom }

// SetZoom sets the zoom, snapped to ZoomStep and clamped to
// [MinZoom, MaxZoom].
func (s *Session) SetZoom(z float64) { s.zoom = ClampZoom(z) }

// ZoomIn increases the zoom by one step.
func (s *Session) ZoomIn() { s.SetZoom(s.zoom + ZoomStep) }

// ZoomOut decreases the zoom by one step.
func (s *Session) ZoomOut() { s.SetZoom(s.zoom - ZoomStep) }

// ResetZoom restores zoom 1.
func (s *Session) ResetZoom() { s.zoom = DefaultZoom }

// SetContainer sets the workspace container size and refits the display.
// The mask surface is cleared if the display size changes.
func (s *Session) SetContainer(size Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	s.container = size
	s.refit()
}

// Container returns the workspace container size.
func (s *Session) Container() Size { return s.container }

// Display returns the workspace size at zoom 1.
func (s *Session) Display() Size { return s.display }

// Space returns the coordinate space for the current zoom and display.
func (s *Session) Space() Space {
	return Space{Display: s.display, Zoom: s.zoom}
}

func (s *Session) refit() {
	if s.base == nil {
		s.display = Size{}
		return
	}
	b := s.base.Bounds()
	s.display = FitDisplay(Size{Width: float64(b.Dx()), Height: float64(b.Dy())}, s.container)
	s.mask.Resize(int(math.Round(s.display.Width)), int(math.Round(s.display.Height)))
}

// --- Mode ---

// Mode returns the edit mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches the edit mode. Entering Brush mode clears the selection
// and ends any gesture; leaving it ends any stroke.
func (s *Session) SetMode(m Mode) {
	switch m {
	case ModeBrush:
		s.EndGesture()
		s.store.Select("")
	case ModeLayout:
		s.mask.EndStroke()
	default:
		return
	}
	s.mode = m
}

// --- Elements ---

// AddText adds a text element with default styling at the image center and
// selects it.
func (s *Session) AddText() (string, error) {
	if s.base == nil {
		return "", ErrNoImage
	}
	id := s.store.Add(&Text{
		Frame:      Frame{X: 50, Y: 50, Width: 30, Height: 10, Visible: true},
		Content:    "New text",
		Color:      "#000000",
		FontSize:   40,
		FontFamily: DefaultFontFamily,
		Align:      AlignCenter,
	})
	s.SetMode(ModeLayout)
	return id, nil
}

// AddImage adds an image element from a data URI and selects it. The
// source is decoded once up front so broken uploads are rejected here
// rather than at export.
func (s *Session) AddImage(src string) (string, error) {
	if s.base == nil {
		return "", ErrNoImage
	}
	if _, err := s.compositor.decode(src); err != nil {
		return "", err
	}
	id := s.store.Add(&Image{
		Frame: Frame{X: 50, Y: 50, Width: 25, Height: 25, Visible: true},
		Src:   src,
	})
	s.SetMode(ModeLayout)
	return id, nil
}

// UpdateElement applies p to an element. Unknown ids are ignored and
// reported as false.
func (s *Session) UpdateElement(id string, p Patch) bool {
	return s.store.Update(id, p)
}

// DeleteElement removes an element, ending a gesture on it and clearing
// the selection if it was selected.
func (s *Session) DeleteElement(id string) bool {
	if s.gesture != nil && s.gesture.id == id {
		s.EndGesture()
	}
	return s.store.Delete(id)
}

// Select selects an element, switching to Layout mode. An empty id clears
// the selection.
func (s *Session) Select(id string) error {
	if !s.store.Select(id) {
		return ErrNotFound
	}
	if id != "" {
		s.SetMode(ModeLayout)
	}
	return nil
}

// Selected returns the selected element id, or "".
func (s *Session) Selected() string { return s.store.Selected() }

// Element returns a copy of an element.
func (s *Session) Element(id string) (Element, bool) { return s.store.Get(id) }

// Elements returns copies of all elements in paint order.
func (s *Session) Elements() []Element { return s.store.List() }

// Layers returns copies of all elements, most recent first.
func (s *Session) Layers() []Element { return s.store.Layers() }

// --- Gestures ---

// BeginDrag starts moving element id from the screen position client and
// selects it. Any active gesture is ended first.
func (s *Session) BeginDrag(id string, client Point) (*Gesture, error) {
	return s.beginGesture(GestureDrag, id, client)
}

// BeginResize starts resizing the selected element id from its corner
// handle at client.
func (s *Session) BeginResize(id string, client Point) (*Gesture, error) {
	if s.store.Selected() != id {
		return nil, ErrNotSelected
	}
	return s.beginGesture(GestureResize, id, client)
}

func (s *Session) beginGesture(kind GestureKind, id string, client Point) (*Gesture, error) {
	if s.mode != ModeLayout {
		return nil, ErrWrongMode
	}
	el, ok := s.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.EndGesture()
	s.store.Select(id)
	g := newGesture(kind, s, *el.Common(), client)
	s.gesture = g
	Logger().Debug("studio: gesture started", "kind", kind.String(), "id", id)
	return g, nil
}

// ActiveGesture returns the gesture in progress, or nil.
func (s *Session) ActiveGesture() *Gesture { return s.gesture }

// EndGesture ends the active gesture, if any. Hosts call it on pointer
// leave, blur and similar interruptions.
func (s *Session) EndGesture() {
	if s.gesture != nil {
		s.gesture.End()
	}
}

// --- Mask brush ---

// StartStroke begins a mask stroke at the screen position client inside the
// workspace rect. Only available in Brush mode.
func (s *Session) StartStroke(client Point, rect Rect) error {
	if s.mode != ModeBrush {
		return ErrWrongMode
	}
	if s.base == nil {
		return ErrNoImage
	}
	s.mask.StartStroke(s.Space().Local(client, rect))
	return nil
}

// ContinueStroke extends the stroke in progress. Outside a stroke it does
// nothing.
func (s *Session) ContinueStroke(client Point, rect Rect) {
	if s.mode != ModeBrush {
		return
	}
	s.mask.ContinueStroke(s.Space().Local(client, rect))
}

// EndStroke finishes the stroke in progress.
func (s *Session) EndStroke() { s.mask.EndStroke() }

// SetBrushSize sets the brush width in display pixels.
func (s *Session) SetBrushSize(size float64) { s.mask.SetBrushSize(size) }

// BrushSize returns the brush width.
func (s *Session) BrushSize() float64 { return s.mask.BrushSize() }

// ClearMask erases the mask surface.
func (s *Session) ClearMask() { s.mask.Clear() }

// HasMask reports whether the mask surface has any marks.
func (s *Session) HasMask() bool { return s.mask.HasMarks() }

// Mask returns the mask surface.
func (s *Session) Mask() *MaskSurface { return s.mask }

// --- Export ---

// Flatten composites the visible elements over the result image (or the
// base image before any result exists) at its native resolution.
func (s *Session) Flatten() (image.Image, error) {
	src := s.result
	if src == nil {
		src = s.base
	}
	if src == nil {
		return nil, ErrNoImage
	}
	return s.compositor.Composite(src, s.store.List())
}

// Export flattens the design and writes it to w in format f.
func (s *Session) Export(w io.Writer, f Format) error {
	img, err := s.Flatten()
	if err != nil {
		return err
	}
	if err := f.Encode(w, img); err != nil {
		return err
	}
	Logger().Info("studio: exported", "format", string(f), "elements", s.store.Len())
	return nil
}
