package server

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	studio "github.com/gogpu/gg-studio"
)

// elementID returns the :id route parameter. Fiber hands out params that
// alias the request buffer, and the session keeps ids past the request.
func elementID(c fiber.Ctx) string {
	return strings.Clone(c.Params("id"))
}

func (s *Server) addText(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.session.AddText()
	if err != nil {
		return fail(c, err)
	}
	return s.created(c, id)
}

func (s *Server) addImage(c fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil {
		return fail(c, err)
	}
	_, format, err := studio.DecodeImage(data)
	if err != nil {
		return badRequest(c, err.Error())
	}
	src := studio.DataURI("image/"+format, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.session.AddImage(src)
	if err != nil {
		return fail(c, err)
	}
	return s.created(c, id)
}

// created replies with the new element. Callers hold mu.
func (s *Server) created(c fiber.Ctx, id string) error {
	el, _ := s.session.Element(id)
	data, err := studio.MarshalElement(el)
	if err != nil {
		return fail(c, err)
	}
	c.Status(http.StatusCreated)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

type patchRequest struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
	ZIndex     *int     `json:"zIndex"`
	Visible    *bool    `json:"isVisible"`
	Content    *string  `json:"content"`
	Color      *string  `json:"color"`
	FontSize   *float64 `json:"fontSize"`
	FontFamily *string  `json:"fontFamily"`
	Align      *string  `json:"textAlign"`
	Src        *string  `json:"src"`
}

func (r patchRequest) patch(kind studio.Kind) (studio.Patch, error) {
	fp := studio.FramePatch{
		X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		ZIndex: r.ZIndex, Visible: r.Visible,
	}
	if kind == studio.KindImage {
		return studio.ImagePatch{FramePatch: fp, Src: r.Src}, nil
	}
	tp := studio.TextPatch{
		FramePatch: fp,
		Content:    r.Content,
		Color:      r.Color,
		FontSize:   r.FontSize,
	}
	if r.FontFamily != nil {
		family, err := studio.ParseFontFamily(*r.FontFamily)
		if err != nil {
			return nil, err
		}
		tp.FontFamily = &family
	}
	if r.Align != nil {
		a, err := studio.ParseAlign(*r.Align)
		if err != nil {
			return nil, err
		}
		tp.Align = &a
	}
	return tp, nil
}

func (s *Server) patchElement(c fiber.Ctx) error {
	var req patchRequest
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	id := elementID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.session.Element(id)
	if !ok {
		return fail(c, studio.ErrNotFound)
	}
	if req.Src != nil {
		if _, err := studio.DecodeDataURI(*req.Src); err != nil {
			return badRequest(c, err.Error())
		}
	}
	p, err := req.patch(el.Kind())
	if err != nil {
		return badRequest(c, err.Error())
	}
	s.session.UpdateElement(id, p)
	el, _ = s.session.Element(id)
	data, err := studio.MarshalElement(el)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

func (s *Server) deleteElement(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.DeleteElement(elementID(c)) {
		return fail(c, studio.ErrNotFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) selectElement(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Select(elementID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"selectedId": s.session.Selected(), "mode": s.session.Mode().String()})
}

// gestureRequest is a recorded pointer gesture: the press position and the
// subsequent move positions, in screen pixels.
type gestureRequest struct {
	From point   `json:"from"`
	Path []point `json:"path"`
}

// gesture replays a recorded drag or resize through one gesture handle.
func (s *Server) gesture(kind studio.GestureKind) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req gestureRequest
		if err := decodeBody(c, &req); err != nil {
			return fail(c, err)
		}
		id := elementID(c)

		s.mu.Lock()
		defer s.mu.Unlock()
		var (
			g   *studio.Gesture
			err error
		)
		if kind == studio.GestureResize {
			g, err = s.session.BeginResize(id, req.From.studio())
		} else {
			g, err = s.session.BeginDrag(id, req.From.studio())
		}
		if err != nil {
			return fail(c, err)
		}
		defer g.End()
		for _, p := range req.Path {
			g.Move(p.studio())
		}
		el, _ := s.session.Element(id)
		data, err := studio.MarshalElement(el)
		if err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(data)
	}
}

type strokeRequest struct {
	Rect   rect    `json:"rect"`
	Points []point `json:"points"`
}

func (s *Server) stroke(c fiber.Ctx) error {
	var req strokeRequest
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	if len(req.Points) == 0 {
		return badRequest(c, "points required")
	}
	r := req.Rect.studio()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.StartStroke(req.Points[0].studio(), r); err != nil {
		return fail(c, err)
	}
	defer s.session.EndStroke()
	if len(req.Points) == 1 {
		s.session.ContinueStroke(req.Points[0].studio(), r)
	}
	for _, p := range req.Points[1:] {
		s.session.ContinueStroke(p.studio(), r)
	}
	return c.JSON(fiber.Map{"hasMask": s.session.HasMask()})
}

func (s *Server) clearBrush(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.ClearMask()
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) putBrushSize(c fiber.Ctx) error {
	var req struct {
		Size float64 `json:"size"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetBrushSize(req.Size)
	return c.JSON(fiber.Map{"brushSize": s.session.BrushSize()})
}
