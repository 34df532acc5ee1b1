package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v3"

	studio "github.com/gogpu/gg-studio"
)

func decodeBody(c fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	return nil
}

func readUpload(c fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: file required", errBadRequest)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) getSession(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.state())
}

// runPending performs the remote call without holding mu and commits it.
func (s *Server) runPending(c fiber.Ctx, p *studio.Pending) error {
	out, runErr := p.Run(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Finish(p, out, runErr); err != nil {
		return fail(c, err)
	}
	return c.JSON(s.state())
}

func (s *Server) upload(c fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil {
		return fail(c, err)
	}
	img, format, err := studio.DecodeImage(data)
	if err != nil {
		return badRequest(c, err.Error())
	}
	studio.Logger().Debug("server: upload decoded", "format", format, "bytes", len(data))

	s.mu.Lock()
	p, err := s.session.BeginUpload(img)
	s.mu.Unlock()
	if err != nil {
		return fail(c, err)
	}
	return s.runPending(c, p)
}

func (s *Server) edit(c fiber.Ctx) error {
	var req struct {
		Instruction *string `json:"instruction"`
	}
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &req); err != nil {
			return fail(c, err)
		}
	}

	s.mu.Lock()
	if req.Instruction != nil {
		s.session.SetInstruction(*req.Instruction)
	}
	p, err := s.session.BeginEdit()
	s.mu.Unlock()
	if err != nil {
		return fail(c, err)
	}
	return s.runPending(c, p)
}

func (s *Server) undo(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := s.session.Undo()
	return c.JSON(fiber.Map{"applied": applied, "state": s.state()})
}

func (s *Server) redo(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := s.session.Redo()
	return c.JSON(fiber.Map{"applied": applied, "state": s.state()})
}

func (s *Server) putZoom(c fiber.Ctx) error {
	var req struct {
		Zoom *float64 `json:"zoom"`
		Step string   `json:"step"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case req.Zoom != nil:
		s.session.SetZoom(*req.Zoom)
	case req.Step == "in":
		s.session.ZoomIn()
	case req.Step == "out":
		s.session.ZoomOut()
	case req.Step == "reset":
		s.session.ResetZoom()
	default:
		return badRequest(c, "zoom or step required")
	}
	return c.JSON(fiber.Map{"zoom": s.session.Zoom()})
}

func (s *Server) putMode(c fiber.Ctx) error {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	m, err := studio.ParseMode(req.Mode)
	if err != nil {
		return badRequest(c, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetMode(m)
	return c.JSON(fiber.Map{"mode": s.session.Mode().String(), "selectedId": s.session.Selected()})
}

func (s *Server) putContainer(c fiber.Ctx) error {
	var req size
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	if req.Width <= 0 || req.Height <= 0 {
		return badRequest(c, "width and height must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetContainer(studio.Size{Width: req.Width, Height: req.Height})
	d := s.session.Display()
	return c.JSON(fiber.Map{"display": size{d.Width, d.Height}})
}

func (s *Server) putOriginal(c fiber.Ctx) error {
	var req struct {
		Show bool `json:"show"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetShowOriginal(req.Show)
	return c.JSON(fiber.Map{"showOriginal": s.session.ShowOriginal()})
}

func (s *Server) putInstruction(c fiber.Ctx) error {
	var req struct {
		Instruction string `json:"instruction"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetInstruction(req.Instruction)
	return c.JSON(fiber.Map{"instruction": s.session.Instruction()})
}

func (s *Server) getImage(c fiber.Ctx) error {
	s.mu.Lock()
	var img image.Image
	switch c.Params("which") {
	case "base":
		img = s.session.Base()
	case "result":
		img = s.session.Result()
	case "displayed":
		img = s.session.Displayed()
	case "mask":
		if s.session.Base() != nil {
			img = s.session.Mask().Image()
		}
	default:
		s.mu.Unlock()
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown image"})
	}
	s.mu.Unlock()
	if img == nil {
		return fail(c, studio.ErrNoImage)
	}
	var buf bytes.Buffer
	if err := studio.FormatPNG.Encode(&buf, img); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, studio.FormatPNG.MediaType())
	return c.Send(buf.Bytes())
}

func (s *Server) export(c fiber.Ctx) error {
	f, err := studio.ParseFormat(c.Query("format"))
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	s.mu.Lock()
	err = s.session.Export(&buf, f)
	s.mu.Unlock()
	if err != nil {
		return fail(c, err)
	}
	c.Attachment(f.FileName())
	c.Set(fiber.HeaderContentType, f.MediaType())
	return c.Send(buf.Bytes())
}
