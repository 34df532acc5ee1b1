package server

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	studio "github.com/gogpu/gg-studio"
	"github.com/gogpu/gg-studio/ai"
	"github.com/gogpu/gg-studio/credential"
)

func (s *Server) listModels(c fiber.Ctx) error {
	s.mu.Lock()
	current := s.model
	s.mu.Unlock()
	return c.JSON(fiber.Map{
		"default": ai.DefaultModel,
		"current": current,
		"groups":  ai.Groups(),
	})
}

func (s *Server) listFonts(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"default": studio.DefaultFontFamily,
		"fonts":   studio.SupportedFonts,
	})
}

func (s *Server) getSettings(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{"hasKey": s.key != "", "model": s.model})
}

// putKey validates the key against the API, persists it when valid and
// installs an editor for it. Invalid keys change nothing.
func (s *Server) putKey(c fiber.Ctx) error {
	var req struct {
		Key string `json:"key"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	key := strings.TrimSpace(req.Key)

	s.mu.Lock()
	client := s.client(key)
	s.mu.Unlock()

	v := client.Validate(c.Context())
	if !v.Valid {
		return c.Status(http.StatusUnprocessableEntity).JSON(v)
	}
	if s.settings != nil {
		if err := s.settings.SaveAPIKey(c.Context(), key); err != nil {
			return fail(c, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.installKey(key)
	studio.Logger().Info("server: api key installed", "model", s.model)
	return c.JSON(v)
}

func (s *Server) putModel(c fiber.Ctx) error {
	var req struct {
		Model string `json:"model"`
	}
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	m, ok := ai.Lookup(req.Model)
	if !ok {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unknown model"})
	}
	if s.settings != nil {
		if err := s.settings.Set(c.Context(), credential.ModelName, m.ID); err != nil {
			return fail(c, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m.ID
	s.installKey(s.key)
	return c.JSON(m)
}
