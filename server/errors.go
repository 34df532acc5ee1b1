package server

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	studio "github.com/gogpu/gg-studio"
	"github.com/gogpu/gg-studio/ai"
)

var errBadRequest = errors.New("server: bad request")

// statusFor maps session and client errors to HTTP status codes.
func statusFor(err error) int {
	var apiErr *ai.APIError
	switch {
	case errors.Is(err, studio.ErrMissingCredential):
		return http.StatusPreconditionFailed
	case errors.Is(err, studio.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, studio.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, studio.ErrWrongMode),
		errors.Is(err, studio.ErrNotSelected),
		errors.Is(err, studio.ErrNoImage),
		errors.Is(err, studio.ErrUnknownFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, studio.ErrInvalidDataURI), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.As(err, &apiErr), errors.Is(err, studio.ErrNoImageResult):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		studio.Logger().Warn("server: request failed", "path", c.Path(), "status", code, "err", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
