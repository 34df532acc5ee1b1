// Package server exposes one editing session over a local HTTP API.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	studio "github.com/gogpu/gg-studio"
	"github.com/gogpu/gg-studio/ai"
	"github.com/gogpu/gg-studio/credential"
)

// Settings persists the API key and the selected model.
// *credential.Store implements it.
type Settings interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
	APIKey(ctx context.Context) (string, error)
	SaveAPIKey(ctx context.Context, key string) error
}

var _ Settings = (*credential.Store)(nil)

// Option configures a Server.
type Option func(*Server)

// WithSettings sets the settings store. Without one, keys live only in
// memory.
func WithSettings(st Settings) Option {
	return func(s *Server) { s.settings = st }
}

// WithModel sets the model used until the user picks another.
func WithModel(id string) Option {
	return func(s *Server) {
		if id != "" {
			s.model = id
		}
	}
}

// WithClientOptions adds options to every ai.Client the server builds.
func WithClientOptions(opts ...ai.Option) Option {
	return func(s *Server) { s.clientOpts = append(s.clientOpts, opts...) }
}

// WithSessionOptions configures the session.
func WithSessionOptions(opts ...studio.SessionOption) Option {
	return func(s *Server) { s.sessionOpts = append(s.sessionOpts, opts...) }
}

// WithTimeouts sets the HTTP read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout, s.writeTimeout = read, write
	}
}

// WithAccessLog toggles the request log middleware.
func WithAccessLog(on bool) Option {
	return func(s *Server) { s.accessLog = on }
}

// bodyLimit admits large photos and data URIs.
const bodyLimit = 32 << 20

// Server owns the session and serializes access to it. The lock is released
// while a remote edit runs; the session's busy flag keeps a second edit out.
type Server struct {
	app *fiber.App

	mu      sync.Mutex
	session *studio.Session
	key     string
	model   string

	settings     Settings
	clientOpts   []ai.Option
	sessionOpts  []studio.SessionOption
	readTimeout  time.Duration
	writeTimeout time.Duration
	accessLog    bool
}

// New builds the server and its routes.
func New(opts ...Option) *Server {
	s := &Server{
		model:        ai.DefaultModel,
		readTimeout:  30 * time.Second,
		writeTimeout: 180 * time.Second,
		accessLog:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.session = studio.NewSession(s.sessionOpts...)

	s.app = fiber.New(fiber.Config{
		AppName:      "gg-studio",
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		BodyLimit:    bodyLimit,
	})
	s.app.Use(recover.New())
	if s.accessLog {
		s.app.Use(accessLogger())
	}
	s.app.Use(corsPolicy())
	s.routes()
	return s
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	studio.Logger().Info("server: listening", "addr", addr, "model", s.model)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// LoadSettings restores the persisted key and model and installs an editor
// when a key is present.
func (s *Server) LoadSettings(ctx context.Context) error {
	if s.settings == nil {
		return nil
	}
	key, err := s.settings.APIKey(ctx)
	if err != nil {
		return err
	}
	model, ok, err := s.settings.Get(ctx, credential.ModelName)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		if _, known := ai.Lookup(model); known {
			s.model = model
		}
	}
	s.installKey(key)
	studio.Logger().Info("server: settings loaded", "has_key", key != "", "model", s.model)
	return nil
}

func (s *Server) client(key string) *ai.Client {
	opts := append([]ai.Option{ai.WithModel(s.model)}, s.clientOpts...)
	return ai.New(key, opts...)
}

// installKey swaps the session editor. Callers hold mu.
func (s *Server) installKey(key string) {
	s.key = key
	if key == "" {
		s.session.SetEditor(nil)
		return
	}
	s.session.SetEditor(s.client(key))
}

func (s *Server) routes() {
	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/models", s.listModels)
	s.app.Get("/fonts", s.listFonts)

	s.app.Get("/settings", s.getSettings)
	s.app.Put("/settings/key", s.putKey)
	s.app.Put("/settings/model", s.putModel)

	s.app.Get("/session", s.getSession)
	s.app.Post("/session/upload", s.upload)
	s.app.Post("/session/edit", s.edit)
	s.app.Post("/session/undo", s.undo)
	s.app.Post("/session/redo", s.redo)
	s.app.Put("/session/zoom", s.putZoom)
	s.app.Put("/session/mode", s.putMode)
	s.app.Put("/session/container", s.putContainer)
	s.app.Put("/session/original", s.putOriginal)
	s.app.Put("/session/instruction", s.putInstruction)
	s.app.Get("/session/image/:which", s.getImage)

	s.app.Post("/elements/text", s.addText)
	s.app.Post("/elements/image", s.addImage)
	s.app.Patch("/elements/:id", s.patchElement)
	s.app.Delete("/elements/:id", s.deleteElement)
	s.app.Post("/elements/:id/select", s.selectElement)
	s.app.Post("/elements/:id/drag", s.gesture(studio.GestureDrag))
	s.app.Post("/elements/:id/resize", s.gesture(studio.GestureResize))

	s.app.Post("/brush/strokes", s.stroke)
	s.app.Delete("/brush", s.clearBrush)
	s.app.Put("/brush/size", s.putBrushSize)

	s.app.Get("/export", s.export)
}
