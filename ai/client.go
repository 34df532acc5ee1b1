// Package ai implements the studio's remote edit collaborator on top of the
// Gemini generateContent REST API.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	studio "github.com/gogpu/gg-studio"
)

// DefaultBaseURL is the Gemini API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultTimeout bounds one remote call.
const DefaultTimeout = 120 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 64 << 20

// APIError is a non-2xx reply from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: status %d: %s", e.Status, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithModel selects the model id. Empty keeps DefaultModel.
func WithModel(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.model = id
		}
	}
}

// WithTimeout bounds each remote call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client calls Gemini with one API key and model. It implements
// studio.Editor and is safe for concurrent use.
type Client struct {
	key     string
	model   string
	baseURL string
	timeout time.Duration
	http    *http.Client
}

var _ studio.Editor = (*Client)(nil)

// New returns a client for key.
func New(key string, opts ...Option) *Client {
	c := &Client{
		key:     strings.TrimSpace(key),
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the selected model id.
func (c *Client) Model() string { return c.model }

// Edit sends the base image, the mask when present and the prompt, and
// returns the first image part of the reply.
func (c *Client) Edit(ctx context.Context, req studio.EditRequest) (image.Image, error) {
	if c.key == "" {
		return nil, studio.ErrMissingCredential
	}
	if req.Base == nil {
		return nil, studio.ErrNoImage
	}

	parts := make([]part, 0, 3)
	for _, img := range []image.Image{req.Base, req.Mask} {
		if img == nil {
			continue
		}
		data, err := encodePNG(img)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part{InlineData: &inlineData{MimeType: "image/png", Data: data}})
	}
	parts = append(parts, part{Text: BuildPrompt(req.Mask != nil, req.Instruction)})

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: encode request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.key))
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	studio.Logger().Info("ai: edit request", "model", c.model,
		"masked", req.Mask != nil, "instruction", req.Instruction != "")

	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("ai: read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
		studio.Logger().Warn("ai: edit rejected", "model", c.model, "status", resp.StatusCode)
		return nil, apiErr
	}

	img, err := parseResponse(data)
	if err != nil {
		return nil, err
	}
	studio.Logger().Info("ai: edit response", "model", c.model,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return img, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("ai: encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func errorMessage(body []byte, status int) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if msg := http.StatusText(status); msg != "" {
		return msg
	}
	return "unexpected response"
}

// parseResponse returns the first image of the first candidate. A reply with
// only text wraps ErrNoImageResult with that text.
func parseResponse(body []byte) (image.Image, error) {
	var r generateResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return nil, studio.ErrNoImageResult
	}
	var text strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("ai: decode image part: %w", err)
			}
			img, _, err := studio.DecodeImage(raw)
			if err != nil {
				return nil, err
			}
			return img, nil
		}
		text.WriteString(p.Text)
	}
	if s := strings.TrimSpace(text.String()); s != "" {
		return nil, fmt.Errorf("%w: %s", studio.ErrNoImageResult, s)
	}
	return nil, studio.ErrNoImageResult
}
