package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	studio "github.com/gogpu/gg-studio"
)

// Validation is the outcome of a key check.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Validation messages.
const (
	MsgKeyRequired = "key required"
	MsgKeyValid    = "available"
	MsgKeyInvalid  = "invalid key"
)

// Validate checks the key by listing models. An empty key is reported
// invalid without a network call. Transport failures are reported in the
// message rather than returned.
func (c *Client) Validate(ctx context.Context) Validation {
	if c.key == "" {
		return Validation{Message: MsgKeyRequired}
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models?key=%s", c.baseURL, url.QueryEscape(c.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Validation{Message: err.Error()}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Validation{Message: err.Error()}
	}
	defer resp.Body.Close()

	var v Validation
	switch {
	case resp.StatusCode/100 == 2:
		v = Validation{Valid: true, Message: MsgKeyValid}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden:
		v = Validation{Message: MsgKeyInvalid}
	default:
		v = Validation{Message: fmt.Sprintf("error: %d", resp.StatusCode)}
	}
	studio.Logger().Info("ai: key validated", "valid", v.Valid, "status", resp.StatusCode)
	return v
}
