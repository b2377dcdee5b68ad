// Package api is the HTTP client for the CRM backend. It attaches the
// bearer credential to every request and converts an authorization
// failure into a forced session teardown plus an explicit navigation
// intent for the hosting shell to interpret.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/crmvibe/crmdash/internal/errors"
	"github.com/crmvibe/crmdash/internal/log"
)

// SessionSource supplies the current bearer credential and tears the
// session down when the backend rejects it. Implemented by the session
// manager.
type SessionSource interface {
	Token() string
	Teardown() error
}

// Navigation is an explicit navigation intent returned on the error path
// instead of an ambient redirect side effect, so the client stays
// testable without a real navigation environment.
type Navigation int

const (
	// NavigateNone means no navigation is required.
	NavigateNone Navigation = iota
	// NavigateLogin means the shell must take the user to the login view.
	NavigateLogin
)

// UnauthorizedError is returned when the backend rejects the stored
// credential. The session has already been torn down; the redirect is
// the recovery, so this is not surfaced as an in-app error.
type UnauthorizedError struct {
	Navigate Navigation
	Cause    *errors.DashError
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	return e.Cause.Error()
}

// Unwrap returns the underlying coded error
func (e *UnauthorizedError) Unwrap() error {
	return e.Cause
}

// Client is the CRM backend API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	sessions   SessionSource
	logger     *log.Logger
}

// NewClient creates a new CRM backend client
func NewClient(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// BindSession attaches the session source. The client and the session
// manager reference each other, so the source is bound after both exist.
func (c *Client) BindSession(s SessionSource) {
	c.sessions = s
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequestFailed, "failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequestFailed, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.sessions != nil {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequestFailed, "failed to perform request", err)
	}

	return resp, nil
}

// ErrorResponse is the backend's error body shape
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// detailFrom extracts the backend error message from a non-2xx body,
// returning the empty string when the body isn't the expected shape.
func detailFrom(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.Detail
}

// get performs an authenticated GET and decodes the response into target.
//
// A 401 tears the session down and returns an UnauthorizedError carrying
// the login navigation intent. Any other non-2xx becomes a status-coded
// transport error. No retries.
func (c *Client) get(ctx context.Context, path string, target interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.unauthorized(path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return errors.NewAPIStatusError(resp.StatusCode, detailFrom(body))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.NewMalformedBodyError(err)
		}
	}

	return nil
}

// unauthorized tears down the stored session, exactly once per failing
// call, and returns the navigation intent.
func (c *Client) unauthorized(path string) error {
	if c.sessions != nil {
		if err := c.sessions.Teardown(); err != nil {
			c.logger.WithError(err).Warn("session teardown after 401", "path", path)
		}
	}
	c.logger.Debug("credential rejected", "path", path)

	return &UnauthorizedError{
		Navigate: NavigateLogin,
		Cause:    errors.NewUnauthorizedError(),
	}
}
