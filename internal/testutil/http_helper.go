package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// HTTPHelper drives a fiber app through its test transport. It enforces
// error checking so tests read as request, response, assertions.
type HTTPHelper struct {
	t   *testing.T
	app *fiber.App
}

// NewHTTPHelper creates a new test helper for a given Fiber app.
func NewHTTPHelper(t *testing.T, app *fiber.App) *HTTPHelper {
	t.Helper()
	require.NotNil(t, app, "Fiber app provided to HTTPHelper cannot be nil")
	return &HTTPHelper{
		t:   t,
		app: app,
	}
}

// Response is a fully read test response.
type Response struct {
	StatusCode int
	Body       string
	Header     http.Header
}

// Do performs the request against the app and reads the whole body.
func (h *HTTPHelper) Do(method, path string) *Response {
	h.t.Helper()

	req := httptest.NewRequest(method, path, nil)
	resp, err := h.app.Test(req)
	require.NoError(h.t, err, "request %s %s must not fail at transport level", method, path)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err, "response body for %s %s must be readable", method, path)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Header:     resp.Header,
	}
}

// Get performs a GET request against the app.
func (h *HTTPHelper) Get(path string) *Response {
	h.t.Helper()
	return h.Do(fiber.MethodGet, path)
}

// Post performs a POST request against the app.
func (h *HTTPHelper) Post(path string) *Response {
	h.t.Helper()
	return h.Do(fiber.MethodPost, path)
}
