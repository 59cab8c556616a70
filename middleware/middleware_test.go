package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riot-stats-api/metrics"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestContextMiddleware())
	app.Get("/echo/:id", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})
	app.Post("/guarded", ServiceTokenMiddleware("tok"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Post("/open", ServiceTokenMiddleware(""), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestRequestIDGenerated(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/echo/1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	id := resp.Header.Get(HeaderRequestID)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated id %q", id)
}

func TestRequestIDPropagated(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/echo/1", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestRequestMetricsUseRoutePattern(t *testing.T) {
	app := newTestApp()
	counter := metrics.HTTPRequests.WithLabelValues("/echo/:id", http.MethodGet, "200")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/echo/1", "/echo/2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestUnmatchedRouteIsRecorded(t *testing.T) {
	app := newTestApp()
	counter := metrics.HTTPRequests.WithLabelValues(unmatchedRoute, http.MethodGet, "404")
	before := testutil.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing/route", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestServiceTokenMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"missing", "/guarded", "", "", http.StatusUnauthorized},
		{"wrong bearer", "/guarded", "Authorization", "Bearer nope", http.StatusUnauthorized},
		{"bearer", "/guarded", "Authorization", "Bearer tok", http.StatusCreated},
		{"raw authorization", "/guarded", "Authorization", "tok", http.StatusCreated},
		{"service header", "/guarded", "X-Service-Token", "tok", http.StatusCreated},
		{"disabled", "/open", "", "", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
