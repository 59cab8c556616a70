package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riot-stats-api/config"
	"riot-stats-api/metrics"
	"riot-stats-api/services"
	"riot-stats-api/services/servicetest"
)

func testApp(t *testing.T, token string) *fiber.App {
	t.Helper()
	ids := servicetest.NewMatchIDs()
	data := servicetest.NewMatchData()
	players := servicetest.NewPlayers()
	cfg := &config.Config{AllowedOrigins: "http://localhost:3000", ServiceToken: token}
	return newApp(cfg,
		services.NewMatchService(ids, data, players),
		services.NewPlayerService(players, data),
		services.NewArchiveService(data, nil),
	)
}

func TestPanicIsRecoveredAndCounted(t *testing.T) {
	app := testApp(t, "")
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})
	counter := metrics.HTTPRequests.WithLabelValues("/boom", http.MethodGet, "500")
	before := testutil.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestWritesAreGuarded(t *testing.T) {
	app := testApp(t, "secret")

	req := httptest.NewRequest(http.MethodPost, "/api/match-ids", strings.NewReader(`{"matchId":"EUW1_1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/match-ids", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
