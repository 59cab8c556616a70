package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riot-stats-api/handlers"
	"riot-stats-api/middleware"
	"riot-stats-api/models"
	"riot-stats-api/services"
	"riot-stats-api/services/servicetest"
)

type fixture struct {
	app     *fiber.App
	ids     *servicetest.MatchIDs
	data    *servicetest.MatchData
	players *servicetest.Players
	objects *servicetest.Objects
}

type options struct {
	token   string
	noStore bool
}

func newFixture(t *testing.T, opts ...options) *fixture {
	t.Helper()
	var o options
	if len(opts) > 0 {
		o = opts[0]
	}

	f := &fixture{
		ids:     servicetest.NewMatchIDs(),
		data:    servicetest.NewMatchData(),
		players: servicetest.NewPlayers(),
		objects: servicetest.NewObjects("https://cdn.test"),
	}
	var objects services.ObjectStore = f.objects
	if o.noStore {
		objects = nil
	}

	matchService := services.NewMatchService(f.ids, f.data, f.players)
	playerService := services.NewPlayerService(f.players, f.data)
	archiveService := services.NewArchiveService(f.data, objects)

	f.app = fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: handlers.ErrorHandler,
	})
	guard := middleware.ServiceTokenMiddleware(o.token)
	api := f.app.Group("/api")
	handlers.SetupMatchIDRoutes(api, matchService, guard)
	handlers.SetupMatchDataRoutes(api, matchService, archiveService, guard)
	handlers.SetupMatchRoutes(api, matchService, guard)
	handlers.SetupPlayerRoutes(api, playerService, guard)
	return f
}

// do sends a request and returns the status and raw body. Extra arguments
// are header name/value pairs.
func (f *fixture) do(t *testing.T, method, path, body string, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func errorBody(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[map[string]string](t, raw)["error"]
}

func matchData(id string, puuids ...string) models.MatchData {
	info := &models.MatchInfo{PlatformID: "EUW1", QueueID: 420, GameDuration: 1800}
	for _, p := range puuids {
		info.Participants = append(info.Participants, models.Participant{Puuid: p, ChampionName: "Ahri"})
	}
	return models.MatchData{
		Metadata: &models.MatchMetadata{MatchID: id, Participants: puuids},
		Info:     info,
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	f := newFixture(t)

	status, raw := f.do(t, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", errorBody(t, raw))
}

func TestServiceTokenGuardsMutations(t *testing.T) {
	f := newFixture(t, options{token: "s3cret"})

	status, _ := f.do(t, http.MethodPost, "/api/match-ids", `{"matchId":"EUW1_1"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Empty(t, f.ids.Docs)

	status, _ = f.do(t, http.MethodPost, "/api/match-ids", `{"matchId":"EUW1_1"}`, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.do(t, http.MethodPost, "/api/match-ids", `{"matchId":"EUW1_1"}`, "Authorization", "Bearer s3cret")
	assert.Equal(t, http.StatusCreated, status)

	status, _ = f.do(t, http.MethodDelete, "/api/players/p1", "", "X-Service-Token", "s3cret")
	assert.Equal(t, http.StatusNotFound, status)

	// reads stay open
	status, _ = f.do(t, http.MethodGet, "/api/match-ids/EUW1_1", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestStoreUnavailableIs503(t *testing.T) {
	f := newFixture(t)
	f.players.Err = models.ErrUnavailable

	status, raw := f.do(t, http.MethodGet, "/api/players/p1", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Service unavailable", errorBody(t, raw))
}

func TestUnexpectedErrorIs500(t *testing.T) {
	f := newFixture(t)
	f.ids.Err = assert.AnError

	status, raw := f.do(t, http.MethodGet, "/api/match-ids/stats/count", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", errorBody(t, raw))
}
