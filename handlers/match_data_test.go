package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riot-stats-api/models"
	"riot-stats-api/services"
)

func TestMatchDataCreate(t *testing.T) {
	f := newFixture(t)

	body := `{"metadata":{"matchId":"EUW1_1","participants":["p1","p2"]},"info":{"queueId":420,"gameDuration":1500,"participants":[{"puuid":"p1","championName":"Ahri","win":true}]}}`
	status, raw := f.do(t, http.MethodPost, "/api/match-data", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	require.Contains(t, f.data.Docs, "EUW1_1")
	assert.Equal(t, 1500, f.data.Docs["EUW1_1"].Info.GameDuration)

	status, raw = f.do(t, http.MethodPost, "/api/match-data", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Already exists", errorBody(t, raw))

	status, raw = f.do(t, http.MethodPost, "/api/match-data", `{"info":{"queueId":420}}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "metadata.matchId is required", errorBody(t, raw))
}

func TestMatchDataGetAndDelete(t *testing.T) {
	f := newFixture(t)
	f.data.Docs["EUW1_1"] = matchData("EUW1_1", "p1")

	status, raw := f.do(t, http.MethodGet, "/api/match-data/EUW1_1", "")
	require.Equal(t, http.StatusOK, status)
	got := decode[models.MatchData](t, raw)
	assert.Equal(t, []string{"p1"}, got.Participants())

	status, _ = f.do(t, http.MethodDelete, "/api/match-data/EUW1_1", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = f.do(t, http.MethodDelete, "/api/match-data/EUW1_1", "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = f.do(t, http.MethodGet, "/api/match-data/EUW1_1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMatchDataList(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"EUW1_1", "EUW1_2", "EUW1_3"} {
		f.data.Docs[id] = matchData(id)
	}

	status, raw := f.do(t, http.MethodGet, "/api/match-data?size=2&page=1", "")
	require.Equal(t, http.StatusOK, status, string(raw))
	page := decode[models.Page[models.MatchData]](t, raw)
	assert.Equal(t, int64(3), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "EUW1_3", page.Content[0].Key())
	assert.Equal(t, "info.gameEndTimestamp,desc", page.Sort)

	status, raw = f.do(t, http.MethodGet, "/api/match-data?matchId=EUW1_2", "")
	require.Equal(t, http.StatusOK, status)
	page = decode[models.Page[models.MatchData]](t, raw)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "EUW1_2", page.Content[0].Key())

	for _, q := range []string{"queueId=ranked", "durationMin=x", "startTimeFrom=1.5", "sort=info.kills"} {
		status, _ = f.do(t, http.MethodGet, "/api/match-data?"+q, "")
		assert.Equal(t, http.StatusBadRequest, status, q)
	}
}

func TestMatchDataBulk(t *testing.T) {
	f := newFixture(t)
	f.data.Docs["EUW1_1"] = matchData("EUW1_1")

	status, raw := f.do(t, http.MethodPost, "/api/match-data/bulk",
		`[{"metadata":{"matchId":"EUW1_1"}},{"metadata":{"matchId":"EUW1_2"}},{"info":{"queueId":420}}]`)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, models.BulkResult{Inserted: 1, Updated: 1, Total: 2}, decode[models.BulkResult](t, raw))
}

func TestMatchDataPlayersKeepsParticipantOrder(t *testing.T) {
	f := newFixture(t)
	f.data.Docs["EUW1_1"] = matchData("EUW1_1", "a", "c", "b", "ghost")
	for _, p := range []string{"a", "b", "c"} {
		f.players.Docs[p] = models.Player{Puuid: p}
	}

	status, raw := f.do(t, http.MethodGet, "/api/match-data/EUW1_1/players", "")
	require.Equal(t, http.StatusOK, status)
	var puuids []string
	for _, p := range decode[[]models.Player](t, raw) {
		puuids = append(puuids, p.Puuid)
	}
	assert.Equal(t, []string{"a", "c", "b"}, puuids)

	status, _ = f.do(t, http.MethodGet, "/api/match-data/EUW1_404/players", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMatchDataByParticipant(t *testing.T) {
	f := newFixture(t)
	f.data.Docs["EUW1_1"] = matchData("EUW1_1", "p1", "p2")
	f.data.Docs["EUW1_2"] = matchData("EUW1_2", "p2")

	status, raw := f.do(t, http.MethodGet, "/api/match-data/participants/by-puuid/p2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), decode[models.Page[models.MatchData]](t, raw).TotalElements)

	status, raw = f.do(t, http.MethodGet, "/api/match-data/participants/by-puuid/nobody", "")
	require.Equal(t, http.StatusOK, status)
	page := decode[models.Page[models.MatchData]](t, raw)
	assert.Zero(t, page.TotalElements)
	assert.NotNil(t, page.Content)
}

func TestMatchDataStats(t *testing.T) {
	f := newFixture(t)
	f.data.Durations = models.DurationStats{Min: 900, Max: 2400, Avg: 1650}
	f.data.Winrates = []models.ChampionWinrate{{ChampionID: 103, ChampionName: "Ahri", Games: 4, Wins: 3, Winrate: 75}}

	status, raw := f.do(t, http.MethodGet, "/api/match-data/stats/durations?queueId=420&platformId=EUW1&startTimeFrom=100&startTimeTo=200", "")
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, f.data.Durations, decode[models.DurationStats](t, raw))

	q := f.data.LastStatsQuery
	require.NotNil(t, q.QueueID)
	require.NotNil(t, q.PlatformID)
	require.NotNil(t, q.StartTimeFrom)
	require.NotNil(t, q.StartTimeTo)
	assert.Equal(t, 420, *q.QueueID)
	assert.Equal(t, "EUW1", *q.PlatformID)
	assert.Equal(t, int64(100), *q.StartTimeFrom)
	assert.Equal(t, int64(200), *q.StartTimeTo)

	status, raw = f.do(t, http.MethodGet, "/api/match-data/stats/winrate-by-champion", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, f.data.Winrates, decode[[]models.ChampionWinrate](t, raw))
	assert.Nil(t, f.data.LastStatsQuery.QueueID)
}

func TestChampionFrequencyLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"default", "", services.DefaultChampLimit},
		{"explicit", "?limit=5", 5},
		{"clamped high", "?limit=9999", services.MaxLimit},
		{"clamped low", "?limit=0", services.MinLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			status, raw := f.do(t, http.MethodGet, "/api/match-data/stats/champions"+tt.query, "")
			require.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, `[]`, string(raw))
			assert.Equal(t, tt.wantLimit, f.data.LastLimit)
		})
	}

	f := newFixture(t)
	status, _ := f.do(t, http.MethodGet, "/api/match-data/stats/champions?limit=lots", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestArchiveMatch(t *testing.T) {
	f := newFixture(t)
	f.data.Docs["EUW1_1"] = matchData("EUW1_1", "p1")

	status, raw := f.do(t, http.MethodPost, "/api/match-data/EUW1_1/archive", "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	res := decode[services.ArchiveResult](t, raw)
	assert.Equal(t, "matches/euw1/EUW1_1.json", res.Key)
	assert.Equal(t, "https://cdn.test/matches/euw1/EUW1_1.json", res.URL)
	assert.Contains(t, f.objects.Blobs, "matches/euw1/EUW1_1.json")

	status, _ = f.do(t, http.MethodPost, "/api/match-data/EUW1_404/archive", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestArchiveMatchWithoutStorage(t *testing.T) {
	f := newFixture(t, options{noStore: true})
	f.data.Docs["EUW1_1"] = matchData("EUW1_1")

	status, raw := f.do(t, http.MethodPost, "/api/match-data/EUW1_1/archive", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Service unavailable", errorBody(t, raw))
}
