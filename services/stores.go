package services

import (
	"context"

	"riot-stats-api/models"
)

// Store contracts consumed by the services. The Mongo implementations live in
// package store; servicetest provides in-memory fakes.

type MatchIDStore interface {
	Find(ctx context.Context, id string) (*models.MatchID, error)
	List(ctx context.Context, f models.MatchIDFilter, req models.PageRequest) (models.Page[models.MatchID], error)
	Count(ctx context.Context, f models.MatchIDFilter) (int64, error)
	DistinctTiers(ctx context.Context) ([]models.Tier, error)
	DistinctRanks(ctx context.Context) ([]models.Rank, error)
	Create(ctx context.Context, m *models.MatchID) error
	Replace(ctx context.Context, m *models.MatchID) error
	Patch(ctx context.Context, id string, p models.MatchIDPatch) (*models.MatchID, error)
	Delete(ctx context.Context, id string) (bool, error)
	BulkUpsert(ctx context.Context, ids []models.MatchID) (models.BulkResult, error)
}

type MatchDataStore interface {
	Find(ctx context.Context, matchID string) (*models.MatchData, error)
	List(ctx context.Context, f models.MatchDataFilter, req models.PageRequest) (models.Page[models.MatchData], error)
	ByParticipant(ctx context.Context, puuid string, req models.PageRequest) (models.Page[models.MatchData], error)
	CountByParticipant(ctx context.Context, puuid string) (int64, error)
	Create(ctx context.Context, m *models.MatchData) error
	Delete(ctx context.Context, matchID string) (bool, error)
	BulkUpsert(ctx context.Context, matches []models.MatchData) (models.BulkResult, error)

	DurationStats(ctx context.Context, f models.StatsFilter) (models.DurationStats, error)
	ChampionFrequency(ctx context.Context, f models.StatsFilter, limit int) ([]models.ChampionCount, error)
	WinrateByChampion(ctx context.Context, f models.StatsFilter) ([]models.ChampionWinrate, error)
	PlayerRoles(ctx context.Context, puuid string) (*models.PlayerRoles, error)
	ChampionStats(ctx context.Context, champion string) (*models.ChampionStatistics, error)
}

type PlayerStore interface {
	Find(ctx context.Context, puuid string) (*models.Player, error)
	FindMany(ctx context.Context, puuids []string) ([]models.Player, error)
	Search(ctx context.Context, f models.PlayerFilter, req models.PageRequest) (models.Page[models.Player], error)
	Count(ctx context.Context, f models.PlayerFilter) (int64, error)
	Leaderboard(ctx context.Context, field string, limit int) ([]models.Player, error)
	Create(ctx context.Context, p *models.Player) error
	Replace(ctx context.Context, p *models.Player) error
	Patch(ctx context.Context, puuid string, p models.PlayerPatch) (*models.Player, error)
	Delete(ctx context.Context, puuid string) (bool, error)
	BulkUpsert(ctx context.Context, players []models.Player) (models.BulkResult, error)
}

// ObjectStore is S3-compatible blob storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// StoreProbe is polled by the store monitor.
type StoreProbe interface {
	Ping(ctx context.Context) error
	EstimatedCounts(ctx context.Context) (map[string]int64, error)
}

const (
	MinLimit          = 1
	MaxLimit          = 500
	DefaultChampLimit = 50
	DefaultBoardLimit = 100
)

// ClampLimit bounds a caller-supplied result cap to [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
