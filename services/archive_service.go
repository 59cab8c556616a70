package services

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gosimple/slug"

	"riot-stats-api/logging"
	"riot-stats-api/models"
)

// ErrArchiveDisabled is returned when no object storage is configured.
var ErrArchiveDisabled = fmt.Errorf("%w: match archive storage is not configured", models.ErrUnavailable)

type ArchiveResult struct {
	MatchID string `json:"matchId"`
	Key     string `json:"key"`
	URL     string `json:"url"`
}

// ArchiveService exports match telemetry as JSON objects to blob storage.
type ArchiveService struct {
	Data    MatchDataStore
	Objects ObjectStore // nil disables archiving
}

func NewArchiveService(data MatchDataStore, objects ObjectStore) *ArchiveService {
	return &ArchiveService{Data: data, Objects: objects}
}

// ArchiveKey is matches/<platform>/<matchId>.json with the platform slugged.
func ArchiveKey(m *models.MatchData) string {
	platform := "unknown"
	if m.Info != nil && m.Info.PlatformID != "" {
		platform = slug.Make(m.Info.PlatformID)
	}
	return fmt.Sprintf("matches/%s/%s.json", platform, m.Key())
}

func (s *ArchiveService) Archive(ctx context.Context, matchID string) (ArchiveResult, error) {
	if s.Objects == nil {
		return ArchiveResult{}, ErrArchiveDisabled
	}
	m, err := s.Data.Find(ctx, matchID)
	if err != nil {
		return ArchiveResult{}, err
	}

	body, err := json.Marshal(m)
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("encode match %s: %w", matchID, err)
	}
	key := ArchiveKey(m)
	url, err := s.Objects.Put(ctx, key, body, "application/json")
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("archive match %s: %w", matchID, err)
	}

	logging.Info().Str("matchId", matchID).Str("key", key).Int("bytes", len(body)).Msg("match archived")
	return ArchiveResult{MatchID: matchID, Key: key, URL: url}, nil
}
