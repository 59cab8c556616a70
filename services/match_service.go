package services

import (
	"context"
	"fmt"
	"strings"

	"riot-stats-api/logging"
	"riot-stats-api/models"
)

// MatchService covers match ids, match telemetry and the match aggregates.
type MatchService struct {
	IDs     MatchIDStore
	Data    MatchDataStore
	Players PlayerStore
}

func NewMatchService(ids MatchIDStore, data MatchDataStore, players PlayerStore) *MatchService {
	return &MatchService{IDs: ids, Data: data, Players: players}
}

func validateMatchID(m *models.MatchID) error {
	if strings.TrimSpace(m.MatchID) == "" {
		return models.Invalidf("matchId is required")
	}
	if m.Tier != "" && !m.Tier.Valid() {
		return models.Invalidf("unknown tier %q", m.Tier)
	}
	if m.Rank != "" && !m.Rank.Valid() {
		return models.Invalidf("unknown rank %q", m.Rank)
	}
	return nil
}

// ---- match ids ----

func (s *MatchService) ListMatchIDs(ctx context.Context, f models.MatchIDFilter, req models.PageRequest) (models.Page[models.MatchID], error) {
	if err := req.Validate(); err != nil {
		return models.Page[models.MatchID]{}, err
	}
	return s.IDs.List(ctx, f, req)
}

func (s *MatchService) GetMatchID(ctx context.Context, id string) (*models.MatchID, error) {
	return s.IDs.Find(ctx, id)
}

func (s *MatchService) CountMatchIDs(ctx context.Context, f models.MatchIDFilter) (int64, error) {
	return s.IDs.Count(ctx, f)
}

func (s *MatchService) DistinctTiers(ctx context.Context) ([]models.Tier, error) {
	return s.IDs.DistinctTiers(ctx)
}

func (s *MatchService) DistinctRanks(ctx context.Context) ([]models.Rank, error) {
	return s.IDs.DistinctRanks(ctx)
}

// CreateMatchID fails with ErrConflict when the id is already stored.
func (s *MatchService) CreateMatchID(ctx context.Context, m *models.MatchID) error {
	if err := validateMatchID(m); err != nil {
		return err
	}
	if err := s.IDs.Create(ctx, m); err != nil {
		return fmt.Errorf("create match id %s: %w", m.MatchID, err)
	}
	return nil
}

// ReplaceMatchID overwrites the stored id; the path id wins over the body.
func (s *MatchService) ReplaceMatchID(ctx context.Context, id string, m *models.MatchID) error {
	m.MatchID = id
	if err := validateMatchID(m); err != nil {
		return err
	}
	if err := s.IDs.Replace(ctx, m); err != nil {
		return fmt.Errorf("replace match id %s: %w", id, err)
	}
	return nil
}

func (s *MatchService) PatchMatchID(ctx context.Context, id string, p models.MatchIDPatch) (*models.MatchID, error) {
	return s.IDs.Patch(ctx, id, p)
}

func (s *MatchService) DeleteMatchID(ctx context.Context, id string) error {
	existed, err := s.IDs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete match id %s: %w", id, err)
	}
	if !existed {
		return models.ErrNotFound
	}
	return nil
}

// BulkUpsertMatchIDs skips entries without an id; they are not counted.
func (s *MatchService) BulkUpsertMatchIDs(ctx context.Context, ids []models.MatchID) (models.BulkResult, error) {
	keep := make([]models.MatchID, 0, len(ids))
	for i := range ids {
		if strings.TrimSpace(ids[i].MatchID) == "" {
			continue
		}
		if err := validateMatchID(&ids[i]); err != nil {
			return models.BulkResult{}, err
		}
		keep = append(keep, ids[i])
	}
	res, err := s.IDs.BulkUpsert(ctx, keep)
	if err != nil {
		return models.BulkResult{}, err
	}
	logging.Info().
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("skipped", len(ids)-len(keep)).
		Msg("match ids upserted")
	return res, nil
}

// ---- match telemetry ----

func (s *MatchService) ListMatchData(ctx context.Context, f models.MatchDataFilter, req models.PageRequest) (models.Page[models.MatchData], error) {
	if err := req.Validate(); err != nil {
		return models.Page[models.MatchData]{}, err
	}
	return s.Data.List(ctx, f, req)
}

func (s *MatchService) GetMatchData(ctx context.Context, matchID string) (*models.MatchData, error) {
	return s.Data.Find(ctx, matchID)
}

// CreateMatchData requires metadata.matchId and never overwrites an existing match.
func (s *MatchService) CreateMatchData(ctx context.Context, m *models.MatchData) error {
	if strings.TrimSpace(m.Key()) == "" {
		return models.Invalidf("metadata.matchId is required")
	}
	if err := s.Data.Create(ctx, m); err != nil {
		return fmt.Errorf("create match data %s: %w", m.Key(), err)
	}
	return nil
}

func (s *MatchService) DeleteMatchData(ctx context.Context, matchID string) error {
	existed, err := s.Data.Delete(ctx, matchID)
	if err != nil {
		return fmt.Errorf("delete match data %s: %w", matchID, err)
	}
	if !existed {
		return models.ErrNotFound
	}
	return nil
}

// BulkUpsertMatchData skips documents without metadata.matchId; they are not counted.
func (s *MatchService) BulkUpsertMatchData(ctx context.Context, matches []models.MatchData) (models.BulkResult, error) {
	keep := make([]models.MatchData, 0, len(matches))
	for i := range matches {
		if strings.TrimSpace(matches[i].Key()) != "" {
			keep = append(keep, matches[i])
		}
	}
	res, err := s.Data.BulkUpsert(ctx, keep)
	if err != nil {
		return models.BulkResult{}, err
	}
	logging.Info().
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("skipped", len(matches)-len(keep)).
		Msg("match data upserted")
	return res, nil
}

// MatchPlayers returns the player records of a match's participants in
// participant order. Participants without a player record are left out.
func (s *MatchService) MatchPlayers(ctx context.Context, matchID string) ([]models.Player, error) {
	m, err := s.Data.Find(ctx, matchID)
	if err != nil {
		return nil, err
	}
	puuids := m.Participants()
	found, err := s.Players.FindMany(ctx, puuids)
	if err != nil {
		return nil, fmt.Errorf("participants of %s: %w", matchID, err)
	}

	byPuuid := make(map[string]models.Player, len(found))
	for _, p := range found {
		byPuuid[p.Puuid] = p
	}
	out := make([]models.Player, 0, len(found))
	for _, puuid := range puuids {
		if p, ok := byPuuid[puuid]; ok {
			out = append(out, p)
			delete(byPuuid, puuid)
		}
	}
	return out, nil
}

func (s *MatchService) MatchesByParticipant(ctx context.Context, puuid string, req models.PageRequest) (models.Page[models.MatchData], error) {
	if err := req.Validate(); err != nil {
		return models.Page[models.MatchData]{}, err
	}
	return s.Data.ByParticipant(ctx, puuid, req)
}

func (s *MatchService) CountByParticipant(ctx context.Context, puuid string) (int64, error) {
	return s.Data.CountByParticipant(ctx, puuid)
}

// DeleteEverywhere removes the match from match_ids and match_data. It
// reports whether either collection held it; both are empty afterwards.
func (s *MatchService) DeleteEverywhere(ctx context.Context, matchID string) (bool, error) {
	idExisted, err := s.IDs.Delete(ctx, matchID)
	if err != nil {
		return false, fmt.Errorf("delete match id %s: %w", matchID, err)
	}
	dataExisted, err := s.Data.Delete(ctx, matchID)
	if err != nil {
		return false, fmt.Errorf("delete match data %s: %w", matchID, err)
	}
	if idExisted || dataExisted {
		logging.Info().
			Str("matchId", matchID).
			Bool("idExisted", idExisted).
			Bool("dataExisted", dataExisted).
			Msg("match deleted")
	}
	return idExisted || dataExisted, nil
}

// ---- aggregates ----

func (s *MatchService) DurationStats(ctx context.Context, f models.StatsFilter) (models.DurationStats, error) {
	return s.Data.DurationStats(ctx, f)
}

// ChampionFrequency clamps limit to [MinLimit, MaxLimit].
func (s *MatchService) ChampionFrequency(ctx context.Context, f models.StatsFilter, limit int) ([]models.ChampionCount, error) {
	out, err := s.Data.ChampionFrequency(ctx, f, ClampLimit(limit))
	if out == nil && err == nil {
		out = []models.ChampionCount{}
	}
	return out, err
}

func (s *MatchService) WinrateByChampion(ctx context.Context, f models.StatsFilter) ([]models.ChampionWinrate, error) {
	out, err := s.Data.WinrateByChampion(ctx, f)
	if out == nil && err == nil {
		out = []models.ChampionWinrate{}
	}
	return out, err
}

func (s *MatchService) PlayerRoles(ctx context.Context, puuid string) (*models.PlayerRoles, error) {
	return s.Data.PlayerRoles(ctx, puuid)
}

func (s *MatchService) ChampionStats(ctx context.Context, champion string) (*models.ChampionStatistics, error) {
	if strings.TrimSpace(champion) == "" {
		return nil, models.Invalidf("champion is required")
	}
	return s.Data.ChampionStats(ctx, champion)
}
