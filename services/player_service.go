package services

import (
	"context"
	"fmt"
	"strings"

	"riot-stats-api/logging"
	"riot-stats-api/models"
)

type PlayerService struct {
	Players   PlayerStore
	MatchData MatchDataStore
}

func NewPlayerService(players PlayerStore, matches MatchDataStore) *PlayerService {
	return &PlayerService{Players: players, MatchData: matches}
}

func validatePlayer(p *models.Player) error {
	if strings.TrimSpace(p.Puuid) == "" {
		return models.Invalidf("puuid is required")
	}
	if p.Tier != "" && !p.Tier.Valid() {
		return models.Invalidf("unknown tier %q", p.Tier)
	}
	if p.Rank != "" && !p.Rank.Valid() {
		return models.Invalidf("unknown rank %q", p.Rank)
	}
	if p.LeaguePoints < 0 || p.Wins < 0 || p.Losses < 0 {
		return models.Invalidf("leaguePoints, wins and losses must not be negative")
	}
	return nil
}

func (s *PlayerService) Search(ctx context.Context, f models.PlayerFilter, req models.PageRequest) (models.Page[models.Player], error) {
	if err := req.Validate(); err != nil {
		return models.Page[models.Player]{}, err
	}
	if f.MinLP != nil && f.MaxLP != nil && *f.MinLP > *f.MaxLP {
		return models.Page[models.Player]{}, models.Invalidf("minLp must not exceed maxLp")
	}
	return s.Players.Search(ctx, f, req)
}

func (s *PlayerService) Count(ctx context.Context, f models.PlayerFilter) (int64, error) {
	return s.Players.Count(ctx, f)
}

func (s *PlayerService) Get(ctx context.Context, puuid string) (*models.Player, error) {
	return s.Players.Find(ctx, puuid)
}

func (s *PlayerService) Create(ctx context.Context, p *models.Player) error {
	if err := validatePlayer(p); err != nil {
		return err
	}
	if err := s.Players.Create(ctx, p); err != nil {
		return fmt.Errorf("create player %s: %w", p.Puuid, err)
	}
	return nil
}

// BulkUpsert skips entries without a puuid; they are not counted.
func (s *PlayerService) BulkUpsert(ctx context.Context, players []models.Player) (models.BulkResult, error) {
	keep := make([]models.Player, 0, len(players))
	for i := range players {
		if strings.TrimSpace(players[i].Puuid) == "" {
			continue
		}
		if err := validatePlayer(&players[i]); err != nil {
			return models.BulkResult{}, err
		}
		keep = append(keep, players[i])
	}
	res, err := s.Players.BulkUpsert(ctx, keep)
	if err != nil {
		return models.BulkResult{}, err
	}
	logging.Info().
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("skipped", len(players)-len(keep)).
		Msg("players upserted")
	return res, nil
}

// Replace overwrites the stored player; the path puuid wins over the body.
func (s *PlayerService) Replace(ctx context.Context, puuid string, p *models.Player) error {
	p.Puuid = puuid
	if err := validatePlayer(p); err != nil {
		return err
	}
	if err := s.Players.Replace(ctx, p); err != nil {
		return fmt.Errorf("replace player %s: %w", puuid, err)
	}
	return nil
}

func (s *PlayerService) Patch(ctx context.Context, puuid string, p models.PlayerPatch) (*models.Player, error) {
	for _, n := range []*int{p.LeaguePoints, p.Wins, p.Losses} {
		if n != nil && *n < 0 {
			return nil, models.Invalidf("leaguePoints, wins and losses must not be negative")
		}
	}
	return s.Players.Patch(ctx, puuid, p)
}

func (s *PlayerService) Delete(ctx context.Context, puuid string) error {
	existed, err := s.Players.Delete(ctx, puuid)
	if err != nil {
		return fmt.Errorf("delete player %s: %w", puuid, err)
	}
	if !existed {
		return models.ErrNotFound
	}
	return nil
}

// Leaderboard orders players by field descending. An empty field means
// leaguePoints; limit is clamped to [MinLimit, MaxLimit].
func (s *PlayerService) Leaderboard(ctx context.Context, field string, limit int) ([]models.Player, error) {
	if field == "" {
		field = "leaguePoints"
	}
	if !models.LeaderboardFields[field] {
		return nil, models.Invalidf("cannot rank players by %q", field)
	}
	out, err := s.Players.Leaderboard(ctx, field, ClampLimit(limit))
	if out == nil && err == nil {
		out = []models.Player{}
	}
	return out, err
}

func (s *PlayerService) Winrate(ctx context.Context, puuid string) (models.PlayerWinrate, error) {
	p, err := s.Players.Find(ctx, puuid)
	if err != nil {
		return models.PlayerWinrate{}, err
	}
	return p.Winrate(), nil
}

// Matches pages through the telemetry of every match the player took part in.
func (s *PlayerService) Matches(ctx context.Context, puuid string, req models.PageRequest) (models.Page[models.MatchData], error) {
	if err := req.Validate(); err != nil {
		return models.Page[models.MatchData]{}, err
	}
	return s.MatchData.ByParticipant(ctx, puuid, req)
}
