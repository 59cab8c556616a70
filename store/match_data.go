package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"riot-stats-api/models"
)

type MatchDataStore struct {
	coll *mongo.Collection
}

func NewMatchDataStore(db *mongo.Database) *MatchDataStore {
	return &MatchDataStore{coll: db.Collection(MatchDataCollection)}
}

func byDataMatchID(id string) bson.D {
	return bson.D{{Key: "metadata.matchId", Value: id}}
}

func byParticipant(puuid string) bson.D {
	return bson.D{{Key: "info.participants.puuid", Value: puuid}}
}

func (s *MatchDataStore) Find(ctx context.Context, matchID string) (*models.MatchData, error) {
	return findOne[models.MatchData](ctx, s.coll, byDataMatchID(matchID))
}

func (s *MatchDataStore) List(ctx context.Context, f models.MatchDataFilter, req models.PageRequest) (models.Page[models.MatchData], error) {
	return findPage[models.MatchData](ctx, s.coll, matchDataFilter(f), req, nil)
}

func (s *MatchDataStore) ByParticipant(ctx context.Context, puuid string, req models.PageRequest) (models.Page[models.MatchData], error) {
	return findPage[models.MatchData](ctx, s.coll, byParticipant(puuid), req, nil)
}

func (s *MatchDataStore) CountByParticipant(ctx context.Context, puuid string) (int64, error) {
	return count(ctx, s.coll, byParticipant(puuid))
}

func (s *MatchDataStore) Create(ctx context.Context, m *models.MatchData) error {
	return insertOne(ctx, s.coll, m)
}

func (s *MatchDataStore) Delete(ctx context.Context, matchID string) (bool, error) {
	return deleteOne(ctx, s.coll, byDataMatchID(matchID))
}

// BulkUpsert replaces documents by metadata.matchId. Callers drop documents
// without a key beforehand.
func (s *MatchDataStore) BulkUpsert(ctx context.Context, matches []models.MatchData) (models.BulkResult, error) {
	writes := make([]mongo.WriteModel, 0, len(matches))
	for i := range matches {
		m := matches[i]
		m.ID = primitive.NilObjectID
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(byDataMatchID(m.Key())).
			SetReplacement(m).
			SetUpsert(true))
	}
	res, err := bulkUpsert(ctx, s.coll, writes)
	if err != nil {
		return res, fmt.Errorf("bulk upsert of %d matches: %w", len(matches), err)
	}
	return res, nil
}

// DurationStats returns zeros when no match passes the filter.
func (s *MatchDataStore) DurationStats(ctx context.Context, f models.StatsFilter) (models.DurationStats, error) {
	out, err := aggregate[models.DurationStats](ctx, s.coll, "duration_stats", durationPipeline(f))
	if err != nil || len(out) == 0 {
		return models.DurationStats{}, err
	}
	return out[0], nil
}

func (s *MatchDataStore) ChampionFrequency(ctx context.Context, f models.StatsFilter, limit int) ([]models.ChampionCount, error) {
	return aggregate[models.ChampionCount](ctx, s.coll, "champion_frequency", championFrequencyPipeline(f, limit))
}

func (s *MatchDataStore) WinrateByChampion(ctx context.Context, f models.StatsFilter) ([]models.ChampionWinrate, error) {
	return aggregate[models.ChampionWinrate](ctx, s.coll, "winrate_by_champion", winrateByChampionPipeline(f))
}

// PlayerRoles returns ErrNotFound when the player has no valid participation.
func (s *MatchDataStore) PlayerRoles(ctx context.Context, puuid string) (*models.PlayerRoles, error) {
	out, err := aggregate[models.PlayerRoles](ctx, s.coll, "player_roles", playerRolesPipeline(puuid))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, models.ErrNotFound
	}
	return &out[0], nil
}

// ChampionStats returns ErrNotFound when the champion has no valid-role pick.
func (s *MatchDataStore) ChampionStats(ctx context.Context, champion string) (*models.ChampionStatistics, error) {
	out, err := aggregate[models.ChampionStatistics](ctx, s.coll, "champion_stats", championStatsPipeline(champion))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, models.ErrNotFound
	}
	return &out[0], nil
}
