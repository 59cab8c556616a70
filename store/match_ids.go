package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"riot-stats-api/models"
)

// matchId is stored as the document _id.
var matchIDRename = map[string]string{"matchId": "_id"}

type MatchIDStore struct {
	coll *mongo.Collection
}

func NewMatchIDStore(db *mongo.Database) *MatchIDStore {
	return &MatchIDStore{coll: db.Collection(MatchIDsCollection)}
}

func byMatchID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (s *MatchIDStore) Find(ctx context.Context, id string) (*models.MatchID, error) {
	return findOne[models.MatchID](ctx, s.coll, byMatchID(id))
}

func (s *MatchIDStore) List(ctx context.Context, f models.MatchIDFilter, req models.PageRequest) (models.Page[models.MatchID], error) {
	return findPage[models.MatchID](ctx, s.coll, matchIDFilter(f), req, matchIDRename)
}

func (s *MatchIDStore) Count(ctx context.Context, f models.MatchIDFilter) (int64, error) {
	return count(ctx, s.coll, matchIDFilter(f))
}

// DistinctTiers returns every tier present in the collection, in ladder order.
func (s *MatchIDStore) DistinctTiers(ctx context.Context) ([]models.Tier, error) {
	values, err := s.distinct(ctx, "tier")
	if err != nil {
		return nil, err
	}
	tiers := make([]models.Tier, 0, len(values))
	for _, v := range values {
		tiers = append(tiers, models.Tier(v))
	}
	sortByOrder(tiers, models.TierOrder)
	return tiers, nil
}

// DistinctRanks returns every rank present in the collection, from IV to I.
func (s *MatchIDStore) DistinctRanks(ctx context.Context) ([]models.Rank, error) {
	values, err := s.distinct(ctx, "rank")
	if err != nil {
		return nil, err
	}
	ranks := make([]models.Rank, 0, len(values))
	for _, v := range values {
		ranks = append(ranks, models.Rank(v))
	}
	sortByOrder(ranks, models.RankOrder)
	return ranks, nil
}

func (s *MatchIDStore) distinct(ctx context.Context, field string) ([]string, error) {
	start := time.Now()
	raw, err := s.coll.Distinct(ctx, field, bson.D{})
	if err = observe(s.coll.Name(), "distinct", start, err); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

func (s *MatchIDStore) Create(ctx context.Context, m *models.MatchID) error {
	return insertOne(ctx, s.coll, m)
}

func (s *MatchIDStore) Replace(ctx context.Context, m *models.MatchID) error {
	return replaceOne(ctx, s.coll, byMatchID(m.MatchID), m)
}

func (s *MatchIDStore) Patch(ctx context.Context, id string, p models.MatchIDPatch) (*models.MatchID, error) {
	return patchOne[models.MatchID](ctx, s.coll, byMatchID(id), matchIDSet(p))
}

func (s *MatchIDStore) Delete(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, s.coll, byMatchID(id))
}

func (s *MatchIDStore) BulkUpsert(ctx context.Context, ids []models.MatchID) (models.BulkResult, error) {
	writes := make([]mongo.WriteModel, 0, len(ids))
	for i := range ids {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(byMatchID(ids[i].MatchID)).
			SetReplacement(ids[i]).
			SetUpsert(true))
	}
	res, err := bulkUpsert(ctx, s.coll, writes)
	if err != nil {
		return res, fmt.Errorf("bulk upsert of %d match ids: %w", len(ids), err)
	}
	return res, nil
}
