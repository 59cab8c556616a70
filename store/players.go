package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"riot-stats-api/models"
)

type PlayerStore struct {
	coll *mongo.Collection
}

func NewPlayerStore(db *mongo.Database) *PlayerStore {
	return &PlayerStore{coll: db.Collection(PlayersCollection)}
}

func byPuuid(puuid string) bson.D {
	return bson.D{{Key: "puuid", Value: puuid}}
}

func (s *PlayerStore) Find(ctx context.Context, puuid string) (*models.Player, error) {
	return findOne[models.Player](ctx, s.coll, byPuuid(puuid))
}

// FindMany returns the players whose puuid is in puuids, in no particular order.
func (s *PlayerStore) FindMany(ctx context.Context, puuids []string) ([]models.Player, error) {
	if len(puuids) == 0 {
		return nil, nil
	}
	start := time.Now()
	cursor, err := s.coll.Find(ctx, bson.D{{Key: "puuid", Value: bson.M{"$in": puuids}}})
	if err = observe(s.coll.Name(), "find_many", start, err); err != nil {
		return nil, err
	}
	var players []models.Player
	if err := cursor.All(ctx, &players); err != nil {
		return nil, translateError(err)
	}
	return players, nil
}

func (s *PlayerStore) Search(ctx context.Context, f models.PlayerFilter, req models.PageRequest) (models.Page[models.Player], error) {
	return findPage[models.Player](ctx, s.coll, playerFilter(f), req, nil)
}

func (s *PlayerStore) Count(ctx context.Context, f models.PlayerFilter) (int64, error) {
	return count(ctx, s.coll, playerFilter(f))
}

// Leaderboard returns the top limit players ordered by field, descending.
func (s *PlayerStore) Leaderboard(ctx context.Context, field string, limit int) ([]models.Player, error) {
	opts := options.Find().
		SetSort(sortDoc(models.Sort{Field: field, Desc: true}, nil)).
		SetLimit(int64(limit))

	start := time.Now()
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err = observe(s.coll.Name(), "leaderboard", start, err); err != nil {
		return nil, err
	}
	var players []models.Player
	if err := cursor.All(ctx, &players); err != nil {
		return nil, translateError(err)
	}
	return players, nil
}

func (s *PlayerStore) Create(ctx context.Context, p *models.Player) error {
	return insertOne(ctx, s.coll, p)
}

func (s *PlayerStore) Replace(ctx context.Context, p *models.Player) error {
	p.ID = primitive.NilObjectID
	return replaceOne(ctx, s.coll, byPuuid(p.Puuid), p)
}

func (s *PlayerStore) Patch(ctx context.Context, puuid string, p models.PlayerPatch) (*models.Player, error) {
	return patchOne[models.Player](ctx, s.coll, byPuuid(puuid), playerSet(p))
}

func (s *PlayerStore) Delete(ctx context.Context, puuid string) (bool, error) {
	return deleteOne(ctx, s.coll, byPuuid(puuid))
}

func (s *PlayerStore) BulkUpsert(ctx context.Context, players []models.Player) (models.BulkResult, error) {
	writes := make([]mongo.WriteModel, 0, len(players))
	for i := range players {
		p := players[i]
		p.ID = primitive.NilObjectID
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(byPuuid(p.Puuid)).
			SetReplacement(p).
			SetUpsert(true))
	}
	res, err := bulkUpsert(ctx, s.coll, writes)
	if err != nil {
		return res, fmt.Errorf("bulk upsert of %d players: %w", len(players), err)
	}
	return res, nil
}
