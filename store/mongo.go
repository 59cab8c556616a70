// Package store is the query and aggregation layer over the MongoDB
// collections of the stats database.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"riot-stats-api/metrics"
	"riot-stats-api/models"
)

const (
	MatchIDsCollection  = "match_ids"
	PlayersCollection   = "players"
	MatchDataCollection = "match_data"
)

// Collections lists every collection the API owns.
var Collections = []string{MatchIDsCollection, PlayersCollection, MatchDataCollection}

// Connect opens a client, pings the primary and returns the named database.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client.Database(database), nil
}

// EnsureIndexes creates the unique natural-key indexes and the query indexes
// used by filters and aggregations. Existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		MatchIDsCollection: {
			{Keys: bson.D{{Key: "tier", Value: 1}, {Key: "rank", Value: 1}}, Options: options.Index().SetName("tier_1_rank_1")},
		},
		PlayersCollection: {
			{Keys: bson.D{{Key: "puuid", Value: 1}}, Options: options.Index().SetName("puuid_unique").SetUnique(true)},
			{Keys: bson.D{{Key: "leaguePoints", Value: -1}}, Options: options.Index().SetName("leaguePoints_-1")},
		},
		MatchDataCollection: {
			{Keys: bson.D{{Key: "metadata.matchId", Value: 1}}, Options: options.Index().SetName("matchId_unique").SetUnique(true)},
			{Keys: bson.D{{Key: "info.participants.puuid", Value: 1}}, Options: options.Index().SetName("participants_puuid_1")},
			{Keys: bson.D{{Key: "info.participants.championName", Value: 1}}, Options: options.Index().SetName("participants_championName_1")},
			{Keys: bson.D{{Key: "info.gameEndTimestamp", Value: -1}}, Options: options.Index().SetName("gameEndTimestamp_-1")},
		},
	}

	for _, name := range Collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Probe reports liveness and collection sizes for the store monitor.
type Probe struct {
	db *mongo.Database
}

func NewProbe(db *mongo.Database) *Probe {
	return &Probe{db: db}
}

// Ping checks the primary is reachable.
func (p *Probe) Ping(ctx context.Context) error {
	start := time.Now()
	err := p.db.Client().Ping(ctx, nil)
	return observe("admin", "ping", start, err)
}

// EstimatedCounts returns the metadata-based document count of every collection.
func (p *Probe) EstimatedCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Collections))
	for _, name := range Collections {
		start := time.Now()
		n, err := p.db.Collection(name).EstimatedDocumentCount(ctx)
		if err = observe(name, "estimated_count", start, err); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}

// observe records the operation and translates the driver error. A lookup
// that matched nothing is not an operation error.
func observe(collection, op string, start time.Time, err error) error {
	failed := err
	if errors.Is(err, mongo.ErrNoDocuments) {
		failed = nil
	}
	metrics.RecordMongo(collection, op, time.Since(start), failed)
	return translateError(err)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", models.ErrConflict, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, topology.ErrServerSelectionTimeout):
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	default:
		return err
	}
}

// sortDoc turns a sort into a Mongo sort document. Fields are renamed through
// rename first (e.g. matchId stored as _id); a secondary _id key keeps paging stable.
func sortDoc(s models.Sort, rename map[string]string) bson.D {
	field := s.Field
	if r, ok := rename[field]; ok {
		field = r
	}
	dir := 1
	if s.Desc {
		dir = -1
	}
	d := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		d = append(d, bson.E{Key: "_id", Value: 1})
	}
	return d
}

func pageOptions(req models.PageRequest, rename map[string]string) *options.FindOptions {
	return options.Find().
		SetSort(sortDoc(req.Sort, rename)).
		SetSkip(req.Skip()).
		SetLimit(int64(req.Size))
}

// findPage runs the count and the paged find for one filter.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, req models.PageRequest, rename map[string]string) (models.Page[T], error) {
	name := coll.Name()

	start := time.Now()
	total, err := coll.CountDocuments(ctx, filter)
	if err = observe(name, "count", start, err); err != nil {
		return models.Page[T]{}, err
	}

	start = time.Now()
	cursor, err := coll.Find(ctx, filter, pageOptions(req, rename))
	if err = observe(name, "find", start, err); err != nil {
		return models.Page[T]{}, err
	}
	var content []T
	if err := cursor.All(ctx, &content); err != nil {
		return models.Page[T]{}, translateError(err)
	}
	return models.NewPage(content, req, total), nil
}

// aggregate runs a pipeline and decodes every result document.
func aggregate[T any](ctx context.Context, coll *mongo.Collection, op string, pipeline mongo.Pipeline) ([]T, error) {
	start := time.Now()
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err = observe(coll.Name(), op, start, err); err != nil {
		return nil, err
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// bulkUpsert replaces-or-inserts every document keyed by its natural key, in order.
func bulkUpsert(ctx context.Context, coll *mongo.Collection, writes []mongo.WriteModel) (models.BulkResult, error) {
	if len(writes) == 0 {
		return models.BulkResult{}, nil
	}
	start := time.Now()
	res, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err = observe(coll.Name(), "bulk_upsert", start, err); err != nil {
		return models.BulkResult{}, err
	}
	return models.BulkResult{
		Inserted: int(res.UpsertedCount),
		Updated:  int(res.MatchedCount),
		Total:    len(writes),
	}, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter bson.D) (bool, error) {
	start := time.Now()
	res, err := coll.DeleteOne(ctx, filter)
	if err = observe(coll.Name(), "delete", start, err); err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.D) (*T, error) {
	var out T
	start := time.Now()
	err := coll.FindOne(ctx, filter).Decode(&out)
	if err = observe(coll.Name(), "find_one", start, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	start := time.Now()
	_, err := coll.InsertOne(ctx, doc)
	return observe(coll.Name(), "insert", start, err)
}

// replaceOne overwrites an existing document; it never inserts.
func replaceOne(ctx context.Context, coll *mongo.Collection, filter bson.D, doc any) error {
	start := time.Now()
	res, err := coll.ReplaceOne(ctx, filter, doc)
	if err = observe(coll.Name(), "replace", start, err); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// patchOne applies $set and returns the updated document. An empty set is a plain lookup.
func patchOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, set bson.D) (*T, error) {
	if len(set) == 0 {
		return findOne[T](ctx, coll, filter)
	}
	var out T
	start := time.Now()
	err := coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err = observe(coll.Name(), "patch", start, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func count(ctx context.Context, coll *mongo.Collection, filter bson.D) (int64, error) {
	start := time.Now()
	n, err := coll.CountDocuments(ctx, filter)
	if err = observe(coll.Name(), "count", start, err); err != nil {
		return 0, err
	}
	return n, nil
}
