// Package mongostore is a MongoDB backend for progress.Repo, used when
// several machines share one set of scores.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
)

// Collection names.
const (
	ScoresCollection   = "scores"
	ProgressCollection = "progress"
	AttemptsCollection = "attempts"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "geodrill"

// Store owns the client and the three collections.
type Store struct {
	client   *mongo.Client
	scores   *mongo.Collection
	progress *mongo.Collection
	attempts *mongo.Collection
	now      func() time.Time
}

var _ progress.Repo = (*Store)(nil)

// Connect dials uri, pings the server and ensures indexes exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongostore: empty uri")
	}
	if database == "" {
		database = DefaultDatabase
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		scores:   db.Collection(ScoresCollection),
		progress: db.Collection(ProgressCollection),
		attempts: db.Collection(AttemptsCollection),
		now:      func() time.Time { return time.Now().UTC() },
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := s.scores.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identity", Value: 1}, {Key: "variant", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create score index: %w", err)
	}
	if _, err := s.progress.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identity", Value: 1}, {Key: "variant", Value: 1}, {Key: "item_key", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create progress index: %w", err)
	}
	if _, err := s.attempts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "identity", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create attempt index: %w", err)
	}
	return nil
}

func (s *Store) Score(ctx context.Context, identity string, variant quiz.Variant) (*progress.Score, error) {
	var doc scoreDoc
	err := s.scores.FindOne(ctx, scoreFilter(identity, variant)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find score: %w", err)
	}
	sc := doc.toScore()
	return &sc, nil
}

func (s *Store) UpsertScore(ctx context.Context, identity string, variant quiz.Variant, score, bestStreak int) error {
	_, err := s.scores.UpdateOne(ctx,
		scoreFilter(identity, variant),
		scoreUpdate(score, bestStreak, s.now()),
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (s *Store) UpsertProgress(ctx context.Context, identity string, variant quiz.Variant, itemKey string, correct bool) error {
	_, err := s.progress.UpdateOne(ctx,
		progressFilter(identity, variant, itemKey),
		progressUpdate(correct, s.now()),
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *Store) RecordAttempt(ctx context.Context, rec progress.AttemptRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	if _, err := s.attempts.InsertOne(ctx, newAttemptDoc(rec)); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *Store) Scores(ctx context.Context, identity string) ([]progress.Score, error) {
	cursor, err := s.scores.Find(ctx, bson.M{"identity": identity},
		options.Find().SetSort(bson.D{{Key: "variant", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find scores: %w", err)
	}
	var docs []scoreDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	out := make([]progress.Score, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toScore())
	}
	return out, nil
}

func (s *Store) ItemProgress(ctx context.Context, identity string, variant quiz.Variant) ([]progress.ItemProgress, error) {
	cursor, err := s.progress.Find(ctx, scoreFilter(identity, variant),
		options.Find().SetSort(bson.D{{Key: "item_key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find progress: %w", err)
	}
	var docs []progressDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	out := make([]progress.ItemProgress, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toItemProgress())
	}
	return out, nil
}

func (s *Store) RecentAttempts(ctx context.Context, identity string, limit int) ([]progress.AttemptRecord, error) {
	cursor, err := s.attempts.Find(ctx, bson.M{"identity": identity}, recentOptions(limit))
	if err != nil {
		return nil, fmt.Errorf("find attempts: %w", err)
	}
	var docs []attemptDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode attempts: %w", err)
	}
	out := make([]progress.AttemptRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRecord())
	}
	return out, nil
}

// Reset deletes the identity's documents from every collection. MongoDB
// standalone servers have no transactions, so a failure part way through
// leaves the remaining collections untouched.
func (s *Store) Reset(ctx context.Context, identity string) error {
	filter := bson.M{"identity": identity}
	var errs []error
	for _, c := range []*mongo.Collection{s.scores, s.progress, s.attempts} {
		if _, err := c.DeleteMany(ctx, filter); err != nil {
			errs = append(errs, fmt.Errorf("reset %s: %w", c.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func recentOptions(limit int) *options.FindOptionsBuilder {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}
