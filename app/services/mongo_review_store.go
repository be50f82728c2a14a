package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/location-cleaner/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var ErrEntryNotFound = errors.New("unmatched entry not found")

// MongoReviewStore review queue lưu trong MongoDB
type MongoReviewStore struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoReviewStore tạo mới MongoReviewStore và indexes
func NewMongoReviewStore(db *mongo.Database, logger *zap.Logger) (*MongoReviewStore, error) {
	collection := db.Collection("unmatched_locations")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "input", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "status", Value: 1}, bson.E{Key: "last_seen_at", Value: -1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho unmatched_locations", zap.Error(err))
	}

	return &MongoReviewStore{collection: collection, logger: logger}, nil
}

// Record upsert theo input, tăng occurrences
func (s *MongoReviewStore) Record(ctx context.Context, entry *models.UnmatchedEntry) error {
	filter := bson.M{"input": entry.Input}
	update := bson.M{
		"$setOnInsert": bson.M{
			"normalized": entry.Normalized,
			"created_at": entry.CreatedAt,
		},
		"$set": bson.M{
			"reason":          entry.Reason,
			"suggested_code":  entry.SuggestedCode,
			"suggested_score": entry.SuggestedScore,
			"status":          models.ReviewStatusPending,
			"last_seen_at":    entry.LastSeenAt,
		},
		"$unset": bson.M{"resolved_at": ""},
		"$inc":   bson.M{"occurrences": 1},
	}

	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("lỗi upsert unmatched entry: %w", err)
	}
	return nil
}

func (s *MongoReviewStore) List(ctx context.Context, status string, limit int) ([]models.UnmatchedEntry, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{bson.E{Key: "last_seen_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query unmatched entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.UnmatchedEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("lỗi decode unmatched entries: %w", err)
	}
	return entries, nil
}

func (s *MongoReviewStore) Resolve(ctx context.Context, input string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"input": input},
		bson.M{"$set": bson.M{
			"status":      models.ReviewStatusResolved,
			"resolved_at": time.Now(),
		}})
	if err != nil {
		return fmt.Errorf("lỗi resolve unmatched entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *MongoReviewStore) CountPending(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"status": models.ReviewStatusPending})
}

// Close ngắt kết nối client
func (s *MongoReviewStore) Close(ctx context.Context) error {
	return s.collection.Database().Client().Disconnect(ctx)
}
