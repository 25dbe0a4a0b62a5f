package services

import (
	"context"
	"fmt"
	"time"

	"github.com/checkitsa/app-checkit/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CheckStore persists check history
type CheckStore interface {
	InsertBatch(ctx context.Context, records []models.CheckRecord) (int, error)
	CountSubject(ctx context.Context, kind models.CheckKind, subjectHash string) (int64, error)
	Summary(ctx context.Context, since time.Time) ([]models.CheckSummaryEntry, error)
}

// MongoCheckStore stores check records in a MongoDB collection
type MongoCheckStore struct {
	collection *mongo.Collection
}

// NewMongoCheckStore creates a store backed by collection
func NewMongoCheckStore(collection *mongo.Collection) *MongoCheckStore {
	return &MongoCheckStore{collection: collection}
}

// InsertBatch writes records with an unordered bulk write
func (s *MongoCheckStore) InsertBatch(ctx context.Context, records []models.CheckRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	operations := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(record))
	}

	result, err := s.collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		inserted := 0
		if result != nil {
			inserted = int(result.InsertedCount)
		}
		return inserted, fmt.Errorf("failed to insert check records: %w", err)
	}
	return int(result.InsertedCount), nil
}

// CountSubject counts previous checks of the same subject
func (s *MongoCheckStore) CountSubject(ctx context.Context, kind models.CheckKind, subjectHash string) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{
		"kind":         kind,
		"subject_hash": subjectHash,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count checks: %w", err)
	}
	return count, nil
}

// Summary counts checks per kind since the given time
func (s *MongoCheckStore) Summary(ctx context.Context, since time.Time) ([]models.CheckSummaryEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$kind",
			"total": bson.M{"$sum": 1},
			"valid": bson.M{"$sum": bson.M{"$cond": bson.A{"$valid", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate checks: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.CheckSummaryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode check summary: %w", err)
	}
	for i := range entries {
		entries[i].Invalid = entries[i].Total - entries[i].Valid
	}
	return entries, nil
}
