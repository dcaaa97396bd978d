package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the overlap check and window
// queries.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Backs the overlap filter used by the transactional insert.
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "interval.start", Value: 1},
				{Key: "interval.end", Value: 1},
			},
			Options: options.Index().SetName("provider_status_interval_idx"),
		},
		{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "interval.start", Value: 1},
			},
			Options: options.Index().SetName("customer_interval_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}
	return nil
}
