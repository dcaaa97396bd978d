package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotwise/models"
)

const queryTimeout = 5 * time.Second

// MongoBlockedRepo implements Repository on MongoDB.
type MongoBlockedRepo struct {
	coll *mongo.Collection
}

func NewMongoBlockedRepo(db *mongo.Database) *MongoBlockedRepo {
	return &MongoBlockedRepo{coll: db.Collection("blocked_times")}
}

func (r *MongoBlockedRepo) Create(ctx context.Context, block *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("insert blocked time: %w", err)
	}
	return nil
}

func (r *MongoBlockedRepo) GetByID(ctx context.Context, id string) (*models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var block models.BlockedTime
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&block)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find blocked time: %w", err)
	}
	return &block, nil
}

// Query returns blocks overlapping the window plus all yearly-recurring
// blocks of the provider; the caller projects the recurring ones onto the
// window. Blocks without a listing id apply to every listing.
func (r *MongoBlockedRepo) Query(ctx context.Context, providerID, listingID string, window models.TimeInterval) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"$or": bson.A{
			bson.M{"recurring_yearly": true},
			bson.M{
				"interval.start": bson.M{"$lt": window.End},
				"interval.end":   bson.M{"$gt": window.Start},
			},
		},
	}
	if listingID != "" {
		filter["listing_id"] = bson.M{"$in": bson.A{"", listingID}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "interval.start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query blocked times: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedTime
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("decode blocked times: %w", err)
	}
	return blocks, nil
}

func (r *MongoBlockedRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete blocked time: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the provider window query.
func (r *MongoBlockedRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "recurring_yearly", Value: 1},
				{Key: "interval.start", Value: 1},
			},
			Options: options.Index().SetName("provider_recurring_start_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("create blocked time indexes: %w", err)
	}
	return nil
}
