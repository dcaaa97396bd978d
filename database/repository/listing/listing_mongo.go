package listingRepo

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

// MongoListingRepo implements Repository on MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

func NewMongoListingRepo(db *mongo.Database) *MongoListingRepo {
	return &MongoListingRepo{coll: db.Collection("listings")}
}

func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var listing models.Listing
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return &listing, nil
}

func (r *MongoListingRepo) QueryByProvider(ctx context.Context, providerID string) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}

// EnsureIndexes creates the listing lookup indexes.
func (r *MongoListingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetName("provider_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("create listing indexes: %w", err)
	}
	return nil
}
