package calendarConnRepo

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

// MongoCalendarConnRepo implements Repository on MongoDB.
type MongoCalendarConnRepo struct {
	coll *mongo.Collection
}

func NewMongoCalendarConnRepo(db *mongo.Database) *MongoCalendarConnRepo {
	return &MongoCalendarConnRepo{coll: db.Collection("calendar_connections")}
}

func (r *MongoCalendarConnRepo) Create(ctx context.Context, conn *models.CalendarConnection) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, conn); err != nil {
		return fmt.Errorf("insert calendar connection: %w", err)
	}
	return nil
}

func (r *MongoCalendarConnRepo) GetByID(ctx context.Context, id string) (*models.CalendarConnection, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var conn models.CalendarConnection
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find calendar connection: %w", err)
	}
	return &conn, nil
}

func (r *MongoCalendarConnRepo) QueryByUser(ctx context.Context, userID string) ([]models.CalendarConnection, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("query calendar connections: %w", err)
	}
	defer cursor.Close(ctx)

	var conns []models.CalendarConnection
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, fmt.Errorf("decode calendar connections: %w", err)
	}
	return conns, nil
}

func (r *MongoCalendarConnRepo) GetPrimary(ctx context.Context, userID string) (*models.CalendarConnection, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var conn models.CalendarConnection
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "is_primary": true}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find primary calendar connection: %w", err)
	}
	return &conn, nil
}

func (r *MongoCalendarConnRepo) UpdateCredentials(ctx context.Context, id, credentials string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"credentials": credentials}},
	)
	if err != nil {
		return fmt.Errorf("update calendar credentials: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCalendarConnRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete calendar connection: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the user lookup indexes. The partial unique index
// keeps at most one primary connection per user.
func (r *MongoCalendarConnRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_idx"),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_primary", Value: 1}},
			Options: options.Index().
				SetName("unique_primary_per_user").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_primary": true}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("create calendar connection indexes: %w", err)
	}
	return nil
}
