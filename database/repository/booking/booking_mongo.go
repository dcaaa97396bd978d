package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"slotwise/models"
)

const queryTimeout = 5 * time.Second

// MongoBookingRepo implements Repository on MongoDB.
type MongoBookingRepo struct {
	coll  *mongo.Collection
	locks *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		coll:  db.Collection("bookings"),
		locks: db.Collection("booking_locks"),
	}
}

func activeStatusFilter(statuses []models.BookingStatus) bson.A {
	out := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// overlapFilter matches active bookings of the provider whose half-open
// interval overlaps [start, end).
func overlapFilter(providerID string, start, end time.Time) bson.M {
	return bson.M{
		"provider_id":    providerID,
		"status":         bson.M{"$in": activeStatusFilter(models.ActiveBookingStatuses)},
		"interval.start": bson.M{"$lt": end},
		"interval.end":   bson.M{"$gt": start},
	}
}

// Create inserts the booking inside a transaction that first re-checks for
// overlapping active bookings. Snapshot isolation alone does not close the
// check-then-insert race: two concurrent creates each insert a fresh
// document and never touch one another's writes, so both counts see zero
// and both commit. The transaction therefore also touches an advisory lock
// document keyed per provider; concurrent creates for the same provider
// write the same document, mongo raises a write conflict for the loser,
// WithTransaction retries it, and the retried overlap check sees the
// winner's committed booking.
func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := r.locks.UpdateOne(sc,
			bson.M{"_id": "provider:" + b.ProviderID},
			bson.M{"$set": bson.M{"touched_at": time.Now().UTC()}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, fmt.Errorf("acquire provider booking lock: %w", err)
		}
		count, err := r.coll.CountDocuments(sc, overlapFilter(b.ProviderID, b.Interval.Start, b.Interval.End))
		if err != nil {
			return nil, fmt.Errorf("overlap check: %w", err)
		}
		if count > 0 {
			return nil, ErrConflict
		}
		if _, err := r.coll.InsertOne(sc, b); err != nil {
			return nil, fmt.Errorf("insert booking: %w", err)
		}
		return nil, nil
	}, txnOpts)
	return err
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) Query(ctx context.Context, providerID string, window models.TimeInterval, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id":    providerID,
		"interval.start": bson.M{"$lt": window.End},
		"interval.end":   bson.M{"$gt": window.Start},
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": activeStatusFilter(statuses)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "interval.start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// stampField maps a target status to the lifecycle timestamp it records.
// no_show records no timestamp.
func stampField(to models.BookingStatus) string {
	switch to {
	case models.BookingConfirmed:
		return "confirmed_at"
	case models.BookingCompleted:
		return "completed_at"
	case models.BookingCancelled:
		return "cancelled_at"
	}
	return ""
}

// UpdateStatus performs the transition as a single guarded write: the filter
// requires the expected current status, so a concurrent transition makes the
// update match nothing and nothing is written.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time, providerNotes string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{"status": string(to)}
	if field := stampField(to); field != "" {
		set[field] = at
	}
	if providerNotes != "" {
		set["provider_notes"] = providerNotes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": string(from)},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing booking from a concurrent status change.
		if _, getErr := r.GetByID(ctx, id); getErr == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, ErrStatusMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return &updated, nil
}
