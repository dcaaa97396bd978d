//go:build integration

// Exercises MongoBookingRepo against a real mongod replica set. Transactions
// need a replica set, so these tests skip unless MONGO_TEST_URI is set, e.g.
//
//	MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0 \
//	  go test -tags integration ./database/repository/booking/
package bookingRepo

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotwise/models"
)

func testRepo(t *testing.T) *MongoBookingRepo {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))
	t.Cleanup(func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = client.Disconnect(shutCtx)
	})

	return NewMongoBookingRepo(client.Database("slotwise_test"))
}

func testBooking(providerID string, start, end time.Time) *models.Booking {
	return &models.Booking{
		ID:         uuid.New().String(),
		ListingID:  "listing-it",
		ProviderID: providerID,
		CustomerID: "customer-it",
		Interval: models.TimeInterval{
			Start:    start,
			End:      end,
			Timezone: "UTC",
		},
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Status:          models.BookingPending,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestCreateRejectsOverlapSequential(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	providerID := "provider-" + uuid.New().String()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testBooking(providerID, start, start.Add(time.Hour))))

	err := repo.Create(ctx, testBooking(providerID, start.Add(30*time.Minute), start.Add(90*time.Minute)))
	require.ErrorIs(t, err, ErrConflict)

	// Adjacent interval shares no instant and must be accepted.
	require.NoError(t, repo.Create(ctx, testBooking(providerID, start.Add(time.Hour), start.Add(2*time.Hour))))
}

// Two creates each insert a distinct document, so snapshot isolation alone
// would let both commit. The per-provider lock document forces them to
// collide; exactly one insert may win.
func TestCreateConcurrentConflictingExactlyOneWins(t *testing.T) {
	repo := testRepo(t)
	providerID := "provider-" + uuid.New().String()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(context.Background(), testBooking(providerID, start, start.Add(time.Hour)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, ErrConflict), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	window := models.TimeInterval{Start: start.Add(-time.Hour), End: start.Add(2 * time.Hour), Timezone: "UTC"}
	stored, err := repo.Query(context.Background(), providerID, window, models.ActiveBookingStatuses)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateConcurrentDisjointAllSucceed(t *testing.T) {
	repo := testRepo(t)
	providerID := "provider-" + uuid.New().String()
	day := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	const slots = 4
	var wg sync.WaitGroup
	errs := make([]error, slots)
	for i := 0; i < slots; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := day.Add(time.Duration(i) * time.Hour)
			errs[i] = repo.Create(context.Background(), testBooking(providerID, start, start.Add(time.Hour)))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
