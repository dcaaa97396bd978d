package calendarsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	calendarConnRepo "slotwise/database/repository/calendarconn"
	"slotwise/models"
)

// fakeConnRepo serves a single optional primary connection.
type fakeConnRepo struct {
	primary *models.CalendarConnection
}

func (f *fakeConnRepo) Create(context.Context, *models.CalendarConnection) error { return nil }

func (f *fakeConnRepo) GetByID(context.Context, string) (*models.CalendarConnection, error) {
	return nil, calendarConnRepo.ErrNotFound
}

func (f *fakeConnRepo) QueryByUser(context.Context, string) ([]models.CalendarConnection, error) {
	return nil, nil
}

func (f *fakeConnRepo) GetPrimary(context.Context, string) (*models.CalendarConnection, error) {
	if f.primary == nil {
		return nil, calendarConnRepo.ErrNotFound
	}
	return f.primary, nil
}

func (f *fakeConnRepo) UpdateCredentials(context.Context, string, string) error { return nil }
func (f *fakeConnRepo) Delete(context.Context, string) error                    { return nil }

func testBookingForWriteback() models.Booking {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return models.Booking{
		ID:          "booking-1",
		ServiceName: "Deep Clean",
		Interval:    models.TimeInterval{Start: start, End: start.Add(time.Hour), Timezone: "UTC"},
	}
}

func TestPushBookingNoPrimaryConnectionIsNoop(t *testing.T) {
	w := &GoogleWriteback{
		Connections: &fakeConnRepo{},
		Logger:      zap.NewNop(),
	}

	err := w.PushBooking(context.Background(), "user-1", testBookingForWriteback())
	require.NoError(t, err)
}

func TestPushBookingSkipsNonGoogleAndDisabledConnections(t *testing.T) {
	cases := []models.CalendarConnection{
		{ID: "conn-1", UserID: "user-1", Provider: models.CalendarOutlook, IsPrimary: true, SyncEnabled: true},
		{ID: "conn-2", UserID: "user-1", Provider: models.CalendarGoogle, IsPrimary: true, SyncEnabled: false},
	}
	for _, conn := range cases {
		w := &GoogleWriteback{
			Connections: &fakeConnRepo{primary: &conn},
			Logger:      zap.NewNop(),
		}
		err := w.PushBooking(context.Background(), "user-1", testBookingForWriteback())
		require.NoError(t, err)
	}
}

func TestSyncErrorDistinguishesReadAndWriteOps(t *testing.T) {
	cause := errors.New("boom")
	fetch := &SyncError{ConnectionID: "conn-1", Op: "fetch", Err: cause}
	writeback := &SyncError{ConnectionID: "conn-1", Op: "writeback", Err: cause}

	assert.Contains(t, fetch.Error(), "fetch")
	assert.Contains(t, writeback.Error(), "writeback")
	assert.NotEqual(t, fetch.Error(), writeback.Error())
	assert.ErrorIs(t, writeback, cause)
}
