package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

// ExpirePayload identifies the booking whose confirmation deadline passed.
type ExpirePayload struct {
	BookingID string `json:"bookingId"`
}

func NewExpireTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpirePayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}

	return task, opts, nil
}

// AsynqExpiry enqueues booking expiry tasks on the shared queue.
type AsynqExpiry struct {
	Client *asynq.Client
}

func (s *AsynqExpiry) ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error {
	task, opts, err := NewExpireTask(bookingID, at)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
