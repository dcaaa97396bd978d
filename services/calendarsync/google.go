package calendarsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	calendarConnRepo "slotwise/database/repository/calendarconn"
	"slotwise/models"
)

// GoogleAdapter fetches busy intervals from Google Calendar over the user's
// stored OAuth connections. Tokens are refreshed transparently through the
// oauth2 token source; a refreshed token is written back to the connection
// record so the next fetch starts warm.
type GoogleAdapter struct {
	Connections calendarConnRepo.Repository
	OAuth       *oauth2.Config
	Logger      *zap.Logger
}

func (g *GoogleAdapter) Name() models.CalendarProviderKind { return models.CalendarGoogle }

func (g *GoogleAdapter) ListConnections(ctx context.Context, userID string) ([]models.CalendarConnection, error) {
	conns, err := g.Connections.QueryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query calendar connections: %w", err)
	}
	var out []models.CalendarConnection
	for _, c := range conns {
		if c.Provider == models.CalendarGoogle {
			out = append(out, c)
		}
	}
	return out, nil
}

func (g *GoogleAdapter) FetchBusyIntervals(ctx context.Context, conn models.CalendarConnection, window models.TimeInterval) ([]models.ExternalBusyInterval, error) {
	svc, err := g.service(ctx, conn)
	if err != nil {
		return nil, &SyncError{ConnectionID: conn.ID, Op: "refresh", Err: err}
	}

	calendarID := conn.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	call := svc.Events.List(calendarID).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	var busy []models.ExternalBusyInterval
	if err := call.Pages(ctx, func(events *calendar.Events) error {
		for _, ev := range events.Items {
			if ev.Status == "cancelled" || ev.Transparency == "transparent" {
				continue
			}
			iv, ok := eventInterval(ev, window.Timezone)
			if !ok {
				continue
			}
			busy = append(busy, models.ExternalBusyInterval{
				ConnectionID: conn.ID,
				Summary:      ev.Summary,
				Interval:     iv,
			})
		}
		return nil
	}); err != nil {
		return nil, &SyncError{ConnectionID: conn.ID, Op: "fetch", Err: err}
	}
	return busy, nil
}

// service builds a calendar client for the connection, persisting the token
// if the source refreshed it.
func (g *GoogleAdapter) service(ctx context.Context, conn models.CalendarConnection) (*calendar.Service, error) {
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(conn.Credentials), &tok); err != nil {
		return nil, fmt.Errorf("decode stored token: %w", err)
	}

	source := g.OAuth.TokenSource(ctx, &tok)
	fresh, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if fresh.AccessToken != tok.AccessToken {
		if data, err := json.Marshal(fresh); err == nil {
			if err := g.Connections.UpdateCredentials(ctx, conn.ID, string(data)); err != nil {
				g.Logger.Warn("failed to persist refreshed token",
					zap.String("connectionID", conn.ID), zap.Error(err))
			}
		}
	}

	return calendar.NewService(ctx, option.WithTokenSource(source))
}

// eventInterval converts a calendar event to a half-open interval. All-day
// events carry date-only boundaries interpreted in the window's timezone.
func eventInterval(ev *calendar.Event, tz string) (models.TimeInterval, bool) {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	parse := func(dt *calendar.EventDateTime) (time.Time, bool) {
		if dt == nil {
			return time.Time{}, false
		}
		if dt.DateTime != "" {
			t, err := time.Parse(time.RFC3339, dt.DateTime)
			return t, err == nil
		}
		if dt.Date != "" {
			t, err := time.ParseInLocation("2006-01-02", dt.Date, loc)
			return t, err == nil
		}
		return time.Time{}, false
	}

	start, ok := parse(ev.Start)
	if !ok {
		return models.TimeInterval{}, false
	}
	end, ok := parse(ev.End)
	if !ok || !start.Before(end) {
		return models.TimeInterval{}, false
	}
	return models.TimeInterval{Start: start, End: end, Timezone: tz}, true
}
