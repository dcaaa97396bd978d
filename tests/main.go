// Seeds the database with providers, listings and blocked time for local
// development and load testing.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"slotwise/config"
	"slotwise/database"
	"slotwise/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DatabaseName)
	listingColl := db.Collection("listings")
	blockedColl := db.Collection("blocked_times")

	// Clear existing seed data.
	if _, err := listingColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear listings collection: %v", err)
	}
	if _, err := blockedColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear blocked_times collection: %v", err)
	}

	// Simulation parameters.
	serviceNames := []string{"Deep Clean", "Haircut", "Massage", "Personal Training", "Piano Lesson"}
	timezones := []string{"UTC", "America/New_York", "Europe/London", "Asia/Kolkata"}
	durations := []int{30, 45, 60, 90}
	providersPerService := 10

	rand.Seed(time.Now().UnixNano())

	var listings []interface{}
	var blocks []interface{}
	now := time.Now().UTC()

	counter := 1
	for _, service := range serviceNames {
		for i := 0; i < providersPerService; i++ {
			providerID := fmt.Sprintf("provider-%03d", counter)
			userID := fmt.Sprintf("user-%03d", counter)
			tz := timezones[rand.Intn(len(timezones))]

			startMinute := (8 + rand.Intn(3)) * 60  // opens 08:00-10:00
			endMinute := (16 + rand.Intn(5)) * 60   // closes 16:00-20:00

			listing := models.Listing{
				ID:              uuid.New().String(),
				ProviderID:      providerID,
				UserID:          userID,
				ServiceName:     service,
				DurationMinutes: durations[rand.Intn(len(durations))],
				Price:           20 + float64(rand.Intn(150)),
				Currency:        "USD",
				Timezone:        tz,
				WorkingHours: &models.WorkingHours{
					StartMinute: startMinute,
					EndMinute:   endMinute,
				},
				CreatedAt: now,
			}
			listings = append(listings, listing)

			// Roughly a third of providers get a lunch break block tomorrow.
			if rand.Intn(3) == 0 {
				loc, _ := time.LoadLocation(tz)
				tomorrow := now.In(loc).AddDate(0, 0, 1)
				lunchStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 12, 0, 0, 0, loc)
				blocks = append(blocks, models.BlockedTime{
					ID:         uuid.New().String(),
					ProviderID: providerID,
					Title:      "Lunch",
					BlockType:  models.BlockBreak,
					Interval: models.TimeInterval{
						Start:    lunchStart,
						End:      lunchStart.Add(time.Hour),
						Timezone: tz,
					},
					CreatedAt: now,
				})
			}
			counter++
		}
	}

	// A shared yearly holiday block for the first provider of each service.
	for i := 0; i < len(serviceNames); i++ {
		providerID := fmt.Sprintf("provider-%03d", i*providersPerService+1)
		blocks = append(blocks, models.BlockedTime{
			ID:         uuid.New().String(),
			ProviderID: providerID,
			Title:      "Christmas Day",
			BlockType:  models.BlockHoliday,
			IsAllDay:   true,
			Interval: models.TimeInterval{
				Start:    time.Date(now.Year(), 12, 25, 0, 0, 0, 0, time.UTC),
				End:      time.Date(now.Year(), 12, 26, 0, 0, 0, 0, time.UTC),
				Timezone: "UTC",
			},
			RecurringYearly: true,
			CreatedAt:       now,
		})
	}

	if _, err := listingColl.InsertMany(ctx, listings); err != nil {
		log.Fatalf("Failed to insert listings: %v", err)
	}
	if _, err := blockedColl.InsertMany(ctx, blocks); err != nil {
		log.Fatalf("Failed to insert blocked times: %v", err)
	}

	log.Printf("Seeded %d listings and %d blocked times", len(listings), len(blocks))
}
