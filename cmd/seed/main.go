// Package main provides a tool to seed the database with demo events.
//
// This creates a handful of demo users and upcoming events with tags and
// favorites, to exercise discovery, search, and tag suggestions locally.
//
// Usage:
//
//	DATA_PATH=~/gatherly go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gatherly/gatherly-server/internal/auth"
	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/id"
	"github.com/gatherly/gatherly-server/internal/service"
	"github.com/gatherly/gatherly-server/internal/store/sqlite"
)

var eventCount = flag.Int("events", 12, "Number of demo events to create")

// demoUsers are the accounts created by the seed tool. All use the
// password "demopass123".
var demoUsers = []struct {
	Email       string
	DisplayName string
}{
	{"alex@example.com", "Alex Rivera"},
	{"jordan@example.com", "Jordan Chen"},
	{"sam@example.com", "Sam Taylor"},
}

var demoTitles = []string{
	"Jazz Night at the Blue Note",
	"Sunrise Trail Run",
	"Community Garden Workday",
	"Intro to Pottery",
	"Rooftop Film Screening",
	"Board Game Meetup",
	"Farmers Market Tour",
	"Open Mic Evening",
	"Beginner Salsa Class",
	"Neighborhood Cleanup",
	"Food Truck Festival",
	"Astronomy in the Park",
}

var demoLocations = []string{
	"Riverside Park",
	"The Blue Note",
	"Community Center",
	"Maple Street Studio",
	"Harborview Rooftop",
	"Old Town Square",
}

var demoTags = []string{
	"music", "outdoor", "food", "art", "fitness",
	"community", "workshop", "nightlife", "family",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/gatherly")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data path: %v", err)
	}

	dbPath := filepath.Join(dataPath, "gatherly.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))

	// Create demo users directly through the store; the seed tool has no
	// token service and does not need sessions.
	passwordHash, err := auth.HashPassword("demopass123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var users []*domain.User
	for _, du := range demoUsers {
		if existing, err := s.GetUserByEmail(ctx, du.Email); err == nil {
			fmt.Printf("  User %s already exists, reusing\n", du.Email)
			users = append(users, existing)
			continue
		}

		user := &domain.User{
			ID:           id.MustGenerate("usr"),
			Email:        du.Email,
			PasswordHash: passwordHash,
			DisplayName:  du.DisplayName,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		fmt.Printf("  Created user: %s (%s)\n", du.DisplayName, du.Email)
		users = append(users, user)
	}

	// Events go through the event service so tags are resolved and
	// usage counts maintained the same way the API does it.
	tagService := service.NewTagService(s, logger)
	eventService := service.NewEventService(s, tagService, nil, nil, logger)

	created := 0
	for i := 0; i < *eventCount; i++ {
		owner := users[rng.Intn(len(users))]

		// Spread events across the next 30 days, 1-4 hours long
		start := now.AddDate(0, 0, 1+rng.Intn(30)).
			Truncate(time.Hour).
			Add(time.Duration(10+rng.Intn(10)) * time.Hour)
		end := start.Add(time.Duration(1+rng.Intn(4)) * time.Hour)

		// Pick 1-3 distinct tags
		numTags := 1 + rng.Intn(3)
		perm := rng.Perm(len(demoTags))
		tags := make([]string, 0, numTags)
		for _, idx := range perm[:numTags] {
			tags = append(tags, demoTags[idx])
		}

		input := service.CreateEventInput{
			Title:     demoTitles[i%len(demoTitles)],
			Location:  demoLocations[rng.Intn(len(demoLocations))],
			Latitude:  40.7 + rng.Float64()*0.2,
			Longitude: -74.0 + rng.Float64()*0.2,
			StartsAt:  start,
			EndsAt:    end,
			Capacity:  rng.Intn(5) * 25, // 0 means unlimited
			Tags:      tags,
		}

		outcome, err := eventService.Create(ctx, owner.ID, input)
		if err != nil {
			log.Printf("Failed to create event %q: %v", input.Title, err)
			continue
		}
		if outcome.Warning != nil {
			log.Printf("Event %q created with warning: %v", input.Title, outcome.Warning)
		}
		created++

		// Each event gets 0-2 favorites from the other users
		for _, u := range users {
			if u.ID == owner.ID || rng.Float32() > 0.4 {
				continue
			}
			fav := &domain.Favorite{
				UserID:    u.ID,
				EventID:   outcome.Event.ID,
				CreatedAt: now,
			}
			if err := s.CreateFavorite(ctx, fav); err != nil {
				log.Printf("Failed to favorite event %s: %v", outcome.Event.ID, err)
			}
		}
	}

	fmt.Printf("\nCreated %d events across %d users\n", created, len(users))
	fmt.Println("Seeding complete!")
}
