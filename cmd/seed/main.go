// Command seed writes the sample events into Firestore (normally the
// emulator) so the remote backing starts with the same data as dev mode.
package main

import (
	"context"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"talkmap/internal/config"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"

	"cloud.google.com/go/firestore"
)

func main() {
	cfg, err := config.Load()
	log := logger.New("event-dashboard-seed", cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID)
	if err != nil {
		log.WithError(err).Fatal("Failed to create firestore client")
	}
	defer client.Close()

	events := domain.SeedEvents(time.Now())
	if err := repository.SeedFirestore(ctx, client, events); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
	log.WithField("count", len(events)).Info("Seeded events")
}
