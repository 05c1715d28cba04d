// Seeds the exercise catalog. Safe to re-run: entries that already exist
// (unique name index) are skipped.
package main

import (
	"context"
	"log"
	"time"

	"fittrack/workout-api/internal/config"
	"fittrack/workout-api/internal/domain"
	"fittrack/workout-api/internal/repository/mongo"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

var catalog = []domain.Exercise{
	{
		Name:        "Running",
		Description: "5 KM, Morning Run.",
		Category:    "Cardio",
	},
	{
		Name:        "Bench Press",
		Description: "Chest workout with barbell",
		Category:    "Chest",
	},
	{
		Name:        "Squat",
		Description: "Barbell back squat",
		Category:    "Legs",
	},
	{
		Name:        "Deadlift",
		Description: "Conventional barbell deadlift",
		Category:    "Back",
	},
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))

	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	seeded := 0
	for _, exercise := range catalog {
		ex := exercise
		if _, err := exerciseRepo.Create(ctx, &ex); err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				log.Printf("Skipping %q: already seeded", ex.Name)
				continue
			}
			log.Fatalf("FATAL: Failed to seed exercise %q: %v", ex.Name, err)
		}
		seeded++
	}

	log.Printf("Seeded %d of %d catalog exercises.", seeded, len(catalog))
}
