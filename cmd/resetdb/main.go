package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/nutridiary/backend/config"
	"github.com/nutridiary/backend/internal/database"
	"github.com/nutridiary/backend/internal/model"
)

// Drops and re-creates the diary tables. Destructive; meant for development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := db.Migrator().DropTable(&model.MealEntry{}, &model.Favorite{}); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to re-create schema: %v", err)
	}

	log.Printf("Reset database at %s", cfg.DBPath)
}
