package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nutridiary/backend/config"
	"github.com/nutridiary/backend/internal/api"
	"github.com/nutridiary/backend/internal/database"
	"github.com/nutridiary/backend/internal/fatsecret"
	"github.com/nutridiary/backend/internal/router"
	"github.com/nutridiary/backend/internal/server"
	"github.com/nutridiary/backend/internal/service"
)

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

	tokens := fatsecret.NewTokenCache(cfg.FatSecretClientID, cfg.FatSecretSecret, cfg.FatSecretOAuthURL)
	fsClient := fatsecret.NewClient(tokens, cfg.FatSecretAPIURL, cfg.FatSecretRegion, strings.Fields(cfg.FatSecretScopes))

	diaryService := service.NewDiaryService(db)
	favoritesService := service.NewFavoritesService(db, fsClient)

	r := router.SetupRouter(
		api.NewFoodHandler(fsClient),
		api.NewRecipeHandler(fsClient, favoritesService),
		api.NewDiaryHandler(diaryService),
	)
	srv := server.New(r, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
