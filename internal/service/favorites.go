package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutridiary/backend/internal/fatsecret"
	"github.com/nutridiary/backend/internal/model"
)

// FavoriteItem is the expanded display shape of a favorite, filled from the
// normalized upstream recipe record.
type FavoriteItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// FavoritesService handles user to recipe favorite relationships.
type FavoritesService struct {
	db  *gorm.DB
	api *fatsecret.Client
}

// NewFavoritesService creates a new FavoritesService instance
func NewFavoritesService(db *gorm.DB, api *fatsecret.Client) *FavoritesService {
	return &FavoritesService{db: db, api: api}
}

// Add stores a favorite. Re-adding an existing pair is a no-op; the return
// value reports whether a new row was actually created.
func (s *FavoritesService) Add(userID, recipeID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	recipeID = strings.TrimSpace(recipeID)
	if userID == "" || recipeID == "" {
		return false, ErrInvalidPayload
	}

	fav := model.Favorite{UserID: userID, RecipeID: recipeID}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoNothing: true,
	}).Create(&fav)
	if res.Error != nil {
		return false, fmt.Errorf("failed to add favorite: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Remove deletes a favorite and reports whether a row was actually removed.
func (s *FavoritesService) Remove(userID, recipeID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	recipeID = strings.TrimSpace(recipeID)
	if userID == "" || recipeID == "" {
		return false, ErrInvalidPayload
	}

	res := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List returns the user's favorites newest-first.
func (s *FavoritesService) List(userID string) ([]model.Favorite, error) {
	favs := []model.Favorite{}
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favs).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// ListExpanded fetches display metadata for each favorite concurrently. A
// favorite whose upstream fetch fails is dropped from the result rather than
// failing the whole listing. Order stays newest-first.
func (s *FavoritesService) ListExpanded(ctx context.Context, userID string) ([]FavoriteItem, error) {
	favs, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	results := make([]*FavoriteItem, len(favs))
	var wg sync.WaitGroup
	for i, fav := range favs {
		wg.Add(1)
		go func(i int, recipeID string) {
			defer wg.Done()
			item, err := s.fetchItem(ctx, recipeID)
			if err != nil {
				log.Printf("[favorites] dropping %s from expanded listing: %v", recipeID, err)
				return
			}
			results[i] = item
		}(i, fav.RecipeID)
	}
	wg.Wait()

	items := make([]FavoriteItem, 0, len(favs))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}

// IsFavorite checks whether the pair exists.
func (s *FavoritesService) IsFavorite(userID, recipeID string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (s *FavoritesService) fetchItem(ctx context.Context, recipeID string) (*FavoriteItem, error) {
	raw, err := s.api.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse recipe payload: %w", err)
	}
	rec := fatsecret.NormalizeRecipe(fatsecret.PickPrimaryRecipe(payload))
	if rec == nil {
		return nil, fmt.Errorf("recipe %s missing from payload", recipeID)
	}

	return &FavoriteItem{
		ID:          recipeID,
		Name:        rec.Name,
		Description: rec.Description,
		Image:       rec.Image,
	}, nil
}
