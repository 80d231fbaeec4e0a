package model

import (
	"time"
)

// Favorite is a user's bookmark of a third-party recipe. The recipe id is an
// opaque upstream identifier; (user_id, recipe_id) is unique.
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"size:255;not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  string    `gorm:"size:64;not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
