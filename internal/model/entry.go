package model

import (
	"time"
)

// MealEntry is one logged nutritional event. Entries are append-only:
// corrections happen by delete + reinsert, never by update.
type MealEntry struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"size:255;not null;index:idx_entries_user_date" json:"user_id"`
	Date         string    `gorm:"size:10;not null;index:idx_entries_user_date" json:"date"`
	Meal         string    `gorm:"size:50;not null" json:"meal"`
	Name         string    `gorm:"size:255" json:"name"`
	Amount       float64   `json:"amount"`
	Unit         string    `gorm:"size:20" json:"unit"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Carbohydrate float64   `json:"carbohydrate"`
	Fat          float64   `json:"fat"`
	Water        float64   `json:"water"`
	Source       string    `gorm:"size:50" json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

func (MealEntry) TableName() string {
	return "meal_entries"
}

// DayTotals holds the per-day column sums for a user's entries.
type DayTotals struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
	Water        float64 `json:"water"`
}

// DaySummary is one aggregate row of a date-range summary.
type DaySummary struct {
	Date         string  `json:"date"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
	Water        float64 `json:"water"`
}
