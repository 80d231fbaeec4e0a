package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nutridiary/backend/internal/model"
)

// ErrInvalidPayload indicates the caller-supplied request failed local
// validation. No store or network call has happened when it is returned.
var ErrInvalidPayload = errors.New("invalid payload")

// DiaryItem is one item of a batch insert request.
type DiaryItem struct {
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
	Water        float64 `json:"water"`
}

// DiaryService handles meal entry persistence and day-level aggregation.
type DiaryService struct {
	db *gorm.DB
}

// NewDiaryService creates a new DiaryService instance
func NewDiaryService(db *gorm.DB) *DiaryService {
	return &DiaryService{db: db}
}

// AddEntries inserts all items for a (user, date, meal) batch atomically and
// returns the updated day. Validation happens before the transaction opens,
// so a batch with any invalid item writes nothing.
func (s *DiaryService) AddEntries(userID, date, meal string, items []DiaryItem) ([]model.MealEntry, model.DayTotals, error) {
	userID = strings.TrimSpace(userID)
	meal = strings.TrimSpace(meal)
	if userID == "" || meal == "" || len(items) == 0 {
		return nil, model.DayTotals{}, ErrInvalidPayload
	}
	for _, it := range items {
		if it.Amount < 0 || it.Calories < 0 || it.Protein < 0 || it.Carbohydrate < 0 || it.Fat < 0 || it.Water < 0 {
			return nil, model.DayTotals{}, fmt.Errorf("%w: negative value in item %q", ErrInvalidPayload, it.Name)
		}
	}
	date = NormalizeDate(date)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			unit := it.Unit
			if unit == "" {
				unit = "g"
			}
			entry := model.MealEntry{
				UserID:       userID,
				Date:         date,
				Meal:         meal,
				Name:         strings.TrimSpace(it.Name),
				Amount:       it.Amount,
				Unit:         unit,
				Calories:     it.Calories,
				Protein:      it.Protein,
				Carbohydrate: it.Carbohydrate,
				Fat:          it.Fat,
				Water:        it.Water,
				Source:       "manual",
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, model.DayTotals{}, fmt.Errorf("failed to insert diary batch: %w", err)
	}

	return s.Day(userID, date)
}

// AddWater inserts a single water entry for the day.
func (s *DiaryService) AddWater(userID, date string, amount float64) ([]model.MealEntry, model.DayTotals, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || amount <= 0 {
		return nil, model.DayTotals{}, ErrInvalidPayload
	}
	date = NormalizeDate(date)

	entry := model.MealEntry{
		UserID: userID,
		Date:   date,
		Meal:   "water",
		Name:   "Water",
		Amount: amount,
		Unit:   "ml",
		Water:  amount,
		Source: "manual",
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, model.DayTotals{}, fmt.Errorf("failed to insert water entry: %w", err)
	}

	return s.Day(userID, date)
}

// Day returns the day's entries in insertion order plus aggregate totals. An
// empty day yields an empty list and zero totals.
func (s *DiaryService) Day(userID, date string) ([]model.MealEntry, model.DayTotals, error) {
	date = NormalizeDate(date)

	entries := []model.MealEntry{}
	if err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, model.DayTotals{}, fmt.Errorf("failed to list day entries: %w", err)
	}

	var totals model.DayTotals
	if err := s.db.Model(&model.MealEntry{}).
		Select(`COALESCE(SUM(calories),0) AS calories,
			COALESCE(SUM(protein),0) AS protein,
			COALESCE(SUM(carbohydrate),0) AS carbohydrate,
			COALESCE(SUM(fat),0) AS fat,
			COALESCE(SUM(water),0) AS water`).
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&totals).Error; err != nil {
		return nil, model.DayTotals{}, fmt.Errorf("failed to sum day totals: %w", err)
	}

	return entries, totals, nil
}

// DeleteEntry removes an entry only when both id and user match, and reports
// whether a row was actually removed. Deleting an unknown id is not an error.
func (s *DiaryService) DeleteEntry(id int64, userID string) (bool, error) {
	if id <= 0 || strings.TrimSpace(userID) == "" {
		return false, ErrInvalidPayload
	}
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.MealEntry{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Summary returns one aggregate row per distinct date in [from, to] that has
// at least one entry. Dates without entries are omitted.
func (s *DiaryService) Summary(userID, from, to string) ([]model.DaySummary, error) {
	from = NormalizeDate(from)
	to = NormalizeDate(to)

	rows := []model.DaySummary{}
	if err := s.db.Model(&model.MealEntry{}).
		Select(`date,
			COALESCE(SUM(calories),0) AS calories,
			COALESCE(SUM(protein),0) AS protein,
			COALESCE(SUM(carbohydrate),0) AS carbohydrate,
			COALESCE(SUM(fat),0) AS fat,
			COALESCE(SUM(water),0) AS water`).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	return rows, nil
}

// NormalizeDate reduces a date input to a local YYYY-MM-DD calendar day.
// Missing or unparseable input defaults to today.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local().Format("2006-01-02")
	}
	// A zoneless timestamp is local wall-clock time, not UTC.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t.Format("2006-01-02")
	}
	return time.Now().Format("2006-01-02")
}
