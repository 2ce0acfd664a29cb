package store

import (
	"time"

	"github.com/nutrifactor/backend/internal/domain"
)

// logItemRow is one persisted log entry. The log is written by full replace,
// so Position preserves log order across reloads.
type logItemRow struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index;not null"`
	Position       int    `gorm:"not null"`
	Name           string
	Brand          string
	ServingGrams   float64
	Derived        domain.NutrientSnapshot `gorm:"serializer:json"`
	Basis          *domain.NutrientBasis   `gorm:"serializer:json"`
	ExternalFoodID int64
	CustomFoodID   string
	UpdatedAt      time.Time
}

type customFoodRow struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"index;not null"`
	Name         string `gorm:"not null"`
	Brand        string
	AmountGrams  float64
	CaloriesKcal float64
	FiberG       float64
	ProteinG     float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// favoriteRow marks one favorited food. Exactly one of ExternalFoodID /
// CustomFoodID is set; the composite unique index makes the upsert
// idempotent.
type favoriteRow struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         string `gorm:"uniqueIndex:idx_fav_key;not null"`
	ExternalFoodID int64  `gorm:"uniqueIndex:idx_fav_key"`
	CustomFoodID   string `gorm:"uniqueIndex:idx_fav_key"`
	CreatedAt      time.Time
}

// userSettingsRow holds the per-user singletons: the API credential, the
// draft form state and the energy-model profile.
type userSettingsRow struct {
	UserID    string `gorm:"primaryKey"`
	APIKey    string
	Draft     string
	Profile   *domain.Profile `gorm:"serializer:json"`
	UpdatedAt time.Time
}

// searchSnapshotRow holds the user's last search result set.
type searchSnapshotRow struct {
	UserID     string `gorm:"primaryKey"`
	Query      string
	TotalCount int
	Records    []domain.RawFoodRecord `gorm:"serializer:json"`
	UpdatedAt  time.Time
}

func (logItemRow) TableName() string        { return "log_items" }
func (customFoodRow) TableName() string     { return "custom_foods" }
func (favoriteRow) TableName() string       { return "favorites" }
func (userSettingsRow) TableName() string   { return "user_settings" }
func (searchSnapshotRow) TableName() string { return "search_snapshots" }

func toLogItemRow(userID string, position int, item domain.LogItem) logItemRow {
	return logItemRow{
		ID:             item.ID,
		UserID:         userID,
		Position:       position,
		Name:           item.Name,
		Brand:          item.Brand,
		ServingGrams:   item.ServingGrams,
		Derived:        item.Derived,
		Basis:          item.Basis,
		ExternalFoodID: item.ExternalFoodID,
		CustomFoodID:   item.CustomFoodID,
	}
}

func (r logItemRow) toDomain() domain.LogItem {
	return domain.LogItem{
		ID:             r.ID,
		Name:           r.Name,
		Brand:          r.Brand,
		ServingGrams:   r.ServingGrams,
		Derived:        r.Derived,
		Basis:          r.Basis,
		ExternalFoodID: r.ExternalFoodID,
		CustomFoodID:   r.CustomFoodID,
	}
}

func toCustomFoodRow(food domain.CustomFood) customFoodRow {
	return customFoodRow{
		ID:           food.ID,
		UserID:       food.UserID,
		Name:         food.Name,
		Brand:        food.Brand,
		AmountGrams:  food.AmountGrams,
		CaloriesKcal: food.CaloriesKcal,
		FiberG:       food.FiberG,
		ProteinG:     food.ProteinG,
	}
}

func (r customFoodRow) toDomain() domain.CustomFood {
	return domain.CustomFood{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Brand:        r.Brand,
		AmountGrams:  r.AmountGrams,
		CaloriesKcal: r.CaloriesKcal,
		FiberG:       r.FiberG,
		ProteinG:     r.ProteinG,
	}
}
