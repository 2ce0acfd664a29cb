package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nutrifactor/backend/internal/domain"
)

// GormStore is the sqlite-backed persistence store. All writes are
// idempotent upserts; the log is persisted by full replace in one
// transaction.
type GormStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema.
func Open(path string, logger zerolog.Logger) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := db.AutoMigrate(
		&logItemRow{}, &customFoodRow{}, &favoriteRow{},
		&userSettingsRow{}, &searchSnapshotRow{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{
		db:  db,
		log: logger.With().Str("component", "store").Logger(),
	}, nil
}

// LoadLog returns the user's log rows in log order.
func (s *GormStore) LoadLog(ctx context.Context, userID string) ([]domain.LogItem, error) {
	var rows []logItemRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]domain.LogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

// ReplaceLog persists the full item list with delete-all-then-insert
// semantics inside one transaction.
func (s *GormStore) ReplaceLog(ctx context.Context, userID string, items []domain.LogItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&logItemRow{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([]logItemRow, 0, len(items))
		for i, item := range items {
			rows = append(rows, toLogItemRow(userID, i, item))
		}
		return tx.Create(&rows).Error
	})
}

func (s *GormStore) SaveCustomFood(ctx context.Context, food domain.CustomFood) error {
	row := toCustomFoodRow(food)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (s *GormStore) GetCustomFood(ctx context.Context, userID, foodID string) (*domain.CustomFood, error) {
	var row customFoodRow
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, foodID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCustomFoodNotFound
	}
	if err != nil {
		return nil, err
	}
	food := row.toDomain()
	return &food, nil
}

func (s *GormStore) ListCustomFoods(ctx context.Context, userID string) ([]domain.CustomFood, error) {
	var rows []customFoodRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	foods := make([]domain.CustomFood, 0, len(rows))
	for _, row := range rows {
		foods = append(foods, row.toDomain())
	}
	return foods, nil
}

func (s *GormStore) DeleteCustomFood(ctx context.Context, userID, foodID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, foodID).
		Delete(&customFoodRow{}).Error
}

// PutFavorite upserts a favorite mark; re-favoriting is a no-op.
func (s *GormStore) PutFavorite(ctx context.Context, mark domain.FavoriteMark) error {
	row := favoriteRow{
		UserID:         mark.UserID,
		ExternalFoodID: mark.ExternalFoodID,
		CustomFoodID:   mark.CustomFoodID,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (s *GormStore) DeleteFavorite(ctx context.Context, mark domain.FavoriteMark) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND external_food_id = ? AND custom_food_id = ?",
			mark.UserID, mark.ExternalFoodID, mark.CustomFoodID).
		Delete(&favoriteRow{}).Error
}

func (s *GormStore) ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteMark, error) {
	var rows []favoriteRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	marks := make([]domain.FavoriteMark, 0, len(rows))
	for _, row := range rows {
		marks = append(marks, domain.FavoriteMark{
			UserID:         row.UserID,
			ExternalFoodID: row.ExternalFoodID,
			CustomFoodID:   row.CustomFoodID,
		})
	}
	return marks, nil
}

func (s *GormStore) SaveProfile(ctx context.Context, profile domain.Profile) error {
	return s.upsertSettings(ctx, profile.UserID, func(row *userSettingsRow) {
		row.Profile = &profile
	})
}

func (s *GormStore) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	row, err := s.loadSettings(ctx, userID)
	if err != nil || row == nil {
		return nil, err
	}
	return row.Profile, nil
}

func (s *GormStore) SaveCredential(ctx context.Context, userID, apiKey string) error {
	return s.upsertSettings(ctx, userID, func(row *userSettingsRow) {
		row.APIKey = apiKey
	})
}

func (s *GormStore) LoadCredential(ctx context.Context, userID string) (string, error) {
	row, err := s.loadSettings(ctx, userID)
	if err != nil || row == nil {
		return "", err
	}
	return row.APIKey, nil
}

func (s *GormStore) SaveDraft(ctx context.Context, userID, draft string) error {
	return s.upsertSettings(ctx, userID, func(row *userSettingsRow) {
		row.Draft = draft
	})
}

func (s *GormStore) LoadDraft(ctx context.Context, userID string) (string, error) {
	row, err := s.loadSettings(ctx, userID)
	if err != nil || row == nil {
		return "", err
	}
	return row.Draft, nil
}

func (s *GormStore) SaveSearchSnapshot(ctx context.Context, userID string, snap domain.SearchSnapshot) error {
	row := searchSnapshotRow{
		UserID:     userID,
		Query:      snap.Query,
		TotalCount: snap.TotalCount,
		Records:    snap.Records,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (s *GormStore) LoadSearchSnapshot(ctx context.Context, userID string) (*domain.SearchSnapshot, error) {
	var row searchSnapshotRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.SearchSnapshot{
		Query:      row.Query,
		Records:    row.Records,
		TotalCount: row.TotalCount,
	}, nil
}

// loadSettings returns the user's settings row, nil when none exists yet.
func (s *GormStore) loadSettings(ctx context.Context, userID string) (*userSettingsRow, error) {
	var row userSettingsRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// upsertSettings applies a mutation to the user's settings row, creating
// the row first when the user has none.
func (s *GormStore) upsertSettings(ctx context.Context, userID string, apply func(*userSettingsRow)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userSettingsRow
		err := tx.Where("user_id = ?", userID).First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row.UserID = userID
		apply(&row)
		return tx.Save(&row).Error
	})
}
