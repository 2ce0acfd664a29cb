package usecase

import (
	"context"

	"github.com/nutrifactor/backend/internal/domain"
)

// LogService owns the user's food log. Every mutation loads the current
// items, applies the change through the log item model, and hands the full
// list back to the store, which persists by replace-on-write.
type LogService struct {
	store domain.Store
}

// NewLogService creates a log service backed by the given store.
func NewLogService(store domain.Store) *LogService {
	return &LogService{store: store}
}

// Items returns the user's current log. Loaded rows are re-normalized,
// which is a no-op for rows that already carry a basis.
func (s *LogService) Items(ctx context.Context, userID string) ([]domain.LogItem, error) {
	items, err := s.store.LoadLog(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		EnsureBasis(&items[i])
	}
	return items, nil
}

// AddRecord appends a log item built from a raw food record.
func (s *LogService) AddRecord(ctx context.Context, userID string, record *domain.RawFoodRecord) (domain.LogItem, error) {
	return s.append(ctx, userID, NewLogItemFromRecord(record))
}

// AddCustomFood appends a log item built from a custom food.
func (s *LogService) AddCustomFood(ctx context.Context, userID string, food domain.CustomFood) (domain.LogItem, error) {
	return s.append(ctx, userID, NewLogItemFromCustomFood(food))
}

// AddManual appends a manually entered item with no source reference.
func (s *LogService) AddManual(ctx context.Context, userID, name, brand string, servingGrams float64, nutrients domain.NutrientSnapshot) (domain.LogItem, error) {
	return s.append(ctx, userID, NewManualLogItem(name, brand, servingGrams, nutrients))
}

func (s *LogService) append(ctx context.Context, userID string, item domain.LogItem) (domain.LogItem, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return domain.LogItem{}, err
	}
	items = append(items, item)
	if err := s.store.ReplaceLog(ctx, userID, items); err != nil {
		return domain.LogItem{}, err
	}
	return item, nil
}

// ChangeAmount sets a log item's serving. The advisory validation result is
// returned alongside the updated item; an out-of-range amount still applies,
// the caller decides how to surface the message.
func (s *LogService) ChangeAmount(ctx context.Context, userID, itemID string, grams float64) (domain.LogItem, *FieldError, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return domain.LogItem{}, nil, err
	}
	fieldErr := ValidateAmount(grams)
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		SetAmount(&items[i], grams)
		if err := s.store.ReplaceLog(ctx, userID, items); err != nil {
			return domain.LogItem{}, fieldErr, err
		}
		return items[i], fieldErr, nil
	}
	return domain.LogItem{}, fieldErr, domain.ErrLogItemNotFound
}

// Remove deletes one item from the log. The item's favorite mark, if any,
// is untouched.
func (s *LogService) Remove(ctx context.Context, userID, itemID string) error {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return domain.ErrLogItemNotFound
	}
	return s.store.ReplaceLog(ctx, userID, kept)
}

// Clear empties the log.
func (s *LogService) Clear(ctx context.Context, userID string) error {
	return s.store.ReplaceLog(ctx, userID, nil)
}

// Totals folds the current log into aggregate totals and the log-level
// factor verdict.
func (s *LogService) Totals(ctx context.Context, userID string) (domain.AggregateTotals, FactorSet, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return domain.AggregateTotals{}, FactorSet{}, err
	}
	totals := Rollup(items)
	return totals, TotalsFactors(totals), nil
}

// Export builds the spreadsheet rows for the current log.
func (s *LogService) Export(ctx context.Context, userID string) ([]ExportRow, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ExportRows(items), nil
}
