package usecase

import (
	"math"

	"github.com/segmentio/ksuid"

	"github.com/nutrifactor/backend/internal/domain"
)

// MaxServingGrams is the largest serving the amount validation accepts.
const MaxServingGrams = 10000

// NewLogItemFromRecord normalizes a raw food record into a log item with a
// fresh identity. The serving defaults to the record's reference serving and
// the derived values are computed from the per-gram basis.
func NewLogItemFromRecord(record *domain.RawFoodRecord) domain.LogItem {
	basis, reference := BasisFromRecord(record)
	item := domain.LogItem{
		ID:           ksuid.New().String(),
		ServingGrams: reference,
		Basis:        &basis,
	}
	if record != nil {
		item.Name = record.Description
		item.Brand = record.Brand()
		item.ExternalFoodID = record.FdcID
	}
	item.Derived = basis.Scale(item.ServingGrams)
	return item
}

// NewLogItemFromCustomFood converts a user-authored food into a log item
// through its synthetic basis. The serving defaults to the food's entered
// amount.
func NewLogItemFromCustomFood(food domain.CustomFood) domain.LogItem {
	basis := CustomFoodBasis(food)
	item := domain.LogItem{
		ID:           ksuid.New().String(),
		Name:         food.Name,
		Brand:        food.Brand,
		ServingGrams: math.Max(0, food.AmountGrams),
		Basis:        &basis,
		CustomFoodID: food.ID,
	}
	item.Derived = basis.Scale(item.ServingGrams)
	return item
}

// NewManualLogItem creates a log item with no source reference from
// directly entered absolute nutrients and the mass they describe. Manual
// entries are a valid third variant alongside external and custom foods.
func NewManualLogItem(name, brand string, servingGrams float64, nutrients domain.NutrientSnapshot) domain.LogItem {
	basis := BuildBasis(nutrients, servingGrams)
	item := domain.LogItem{
		ID:           ksuid.New().String(),
		Name:         name,
		Brand:        brand,
		ServingGrams: math.Max(0, servingGrams),
		Basis:        &basis,
	}
	item.Derived = basis.Scale(item.ServingGrams)
	return item
}

// SetAmount is the only mutation path for a log item. Negative input clamps
// to 0; every derived value, micros included, is recomputed fresh from the
// basis so repeated edits cannot accumulate drift.
func SetAmount(item *domain.LogItem, grams float64) {
	if item == nil {
		return
	}
	if !isFinite(grams) || grams < 0 {
		grams = 0
	}
	EnsureBasis(item)
	item.ServingGrams = grams
	item.Derived = item.Basis.Scale(grams)
}

// FieldError is an advisory validation message for one form field. It is
// reported for display; it does not stop the underlying mutation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateAmount applies the boundary validation rule for user-entered
// servings: the amount must be greater than zero and at most 10000 grams.
func ValidateAmount(grams float64) *FieldError {
	if !isFinite(grams) || grams <= 0 {
		return &FieldError{Field: "amount", Message: "amount must be greater than 0"}
	}
	if grams > MaxServingGrams {
		return &FieldError{Field: "amount", Message: "amount must be at most 10000 g"}
	}
	return nil
}

// Rollup folds the full log into aggregate totals. It always recomputes from
// scratch; there are no incremental counters to fall out of sync.
func Rollup(items []domain.LogItem) domain.AggregateTotals {
	var totals domain.AggregateTotals
	for i := range items {
		item := &items[i]
		totals.MassG += math.Max(0, item.ServingGrams)
		totals.CalKcal += SnapshotCalories(item.Derived)
		totals.ProteinG += item.Derived.ProteinG
		totals.FiberG += item.Derived.Micro(domain.MicroFiber)
	}
	return totals
}

// TotalsFactors evaluates the log-level factor set for aggregate totals.
func TotalsFactors(totals domain.AggregateTotals) FactorSet {
	return ComputeFactors(totals.CalKcal, totals.FiberG, totals.ProteinG, totals.MassG)
}
