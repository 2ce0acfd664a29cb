package usecase

import (
	"math"
	"strings"

	"github.com/nutrifactor/backend/internal/domain"
)

// defaultReferenceGrams is the assumed mass of a record's nutrient values
// when no usable gram serving is declared.
const defaultReferenceGrams = 100

// ReferenceServing determines the mass a record's nutrient values refer to:
// the declared serving size when it is positive and denominated in grams,
// otherwise 100.
func ReferenceServing(record *domain.RawFoodRecord) float64 {
	if record != nil && isGramUnit(record.ServingSizeUnit) {
		if size := SafeNumber(record.ServingSize, 0); size > 0 && isFinite(size) {
			return size
		}
	}
	return defaultReferenceGrams
}

func isGramUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gm", "grm", "gram", "grams":
		return true
	}
	return false
}

// BuildBasis converts an absolute nutrient snapshot plus the mass it
// represents into per-gram quantities. The mass is floored at 1 so a tiny or
// zero serving cannot blow the division up. The returned basis owns a fresh
// micros map and is never mutated afterwards.
func BuildBasis(snapshot domain.NutrientSnapshot, massGrams float64) domain.NutrientBasis {
	mass := massGrams
	if !isFinite(mass) || mass < 1 {
		mass = 1
	}
	basis := domain.NutrientBasis{
		EnergyKcal: snapshot.EnergyKcal / mass,
		ProteinG:   snapshot.ProteinG / mass,
		FatG:       snapshot.FatG / mass,
		CarbsG:     snapshot.CarbsG / mass,
	}
	if len(snapshot.Micros) > 0 {
		basis.Micros = make(map[domain.MicroKey]float64, len(snapshot.Micros))
		for key, value := range snapshot.Micros {
			basis.Micros[key] = value / mass
		}
	}
	return basis
}

// BasisFromRecord runs the full normalization for a raw record: extract at
// the record's reference serving, then divide down to one gram. It returns
// the basis and the reference serving the record declared.
func BasisFromRecord(record *domain.RawFoodRecord) (domain.NutrientBasis, float64) {
	reference := ReferenceServing(record)
	snapshot := ExtractNutrients(record, reference)
	return BuildBasis(snapshot, reference), reference
}

// EnsureBasis makes sure an item carries a per-gram basis. An item that
// already has one is left untouched, so repeated normalization is a no-op.
// Otherwise a basis is synthesized from the item's absolute values divided
// by its serving.
func EnsureBasis(item *domain.LogItem) {
	if item == nil || item.Basis != nil {
		return
	}
	basis := BuildBasis(item.Derived, item.ServingGrams)
	item.Basis = &basis
}

// CustomFoodBasis builds the synthetic per-gram basis for a user-authored
// food. Only calories, protein and fiber are entered by hand: fat is modeled
// as zero and carbohydrate grams are derived from the calories left over
// after protein. This is a deliberate minimal-data shortcut, kept as is.
func CustomFoodBasis(food domain.CustomFood) domain.NutrientBasis {
	carbs := math.Max(0, food.CaloriesKcal-food.ProteinG*4) / 4
	snapshot := domain.NutrientSnapshot{
		EnergyKcal: food.CaloriesKcal,
		ProteinG:   food.ProteinG,
		CarbsG:     carbs,
		Micros: map[domain.MicroKey]float64{
			domain.MicroFiber: food.FiberG,
		},
	}
	return BuildBasis(snapshot, food.AmountGrams)
}
