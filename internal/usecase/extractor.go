package usecase

import (
	"strings"

	"github.com/nutrifactor/backend/internal/domain"
)

// FoodData Central nutrient ids for the tracked macro- and micronutrients.
const (
	nutrientIDEnergy       = 1008 // kcal
	nutrientIDProtein      = 1003 // g
	nutrientIDFat          = 1004 // g
	nutrientIDCarbohydrate = 1005 // g
	nutrientIDFiber        = 1079 // g
	nutrientIDSugars       = 2000 // g
	nutrientIDSaturatedFat = 1258 // g
	nutrientIDSodium       = 1093 // mg
	nutrientIDCholesterol  = 1253 // mg
)

// nutrientSpec describes how to resolve one nutrient from a raw record:
// a fixed numeric id, a set of lowercase name substrings tried when the id
// is absent, and the label-nutrient field tried when the value is still
// zero or absent.
type nutrientSpec struct {
	id        int64
	names     []string
	fromLabel func(*domain.LabelNutrients) *domain.LabelNutrient
}

var (
	energySpec = nutrientSpec{
		id:        nutrientIDEnergy,
		names:     []string{"energy"},
		fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Calories },
	}
	proteinSpec = nutrientSpec{
		id:        nutrientIDProtein,
		names:     []string{"protein"},
		fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Protein },
	}
	// "fat" alone would also match "fatty acids, total saturated", so the
	// fat variants are the two full phrases the API actually uses.
	fatSpec = nutrientSpec{
		id:        nutrientIDFat,
		names:     []string{"total lipid", "total fat"},
		fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Fat },
	}
	carbsSpec = nutrientSpec{
		id:        nutrientIDCarbohydrate,
		names:     []string{"carbohydrate"},
		fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Carbohydrates },
	}

	microSpecs = map[domain.MicroKey]nutrientSpec{
		domain.MicroFiber: {
			id:        nutrientIDFiber,
			names:     []string{"fiber", "fibre"},
			fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Fiber },
		},
		domain.MicroSugar: {
			id:        nutrientIDSugars,
			names:     []string{"sugar"},
			fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Sugars },
		},
		domain.MicroSaturatedFat: {
			id:        nutrientIDSaturatedFat,
			names:     []string{"saturated"},
			fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.SaturatedFat },
		},
		domain.MicroSodium: {
			id:        nutrientIDSodium,
			names:     []string{"sodium"},
			fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Sodium },
		},
		domain.MicroCholesterol: {
			id:        nutrientIDCholesterol,
			names:     []string{"cholesterol"},
			fromLabel: func(l *domain.LabelNutrients) *domain.LabelNutrient { return l.Cholesterol },
		},
	}
)

// ExtractNutrients pulls the four macros and five micros out of a raw food
// record and scales them to the requested gram basis (default 100). Raw
// values are nominally per 100 g, so every value is multiplied by
// basisGrams/100.
//
// The function is total: a nil, empty or malformed record degrades to an
// all-zero snapshot rather than an error, so a bad record can never block
// the pipeline.
func ExtractNutrients(record *domain.RawFoodRecord, basisGrams float64) domain.NutrientSnapshot {
	if basisGrams <= 0 || !isFinite(basisGrams) {
		basisGrams = 100
	}
	snap := domain.NutrientSnapshot{
		Micros: make(map[domain.MicroKey]float64, len(domain.MicroKeys)),
	}
	if record == nil {
		return snap
	}

	scale := basisGrams / 100
	snap.EnergyKcal = resolveNutrient(record, energySpec) * scale
	snap.ProteinG = resolveNutrient(record, proteinSpec) * scale
	snap.FatG = resolveNutrient(record, fatSpec) * scale
	snap.CarbsG = resolveNutrient(record, carbsSpec) * scale
	for _, key := range domain.MicroKeys {
		snap.Micros[key] = resolveNutrient(record, microSpecs[key]) * scale
	}
	return snap
}

// resolveNutrient runs the three-tier lookup chain for one nutrient:
// structured id match, then case-insensitive name-substring match, then the
// flat label-nutrient object when the value is still zero or absent.
func resolveNutrient(record *domain.RawFoodRecord, spec nutrientSpec) float64 {
	value, found := nutrientByID(record.FoodNutrients, spec.id)
	if !found {
		value, found = nutrientByName(record.FoodNutrients, spec.names)
	}
	if (!found || value == 0) && record.LabelNutrients != nil {
		if label := spec.fromLabel(record.LabelNutrients); label != nil {
			return SafeNumber(label.Value, 0)
		}
	}
	if !found {
		return 0
	}
	return value
}

// nutrientByID scans the structured nutrient list for a fixed numeric id.
func nutrientByID(entries []domain.FoodNutrient, id int64) (float64, bool) {
	for i := range entries {
		if entryID(&entries[i]) == id {
			return entryValue(&entries[i]), true
		}
	}
	return 0, false
}

// nutrientByName scans for a case-insensitive substring match against the
// known name variants.
func nutrientByName(entries []domain.FoodNutrient, variants []string) (float64, bool) {
	for i := range entries {
		name := strings.ToLower(entryName(&entries[i]))
		if name == "" {
			continue
		}
		for _, variant := range variants {
			if strings.Contains(name, variant) {
				return entryValue(&entries[i]), true
			}
		}
	}
	return 0, false
}

// entryID resolves the nutrient id across the two wire shapes. A missing or
// unparsable id resolves to 0, which matches no tracked nutrient.
func entryID(entry *domain.FoodNutrient) int64 {
	if entry.NutrientID != "" {
		return int64(SafeNumber(entry.NutrientID, 0))
	}
	if entry.Nutrient != nil && entry.Nutrient.ID != "" {
		return int64(SafeNumber(entry.Nutrient.ID, 0))
	}
	return 0
}

// entryName resolves the nutrient name across the two wire shapes.
func entryName(entry *domain.FoodNutrient) string {
	if entry.NutrientName != "" {
		return entry.NutrientName
	}
	if entry.Name != "" {
		return entry.Name
	}
	if entry.Nutrient != nil {
		return entry.Nutrient.Name
	}
	return ""
}

// entryValue resolves the numeric amount across the two wire shapes.
func entryValue(entry *domain.FoodNutrient) float64 {
	if entry.Value != nil {
		return SafeNumber(*entry.Value, 0)
	}
	if entry.Amount != nil {
		return SafeNumber(*entry.Amount, 0)
	}
	return 0
}
