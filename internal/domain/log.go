package domain

// MicroKey identifies one of the tracked micronutrients. Fiber, sugar and
// saturated fat are grams; sodium and cholesterol are milligrams.
type MicroKey string

const (
	MicroFiber        MicroKey = "fiber"
	MicroSugar        MicroKey = "sugar"
	MicroSaturatedFat MicroKey = "saturatedFat"
	MicroSodium       MicroKey = "sodium"
	MicroCholesterol  MicroKey = "cholesterol"
)

// MicroKeys lists every tracked micronutrient in display order.
var MicroKeys = []MicroKey{
	MicroFiber, MicroSugar, MicroSaturatedFat, MicroSodium, MicroCholesterol,
}

// NutrientSnapshot is an absolute quantity of nutrients for some known mass.
type NutrientSnapshot struct {
	EnergyKcal float64              `json:"energyKcal"`
	ProteinG   float64              `json:"proteinG"`
	FatG       float64              `json:"fatG"`
	CarbsG     float64              `json:"carbsG"`
	Micros     map[MicroKey]float64 `json:"micros,omitempty"`
}

// Micro returns the named micronutrient quantity, zero when absent.
func (s NutrientSnapshot) Micro(key MicroKey) float64 {
	return s.Micros[key]
}

// NutrientBasis holds nutrient quantities per one gram of food. It is the
// single source of truth for any later rescale: a serving change multiplies
// fresh from the basis, it never accumulates rounding across edits. Once
// built a basis is never mutated.
type NutrientBasis struct {
	EnergyKcal float64              `json:"energyKcal"`
	ProteinG   float64              `json:"proteinG"`
	FatG       float64              `json:"fatG"`
	CarbsG     float64              `json:"carbsG"`
	Micros     map[MicroKey]float64 `json:"micros,omitempty"`
}

// Scale returns the absolute nutrient quantities for the given mass. The
// returned snapshot owns a fresh micros map.
func (b NutrientBasis) Scale(grams float64) NutrientSnapshot {
	snap := NutrientSnapshot{
		EnergyKcal: b.EnergyKcal * grams,
		ProteinG:   b.ProteinG * grams,
		FatG:       b.FatG * grams,
		CarbsG:     b.CarbsG * grams,
	}
	if len(b.Micros) > 0 {
		snap.Micros = make(map[MicroKey]float64, len(b.Micros))
		for key, perGram := range b.Micros {
			snap.Micros[key] = perGram * grams
		}
	}
	return snap
}

// SourceKind tells where a log item came from.
type SourceKind string

const (
	SourceExternal SourceKind = "external"
	SourceCustom   SourceKind = "custom"
	SourceManual   SourceKind = "manual"
)

// LogItem is one logged food. ServingGrams is the only mutable field; the
// derived snapshot is always recomputed as basis × serving, never edited
// directly. At most one of ExternalFoodID / CustomFoodID is set; neither set
// means a manual entry, which is a valid state, not an error.
type LogItem struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Brand          string           `json:"brand,omitempty"`
	ServingGrams   float64          `json:"servingGrams"`
	Derived        NutrientSnapshot `json:"derived"`
	Basis          *NutrientBasis   `json:"basis,omitempty"`
	ExternalFoodID int64            `json:"externalFoodId,omitempty"`
	CustomFoodID   string           `json:"customFoodId,omitempty"`
}

// Source reports which kind of record the item was created from.
func (li *LogItem) Source() SourceKind {
	switch {
	case li.ExternalFoodID != 0:
		return SourceExternal
	case li.CustomFoodID != "":
		return SourceCustom
	default:
		return SourceManual
	}
}

// CustomFood is a user-authored food with minimal manually entered macros.
// Fat and carbohydrates are deliberately not stored: fat is modeled as zero
// and carbohydrate grams are derived from calories minus protein calories.
type CustomFood struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand,omitempty"`
	AmountGrams  float64 `json:"amountGrams"`
	CaloriesKcal float64 `json:"caloriesKcal"`
	FiberG       float64 `json:"fiberG"`
	ProteinG     float64 `json:"proteinG"`
}

// FavoriteMark records that a user favorited one food, identified by exactly
// one of an external food id or a custom food id. Its lifecycle is
// independent of the log: removing a food from the log keeps its mark.
type FavoriteMark struct {
	UserID         string `json:"userId"`
	ExternalFoodID int64  `json:"externalFoodId,omitempty"`
	CustomFoodID   string `json:"customFoodId,omitempty"`
}

// AggregateTotals is a pure fold over the current log, recomputed on every
// read so it can never drift from the log's actual contents.
type AggregateTotals struct {
	MassG    float64 `json:"massG"`
	CalKcal  float64 `json:"calKcal"`
	ProteinG float64 `json:"proteinG"`
	FiberG   float64 `json:"fiberG"`
}
