package usecase

import (
	"math"

	"github.com/nutrifactor/backend/internal/domain"
)

// Atwater energy factors, kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarbs   = 4
)

// Per-factor display thresholds. Each factor colors its own badge; the
// aggregate favorable/unfavorable verdict uses only the wellness threshold.
const (
	FiberFactorThreshold    = 50
	ProteinFactorThreshold  = 30
	WellnessFactorThreshold = 80
	EnergyFactorThreshold   = 1
)

// MacroCalories derives calories from the macros. Displayed calories and the
// factor ratios always come from this, never from a stored energy field, so
// they stay consistent even when a source record's stated energy disagrees.
func MacroCalories(proteinG, fatG, carbsG float64) float64 {
	return proteinG*kcalPerGramProtein + fatG*kcalPerGramFat + carbsG*kcalPerGramCarbs
}

// SnapshotCalories derives calories for a nutrient snapshot.
func SnapshotCalories(snap domain.NutrientSnapshot) float64 {
	return MacroCalories(snap.ProteinG, snap.FatG, snap.CarbsG)
}

// FiberFactor is calories per gram of fiber. Zero fiber is not an error: the
// factor is +Inf, "infinitely far from meeting the fiber target".
func FiberFactor(calories, fiberG float64) float64 {
	if fiberG > 0 {
		return calories / fiberG
	}
	return math.Inf(1)
}

// ProteinFactor is calories per gram of protein, +Inf when protein is zero.
func ProteinFactor(calories, proteinG float64) float64 {
	if proteinG > 0 {
		return calories / proteinG
	}
	return math.Inf(1)
}

// WellnessFactor is the sum of the fiber and protein factors, +Inf unless
// both are finite.
func WellnessFactor(fiberFactor, proteinFactor float64) float64 {
	if isFinite(fiberFactor) && isFinite(proteinFactor) {
		return fiberFactor + proteinFactor
	}
	return math.Inf(1)
}

// EnergyFactor is calories per gram of food, +Inf when the mass is zero.
func EnergyFactor(calories, massGrams float64) float64 {
	if massGrams > 0 {
		return calories / massGrams
	}
	return math.Inf(1)
}

// Favorable reports whether a wellness factor passes the acceptability test.
func Favorable(wellnessFactor float64) bool {
	return wellnessFactor < WellnessFactorThreshold
}

// FactorSet bundles the four derived factors for one food or one aggregate,
// with their display strings formatted per the numeric rules.
type FactorSet struct {
	Fiber    float64 `json:"-"`
	Protein  float64 `json:"-"`
	Wellness float64 `json:"-"`
	Energy   float64 `json:"-"`

	FiberDisplay    string `json:"fiberFactor"`
	ProteinDisplay  string `json:"proteinFactor"`
	WellnessDisplay string `json:"wellnessFactor"`
	EnergyDisplay   string `json:"energyFactor"`
	IsFavorable     bool   `json:"favorable"`
}

// ComputeFactors evaluates all four factors for a subject with the given
// macro-derived calories, fiber, protein and mass.
func ComputeFactors(calories, fiberG, proteinG, massGrams float64) FactorSet {
	fiber := FiberFactor(calories, fiberG)
	protein := ProteinFactor(calories, proteinG)
	wellness := WellnessFactor(fiber, protein)
	energy := EnergyFactor(calories, massGrams)
	return FactorSet{
		Fiber:           fiber,
		Protein:         protein,
		Wellness:        wellness,
		Energy:          energy,
		FiberDisplay:    FormatFactor(fiber, false),
		ProteinDisplay:  FormatFactor(protein, false),
		WellnessDisplay: FormatFactor(wellness, false),
		EnergyDisplay:   FormatFactor(energy, true),
		IsFavorable:     Favorable(wellness),
	}
}

// ItemFactors evaluates the factor set for one log item at its current
// serving.
func ItemFactors(item *domain.LogItem) FactorSet {
	calories := SnapshotCalories(item.Derived)
	return ComputeFactors(calories, item.Derived.Micro(domain.MicroFiber), item.Derived.ProteinG, item.ServingGrams)
}
