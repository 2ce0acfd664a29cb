package usecase

import (
	"github.com/nutrifactor/backend/internal/domain"
)

// ExportRow is one tabular row handed to the spreadsheet export surface.
// Every value is already rounded: calories and the milligram micros to whole
// numbers, gram quantities to one decimal, factors per their display rules.
type ExportRow struct {
	Name           string  `json:"name"`
	Brand          string  `json:"brand"`
	ServingGrams   float64 `json:"servingGrams"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Fat            float64 `json:"fat"`
	Carbs          float64 `json:"carbs"`
	Fiber          float64 `json:"fiber"`
	Sugar          float64 `json:"sugar"`
	SaturatedFat   float64 `json:"saturatedFat"`
	Sodium         float64 `json:"sodium"`
	Cholesterol    float64 `json:"cholesterol"`
	FiberFactor    string  `json:"fiberFactor"`
	ProteinFactor  string  `json:"proteinFactor"`
	WellnessFactor string  `json:"wellnessFactor"`
	EnergyFactor   string  `json:"energyFactor"`
}

// ExportRows builds one row per log item, in log order.
func ExportRows(items []domain.LogItem) []ExportRow {
	rows := make([]ExportRow, 0, len(items))
	for i := range items {
		rows = append(rows, exportRow(&items[i]))
	}
	return rows
}

func exportRow(item *domain.LogItem) ExportRow {
	factors := ItemFactors(item)
	return ExportRow{
		Name:           item.Name,
		Brand:          item.Brand,
		ServingGrams:   Round(item.ServingGrams, 1),
		Calories:       Round(SnapshotCalories(item.Derived), 0),
		Protein:        Round(item.Derived.ProteinG, 1),
		Fat:            Round(item.Derived.FatG, 1),
		Carbs:          Round(item.Derived.CarbsG, 1),
		Fiber:          Round(item.Derived.Micro(domain.MicroFiber), 1),
		Sugar:          Round(item.Derived.Micro(domain.MicroSugar), 1),
		SaturatedFat:   Round(item.Derived.Micro(domain.MicroSaturatedFat), 1),
		Sodium:         Round(item.Derived.Micro(domain.MicroSodium), 0),
		Cholesterol:    Round(item.Derived.Micro(domain.MicroCholesterol), 0),
		FiberFactor:    factors.FiberDisplay,
		ProteinFactor:  factors.ProteinDisplay,
		WellnessFactor: factors.WellnessDisplay,
		EnergyFactor:   factors.EnergyDisplay,
	}
}
