package domain

import "encoding/json"

// RawFoodRecord is a food record as returned by the FoodData Central style
// composition API. The shape is open-ended: a record may carry a structured
// nutrient list, a flat label-nutrient object, both, or neither. Nutrient
// values are nominally per 100 g unless a gram-denominated serving size is
// declared.
type RawFoodRecord struct {
	FdcID           int64           `json:"fdcId"`
	Description     string          `json:"description"`
	DataType        string          `json:"dataType,omitempty"`
	BrandOwner      string          `json:"brandOwner,omitempty"`
	BrandName       string          `json:"brandName,omitempty"`
	ServingSize     float64         `json:"servingSize,omitempty"`
	ServingSizeUnit string          `json:"servingSizeUnit,omitempty"`
	FoodNutrients   []FoodNutrient  `json:"foodNutrients,omitempty"`
	LabelNutrients  *LabelNutrients `json:"labelNutrients,omitempty"`
}

// Brand returns the best display brand for the record.
func (r *RawFoodRecord) Brand() string {
	if r.BrandName != "" {
		return r.BrandName
	}
	return r.BrandOwner
}

// FoodNutrient is one entry of a record's structured nutrient list. The
// search and detail endpoints disagree on field names: search puts the id,
// name and value at the top level, detail nests the id and name under a
// nutrient object and calls the value "amount". All fields are optional.
type FoodNutrient struct {
	NutrientID   json.Number  `json:"nutrientId,omitempty"`
	NutrientName string       `json:"nutrientName,omitempty"`
	Name         string       `json:"name,omitempty"`
	UnitName     string       `json:"unitName,omitempty"`
	Value        *float64     `json:"value,omitempty"`
	Amount       *float64     `json:"amount,omitempty"`
	Nutrient     *NutrientRef `json:"nutrient,omitempty"`
}

// NutrientRef is the nested nutrient descriptor used by the detail endpoint.
type NutrientRef struct {
	ID       json.Number `json:"id,omitempty"`
	Number   string      `json:"number,omitempty"`
	Name     string      `json:"name,omitempty"`
	UnitName string      `json:"unitName,omitempty"`
}

// LabelNutrients is the flat, pre-aggregated nutrient object carried by some
// branded records. It is the last fallback in the extraction chain.
type LabelNutrients struct {
	Calories      *LabelNutrient `json:"calories,omitempty"`
	Protein       *LabelNutrient `json:"protein,omitempty"`
	Fat           *LabelNutrient `json:"fat,omitempty"`
	Carbohydrates *LabelNutrient `json:"carbohydrates,omitempty"`
	Fiber         *LabelNutrient `json:"fiber,omitempty"`
	Sugars        *LabelNutrient `json:"sugars,omitempty"`
	SaturatedFat  *LabelNutrient `json:"saturatedFat,omitempty"`
	Sodium        *LabelNutrient `json:"sodium,omitempty"`
	Cholesterol   *LabelNutrient `json:"cholesterol,omitempty"`
}

// LabelNutrient is a single label-nutrient value.
type LabelNutrient struct {
	Value float64 `json:"value"`
}

// SearchResult is one page of food search results.
type SearchResult struct {
	Records    []RawFoodRecord `json:"foods"`
	TotalCount int             `json:"totalHits"`
	Page       int             `json:"currentPage"`
	TotalPages int             `json:"totalPages"`
}
