package domain

// UnitSystem selects how a profile's height and weight are denominated.
type UnitSystem string

const (
	UnitsMetric UnitSystem = "metric" // centimeters, kilograms
	UnitsUS     UnitSystem = "us"     // feet+inches, pounds
)

// Profile holds the body measurements used by the energy model. Height and
// weight are stored in the units the user entered; the energy model converts
// US entries to metric before computing.
type Profile struct {
	UserID        string     `json:"userId"`
	Sex           string     `json:"sex"` // "male" or "female"
	AgeYears      int        `json:"ageYears"`
	Units         UnitSystem `json:"units"`
	HeightCM      float64    `json:"heightCm,omitempty"`
	HeightFeet    float64    `json:"heightFeet,omitempty"`
	HeightInches  float64    `json:"heightInches,omitempty"`
	WeightKG      float64    `json:"weightKg,omitempty"`
	WeightLBS     float64    `json:"weightLbs,omitempty"`
	ActivityLevel string     `json:"activityLevel"`
}

// EnergyEstimate is the output of the BMR/TDEE model.
type EnergyEstimate struct {
	BMRKcal  float64 `json:"bmrKcal"`
	TDEEKcal float64 `json:"tdeeKcal"`
}
