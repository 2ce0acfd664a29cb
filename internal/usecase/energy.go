package usecase

import (
	"github.com/nutrifactor/backend/internal/domain"
)

// Unit conversion constants for US-entered profiles.
const (
	cmPerInch   = 2.54
	inchPerFoot = 12
	lbsPerKG    = 2.20462
)

// activityMultipliers maps activity level names to their TDEE multiplier.
// It is also the source of truth for which levels are valid.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 {
	return lbs / lbsPerKG
}

// FeetInchesToCm converts a US height to centimeters.
func FeetInchesToCm(feet, inches float64) float64 {
	return (feet*inchPerFoot + inches) * cmPerInch
}

// BMR computes basal metabolic rate via Mifflin-St Jeor. Height is in
// centimeters, weight in kilograms.
func BMR(sex string, ageYears int, heightCM, weightKG float64) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(ageYears)
	if sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// EstimateEnergy computes BMR and TDEE for a profile, converting US height
// and weight entries to metric first. It reports ok=false when the profile
// is missing required fields, carries an implausible age, or names an
// unknown activity level.
func EstimateEnergy(profile domain.Profile) (domain.EnergyEstimate, bool) {
	heightCM := profile.HeightCM
	weightKG := profile.WeightKG
	if profile.Units == domain.UnitsUS {
		heightCM = FeetInchesToCm(profile.HeightFeet, profile.HeightInches)
		weightKG = LbsToKg(profile.WeightLBS)
	}
	if heightCM <= 0 || weightKG <= 0 {
		return domain.EnergyEstimate{}, false
	}
	if profile.AgeYears <= 0 || profile.AgeYears > 130 {
		return domain.EnergyEstimate{}, false
	}
	multiplier, found := activityMultipliers[profile.ActivityLevel]
	if !found {
		return domain.EnergyEstimate{}, false
	}

	bmr := BMR(profile.Sex, profile.AgeYears, heightCM, weightKG)
	return domain.EnergyEstimate{
		BMRKcal:  Round(bmr, 0),
		TDEEKcal: Round(bmr*multiplier, 0),
	}, true
}
