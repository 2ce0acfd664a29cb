package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// roundEpsilon compensates for binary floating point representation error so
// that values like 2.345 round half-up as a human would expect.
const roundEpsilon = 1e-9

// SafeNumber returns v as a float64 when it is a finite number, attempts
// numeric coercion for string-ish inputs, and falls back otherwise. It never
// panics.
func SafeNumber(v interface{}, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		if isFinite(n) {
			return n
		}
	case float32:
		if isFinite(float64(n)) {
			return float64(n)
		}
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil && isFinite(f) {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && isFinite(f) {
			return f
		}
	case *float64:
		if n != nil && isFinite(*n) {
			return *n
		}
	}
	return fallback
}

// Round rounds half-up at the given decimal count. Non-finite input returns 0.
func Round(x float64, decimals int) float64 {
	if !isFinite(x) {
		return 0
	}
	shift := math.Pow(10, float64(decimals))
	return math.Floor(x*shift+0.5+roundEpsilon) / shift
}

// FormatFactor renders a wellness-factor value for display. Non-finite
// values render as the infinity sign. Energy Factor values cluster near 1
// and get one decimal of resolution; the other factors are coarser ratios
// and render as whole numbers.
func FormatFactor(value float64, isEnergyFactor bool) string {
	if !isFinite(value) {
		return "∞"
	}
	if isEnergyFactor {
		return strconv.FormatFloat(Round(value, 1), 'f', 1, 64)
	}
	return strconv.FormatFloat(Round(value, 0), 'f', 0, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
