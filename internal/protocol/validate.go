package protocol

import (
	"fmt"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/safety"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

// Plausibility bounds for a self-reported comfortable set.
const (
	minPlausibleReps = 3
	maxPlausibleReps = 20
	// lowRepMinWeightKg flags very low rep counts on implausibly light loads:
	// a weight anyone can triple without strain says nothing useful about
	// capacity, and the warm-up ladder built from it would be pointless.
	lowRepCeiling     = 5
	lowRepMinWeightKg = 40
)

// Validation is the outcome of checking a self-reported comfortable weight.
// SuggestedWeightKg and SuggestedReps always hold a combination that would
// pass validation, whether or not the input did.
type Validation struct {
	Valid             bool
	Issues            []string
	SuggestedWeightKg float64
	SuggestedReps     int
}

// ValidateComfortableWeight sanity-checks a self-reported "comfortable for N
// reps" claim before it seeds a protocol. Invalid input never errors: the
// result carries the issues plus a suggestion that is guaranteed to validate.
func ValidateComfortableWeight(
	weightKg float64,
	reps int,
	equipment taxonomy.EquipmentType,
) Validation {
	var issues []string

	if reps < minPlausibleReps || reps > maxPlausibleReps {
		issues = append(issues, fmt.Sprintf(
			"rep count %d is outside the plausible range of %d to %d for a comfortable set",
			reps, minPlausibleReps, maxPlausibleReps))
	}

	floor := safety.EquipmentFloorKg(equipment)
	if weightKg < floor {
		issues = append(issues, fmt.Sprintf(
			"%.1f kg is below the %s minimum of %.0f kg", weightKg, equipment, floor))
	}

	suggestedReps := clampInt(reps, minPlausibleReps, maxPlausibleReps)
	if reps <= lowRepCeiling && weightKg < lowRepMinWeightKg {
		issues = append(issues, fmt.Sprintf(
			"%.1f kg for %d reps is implausibly light; very low rep counts only make sense near maximal loads",
			weightKg, reps))
	}

	suggestedWeight := weightKg
	if suggestedWeight < floor+minimumWeightMarginKg {
		suggestedWeight = floor + minimumWeightMarginKg
	}
	if suggestedReps <= lowRepCeiling && suggestedWeight < lowRepMinWeightKg {
		suggestedWeight = lowRepMinWeightKg
	}
	suggestedWeight = safety.RoundToPlate(suggestedWeight)

	return Validation{
		Valid:             len(issues) == 0,
		Issues:            issues,
		SuggestedWeightKg: suggestedWeight,
		SuggestedReps:     suggestedReps,
	}
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
