// Package safety normalizes weights that are propagated from one exercise to
// another. It is the single choke point that keeps an optimistic self-report
// or a bad fuzzy exercise match from cascading into a dangerously heavy
// auto-generated load.
package safety

import (
	"fmt"
	"math"
	"strings"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

// plateIncrementKg is the practical plate-loading granularity all recommended
// weights are rounded to.
const plateIncrementKg = 2.5

// Relative clamp window applied when extrapolating an assessed weight onto a
// different exercise. One fixed constant set, applied uniformly.
const (
	relativeCeilingFactor = 1.15
	relativeFloorFactor   = 0.70
)

// defaultAdjustmentFactor biases toward underestimation when an exercise pair
// has no explicit mapping.
const defaultAdjustmentFactor = 0.80

// ClampKind identifies which limit fired.
type ClampKind string

// Clamp kind constants.
const (
	ClampRelativeCeiling  ClampKind = "relative-ceiling"
	ClampRelativeFloor    ClampKind = "relative-floor"
	ClampEquipmentCeiling ClampKind = "equipment-ceiling"
	ClampEquipmentFloor   ClampKind = "equipment-floor"
	ClampExperience       ClampKind = "experience"
)

// Clamp is a structured diagnostic recording that a computed weight was
// adjusted by a safety limit. It is informational, not an error: coaching
// copy can use it to explain "we capped this for safety".
type Clamp struct {
	Kind     ClampKind
	BeforeKg float64
	AfterKg  float64
	Reason   string
}

// Adjustment is the result of propagating a weight between exercises.
type Adjustment struct {
	WeightKg float64
	Factor   float64
	Clamps   []Clamp
}

// EquipmentFloorKg is the lowest load the equipment can meaningfully provide.
func EquipmentFloorKg(equipment taxonomy.EquipmentType) float64 {
	switch equipment {
	case taxonomy.EquipmentBarbell:
		return 20
	case taxonomy.EquipmentDumbbell:
		return 5
	case taxonomy.EquipmentMachine:
		return 10
	case taxonomy.EquipmentBodyweight:
		return 0
	default:
		return 0
	}
}

// EquipmentCeilingKg is the absolute per-equipment ceiling for auto-generated
// recommendations. For bodyweight this bounds added external load.
func EquipmentCeilingKg(equipment taxonomy.EquipmentType) float64 {
	switch equipment {
	case taxonomy.EquipmentBarbell:
		return 150
	case taxonomy.EquipmentDumbbell:
		return 40
	case taxonomy.EquipmentMachine:
		return 100
	case taxonomy.EquipmentBodyweight:
		return 50
	default:
		return 50
	}
}

// RoundToPlate rounds a weight to the nearest 2.5 kg.
func RoundToPlate(weightKg float64) float64 {
	return math.Round(weightKg/plateIncrementKg) * plateIncrementKg
}

// AdjustWeightForExercise propagates a weight assessed on fromExercise onto
// toExercise. Identity when the names match case-insensitively. Otherwise a
// conservative multiplicative factor is applied and the result clamped with
// ApplySafetyLimits against the equipment the weight was assessed on.
func AdjustWeightForExercise(
	assessedWeightKg float64,
	fromExercise, toExercise string,
	fromEquipment taxonomy.EquipmentType,
	toDefinition taxonomy.ExerciseDefinition,
) Adjustment {
	if strings.EqualFold(strings.TrimSpace(fromExercise), strings.TrimSpace(toExercise)) {
		return Adjustment{WeightKg: assessedWeightKg, Factor: 1, Clamps: nil}
	}

	factor := adjustmentFactor(fromExercise, toExercise, fromEquipment, toDefinition.Equipment)
	adjusted := assessedWeightKg * factor

	limited := ApplySafetyLimits(adjusted, assessedWeightKg, fromEquipment)
	limited.Factor = factor
	return limited
}

// adjustmentFactor chooses the multiplicative factor for an exercise pair.
// Name-specific mappings win over equipment transitions; everything else
// falls back to the conservative default.
func adjustmentFactor(
	fromExercise, toExercise string,
	fromEquipment, toEquipment taxonomy.EquipmentType,
) float64 {
	from := strings.ToLower(fromExercise)
	to := strings.ToLower(toExercise)

	// Squat to leg press stays deliberately far below naive biomechanical
	// ratios: the leg press tolerates far more load than it is wise to
	// auto-recommend from a squat number.
	if strings.Contains(from, "squat") && strings.Contains(to, "leg press") {
		return 1.12
	}

	switch {
	case fromEquipment == taxonomy.EquipmentBarbell && toEquipment == taxonomy.EquipmentDumbbell:
		return 0.75
	case fromEquipment == taxonomy.EquipmentMachine &&
		(toEquipment == taxonomy.EquipmentBarbell || toEquipment == taxonomy.EquipmentDumbbell):
		return 0.80
	case (fromEquipment == taxonomy.EquipmentBarbell || fromEquipment == taxonomy.EquipmentDumbbell) &&
		toEquipment == taxonomy.EquipmentMachine:
		return 1.10
	default:
		return defaultAdjustmentFactor
	}
}

// ApplySafetyLimits clamps an adjusted weight into the relative window around
// the originally assessed weight and into the absolute bounds of the
// equipment the assessment was made on, then rounds to plate granularity.
func ApplySafetyLimits(
	adjustedWeightKg, originalWeightKg float64,
	equipment taxonomy.EquipmentType,
) Adjustment {
	result := Adjustment{WeightKg: adjustedWeightKg, Factor: 0, Clamps: nil}

	ceiling := originalWeightKg * relativeCeilingFactor
	if result.WeightKg > ceiling {
		result.Clamps = append(result.Clamps, Clamp{
			Kind:     ClampRelativeCeiling,
			BeforeKg: result.WeightKg,
			AfterKg:  ceiling,
			Reason:   fmt.Sprintf("capped at %.0f%% of the assessed weight", relativeCeilingFactor*100),
		})
		result.WeightKg = ceiling
	}

	floor := originalWeightKg * relativeFloorFactor
	if result.WeightKg < floor {
		result.Clamps = append(result.Clamps, Clamp{
			Kind:     ClampRelativeFloor,
			BeforeKg: result.WeightKg,
			AfterKg:  floor,
			Reason:   fmt.Sprintf("raised to %.0f%% of the assessed weight", relativeFloorFactor*100),
		})
		result.WeightKg = floor
	}

	if equipCeiling := EquipmentCeilingKg(equipment); result.WeightKg > equipCeiling {
		result.Clamps = append(result.Clamps, Clamp{
			Kind:     ClampEquipmentCeiling,
			BeforeKg: result.WeightKg,
			AfterKg:  equipCeiling,
			Reason:   fmt.Sprintf("capped at the %s ceiling of %.0f kg", equipment, equipCeiling),
		})
		result.WeightKg = equipCeiling
	}

	if equipFloor := EquipmentFloorKg(equipment); result.WeightKg < equipFloor {
		result.Clamps = append(result.Clamps, Clamp{
			Kind:     ClampEquipmentFloor,
			BeforeKg: result.WeightKg,
			AfterKg:  equipFloor,
			Reason:   fmt.Sprintf("raised to the %s floor of %.0f kg", equipment, equipFloor),
		})
		result.WeightKg = equipFloor
	}

	result.WeightKg = RoundToPlate(result.WeightKg)
	return result
}

// experienceCeilings caps auto-generated loads for the major compound lifts
// per experience bracket. Strictly increasing beginner to advanced; weights
// are only ever capped by this table, never raised.
//
//nolint:gochecknoglobals // fixed seed data, never mutated.
var experienceCeilings = []struct {
	keyword  string
	ceilings map[taxonomy.Experience]float64
}{
	{keyword: "deadlift", ceilings: map[taxonomy.Experience]float64{
		taxonomy.ExperienceBeginner: 100, taxonomy.ExperienceIntermediate: 160, taxonomy.ExperienceAdvanced: 220,
	}},
	{keyword: "squat", ceilings: map[taxonomy.Experience]float64{
		taxonomy.ExperienceBeginner: 80, taxonomy.ExperienceIntermediate: 140, taxonomy.ExperienceAdvanced: 200,
	}},
	{keyword: "bench", ceilings: map[taxonomy.Experience]float64{
		taxonomy.ExperienceBeginner: 60, taxonomy.ExperienceIntermediate: 100, taxonomy.ExperienceAdvanced: 150,
	}},
	{keyword: "overhead press", ceilings: map[taxonomy.Experience]float64{
		taxonomy.ExperienceBeginner: 40, taxonomy.ExperienceIntermediate: 60, taxonomy.ExperienceAdvanced: 90,
	}},
	{keyword: "row", ceilings: map[taxonomy.Experience]float64{
		taxonomy.ExperienceBeginner: 60, taxonomy.ExperienceIntermediate: 90, taxonomy.ExperienceAdvanced: 130,
	}},
}

// ApplyExperienceLimits caps the weight for the handful of major compound
// lifts by experience bracket. Exercises outside the table pass through.
func ApplyExperienceLimits(
	weightKg float64,
	experience taxonomy.Experience,
	exerciseName string,
) (float64, *Clamp) {
	lowered := strings.ToLower(exerciseName)
	for _, entry := range experienceCeilings {
		if !strings.Contains(lowered, entry.keyword) {
			continue
		}
		ceiling, ok := entry.ceilings[experience]
		if !ok {
			return weightKg, nil
		}
		if weightKg > ceiling {
			return ceiling, &Clamp{
				Kind:     ClampExperience,
				BeforeKg: weightKg,
				AfterKg:  ceiling,
				Reason: fmt.Sprintf("capped at the %s ceiling of %.0f kg for %s",
					experience, ceiling, entry.keyword),
			}
		}
		return weightKg, nil
	}
	return weightKg, nil
}
