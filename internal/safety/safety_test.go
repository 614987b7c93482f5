package safety_test

import (
	"math"
	"testing"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/safety"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

func mustLookup(t *testing.T, name string) taxonomy.ExerciseDefinition {
	t.Helper()
	def, ok := taxonomy.Lookup(name)
	if !ok {
		t.Fatalf("exercise %q not in the seed table", name)
	}
	return def
}

func TestAdjustWeightForExerciseIdentity(t *testing.T) {
	def := mustLookup(t, "Barbell Back Squat")
	got := safety.AdjustWeightForExercise(
		100, "Barbell Back Squat", "barbell back squat", taxonomy.EquipmentBarbell, def)

	if got.WeightKg != 100 {
		t.Errorf("WeightKg = %.1f, want 100", got.WeightKg)
	}
	if got.Factor != 1 {
		t.Errorf("Factor = %.2f, want 1", got.Factor)
	}
	if len(got.Clamps) != 0 {
		t.Errorf("identity adjustment recorded clamps: %+v", got.Clamps)
	}
}

func TestAdjustWeightForExercise(t *testing.T) {
	tests := []struct {
		name          string
		assessedKg    float64
		from          string
		to            string
		fromEquipment taxonomy.EquipmentType
		wantKg        float64
	}{
		{
			name:          "squat to leg press",
			assessedKg:    100,
			from:          "Barbell Back Squat",
			to:            "Leg Press",
			fromEquipment: taxonomy.EquipmentBarbell,
			wantKg:        112.5,
		},
		{
			name:          "barbell bench to dumbbell bench",
			assessedKg:    80,
			from:          "Barbell Bench Press",
			to:            "Dumbbell Bench Press",
			fromEquipment: taxonomy.EquipmentBarbell,
			wantKg:        60,
		},
		{
			name:          "machine press back to free weights",
			assessedKg:    60,
			from:          "Machine Chest Press",
			to:            "Barbell Bench Press",
			fromEquipment: taxonomy.EquipmentMachine,
			wantKg:        47.5,
		},
		{
			name:          "unmapped pair falls back to the conservative default",
			assessedKg:    100,
			from:          "Barbell Back Squat",
			to:            "Bodyweight Squat",
			fromEquipment: taxonomy.EquipmentBarbell,
			wantKg:        80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := mustLookup(t, tt.to)
			got := safety.AdjustWeightForExercise(
				tt.assessedKg, tt.from, tt.to, tt.fromEquipment, def)
			if got.WeightKg != tt.wantKg {
				t.Errorf("WeightKg = %.1f, want %.1f", got.WeightKg, tt.wantKg)
			}
		})
	}
}

func TestAdjustWeightForExerciseBounds(t *testing.T) {
	froms := []struct {
		exercise  string
		equipment taxonomy.EquipmentType
	}{
		{exercise: "Barbell Back Squat", equipment: taxonomy.EquipmentBarbell},
		{exercise: "Machine Chest Press", equipment: taxonomy.EquipmentMachine},
		{exercise: "Dumbbell Bench Press", equipment: taxonomy.EquipmentDumbbell},
	}
	targets := []string{"Leg Press", "Goblet Squat", "Barbell Row", "Machine Shoulder Press"}
	weights := []float64{30, 60, 90, 120}

	for _, from := range froms {
		for _, target := range targets {
			for _, weight := range weights {
				def := mustLookup(t, target)
				got := safety.AdjustWeightForExercise(
					weight, from.exercise, target, from.equipment, def)

				ceiling := math.Min(weight*1.15, safety.EquipmentCeilingKg(from.equipment))
				// Plate rounding may step half an increment past the raw bound.
				if got.WeightKg > ceiling+1.25 {
					t.Errorf("%s -> %s at %.0f kg: %.1f exceeds ceiling %.1f",
						from.exercise, target, weight, got.WeightKg, ceiling)
				}
				if got.WeightKg < safety.EquipmentFloorKg(from.equipment)-1.25 {
					t.Errorf("%s -> %s at %.0f kg: %.1f below the %s floor",
						from.exercise, target, weight, got.WeightKg, from.equipment)
				}
				if math.Mod(got.WeightKg, 2.5) != 0 {
					t.Errorf("%s -> %s at %.0f kg: %.2f not on a 2.5 kg boundary",
						from.exercise, target, weight, got.WeightKg)
				}
			}
		}
	}
}

func TestApplySafetyLimits(t *testing.T) {
	tests := []struct {
		name       string
		adjustedKg float64
		originalKg float64
		equipment  taxonomy.EquipmentType
		wantKg     float64
		wantClamp  safety.ClampKind
	}{
		{
			name:       "within the window passes through",
			adjustedKg: 90,
			originalKg: 100,
			equipment:  taxonomy.EquipmentBarbell,
			wantKg:     90,
			wantClamp:  "",
		},
		{
			name:       "relative ceiling fires",
			adjustedKg: 130,
			originalKg: 100,
			equipment:  taxonomy.EquipmentBarbell,
			wantKg:     115,
			wantClamp:  safety.ClampRelativeCeiling,
		},
		{
			name:       "relative floor fires",
			adjustedKg: 50,
			originalKg: 100,
			equipment:  taxonomy.EquipmentBarbell,
			wantKg:     70,
			wantClamp:  safety.ClampRelativeFloor,
		},
		{
			name:       "equipment ceiling beats the relative window",
			adjustedKg: 170,
			originalKg: 160,
			equipment:  taxonomy.EquipmentBarbell,
			wantKg:     150,
			wantClamp:  safety.ClampEquipmentCeiling,
		},
		{
			name:       "dumbbell ceiling",
			adjustedKg: 45,
			originalKg: 42,
			equipment:  taxonomy.EquipmentDumbbell,
			wantKg:     40,
			wantClamp:  safety.ClampEquipmentCeiling,
		},
		{
			name:       "barbell floor",
			adjustedKg: 12,
			originalKg: 15,
			equipment:  taxonomy.EquipmentBarbell,
			wantKg:     20,
			wantClamp:  safety.ClampEquipmentFloor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := safety.ApplySafetyLimits(tt.adjustedKg, tt.originalKg, tt.equipment)
			if got.WeightKg != tt.wantKg {
				t.Errorf("WeightKg = %.1f, want %.1f", got.WeightKg, tt.wantKg)
			}
			if tt.wantClamp == "" {
				if len(got.Clamps) != 0 {
					t.Errorf("unexpected clamps: %+v", got.Clamps)
				}
				return
			}
			found := false
			for _, clamp := range got.Clamps {
				if clamp.Kind == tt.wantClamp {
					found = true
					if clamp.Reason == "" {
						t.Error("clamp has no reason")
					}
				}
			}
			if !found {
				t.Errorf("clamp %s not recorded, got %+v", tt.wantClamp, got.Clamps)
			}
		})
	}
}

func TestRoundToPlate(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 1.2, want: 0},
		{in: 1.3, want: 2.5},
		{in: 61.2, want: 60},
		{in: 63.7, want: 62.5},
		{in: 63.8, want: 65},
		{in: 100, want: 100},
	}

	for _, tt := range tests {
		if got := safety.RoundToPlate(tt.in); got != tt.want {
			t.Errorf("RoundToPlate(%.1f) = %.1f, want %.1f", tt.in, got, tt.want)
		}
	}
}

func TestApplyExperienceLimits(t *testing.T) {
	tests := []struct {
		name       string
		weightKg   float64
		experience taxonomy.Experience
		exercise   string
		wantKg     float64
		wantClamp  bool
	}{
		{
			name:       "beginner squat capped",
			weightKg:   120,
			experience: taxonomy.ExperienceBeginner,
			exercise:   "Barbell Back Squat",
			wantKg:     80,
			wantClamp:  true,
		},
		{
			name:       "advanced squat passes",
			weightKg:   120,
			experience: taxonomy.ExperienceAdvanced,
			exercise:   "Barbell Back Squat",
			wantKg:     120,
			wantClamp:  false,
		},
		{
			name:       "intermediate bench capped",
			weightKg:   110,
			experience: taxonomy.ExperienceIntermediate,
			exercise:   "Dumbbell Bench Press",
			wantKg:     100,
			wantClamp:  true,
		},
		{
			name:       "beginner deadlift below the cap passes",
			weightKg:   90,
			experience: taxonomy.ExperienceBeginner,
			exercise:   "Barbell Deadlift",
			wantKg:     90,
			wantClamp:  false,
		},
		{
			name:       "unlisted exercise passes through",
			weightKg:   500,
			experience: taxonomy.ExperienceBeginner,
			exercise:   "Dumbbell Lateral Raise",
			wantKg:     500,
			wantClamp:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamp := safety.ApplyExperienceLimits(tt.weightKg, tt.experience, tt.exercise)
			if got != tt.wantKg {
				t.Errorf("weight = %.1f, want %.1f", got, tt.wantKg)
			}
			if (clamp != nil) != tt.wantClamp {
				t.Errorf("clamp = %+v, wantClamp %v", clamp, tt.wantClamp)
			}
			if clamp != nil && clamp.Kind != safety.ClampExperience {
				t.Errorf("clamp kind = %s, want %s", clamp.Kind, safety.ClampExperience)
			}
		})
	}
}

func TestExperienceCeilingsIncrease(t *testing.T) {
	lifts := []string{"Barbell Deadlift", "Barbell Back Squat", "Barbell Bench Press",
		"Overhead Press", "Barbell Row"}
	levels := []taxonomy.Experience{
		taxonomy.ExperienceBeginner, taxonomy.ExperienceIntermediate, taxonomy.ExperienceAdvanced,
	}

	const probe = 1000.0
	for _, lift := range lifts {
		previous := 0.0
		for _, level := range levels {
			capped, clamp := safety.ApplyExperienceLimits(probe, level, lift)
			if clamp == nil {
				t.Fatalf("%s at %s: expected the %0.f kg probe to be capped", lift, level, probe)
			}
			if capped <= previous {
				t.Errorf("%s: %s ceiling %.0f not above %s ceiling %.0f",
					lift, level, capped, levels[0], previous)
			}
			previous = capped
		}
	}
}
