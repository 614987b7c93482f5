// Package protocol derives full warm-up and working-set protocols from a
// user's comfortable working weight. All functions are pure: identical
// inputs yield byte-identical protocols.
package protocol

import (
	"fmt"
	"math"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

// Goal is the training focus the protocol is tuned for.
type Goal string

// Goal constants.
const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
)

// WarmupStage names the phase of the load ramp-up a warm-up set belongs to.
type WarmupStage string

// Warm-up stage constants.
const (
	StageMovementPrep WarmupStage = "movement-prep"
	StageActivation   WarmupStage = "activation"
	StagePotentiation WarmupStage = "potentiation"
)

// WarmupSet is one ramp-up set. Derived, never user input; regenerated
// whenever the working weight or goal changes.
type WarmupSet struct {
	ID               string
	WeightKg         float64
	MinReps          int
	MaxReps          int
	RestSeconds      int
	Stage            WarmupStage
	PercentOfWorking float64
	Description      string
}

// WorkingSet is one working set with its target effort.
type WorkingSet struct {
	ID          string
	WeightKg    float64
	MinReps     int
	MaxReps     int
	RestSeconds int
	TargetRPE   int
	Description string
}

// ExerciseProtocol is the complete set prescription for one exercise.
// Warm-up sets always precede working sets in execution order, and warm-up
// weights are strictly increasing up to (but never reaching) the working
// weight.
type ExerciseProtocol struct {
	ExerciseName          string
	Equipment             taxonomy.EquipmentType
	Goal                  Goal
	WorkingWeightKg       float64
	TargetReps            int
	WarmupSets            []WarmupSet
	WorkingSets           []WorkingSet
	TotalEstimatedMinutes int
	MuscleActivation      []string
	FormCues              []string
}

const (
	workingSetCount = 3
	// setOverheadSeconds is the execution time budgeted per set on top of
	// the rest periods.
	setOverheadSeconds = 45
	// minimumWeightMarginKg is added to the empty weight when the supplied
	// working weight is at or below it. Documented minimum, not an error:
	// it prevents degenerate zero-percentage warm-ups.
	minimumWeightMarginKg = 10
	// warmupIncrementKg is the rounding granularity for warm-up weights.
	warmupIncrementKg = 0.5
)

// restIntensity keys the rest-period table alongside the goal.
type restIntensity int

const (
	restWarmupLight restIntensity = iota
	restWarmupModerate
	restWarmupHeavy
	restWarmupPotentiation
	restWorking
)

// restSecondsTable holds rest periods in seconds by goal and context.
//
//nolint:gochecknoglobals // fixed seed data, never mutated.
var restSecondsTable = map[Goal][5]int{
	GoalStrength:    {30, 60, 90, 180, 180},
	GoalHypertrophy: {30, 45, 60, 90, 90},
	GoalEndurance:   {20, 30, 45, 60, 60},
}

func restSeconds(goal Goal, intensity restIntensity) int {
	row, ok := restSecondsTable[goal]
	if !ok {
		row = restSecondsTable[GoalHypertrophy]
	}
	return row[intensity]
}

// EmptyWeightKg is the unloaded weight of the equipment: 20 kg for a barbell,
// zero for everything else.
func EmptyWeightKg(equipment taxonomy.EquipmentType) float64 {
	if equipment == taxonomy.EquipmentBarbell {
		return 20
	}
	return 0
}

// warmupRung describes one step of the fixed percentage ladder. A percent of
// zero means the equipment's empty weight.
type warmupRung struct {
	percent      float64
	minReps      int
	maxReps      int
	stage        WarmupStage
	intensity    restIntensity
	strengthOnly bool
	description  string
}

//nolint:gochecknoglobals // fixed seed data, never mutated.
var warmupLadder = []warmupRung{
	{percent: 0, minReps: 8, maxReps: 10, stage: StageMovementPrep, intensity: restWarmupLight,
		strengthOnly: false, description: "Movement rehearsal with the empty bar"},
	{percent: 50, minReps: 6, maxReps: 8, stage: StageActivation, intensity: restWarmupLight,
		strengthOnly: false, description: "Light activation at half the working weight"},
	{percent: 65, minReps: 4, maxReps: 5, stage: StageActivation, intensity: restWarmupModerate,
		strengthOnly: false, description: "Progressive loading"},
	{percent: 80, minReps: 2, maxReps: 3, stage: StagePotentiation, intensity: restWarmupHeavy,
		strengthOnly: false, description: "Neural preparation"},
	{percent: 90, minReps: 1, maxReps: 2, stage: StagePotentiation, intensity: restWarmupPotentiation,
		strengthOnly: true, description: "Potentiation single before top sets"},
}

// NormalizeWorkingWeight raises a working weight that is at or below the
// equipment's empty weight to the documented minimum.
func NormalizeWorkingWeight(workingWeightKg float64, equipment taxonomy.EquipmentType) float64 {
	empty := EmptyWeightKg(equipment)
	if workingWeightKg <= empty {
		return empty + minimumWeightMarginKg
	}
	return workingWeightKg
}

// CalculateWarmupSets derives the warm-up ladder for a working weight. Each
// rung is emitted only when its weight exceeds the previous rung's, so the
// returned weights are strictly increasing and always below the working
// weight. The 90% potentiation rung only appears for the strength goal.
func CalculateWarmupSets(
	workingWeightKg float64,
	equipment taxonomy.EquipmentType,
	goal Goal,
) []WarmupSet {
	workingWeightKg = NormalizeWorkingWeight(workingWeightKg, equipment)
	empty := EmptyWeightKg(equipment)

	var sets []WarmupSet
	previous := 0.0
	for _, rung := range warmupLadder {
		if rung.strengthOnly && goal != GoalStrength {
			continue
		}

		weight := empty
		if rung.percent > 0 {
			weight = roundTo(workingWeightKg*rung.percent/100, warmupIncrementKg)
		}
		if weight <= 0 {
			// Unloaded equipment has no movement-prep rung.
			continue
		}
		if len(sets) > 0 && weight <= previous {
			continue
		}

		percent := rung.percent
		if percent == 0 && workingWeightKg > 0 {
			percent = roundTo(weight/workingWeightKg*100, 1)
		}

		sets = append(sets, WarmupSet{
			ID:               fmt.Sprintf("warmup-%d", len(sets)+1),
			WeightKg:         weight,
			MinReps:          rung.minReps,
			MaxReps:          rung.maxReps,
			RestSeconds:      restSeconds(goal, rung.intensity),
			Stage:            rung.stage,
			PercentOfWorking: percent,
			Description:      rung.description,
		})
		previous = weight
	}

	return sets
}

// workingRPEs returns the target RPE ladder across the three working sets.
func workingRPEs(goal Goal) [workingSetCount]int {
	switch goal {
	case GoalStrength:
		return [workingSetCount]int{8, 9, 9}
	case GoalEndurance:
		return [workingSetCount]int{6, 7, 8}
	case GoalHypertrophy:
		return [workingSetCount]int{7, 8, 9}
	default:
		return [workingSetCount]int{7, 8, 9}
	}
}

// calculateWorkingSets builds the straight-sets prescription: three sets at
// full weight with rising RPE targets. For non-strength goals the rep window
// narrows downward across sets, modeling fatigue-driven rep decay.
func calculateWorkingSets(workingWeightKg float64, targetReps int, goal Goal) []WorkingSet {
	rpes := workingRPEs(goal)
	rest := restSeconds(goal, restWorking)

	repWindows := [workingSetCount][2]int{
		{targetReps, targetReps},
		{targetReps, targetReps},
		{clampMin(targetReps-1, 1), targetReps},
	}
	if goal != GoalStrength {
		repWindows[1] = [2]int{clampMin(targetReps-2, 1), targetReps}
		repWindows[2] = [2]int{clampMin(targetReps-3, 1), clampMin(targetReps-1, 1)}
	}

	descriptions := [workingSetCount]string{
		"Top set at the full working weight",
		"Repeat the weight; effort rises as fatigue accumulates",
		"Final set close to the rep ceiling for the day",
	}

	sets := make([]WorkingSet, 0, workingSetCount)
	for i := range workingSetCount {
		sets = append(sets, WorkingSet{
			ID:          fmt.Sprintf("working-%d", i+1),
			WeightKg:    workingWeightKg,
			MinReps:     repWindows[i][0],
			MaxReps:     repWindows[i][1],
			RestSeconds: rest,
			TargetRPE:   rpes[i],
			Description: descriptions[i],
		})
	}
	return sets
}

// CreateExerciseProtocol is the deterministic transform from an assessed
// working weight to the full set prescription for one exercise.
func CreateExerciseProtocol(
	exerciseName string,
	workingWeightKg float64,
	targetReps int,
	equipment taxonomy.EquipmentType,
	goal Goal,
) ExerciseProtocol {
	workingWeightKg = NormalizeWorkingWeight(workingWeightKg, equipment)

	warmups := CalculateWarmupSets(workingWeightKg, equipment, goal)
	workings := calculateWorkingSets(workingWeightKg, targetReps, goal)

	var muscles, cues []string
	if def, ok := taxonomy.Lookup(exerciseName); ok {
		muscles = def.PrimaryMuscles
		cues = FormCues(def.Category)
	}

	return ExerciseProtocol{
		ExerciseName:          exerciseName,
		Equipment:             equipment,
		Goal:                  goal,
		WorkingWeightKg:       workingWeightKg,
		TargetReps:            targetReps,
		WarmupSets:            warmups,
		WorkingSets:           workings,
		TotalEstimatedMinutes: estimateMinutes(warmups, workings),
		MuscleActivation:      muscles,
		FormCues:              cues,
	}
}

// estimateMinutes sums all rest periods plus a flat execution overhead per
// set and rounds to whole minutes.
func estimateMinutes(warmups []WarmupSet, workings []WorkingSet) int {
	totalSeconds := 0
	for _, set := range warmups {
		totalSeconds += set.RestSeconds
	}
	for _, set := range workings {
		totalSeconds += set.RestSeconds
	}
	totalSeconds += setOverheadSeconds * (len(warmups) + len(workings))

	minutes := int(math.Round(float64(totalSeconds) / 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// FormCues returns the standard coaching cues for a movement category.
func FormCues(category taxonomy.MovementCategory) []string {
	switch category {
	case taxonomy.CategoryKneeDominant:
		return []string{"Brace before descending", "Knees track over toes", "Drive through the whole foot"}
	case taxonomy.CategoryHipDominant:
		return []string{"Hinge at the hips, soft knees", "Keep the bar close", "Neutral spine throughout"}
	case taxonomy.CategoryHorizontalPush:
		return []string{"Shoulder blades pinned back", "Elbows at roughly 45 degrees", "Full range of motion"}
	case taxonomy.CategoryVerticalPush:
		return []string{"Ribs down, glutes tight", "Press slightly back over mid-foot", "Lock out overhead"}
	case taxonomy.CategoryHorizontalPull:
		return []string{"Pull with the elbows", "Squeeze the shoulder blades", "No torso momentum"}
	case taxonomy.CategoryVerticalPull:
		return []string{"Start from a dead hang", "Lead with the chest", "Control the descent"}
	case taxonomy.CategorySingleLeg:
		return []string{"Front knee stays stable", "Torso tall", "Push through the front heel"}
	case taxonomy.CategoryCore:
		return []string{"Brace as if taking a punch", "No lower-back sag", "Breathe behind the brace"}
	case taxonomy.CategoryAccessory:
		return []string{"Strict form over load", "Full stretch and squeeze"}
	default:
		return []string{"Controlled tempo", "Stop the set when form breaks down"}
	}
}

func clampMin(v, minimum int) int {
	if v < minimum {
		return minimum
	}
	return v
}

func roundTo(value, increment float64) float64 {
	return math.Round(value/increment) * increment
}
