// Package taxonomy classifies exercise names into movement-pattern
// categories and selects representative exercises for assessments.
package taxonomy

import "strings"

// MovementCategory is the biomechanical grouping used to decide which
// exercises can substitute for each other.
type MovementCategory string

// Movement category constants.
const (
	CategoryHorizontalPush MovementCategory = "horizontal-push"
	CategoryVerticalPush   MovementCategory = "vertical-push"
	CategoryHorizontalPull MovementCategory = "horizontal-pull"
	CategoryVerticalPull   MovementCategory = "vertical-pull"
	CategoryKneeDominant   MovementCategory = "knee-dominant"
	CategoryHipDominant    MovementCategory = "hip-dominant"
	CategorySingleLeg      MovementCategory = "single-leg"
	CategoryAccessory      MovementCategory = "accessory"
	CategoryCore           MovementCategory = "core"
)

// EquipmentType identifies how an exercise is loaded.
type EquipmentType string

// Equipment type constants.
const (
	EquipmentBarbell    EquipmentType = "barbell"
	EquipmentDumbbell   EquipmentType = "dumbbell"
	EquipmentMachine    EquipmentType = "machine"
	EquipmentBodyweight EquipmentType = "bodyweight"
)

// Difficulty rates how demanding an exercise is to perform with good form.
type Difficulty string

// Difficulty constants.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Experience is the user's self-reported training experience.
type Experience string

// Experience level constants.
const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// EquipmentAccess describes what equipment the user can train with.
type EquipmentAccess string

// Equipment access constants.
const (
	AccessFullGym        EquipmentAccess = "full-gym"
	AccessHomeDumbbells  EquipmentAccess = "home-dumbbells"
	AccessBodyweightOnly EquipmentAccess = "bodyweight-only"
)

// UserContext carries the user traits that influence exercise selection.
type UserContext struct {
	Experience Experience
	Access     EquipmentAccess
}

// ExerciseDefinition is a static classification of one exercise. The seed
// table is fixed at startup and read-only afterwards.
type ExerciseDefinition struct {
	Name           string
	Category       MovementCategory
	Equipment      EquipmentType
	PrimaryMuscles []string
	IsCompound     bool
	Difficulty     Difficulty
	// Inferred marks definitions produced by Infer for names missing from
	// the table. Callers should treat these as a degraded match.
	Inferred bool
}

// PriorityOrder drives the order in which representative exercises are picked
// when building an assessment. Biomechanically fundamental patterns first.
//
//nolint:gochecknoglobals // fixed seed data, never mutated.
var PriorityOrder = []MovementCategory{
	CategoryKneeDominant,
	CategoryHipDominant,
	CategoryHorizontalPush,
	CategoryVerticalPush,
	CategoryHorizontalPull,
	CategoryVerticalPull,
	CategorySingleLeg,
	CategoryAccessory,
	CategoryCore,
}

// Lookup resolves an exercise name against the seed table. Exact
// case-insensitive match first, then substring containment in either
// direction. When several entries substring-match, the first table entry in
// insertion order wins; there is no best-match guarantee.
func Lookup(name string) (ExerciseDefinition, bool) {
	for _, def := range exerciseTable {
		if strings.EqualFold(def.Name, name) {
			return def, true
		}
	}

	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return ExerciseDefinition{}, false //nolint:exhaustruct // zero value on miss.
	}
	for _, def := range exerciseTable {
		defLower := strings.ToLower(def.Name)
		if strings.Contains(defLower, lowered) || strings.Contains(lowered, defLower) {
			return def, true
		}
	}
	return ExerciseDefinition{}, false //nolint:exhaustruct // zero value on miss.
}

// Infer builds a best-effort definition for a name missing from the table so
// that an unmapped exercise degrades gracefully instead of failing the
// request. The result is flagged Inferred.
func Infer(name string) ExerciseDefinition {
	lowered := strings.ToLower(name)

	category := CategoryAccessory
	for _, rule := range inferenceRules {
		if containsAny(lowered, rule.keywords) {
			category = rule.category
			break
		}
	}

	equipment := EquipmentDumbbell // conservative default: smallest load steps.
	switch {
	case strings.Contains(lowered, "barbell"):
		equipment = EquipmentBarbell
	case strings.Contains(lowered, "dumbbell"):
		equipment = EquipmentDumbbell
	case strings.Contains(lowered, "machine"), strings.Contains(lowered, "cable"):
		equipment = EquipmentMachine
	case strings.Contains(lowered, "bodyweight"), strings.Contains(lowered, "push-up"),
		strings.Contains(lowered, "plank"):
		equipment = EquipmentBodyweight
	}

	return ExerciseDefinition{
		Name:           name,
		Category:       category,
		Equipment:      equipment,
		PrimaryMuscles: nil,
		IsCompound:     false,
		Difficulty:     DifficultyIntermediate,
		Inferred:       true,
	}
}

// ByCategory returns the table entries for the given category in insertion
// order.
func ByCategory(category MovementCategory) []ExerciseDefinition {
	var defs []ExerciseDefinition
	for _, def := range exerciseTable {
		if def.Category == category {
			defs = append(defs, def)
		}
	}
	return defs
}

// All returns a copy of the whole seed table.
func All() []ExerciseDefinition {
	defs := make([]ExerciseDefinition, len(exerciseTable))
	copy(defs, exerciseTable)
	return defs
}

// Representative-selection scoring constants.
const (
	infeasibleEquipmentPenalty = 3.0
	difficultyExactBonus       = 2.0
	difficultyAdjacentBonus    = 1.0
	compoundBonus              = 2.0
)

// SelectRepresentative picks the exercise the user should self-assess for a
// category. One assessed weight then safely informs every variation in the
// category, which keeps onboarding short. Scoring considers equipment
// feasibility, difficulty match against experience, a flat compound bonus,
// and a small barbell > dumbbell > machine preference. Highest score wins,
// ties break by input order.
func SelectRepresentative(
	category MovementCategory,
	candidates []ExerciseDefinition,
	user UserContext,
) (ExerciseDefinition, bool) {
	var (
		best      ExerciseDefinition
		bestScore float64
		found     bool
	)

	for _, def := range candidates {
		if def.Category != category {
			continue
		}
		score := scoreCandidate(def, user)
		if !found || score > bestScore {
			best = def
			bestScore = score
			found = true
		}
	}

	return best, found
}

func scoreCandidate(def ExerciseDefinition, user UserContext) float64 {
	score := equipmentFeasibility(def.Equipment, user.Access)
	score += difficultyMatch(def.Difficulty, user.Experience)
	if def.IsCompound {
		score += compoundBonus
	}
	score += equipmentPreference(def.Equipment)
	return score
}

// equipmentFeasibility penalises exercises the user likely cannot load.
// Bodyweight is always feasible.
func equipmentFeasibility(equipment EquipmentType, access EquipmentAccess) float64 {
	switch equipment {
	case EquipmentBodyweight:
		return 0
	case EquipmentBarbell, EquipmentMachine:
		if access != AccessFullGym {
			return -infeasibleEquipmentPenalty
		}
		return 0
	case EquipmentDumbbell:
		if access == AccessBodyweightOnly {
			return -infeasibleEquipmentPenalty
		}
		return 0
	default:
		return 0
	}
}

func difficultyMatch(difficulty Difficulty, experience Experience) float64 {
	distance := levelIndex(string(difficulty)) - levelIndex(string(experience))
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return difficultyExactBonus
	case 1:
		return difficultyAdjacentBonus
	default:
		return 0
	}
}

// equipmentPreference is a small tiebreaker favouring barbell over dumbbell
// over machine. Barbell lifts transfer best onto their variations.
func equipmentPreference(equipment EquipmentType) float64 {
	switch equipment {
	case EquipmentBarbell:
		return 0.75
	case EquipmentDumbbell:
		return 0.5
	case EquipmentMachine:
		return 0.25
	case EquipmentBodyweight:
		return 0
	default:
		return 0
	}
}

func levelIndex(level string) int {
	switch level {
	case "beginner":
		return 0
	case "intermediate":
		return 1
	case "advanced":
		return 2
	default:
		return 1
	}
}

type inferenceRule struct {
	keywords []string
	category MovementCategory
}

// Rule order matters: earlier rules win, so the more specific patterns come
// first ("romanian deadlift" must not fall through to knee-dominant).
//
//nolint:gochecknoglobals // fixed seed data, never mutated.
var inferenceRules = []inferenceRule{
	{keywords: []string{"deadlift", "hip thrust", "glute", "hinge", "good morning"}, category: CategoryHipDominant},
	{keywords: []string{"lunge", "split squat", "step-up", "single-leg", "pistol"}, category: CategorySingleLeg},
	{keywords: []string{"squat", "leg press", "leg extension"}, category: CategoryKneeDominant},
	{keywords: []string{"bench", "push-up", "chest press", "chest fly"}, category: CategoryHorizontalPush},
	{keywords: []string{"overhead", "shoulder press", "military", "pike"}, category: CategoryVerticalPush},
	{keywords: []string{"pulldown", "pull-up", "pullup", "chin-up", "chinup", "lat"}, category: CategoryVerticalPull},
	{keywords: []string{"row"}, category: CategoryHorizontalPull},
	{keywords: []string{"plank", "crunch", "rollout", "dead bug", "leg raise"}, category: CategoryCore},
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
