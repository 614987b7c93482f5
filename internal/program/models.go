// Package program is the coaching domain service. It ties exercise
// classification, protocol calculation, weight propagation, and progression
// decisions to per-user persistent state.
package program

import (
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/progression"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/protocol"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/safety"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

// Profile is the per-user coaching configuration.
type Profile struct {
	ID         int64
	Experience taxonomy.Experience
	Access     taxonomy.EquipmentAccess
	Goal       protocol.Goal
}

// AssessmentItem is one exercise the user should find a comfortable weight
// for during onboarding. One item per movement category keeps the assessment
// short; the assessed weight then seeds every variation in the category.
type AssessmentItem struct {
	Category taxonomy.MovementCategory
	Exercise taxonomy.ExerciseDefinition
	// SuggestedReps is the rep count the user should gauge comfort at.
	SuggestedReps int
}

// PropagatedProtocol is the result of extrapolating an assessed weight onto a
// related exercise: the derived protocol plus the safety diagnostics that
// shaped its weight.
type PropagatedProtocol struct {
	Protocol protocol.ExerciseProtocol
	Factor   float64
	Clamps   []safety.Clamp
	// Inferred marks protocols built on a definition guessed from the name
	// rather than found in the exercise table.
	Inferred bool
}

// ProgressionStatus pairs the stored progression state with the engine's
// recommendation for the next session.
type ProgressionStatus struct {
	State      progression.ExerciseProgression
	Suggestion progression.Suggestion
}
