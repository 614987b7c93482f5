// Package progression decides when and how an exercise's prescription should
// advance. Decisions are conservative: progression must be earned by recent
// performance, and stagnation eventually forces a deload rather than letting
// a user grind a stale weight forever.
package progression

import "time"

// FormQuality is the user's self-rated movement quality for a session.
type FormQuality string

// Form quality ratings.
const (
	FormExcellent  FormQuality = "excellent"
	FormGood       FormQuality = "good"
	FormAcceptable FormQuality = "acceptable"
	FormPoor       FormQuality = "poor"
)

// Score maps a form rating onto the 1..4 scale the decision thresholds use.
// Unknown ratings score as acceptable.
func (f FormQuality) Score() int {
	switch f {
	case FormExcellent:
		return 4
	case FormGood:
		return 3
	case FormAcceptable:
		return 2
	case FormPoor:
		return 1
	default:
		return 2
	}
}

// SetResult is the logged outcome of one working set.
type SetResult struct {
	SetID        string
	WeightKg     float64
	TargetReps   int
	AchievedReps int
	RPE          float64
}

// PerformanceRecord is one exercise session's logged outcome.
type PerformanceRecord struct {
	ID           int64
	ExerciseName string
	PerformedAt  time.Time
	Sets         []SetResult
	Form         FormQuality
}

// State is the progression state machine position for one exercise.
type State string

// Progression states. Hold is the resting state; ReadyToProgress marks an
// earned advancement that has not been applied yet; Progressed is the
// transient state right after applying one; NeedsDeload demands a reduction
// before anything else.
const (
	StateHold            State = "hold"
	StateReadyToProgress State = "ready-to-progress"
	StateProgressed      State = "progressed"
	StateNeedsDeload     State = "needs-deload"
)

// Axis names which dimension of the prescription a suggestion moves.
type Axis string

// Progression axes. AxisHold means no change this session.
const (
	AxisWeight Axis = "weight"
	AxisReps   Axis = "reps"
	AxisSets   Axis = "sets"
	AxisDeload Axis = "deload"
	AxisHold   Axis = "hold"
)

// Confidence grades how strongly the evidence supports a suggestion.
type Confidence string

// Confidence grades.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ExerciseProgression is the persistent per-user per-exercise progression
// state.
type ExerciseProgression struct {
	ExerciseName             string
	WeightKg                 float64
	TargetReps               int
	Sets                     int
	State                    State
	ConsecutiveFailures      int
	SessionsSinceProgression int
	LastProgressedAt         time.Time
}

// Suggestion is the engine's recommendation for the next session. The New*
// fields always carry the full next prescription, including the unchanged
// dimensions.
type Suggestion struct {
	Axis            Axis
	NewWeightKg     float64
	NewTargetReps   int
	NewSets         int
	Confidence      Confidence
	ConfidenceScore float64
	Rationale       []string
}
