package progression

import (
	"fmt"
	"math"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/safety"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

// Progression readiness thresholds, evaluated over the trailing window.
const (
	trailingWindow         = 3
	minSessionsForDecision = 2

	readySuccessRate = 0.85
	readyMaxRPE      = 8.0
	readyMinForm     = 3.0
	readyMinWeeks    = 2.0

	// Stricter bar for advancing reps instead of weight.
	repAxisSuccessRate = 0.90
	repAxisMaxRPE      = 7.0
	repCeiling         = 15

	setAxisMaxSets     = 5
	setAxisMinSessions = 6
)

// Deload triggers.
const (
	deloadFailureStreak = 3
	deloadRPE           = 9.5
	deloadStaleWeeks    = 8.0
	// deloadFactor and deloadMaxDropKg bound the reduction: 15% off, but
	// never more than 5 kg in one step.
	deloadFactor    = 0.85
	deloadMaxDropKg = 5.0
)

// sessionSuccessThreshold is the per-session set completion rate below which
// the whole session counts as a failure for the deload streak. Two of three
// sets must hit their target.
const sessionSuccessThreshold = 2.0 / 3.0

// Confidence tier cutoffs on the trailing set completion rate.
const (
	confidenceHighRate   = 0.9
	confidenceMediumRate = 0.8
)

// trailingMetrics summarises the most recent sessions for one exercise.
type trailingMetrics struct {
	sessions    int
	successRate float64
	meanRPE     float64
	meanForm    float64
}

// summarize computes the trailing-window metrics from history ordered oldest
// first. Only the newest trailingWindow sessions count.
func summarize(history []PerformanceRecord) trailingMetrics {
	if len(history) > trailingWindow {
		history = history[len(history)-trailingWindow:]
	}

	var (
		setsTotal   int
		setsHit     int
		rpeSum      float64
		formSum     float64
		ratedForm   int
		ratedRPESet int
	)
	for _, record := range history {
		for _, set := range record.Sets {
			setsTotal++
			if set.AchievedReps >= set.TargetReps {
				setsHit++
			}
			if set.RPE > 0 {
				rpeSum += set.RPE
				ratedRPESet++
			}
		}
		formSum += float64(record.Form.Score())
		ratedForm++
	}

	metrics := trailingMetrics{sessions: len(history), successRate: 0, meanRPE: 0, meanForm: 0}
	if setsTotal > 0 {
		metrics.successRate = float64(setsHit) / float64(setsTotal)
	}
	if ratedRPESet > 0 {
		metrics.meanRPE = rpeSum / float64(ratedRPESet)
	}
	if ratedForm > 0 {
		metrics.meanForm = formSum / float64(ratedForm)
	}
	return metrics
}

// SessionSucceeded reports whether a logged session counts as a success for
// the failure streak.
func SessionSucceeded(record PerformanceRecord) bool {
	if len(record.Sets) == 0 {
		return false
	}
	hit := 0
	for _, set := range record.Sets {
		if set.AchievedReps >= set.TargetReps {
			hit++
		}
	}
	return float64(hit)/float64(len(record.Sets)) >= sessionSuccessThreshold
}

// RecordOutcome folds one finished session into the progression state. It
// maintains the failure streak and the sessions-since-progression counter and
// collapses the transient Progressed state back to Hold. A pending
// ReadyToProgress marker also collapses since the evidence behind it changed;
// NeedsDeload sticks until a deload is applied or the next decision clears it.
func RecordOutcome(state *ExerciseProgression, record PerformanceRecord) {
	state.SessionsSinceProgression++
	if SessionSucceeded(record) {
		state.ConsecutiveFailures = 0
	} else {
		state.ConsecutiveFailures++
	}
	if state.State == StateProgressed || state.State == StateReadyToProgress {
		state.State = StateHold
	}
}

// Decide evaluates the trailing history and returns the recommendation for
// the next session. It never mutates state; Apply commits a suggestion.
func Decide(
	state ExerciseProgression,
	history []PerformanceRecord,
	definition taxonomy.ExerciseDefinition,
	user taxonomy.UserContext,
	now time.Time,
) Suggestion {
	metrics := summarize(history)
	weeksSince := weeksBetween(state.LastProgressedAt, now)

	if deload, ok := decideDeload(state, metrics, weeksSince); ok {
		return deload
	}

	if metrics.sessions < minSessionsForDecision {
		return hold(state, metrics, fmt.Sprintf(
			"only %d logged sessions, need %d before progressing",
			metrics.sessions, minSessionsForDecision))
	}

	if !ready(metrics, weeksSince) {
		return hold(state, metrics, holdReason(metrics, weeksSince))
	}

	if weight, ok := decideWeight(state, metrics, definition, user); ok {
		return weight
	}
	if reps, ok := decideReps(state, metrics); ok {
		return reps
	}
	if sets, ok := decideSets(state, metrics); ok {
		return sets
	}

	return hold(state, metrics, "all progression axes are exhausted at the current prescription")
}

// Mark stamps the engine's pending decision onto the state: advancement
// suggestions move it to ReadyToProgress and deloads to NeedsDeload, both
// awaiting the user's consent via Apply. A hold clears any stale marker but
// leaves the transient Progressed state for RecordOutcome to collapse.
func Mark(state ExerciseProgression, suggestion Suggestion) ExerciseProgression {
	switch suggestion.Axis {
	case AxisWeight, AxisReps, AxisSets:
		state.State = StateReadyToProgress
	case AxisDeload:
		state.State = StateNeedsDeload
	case AxisHold:
		if state.State != StateProgressed {
			state.State = StateHold
		}
	}
	return state
}

// Apply commits a suggestion onto the progression state and returns the
// updated copy. Deloads reset the failure streak; advancement resets the
// session counter and stamps the progression time.
func Apply(state ExerciseProgression, suggestion Suggestion, now time.Time) ExerciseProgression {
	switch suggestion.Axis {
	case AxisWeight, AxisReps, AxisSets:
		state.WeightKg = suggestion.NewWeightKg
		state.TargetReps = suggestion.NewTargetReps
		state.Sets = suggestion.NewSets
		state.State = StateProgressed
		state.SessionsSinceProgression = 0
		state.ConsecutiveFailures = 0
		state.LastProgressedAt = now
	case AxisDeload:
		state.WeightKg = suggestion.NewWeightKg
		state.TargetReps = suggestion.NewTargetReps
		state.Sets = suggestion.NewSets
		state.State = StateHold
		state.SessionsSinceProgression = 0
		state.ConsecutiveFailures = 0
		state.LastProgressedAt = now
	case AxisHold:
		state.State = StateHold
	}
	return state
}

func ready(metrics trailingMetrics, weeksSince float64) bool {
	return metrics.successRate >= readySuccessRate &&
		metrics.meanRPE <= readyMaxRPE &&
		metrics.meanForm >= readyMinForm &&
		weeksSince >= readyMinWeeks
}

func holdReason(metrics trailingMetrics, weeksSince float64) string {
	switch {
	case metrics.successRate < readySuccessRate:
		return fmt.Sprintf("set completion %.0f%% below the %.0f%% bar",
			metrics.successRate*100, readySuccessRate*100)
	case metrics.meanRPE > readyMaxRPE:
		return fmt.Sprintf("average effort RPE %.1f above the %.1f bar", metrics.meanRPE, readyMaxRPE)
	case metrics.meanForm < readyMinForm:
		return "form quality below the bar for adding load"
	default:
		return fmt.Sprintf("progressed %.1f weeks ago, waiting for %.0f", weeksSince, readyMinWeeks)
	}
}

func decideDeload(
	state ExerciseProgression,
	metrics trailingMetrics,
	weeksSince float64,
) (Suggestion, bool) {
	var reason string
	switch {
	case state.ConsecutiveFailures >= deloadFailureStreak:
		reason = fmt.Sprintf("%d consecutive failed sessions", state.ConsecutiveFailures)
	case metrics.sessions >= minSessionsForDecision && metrics.meanRPE >= deloadRPE:
		reason = fmt.Sprintf("average effort RPE %.1f signals overreaching", metrics.meanRPE)
	case weeksSince >= deloadStaleWeeks && state.SessionsSinceProgression > 0:
		reason = fmt.Sprintf("no progression for %.0f weeks", weeksSince)
	default:
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}

	newWeight := DeloadWeightKg(state.WeightKg)
	return Suggestion{
		Axis:            AxisDeload,
		NewWeightKg:     newWeight,
		NewTargetReps:   state.TargetReps,
		NewSets:         state.Sets,
		Confidence:      ConfidenceHigh,
		ConfidenceScore: 1,
		Rationale:       []string{reason, fmt.Sprintf("reducing to %.1f kg to rebuild momentum", newWeight)},
	}, true
}

// DeloadWeightKg reduces a working weight by 15%, capped at a 5 kg drop, and
// rounds to plate granularity.
func DeloadWeightKg(weightKg float64) float64 {
	reduced := math.Max(weightKg*deloadFactor, weightKg-deloadMaxDropKg)
	return safety.RoundToPlate(reduced)
}

func decideWeight(
	state ExerciseProgression,
	metrics trailingMetrics,
	definition taxonomy.ExerciseDefinition,
	user taxonomy.UserContext,
) (Suggestion, bool) {
	increment := WeightIncrementKg(definition, user.Experience)
	if increment <= 0 {
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}

	newWeight := state.WeightKg + increment
	capped, clamp := safety.ApplyExperienceLimits(newWeight, user.Experience, state.ExerciseName)
	if clamp != nil && capped <= state.WeightKg {
		// Already at the experience ceiling; weight cannot move.
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}

	score, grade := confidence(metrics)
	rationale := []string{
		fmt.Sprintf("completed %.0f%% of target sets at RPE %.1f with solid form",
			metrics.successRate*100, metrics.meanRPE),
		fmt.Sprintf("adding %.2f kg", capped-state.WeightKg),
	}
	if clamp != nil {
		rationale = append(rationale, clamp.Reason)
	}

	return Suggestion{
		Axis:            AxisWeight,
		NewWeightKg:     capped,
		NewTargetReps:   state.TargetReps,
		NewSets:         state.Sets,
		Confidence:      grade,
		ConfidenceScore: score,
		Rationale:       rationale,
	}, true
}

func decideReps(state ExerciseProgression, metrics trailingMetrics) (Suggestion, bool) {
	if state.TargetReps >= repCeiling {
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}
	if metrics.successRate < repAxisSuccessRate || metrics.meanRPE > repAxisMaxRPE {
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}

	score, grade := confidence(metrics)
	return Suggestion{
		Axis:            AxisReps,
		NewWeightKg:     state.WeightKg,
		NewTargetReps:   state.TargetReps + 1,
		NewSets:         state.Sets,
		Confidence:      grade,
		ConfidenceScore: score,
		Rationale: []string{
			"load cannot move on this exercise, advancing the rep target instead",
			fmt.Sprintf("target rises from %d to %d reps", state.TargetReps, state.TargetReps+1),
		},
	}, true
}

func decideSets(state ExerciseProgression, metrics trailingMetrics) (Suggestion, bool) {
	if state.Sets >= setAxisMaxSets {
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}
	if state.SessionsSinceProgression < setAxisMinSessions {
		return Suggestion{}, false //nolint:exhaustruct // zero value on miss.
	}

	score, grade := confidence(metrics)
	return Suggestion{
		Axis:            AxisSets,
		NewWeightKg:     state.WeightKg,
		NewTargetReps:   state.TargetReps,
		NewSets:         state.Sets + 1,
		Confidence:      grade,
		ConfidenceScore: score,
		Rationale: []string{
			"weight and reps are both at their ceilings, adding a set for volume",
			fmt.Sprintf("sets rise from %d to %d", state.Sets, state.Sets+1),
		},
	}, true
}

func hold(state ExerciseProgression, metrics trailingMetrics, reason string) Suggestion {
	score, grade := confidence(metrics)
	return Suggestion{
		Axis:            AxisHold,
		NewWeightKg:     state.WeightKg,
		NewTargetReps:   state.TargetReps,
		NewSets:         state.Sets,
		Confidence:      grade,
		ConfidenceScore: score,
		Rationale:       []string{reason},
	}
}

// WeightIncrementKg is the load step for one progression. Experienced lifters
// take smaller steps as linear gains taper off, and isolation work takes half
// the compound step. Bodyweight cannot add load.
func WeightIncrementKg(definition taxonomy.ExerciseDefinition, experience taxonomy.Experience) float64 {
	if definition.Equipment == taxonomy.EquipmentBodyweight {
		return 0
	}
	var base float64
	switch experience {
	case taxonomy.ExperienceBeginner:
		base = 2.5
	case taxonomy.ExperienceIntermediate:
		base = 1.25
	case taxonomy.ExperienceAdvanced:
		base = 0.625
	default:
		base = 1.25
	}
	if !definition.IsCompound {
		base /= 2
	}
	return base
}

// confidence grades the evidence behind a suggestion. The tier follows the
// trailing set completion rate; the score additionally folds in form and how
// comfortably the effort sat under the readiness bar.
func confidence(metrics trailingMetrics) (float64, Confidence) {
	rpeComfort := clamp01((9 - metrics.meanRPE) / 3)
	score := clamp01(0.5*metrics.successRate + 0.3*(metrics.meanForm/4) + 0.2*rpeComfort)

	switch {
	case metrics.successRate >= confidenceHighRate:
		return score, ConfidenceHigh
	case metrics.successRate >= confidenceMediumRate:
		return score, ConfidenceMedium
	default:
		return score, ConfidenceLow
	}
}

func weeksBetween(from, to time.Time) float64 {
	if from.IsZero() {
		return readyMinWeeks
	}
	return to.Sub(from).Hours() / (24 * 7)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
