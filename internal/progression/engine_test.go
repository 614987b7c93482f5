package progression_test

import (
	"strings"
	"testing"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/progression"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

var now = time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)

func record(daysAgo int, weightKg float64, targetReps int, achieved [3]int, rpe float64, form progression.FormQuality) progression.PerformanceRecord {
	sets := make([]progression.SetResult, 0, len(achieved))
	for _, reps := range achieved {
		sets = append(sets, progression.SetResult{
			SetID:        "",
			WeightKg:     weightKg,
			TargetReps:   targetReps,
			AchievedReps: reps,
			RPE:          rpe,
		})
	}
	return progression.PerformanceRecord{
		ID:           0,
		ExerciseName: "",
		PerformedAt:  now.AddDate(0, 0, -daysAgo),
		Sets:         sets,
		Form:         form,
	}
}

func strongHistory(weightKg float64, targetReps int, rpe float64) []progression.PerformanceRecord {
	hit := [3]int{targetReps, targetReps, targetReps}
	return []progression.PerformanceRecord{
		record(14, weightKg, targetReps, hit, rpe, progression.FormExcellent),
		record(7, weightKg, targetReps, hit, rpe, progression.FormExcellent),
		record(2, weightKg, targetReps, hit, rpe, progression.FormExcellent),
	}
}

func intermediateGymUser() taxonomy.UserContext {
	return taxonomy.UserContext{
		Experience: taxonomy.ExperienceIntermediate,
		Access:     taxonomy.AccessFullGym,
	}
}

func mustLookup(t *testing.T, name string) taxonomy.ExerciseDefinition {
	t.Helper()
	def, ok := taxonomy.Lookup(name)
	if !ok {
		t.Fatalf("exercise %q not in the seed table", name)
	}
	return def
}

func TestDecideWeightProgression(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Bench Press",
		WeightKg:                 80,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 4,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}

	got := progression.Decide(
		state, strongHistory(80, 8, 7),
		mustLookup(t, "Barbell Bench Press"), intermediateGymUser(), now)

	if got.Axis != progression.AxisWeight {
		t.Fatalf("Axis = %s, want %s (rationale: %v)", got.Axis, progression.AxisWeight, got.Rationale)
	}
	if got.NewWeightKg != 81.25 {
		t.Errorf("NewWeightKg = %.2f, want 81.25 for an intermediate lifter", got.NewWeightKg)
	}
	if got.NewTargetReps != 8 || got.NewSets != 3 {
		t.Errorf("reps/sets changed: %d/%d, want 8/3", got.NewTargetReps, got.NewSets)
	}
	if got.Confidence != progression.ConfidenceHigh {
		t.Errorf("Confidence = %s (score %.2f), want %s",
			got.Confidence, got.ConfidenceScore, progression.ConfidenceHigh)
	}
	if len(got.Rationale) == 0 {
		t.Error("expected a rationale")
	}
}

func TestConfidenceTierFollowsSuccessRate(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Bench Press",
		WeightKg:                 80,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 3,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}

	tests := []struct {
		name     string
		lastSets [3]int
		rpe      float64
		want     progression.Confidence
	}{
		{
			name:     "eight of nine sets grades medium",
			lastSets: [3]int{8, 8, 7},
			rpe:      7.5,
			want:     progression.ConfidenceMedium,
		},
		{
			name:     "full completion at the effort bar grades high",
			lastSets: [3]int{8, 8, 8},
			rpe:      8,
			want:     progression.ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := [3]int{8, 8, 8}
			history := []progression.PerformanceRecord{
				record(14, 80, 8, hit, tt.rpe, progression.FormGood),
				record(7, 80, 8, hit, tt.rpe, progression.FormGood),
				record(2, 80, 8, tt.lastSets, tt.rpe, progression.FormGood),
			}

			got := progression.Decide(
				state, history, mustLookup(t, "Barbell Bench Press"), intermediateGymUser(), now)

			if got.Axis != progression.AxisWeight {
				t.Fatalf("Axis = %s, want %s (rationale: %v)", got.Axis, progression.AxisWeight, got.Rationale)
			}
			if got.Confidence != tt.want {
				t.Errorf("Confidence = %s (score %.2f), want %s",
					got.Confidence, got.ConfidenceScore, tt.want)
			}
		})
	}
}

func TestDecideHoldsOnHighEffort(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Back Squat",
		WeightKg:                 100,
		TargetReps:               5,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 3,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}

	got := progression.Decide(
		state, strongHistory(100, 5, 9),
		mustLookup(t, "Barbell Back Squat"), intermediateGymUser(), now)

	if got.Axis != progression.AxisHold {
		t.Fatalf("Axis = %s, want %s", got.Axis, progression.AxisHold)
	}
	if got.NewWeightKg != 100 {
		t.Errorf("NewWeightKg = %.1f, want the unchanged 100", got.NewWeightKg)
	}
	if len(got.Rationale) == 0 || !strings.Contains(got.Rationale[0], "RPE") {
		t.Errorf("rationale should name the effort problem, got %v", got.Rationale)
	}
}

func TestDecideHoldsOnRecentProgression(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Back Squat",
		WeightKg:                 100,
		TargetReps:               5,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 2,
		LastProgressedAt:         now.AddDate(0, 0, -5),
	}

	got := progression.Decide(
		state, strongHistory(100, 5, 7),
		mustLookup(t, "Barbell Back Squat"), intermediateGymUser(), now)

	if got.Axis != progression.AxisHold {
		t.Fatalf("Axis = %s, want %s", got.Axis, progression.AxisHold)
	}
}

func TestDecideHoldsOnThinHistory(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Row",
		WeightKg:                 60,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 1,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}
	history := []progression.PerformanceRecord{
		record(2, 60, 8, [3]int{8, 8, 8}, 7, progression.FormGood),
	}

	got := progression.Decide(
		state, history, mustLookup(t, "Barbell Row"), intermediateGymUser(), now)

	if got.Axis != progression.AxisHold {
		t.Fatalf("Axis = %s, want %s", got.Axis, progression.AxisHold)
	}
}

func TestDecideDeload(t *testing.T) {
	tests := []struct {
		name  string
		state progression.ExerciseProgression
		hist  []progression.PerformanceRecord
	}{
		{
			name: "failure streak",
			state: progression.ExerciseProgression{
				ExerciseName:             "Barbell Back Squat",
				WeightKg:                 100,
				TargetReps:               5,
				Sets:                     3,
				State:                    progression.StateHold,
				ConsecutiveFailures:      3,
				SessionsSinceProgression: 5,
				LastProgressedAt:         now.AddDate(0, 0, -21),
			},
			hist: strongHistory(100, 5, 8),
		},
		{
			name: "overreaching effort",
			state: progression.ExerciseProgression{
				ExerciseName:             "Barbell Back Squat",
				WeightKg:                 100,
				TargetReps:               5,
				Sets:                     3,
				State:                    progression.StateHold,
				ConsecutiveFailures:      1,
				SessionsSinceProgression: 4,
				LastProgressedAt:         now.AddDate(0, 0, -21),
			},
			hist: strongHistory(100, 5, 9.8),
		},
		{
			name: "stale for eight weeks",
			state: progression.ExerciseProgression{
				ExerciseName:             "Barbell Back Squat",
				WeightKg:                 100,
				TargetReps:               5,
				Sets:                     3,
				State:                    progression.StateHold,
				ConsecutiveFailures:      0,
				SessionsSinceProgression: 10,
				LastProgressedAt:         now.AddDate(0, 0, -63),
			},
			hist: strongHistory(100, 5, 8.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progression.Decide(
				tt.state, tt.hist, mustLookup(t, "Barbell Back Squat"), intermediateGymUser(), now)

			if got.Axis != progression.AxisDeload {
				t.Fatalf("Axis = %s, want %s (rationale: %v)", got.Axis, progression.AxisDeload, got.Rationale)
			}
			if got.NewWeightKg != 95 {
				t.Errorf("NewWeightKg = %.1f, want 95", got.NewWeightKg)
			}
		})
	}
}

func TestDeloadWeightKg(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 100, want: 95},
		{in: 60, want: 55},
		{in: 40, want: 35},
		{in: 20, want: 17.5},
	}

	for _, tt := range tests {
		if got := progression.DeloadWeightKg(tt.in); got != tt.want {
			t.Errorf("DeloadWeightKg(%.0f) = %.1f, want %.1f", tt.in, got, tt.want)
		}
	}
}

func TestDecideRepsForBodyweight(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Pull-Up",
		WeightKg:                 0,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 4,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}

	got := progression.Decide(
		state, strongHistory(0, 8, 6.5),
		mustLookup(t, "Pull-Up"), intermediateGymUser(), now)

	if got.Axis != progression.AxisReps {
		t.Fatalf("Axis = %s, want %s (rationale: %v)", got.Axis, progression.AxisReps, got.Rationale)
	}
	if got.NewTargetReps != 9 {
		t.Errorf("NewTargetReps = %d, want 9", got.NewTargetReps)
	}
	if got.NewWeightKg != 0 {
		t.Errorf("NewWeightKg = %.1f, want 0", got.NewWeightKg)
	}
}

func TestDecideRepsWhenExperienceCapped(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Back Squat",
		WeightKg:                 80,
		TargetReps:               5,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 4,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}
	user := taxonomy.UserContext{
		Experience: taxonomy.ExperienceBeginner,
		Access:     taxonomy.AccessFullGym,
	}

	got := progression.Decide(
		state, strongHistory(80, 5, 6.5), mustLookup(t, "Barbell Back Squat"), user, now)

	if got.Axis != progression.AxisReps {
		t.Fatalf("Axis = %s, want %s (rationale: %v)", got.Axis, progression.AxisReps, got.Rationale)
	}
	if got.NewWeightKg != 80 {
		t.Errorf("NewWeightKg = %.1f, want the capped 80", got.NewWeightKg)
	}
	if got.NewTargetReps != 6 {
		t.Errorf("NewTargetReps = %d, want 6", got.NewTargetReps)
	}
}

func TestDecideSetsWhenOtherAxesExhausted(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Push-Up",
		WeightKg:                 0,
		TargetReps:               15,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 6,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}

	got := progression.Decide(
		state, strongHistory(0, 15, 6.5),
		mustLookup(t, "Push-Up"), intermediateGymUser(), now)

	if got.Axis != progression.AxisSets {
		t.Fatalf("Axis = %s, want %s (rationale: %v)", got.Axis, progression.AxisSets, got.Rationale)
	}
	if got.NewSets != 4 {
		t.Errorf("NewSets = %d, want 4", got.NewSets)
	}
}

func TestWeightIncrementKg(t *testing.T) {
	tests := []struct {
		exercise   string
		experience taxonomy.Experience
		want       float64
	}{
		{exercise: "Barbell Back Squat", experience: taxonomy.ExperienceBeginner, want: 2.5},
		{exercise: "Barbell Back Squat", experience: taxonomy.ExperienceIntermediate, want: 1.25},
		{exercise: "Barbell Back Squat", experience: taxonomy.ExperienceAdvanced, want: 0.625},
		{exercise: "Lat Pulldown", experience: taxonomy.ExperienceBeginner, want: 2.5},
		{exercise: "Barbell Curl", experience: taxonomy.ExperienceBeginner, want: 1.25},
		{exercise: "Dumbbell Lateral Raise", experience: taxonomy.ExperienceIntermediate, want: 0.625},
		{exercise: "Dumbbell Lateral Raise", experience: taxonomy.ExperienceAdvanced, want: 0.3125},
		{exercise: "Pull-Up", experience: taxonomy.ExperienceBeginner, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.exercise+"/"+string(tt.experience), func(t *testing.T) {
			def := mustLookup(t, tt.exercise)
			if got := progression.WeightIncrementKg(def, tt.experience); got != tt.want {
				t.Errorf("WeightIncrementKg(%s, %s) = %.4f, want %.4f",
					tt.exercise, tt.experience, got, tt.want)
			}
		})
	}
}

func TestMarkPendingDecision(t *testing.T) {
	base := progression.ExerciseProgression{
		ExerciseName:             "Barbell Bench Press",
		WeightKg:                 80,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 3,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}

	tests := []struct {
		name  string
		start progression.State
		axis  progression.Axis
		want  progression.State
	}{
		{name: "advancement marks ready to progress", start: progression.StateHold, axis: progression.AxisWeight, want: progression.StateReadyToProgress},
		{name: "rep advancement marks ready to progress", start: progression.StateHold, axis: progression.AxisReps, want: progression.StateReadyToProgress},
		{name: "deload marks needs deload", start: progression.StateHold, axis: progression.AxisDeload, want: progression.StateNeedsDeload},
		{name: "hold clears a stale marker", start: progression.StateNeedsDeload, axis: progression.AxisHold, want: progression.StateHold},
		{name: "hold leaves the transient progressed state", start: progression.StateProgressed, axis: progression.AxisHold, want: progression.StateProgressed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := base
			state.State = tt.start
			suggestion := progression.Suggestion{
				Axis:            tt.axis,
				NewWeightKg:     state.WeightKg,
				NewTargetReps:   state.TargetReps,
				NewSets:         state.Sets,
				Confidence:      progression.ConfidenceHigh,
				ConfidenceScore: 1,
				Rationale:       nil,
			}

			if got := progression.Mark(state, suggestion); got.State != tt.want {
				t.Errorf("State = %s, want %s", got.State, tt.want)
			}
		})
	}
}

func TestRecordOutcome(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Row",
		WeightKg:                 60,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateProgressed,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 0,
		LastProgressedAt:         now.AddDate(0, 0, -1),
	}

	progression.RecordOutcome(&state, record(0, 60, 8, [3]int{8, 8, 8}, 7, progression.FormGood))
	if state.State != progression.StateHold {
		t.Errorf("State = %s, want %s after a session", state.State, progression.StateHold)
	}
	if state.ConsecutiveFailures != 0 || state.SessionsSinceProgression != 1 {
		t.Errorf("counters = %d failures / %d sessions, want 0/1",
			state.ConsecutiveFailures, state.SessionsSinceProgression)
	}

	state.State = progression.StateReadyToProgress
	progression.RecordOutcome(&state, record(0, 60, 8, [3]int{8, 8, 8}, 7, progression.FormGood))
	if state.State != progression.StateHold {
		t.Errorf("State = %s, want %s once a new session invalidates the pending marker",
			state.State, progression.StateHold)
	}

	progression.RecordOutcome(&state, record(0, 60, 8, [3]int{5, 4, 4}, 9.5, progression.FormAcceptable))
	progression.RecordOutcome(&state, record(0, 60, 8, [3]int{6, 5, 5}, 9.5, progression.FormAcceptable))
	if state.ConsecutiveFailures != 2 {
		t.Errorf("ConsecutiveFailures = %d, want 2", state.ConsecutiveFailures)
	}

	progression.RecordOutcome(&state, record(0, 60, 8, [3]int{8, 8, 6}, 8, progression.FormGood))
	if state.ConsecutiveFailures != 0 {
		t.Errorf("ConsecutiveFailures = %d, want 0 after a successful session", state.ConsecutiveFailures)
	}
}

func TestApply(t *testing.T) {
	state := progression.ExerciseProgression{
		ExerciseName:             "Barbell Bench Press",
		WeightKg:                 80,
		TargetReps:               8,
		Sets:                     3,
		State:                    progression.StateReadyToProgress,
		ConsecutiveFailures:      1,
		SessionsSinceProgression: 4,
		LastProgressedAt:         now.AddDate(0, 0, -21),
	}
	suggestion := progression.Suggestion{
		Axis:            progression.AxisWeight,
		NewWeightKg:     82.5,
		NewTargetReps:   8,
		NewSets:         3,
		Confidence:      progression.ConfidenceHigh,
		ConfidenceScore: 0.93,
		Rationale:       nil,
	}

	got := progression.Apply(state, suggestion, now)

	if got.WeightKg != 82.5 {
		t.Errorf("WeightKg = %.1f, want 82.5", got.WeightKg)
	}
	if got.State != progression.StateProgressed {
		t.Errorf("State = %s, want %s", got.State, progression.StateProgressed)
	}
	if got.SessionsSinceProgression != 0 || got.ConsecutiveFailures != 0 {
		t.Errorf("counters not reset: %d sessions / %d failures",
			got.SessionsSinceProgression, got.ConsecutiveFailures)
	}
	if !got.LastProgressedAt.Equal(now) {
		t.Errorf("LastProgressedAt = %v, want %v", got.LastProgressedAt, now)
	}

	got.State = progression.StateNeedsDeload
	deload := progression.Suggestion{
		Axis:            progression.AxisDeload,
		NewWeightKg:     75,
		NewTargetReps:   8,
		NewSets:         3,
		Confidence:      progression.ConfidenceHigh,
		ConfidenceScore: 1,
		Rationale:       nil,
	}
	got = progression.Apply(got, deload, now)
	if got.WeightKg != 75 {
		t.Errorf("WeightKg after deload = %.1f, want 75", got.WeightKg)
	}
	if got.State != progression.StateHold {
		t.Errorf("State after deload = %s, want %s", got.State, progression.StateHold)
	}
}
