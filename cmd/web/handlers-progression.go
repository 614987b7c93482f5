package main

import (
	"net/http"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/contexthelpers"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/errors"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/program"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/progression"
)

type setResultJSON struct {
	WeightKg     float64 `json:"weightKg"`
	TargetReps   int     `json:"targetReps"`
	AchievedReps int     `json:"achievedReps"`
	RPE          float64 `json:"rpe"`
}

type recordSessionRequest struct {
	ExerciseName string          `json:"exerciseName"`
	PerformedAt  time.Time       `json:"performedAt"`
	Form         string          `json:"form"`
	Sets         []setResultJSON `json:"sets"`
}

func (app *application) recordSession(w http.ResponseWriter, r *http.Request) {
	var req recordSessionRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.ExerciseName == "" || len(req.Sets) == 0 {
		app.clientError(w, r, http.StatusUnprocessableEntity, "exerciseName and sets are required")
		return
	}
	form, ok := parseFormQuality(req.Form)
	if !ok {
		app.clientError(w, r, http.StatusUnprocessableEntity, "unknown form quality")
		return
	}
	performedAt := req.PerformedAt
	if performedAt.IsZero() {
		performedAt = time.Now()
	}

	sets := make([]progression.SetResult, 0, len(req.Sets))
	for _, set := range req.Sets {
		sets = append(sets, progression.SetResult{
			SetID:        "",
			WeightKg:     set.WeightKg,
			TargetReps:   set.TargetReps,
			AchievedReps: set.AchievedReps,
			RPE:          set.RPE,
		})
	}

	userID := contexthelpers.CurrentUserID(r.Context())
	err := app.programService.RecordSession(r.Context(), userID, progression.PerformanceRecord{
		ID:           0,
		ExerciseName: req.ExerciseName,
		PerformedAt:  performedAt,
		Sets:         sets,
		Form:         form,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFormQuality(s string) (progression.FormQuality, bool) {
	switch form := progression.FormQuality(s); form {
	case progression.FormExcellent, progression.FormGood,
		progression.FormAcceptable, progression.FormPoor:
		return form, true
	default:
		return "", false
	}
}

type progressionStateJSON struct {
	ExerciseName             string  `json:"exerciseName"`
	WeightKg                 float64 `json:"weightKg"`
	TargetReps               int     `json:"targetReps"`
	Sets                     int     `json:"sets"`
	State                    string  `json:"state"`
	ConsecutiveFailures      int     `json:"consecutiveFailures"`
	SessionsSinceProgression int     `json:"sessionsSinceProgression"`
}

type suggestionJSON struct {
	Axis            string   `json:"axis"`
	NewWeightKg     float64  `json:"newWeightKg"`
	NewTargetReps   int      `json:"newTargetReps"`
	NewSets         int      `json:"newSets"`
	Confidence      string   `json:"confidence"`
	ConfidenceScore float64  `json:"confidenceScore"`
	Rationale       []string `json:"rationale"`
}

func toStateJSON(state progression.ExerciseProgression) progressionStateJSON {
	return progressionStateJSON{
		ExerciseName:             state.ExerciseName,
		WeightKg:                 state.WeightKg,
		TargetReps:               state.TargetReps,
		Sets:                     state.Sets,
		State:                    string(state.State),
		ConsecutiveFailures:      state.ConsecutiveFailures,
		SessionsSinceProgression: state.SessionsSinceProgression,
	}
}

func toSuggestionJSON(suggestion progression.Suggestion) suggestionJSON {
	return suggestionJSON{
		Axis:            string(suggestion.Axis),
		NewWeightKg:     suggestion.NewWeightKg,
		NewTargetReps:   suggestion.NewTargetReps,
		NewSets:         suggestion.NewSets,
		Confidence:      string(suggestion.Confidence),
		ConfidenceScore: suggestion.ConfidenceScore,
		Rationale:       suggestion.Rationale,
	}
}

func (app *application) suggestProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.PathValue("exercise")
	userID := contexthelpers.CurrentUserID(r.Context())
	status, err := app.programService.SuggestProgression(r.Context(), userID, exercise)
	if errors.Is(err, program.ErrProgressionNotFound) {
		app.clientError(w, r, http.StatusNotFound, "no progression state for exercise")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, struct {
		State      progressionStateJSON `json:"state"`
		Suggestion suggestionJSON       `json:"suggestion"`
	}{toStateJSON(status.State), toSuggestionJSON(status.Suggestion)})
}

// applyProgression recomputes the suggestion server side and commits it. The
// client never supplies the new numbers, it only consents to them.
func (app *application) applyProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.PathValue("exercise")
	userID := contexthelpers.CurrentUserID(r.Context())

	status, err := app.programService.SuggestProgression(r.Context(), userID, exercise)
	if errors.Is(err, program.ErrProgressionNotFound) {
		app.clientError(w, r, http.StatusNotFound, "no progression state for exercise")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	updated, err := app.programService.ApplyProgression(r.Context(), userID, exercise, status.Suggestion)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, struct {
		State      progressionStateJSON `json:"state"`
		Suggestion suggestionJSON       `json:"suggestion"`
	}{toStateJSON(updated), toSuggestionJSON(status.Suggestion)})
}
