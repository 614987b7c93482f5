package main

import (
	"net/http"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/contexthelpers"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/errors"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/program"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/protocol"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/safety"
)

type warmupSetJSON struct {
	ID               string  `json:"id"`
	WeightKg         float64 `json:"weightKg"`
	MinReps          int     `json:"minReps"`
	MaxReps          int     `json:"maxReps"`
	RestSeconds      int     `json:"restSeconds"`
	Stage            string  `json:"stage"`
	PercentOfWorking float64 `json:"percentOfWorking"`
	Description      string  `json:"description"`
}

type workingSetJSON struct {
	ID          string  `json:"id"`
	WeightKg    float64 `json:"weightKg"`
	MinReps     int     `json:"minReps"`
	MaxReps     int     `json:"maxReps"`
	RestSeconds int     `json:"restSeconds"`
	TargetRPE   int     `json:"targetRPE"`
	Description string  `json:"description"`
}

type protocolJSON struct {
	ExerciseName          string           `json:"exerciseName"`
	Equipment             string           `json:"equipment"`
	Goal                  string           `json:"goal"`
	WorkingWeightKg       float64          `json:"workingWeightKg"`
	TargetReps            int              `json:"targetReps"`
	WarmupSets            []warmupSetJSON  `json:"warmupSets"`
	WorkingSets           []workingSetJSON `json:"workingSets"`
	TotalEstimatedMinutes int              `json:"totalEstimatedMinutes"`
	MuscleActivation      []string         `json:"muscleActivation"`
	FormCues              []string         `json:"formCues"`
}

func toProtocolJSON(built protocol.ExerciseProtocol) protocolJSON {
	warmups := make([]warmupSetJSON, 0, len(built.WarmupSets))
	for _, set := range built.WarmupSets {
		warmups = append(warmups, warmupSetJSON{
			ID:               set.ID,
			WeightKg:         set.WeightKg,
			MinReps:          set.MinReps,
			MaxReps:          set.MaxReps,
			RestSeconds:      set.RestSeconds,
			Stage:            string(set.Stage),
			PercentOfWorking: set.PercentOfWorking,
			Description:      set.Description,
		})
	}
	workings := make([]workingSetJSON, 0, len(built.WorkingSets))
	for _, set := range built.WorkingSets {
		workings = append(workings, workingSetJSON{
			ID:          set.ID,
			WeightKg:    set.WeightKg,
			MinReps:     set.MinReps,
			MaxReps:     set.MaxReps,
			RestSeconds: set.RestSeconds,
			TargetRPE:   set.TargetRPE,
			Description: set.Description,
		})
	}
	return protocolJSON{
		ExerciseName:          built.ExerciseName,
		Equipment:             string(built.Equipment),
		Goal:                  string(built.Goal),
		WorkingWeightKg:       built.WorkingWeightKg,
		TargetReps:            built.TargetReps,
		WarmupSets:            warmups,
		WorkingSets:           workings,
		TotalEstimatedMinutes: built.TotalEstimatedMinutes,
		MuscleActivation:      built.MuscleActivation,
		FormCues:              built.FormCues,
	}
}

type validationJSON struct {
	Valid             bool     `json:"valid"`
	Issues            []string `json:"issues,omitempty"`
	SuggestedWeightKg float64  `json:"suggestedWeightKg"`
	SuggestedReps     int      `json:"suggestedReps"`
}

func toValidationJSON(validation protocol.Validation) validationJSON {
	return validationJSON{
		Valid:             validation.Valid,
		Issues:            validation.Issues,
		SuggestedWeightKg: validation.SuggestedWeightKg,
		SuggestedReps:     validation.SuggestedReps,
	}
}

type createProtocolRequest struct {
	ExerciseName string  `json:"exerciseName"`
	WeightKg     float64 `json:"weightKg"`
	Reps         int     `json:"reps"`
	Equipment    string  `json:"equipment"`
}

func (app *application) createProtocol(w http.ResponseWriter, r *http.Request) {
	var req createProtocolRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.ExerciseName == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, "exerciseName is required")
		return
	}
	equipment, ok := parseEquipmentType(req.Equipment)
	if !ok {
		app.clientError(w, r, http.StatusUnprocessableEntity, "unknown equipment")
		return
	}

	userID := contexthelpers.CurrentUserID(r.Context())
	built, validation, err := app.programService.CreateProtocol(
		r.Context(), userID, req.ExerciseName, req.WeightKg, req.Reps, equipment)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !validation.Valid {
		app.writeJSON(w, r, http.StatusUnprocessableEntity, struct {
			Validation validationJSON `json:"validation"`
		}{toValidationJSON(validation)})
		return
	}
	app.writeJSON(w, r, http.StatusCreated, struct {
		Protocol   protocolJSON   `json:"protocol"`
		Validation validationJSON `json:"validation"`
	}{toProtocolJSON(built), toValidationJSON(validation)})
}

func (app *application) currentProtocol(w http.ResponseWriter, r *http.Request) {
	exercise := r.PathValue("exercise")
	userID := contexthelpers.CurrentUserID(r.Context())
	built, err := app.programService.CurrentProtocol(r.Context(), userID, exercise)
	if errors.Is(err, program.ErrProgressionNotFound) {
		app.clientError(w, r, http.StatusNotFound, "no protocol for exercise")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, toProtocolJSON(built))
}

type clampJSON struct {
	Kind     string  `json:"kind"`
	BeforeKg float64 `json:"beforeKg"`
	AfterKg  float64 `json:"afterKg"`
	Reason   string  `json:"reason"`
}

type propagateRequest struct {
	FromExercise string   `json:"fromExercise"`
	WeightKg     float64  `json:"weightKg"`
	Reps         int      `json:"reps"`
	Targets      []string `json:"targets"`
}

type propagatedJSON struct {
	Protocol protocolJSON `json:"protocol"`
	Factor   float64      `json:"factor"`
	Clamps   []clampJSON  `json:"clamps,omitempty"`
	Inferred bool         `json:"inferred"`
}

func (app *application) propagateAssessment(w http.ResponseWriter, r *http.Request) {
	var req propagateRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.FromExercise == "" || len(req.Targets) == 0 {
		app.clientError(w, r, http.StatusUnprocessableEntity, "fromExercise and targets are required")
		return
	}

	userID := contexthelpers.CurrentUserID(r.Context())
	results, err := app.programService.PropagateAssessment(
		r.Context(), userID, req.FromExercise, req.WeightKg, req.Reps, req.Targets)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	resp := make([]propagatedJSON, 0, len(results))
	for _, result := range results {
		resp = append(resp, propagatedJSON{
			Protocol: toProtocolJSON(result.Protocol),
			Factor:   result.Factor,
			Clamps:   toClampJSONs(result.Clamps),
			Inferred: result.Inferred,
		})
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}

func toClampJSONs(clamps []safety.Clamp) []clampJSON {
	out := make([]clampJSON, 0, len(clamps))
	for _, clamp := range clamps {
		out = append(out, clampJSON{
			Kind:     string(clamp.Kind),
			BeforeKg: clamp.BeforeKg,
			AfterKg:  clamp.AfterKg,
			Reason:   clamp.Reason,
		})
	}
	return out
}
