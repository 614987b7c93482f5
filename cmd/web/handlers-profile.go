package main

import (
	"net/http"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/contexthelpers"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/program"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/protocol"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type profileJSON struct {
	Experience      string `json:"experience"`
	EquipmentAccess string `json:"equipmentAccess"`
	Goal            string `json:"goal"`
}

func (app *application) showProfile(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())
	profile, err := app.programService.Profile(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profileJSON{
		Experience:      string(profile.Experience),
		EquipmentAccess: string(profile.Access),
		Goal:            string(profile.Goal),
	})
}

func (app *application) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileJSON
	if !app.readJSON(w, r, &req) {
		return
	}
	experience, ok := parseExperience(req.Experience)
	if !ok {
		app.clientError(w, r, http.StatusUnprocessableEntity, "unknown experience level")
		return
	}
	access, ok := parseEquipmentAccess(req.EquipmentAccess)
	if !ok {
		app.clientError(w, r, http.StatusUnprocessableEntity, "unknown equipment access")
		return
	}
	goal, ok := parseGoal(req.Goal)
	if !ok {
		app.clientError(w, r, http.StatusUnprocessableEntity, "unknown goal")
		return
	}

	userID := contexthelpers.CurrentUserID(r.Context())
	profile := program.Profile{ID: userID, Experience: experience, Access: access, Goal: goal}
	if err := app.programService.UpdateProfile(r.Context(), profile); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, req)
}

type assessmentItemJSON struct {
	Category      string   `json:"category"`
	Exercise      string   `json:"exercise"`
	Equipment     string   `json:"equipment"`
	Muscles       []string `json:"muscles"`
	SuggestedReps int      `json:"suggestedReps"`
}

func (app *application) assessmentPlan(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())
	items, err := app.programService.BuildAssessmentPlan(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	resp := make([]assessmentItemJSON, 0, len(items))
	for _, item := range items {
		resp = append(resp, assessmentItemJSON{
			Category:      string(item.Category),
			Exercise:      item.Exercise.Name,
			Equipment:     string(item.Exercise.Equipment),
			Muscles:       item.Exercise.PrimaryMuscles,
			SuggestedReps: item.SuggestedReps,
		})
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}

func parseExperience(s string) (taxonomy.Experience, bool) {
	switch experience := taxonomy.Experience(s); experience {
	case taxonomy.ExperienceBeginner, taxonomy.ExperienceIntermediate, taxonomy.ExperienceAdvanced:
		return experience, true
	default:
		return "", false
	}
}

func parseEquipmentAccess(s string) (taxonomy.EquipmentAccess, bool) {
	switch access := taxonomy.EquipmentAccess(s); access {
	case taxonomy.AccessFullGym, taxonomy.AccessHomeDumbbells, taxonomy.AccessBodyweightOnly:
		return access, true
	default:
		return "", false
	}
}

func parseGoal(s string) (protocol.Goal, bool) {
	switch goal := protocol.Goal(s); goal {
	case protocol.GoalStrength, protocol.GoalHypertrophy, protocol.GoalEndurance:
		return goal, true
	default:
		return "", false
	}
}

func parseEquipmentType(s string) (taxonomy.EquipmentType, bool) {
	switch equipment := taxonomy.EquipmentType(s); equipment {
	case taxonomy.EquipmentBarbell, taxonomy.EquipmentDumbbell,
		taxonomy.EquipmentMachine, taxonomy.EquipmentBodyweight:
		return equipment, true
	default:
		return "", false
	}
}
