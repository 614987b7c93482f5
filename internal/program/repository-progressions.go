package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/progression"
)

// ErrProgressionNotFound marks a missing progression row for an exercise the
// user never assessed or logged. Session recording seeds a new state instead
// of surfacing it; read paths report it as a missing resource.
var ErrProgressionNotFound = errors.New("progression not found")

// getProgression loads the stored progression state for one exercise.
func (r *sqliteRepository) getProgression(
	ctx context.Context,
	userID int64,
	exerciseName string,
) (progression.ExerciseProgression, error) {
	var (
		state            progression.ExerciseProgression
		lastProgressedAt sql.NullString
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT exercise_name, weight_kg, target_reps, sets, state,
		       consecutive_failures, sessions_since_progression, last_progressed_at
		FROM exercise_progressions
		WHERE user_id = ? AND exercise_name = ?`, userID, exerciseName).Scan(
		&state.ExerciseName,
		&state.WeightKg,
		&state.TargetReps,
		&state.Sets,
		&state.State,
		&state.ConsecutiveFailures,
		&state.SessionsSinceProgression,
		&lastProgressedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.ExerciseProgression{}, ErrProgressionNotFound
	}
	if err != nil {
		return progression.ExerciseProgression{}, fmt.Errorf("query progression: %w", err)
	}
	if lastProgressedAt.Valid {
		if state.LastProgressedAt, err = time.Parse(timestampFormat, lastProgressedAt.String); err != nil {
			return progression.ExerciseProgression{}, fmt.Errorf("parse last_progressed_at: %w", err)
		}
	}
	return state, nil
}

// saveProgression upserts the progression state for one exercise.
func (r *sqliteRepository) saveProgression(
	ctx context.Context,
	userID int64,
	state progression.ExerciseProgression,
) error {
	var lastProgressedAt any
	if !state.LastProgressedAt.IsZero() {
		lastProgressedAt = state.LastProgressedAt.UTC().Format(timestampFormat)
	}
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercise_progressions (
			user_id, exercise_name, weight_kg, target_reps, sets, state,
			consecutive_failures, sessions_since_progression, last_progressed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, exercise_name) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			target_reps = excluded.target_reps,
			sets = excluded.sets,
			state = excluded.state,
			consecutive_failures = excluded.consecutive_failures,
			sessions_since_progression = excluded.sessions_since_progression,
			last_progressed_at = excluded.last_progressed_at`,
		userID, state.ExerciseName, state.WeightKg, state.TargetReps, state.Sets, state.State,
		state.ConsecutiveFailures, state.SessionsSinceProgression, lastProgressedAt); err != nil {
		return fmt.Errorf("save progression: %w", err)
	}
	return nil
}

// saveProgressionEvent appends one applied decision to the audit trail.
func (r *sqliteRepository) saveProgressionEvent(
	ctx context.Context,
	userID int64,
	exerciseName string,
	oldWeightKg float64,
	suggestion progression.Suggestion,
) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO progression_events (
			user_id, exercise_name, axis, old_weight_kg, new_weight_kg, confidence, rationale
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, exerciseName, suggestion.Axis, oldWeightKg, suggestion.NewWeightKg,
		suggestion.Confidence, strings.Join(suggestion.Rationale, "; ")); err != nil {
		return fmt.Errorf("save progression event: %w", err)
	}
	return nil
}
