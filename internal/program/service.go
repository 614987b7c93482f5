package program

import (
	"context"
	"log/slog"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/errors"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/progression"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/protocol"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/safety"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/sqlite"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
	"golang.org/x/sync/errgroup"
)

// historyWindow bounds how many sessions the progression engine looks at.
const historyWindow = 10

// assessmentReps is the rep count users gauge their comfortable weight at.
const assessmentReps = 8

// Service exposes the coaching operations.
type Service struct {
	repo   *sqliteRepository
	notes  *notesGenerator
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the coaching service. An empty openaiAPIKey disables AI
// note generation; templated notes are used instead.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	var notes *notesGenerator
	if openaiAPIKey != "" {
		notes = newNotesGenerator(openaiAPIKey)
	}
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		notes:  notes,
		logger: logger,
		now:    time.Now,
	}
}

// Profile returns the coaching profile for a user, defaults included.
func (s *Service) Profile(ctx context.Context, userID int64) (Profile, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return Profile{}, errors.Wrap(err, "get profile")
	}
	return profile, nil
}

// UpdateProfile stores the coaching profile for a user.
func (s *Service) UpdateProfile(ctx context.Context, profile Profile) error {
	if err := s.repo.saveProfile(ctx, profile); err != nil {
		return errors.Wrap(err, "save profile")
	}
	return nil
}

// BuildAssessmentPlan selects one representative exercise per movement
// category, in priority order, fitted to the user's experience and equipment.
func (s *Service) BuildAssessmentPlan(ctx context.Context, userID int64) ([]AssessmentItem, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	user := taxonomy.UserContext{Experience: profile.Experience, Access: profile.Access}

	items := make([]AssessmentItem, 0, len(taxonomy.PriorityOrder))
	for _, category := range taxonomy.PriorityOrder {
		representative, ok := taxonomy.SelectRepresentative(category, taxonomy.All(), user)
		if !ok {
			continue
		}
		items = append(items, AssessmentItem{
			Category:      category,
			Exercise:      representative,
			SuggestedReps: assessmentReps,
		})
	}
	return items, nil
}

// CreateProtocol validates a self-reported comfortable weight and derives the
// full protocol for it. Invalid input is returned as a validation result, not
// an error. On success the progression state is seeded so future sessions can
// be judged against this prescription.
func (s *Service) CreateProtocol(
	ctx context.Context,
	userID int64,
	exerciseName string,
	weightKg float64,
	reps int,
	equipment taxonomy.EquipmentType,
) (protocol.ExerciseProtocol, protocol.Validation, error) {
	validation := protocol.ValidateComfortableWeight(weightKg, reps, equipment)
	if !validation.Valid {
		return protocol.ExerciseProtocol{}, validation, nil
	}

	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return protocol.ExerciseProtocol{}, validation, errors.Wrap(err, "get profile")
	}

	capped, clamp := safety.ApplyExperienceLimits(weightKg, profile.Experience, exerciseName)
	if clamp != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "capped assessed weight",
			slog.String("exercise", exerciseName),
			slog.Float64("beforeKg", clamp.BeforeKg),
			slog.Float64("afterKg", clamp.AfterKg))
	}

	built := protocol.CreateExerciseProtocol(exerciseName, capped, reps, equipment, profile.Goal)

	if err = s.seedProgression(ctx, userID, exerciseName, built); err != nil {
		return protocol.ExerciseProtocol{}, validation, errors.Wrap(err, "seed progression")
	}
	return built, validation, nil
}

// seedProgression initialises the progression state for a freshly assessed
// exercise. Existing state is left alone so re-assessing does not erase
// history counters.
func (s *Service) seedProgression(
	ctx context.Context,
	userID int64,
	exerciseName string,
	built protocol.ExerciseProtocol,
) error {
	if err := s.repo.ensureUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.repo.getProgression(ctx, userID, exerciseName); err == nil {
		return nil
	} else if !errors.Is(err, ErrProgressionNotFound) {
		return err
	}
	state := progression.ExerciseProgression{
		ExerciseName:             exerciseName,
		WeightKg:                 built.WorkingWeightKg,
		TargetReps:               built.TargetReps,
		Sets:                     len(built.WorkingSets),
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 0,
		LastProgressedAt:         s.now(),
	}
	return s.repo.saveProgression(ctx, userID, state)
}

// PropagateAssessment extrapolates an assessed weight onto related exercises
// and derives a protocol for each. Unknown target names degrade to inferred
// classifications instead of failing the whole request. Targets are derived
// concurrently; results keep the order of the targets argument.
func (s *Service) PropagateAssessment(
	ctx context.Context,
	userID int64,
	fromExercise string,
	assessedWeightKg float64,
	reps int,
	targets []string,
) ([]PropagatedProtocol, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	if err = s.repo.ensureUser(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "ensure user")
	}

	fromDef, ok := taxonomy.Lookup(fromExercise)
	if !ok {
		fromDef = taxonomy.Infer(fromExercise)
	}

	results := make([]PropagatedProtocol, len(targets))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, target := range targets {
		group.Go(func() error {
			toDef, found := taxonomy.Lookup(target)
			if !found {
				toDef = taxonomy.Infer(target)
			}

			adjustment := safety.AdjustWeightForExercise(
				assessedWeightKg, fromExercise, target, fromDef.Equipment, toDef)
			clamps := adjustment.Clamps

			capped, clamp := safety.ApplyExperienceLimits(adjustment.WeightKg, profile.Experience, target)
			if clamp != nil {
				clamps = append(clamps, *clamp)
			}

			built := protocol.CreateExerciseProtocol(target, capped, reps, toDef.Equipment, profile.Goal)
			results[i] = PropagatedProtocol{
				Protocol: built,
				Factor:   adjustment.Factor,
				Clamps:   clamps,
				Inferred: toDef.Inferred,
			}

			if err := s.seedProgression(groupCtx, userID, target, built); err != nil {
				return errors.Wrap(err, "seed progression", slog.String("exercise", target))
			}
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RecordSession persists a completed session and folds it into the
// progression state for the exercise.
func (s *Service) RecordSession(
	ctx context.Context,
	userID int64,
	record progression.PerformanceRecord,
) error {
	if err := s.repo.ensureUser(ctx, userID); err != nil {
		return errors.Wrap(err, "ensure user")
	}
	if _, err := s.repo.saveRecord(ctx, userID, record); err != nil {
		return errors.Wrap(err, "save record")
	}

	state, err := s.repo.getProgression(ctx, userID, record.ExerciseName)
	if errors.Is(err, ErrProgressionNotFound) {
		// Sessions logged before any assessment still seed a progression.
		state = stateFromRecord(record, s.now())
	} else if err != nil {
		return errors.Wrap(err, "get progression")
	}

	progression.RecordOutcome(&state, record)
	if err = s.repo.saveProgression(ctx, userID, state); err != nil {
		return errors.Wrap(err, "save progression")
	}
	return nil
}

// stateFromRecord derives an initial progression state from a logged session
// when no assessment preceded it.
func stateFromRecord(record progression.PerformanceRecord, now time.Time) progression.ExerciseProgression {
	state := progression.ExerciseProgression{
		ExerciseName:             record.ExerciseName,
		WeightKg:                 0,
		TargetReps:               0,
		Sets:                     len(record.Sets),
		State:                    progression.StateHold,
		ConsecutiveFailures:      0,
		SessionsSinceProgression: 0,
		LastProgressedAt:         now,
	}
	if len(record.Sets) > 0 {
		state.WeightKg = record.Sets[0].WeightKg
		state.TargetReps = record.Sets[0].TargetReps
	}
	return state
}

// SuggestProgression evaluates the stored state and history and returns the
// engine's recommendation without applying it. The pending decision is
// stamped onto the stored state (ReadyToProgress or NeedsDeload) so reads
// reflect what is awaiting consent.
func (s *Service) SuggestProgression(
	ctx context.Context,
	userID int64,
	exerciseName string,
) (ProgressionStatus, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return ProgressionStatus{}, errors.Wrap(err, "get profile")
	}
	state, err := s.repo.getProgression(ctx, userID, exerciseName)
	if err != nil {
		return ProgressionStatus{}, errors.Wrap(err, "get progression")
	}
	history, err := s.repo.recentRecords(ctx, userID, exerciseName, historyWindow)
	if err != nil {
		return ProgressionStatus{}, errors.Wrap(err, "load history")
	}

	definition, ok := taxonomy.Lookup(exerciseName)
	if !ok {
		definition = taxonomy.Infer(exerciseName)
	}
	user := taxonomy.UserContext{Experience: profile.Experience, Access: profile.Access}

	suggestion := progression.Decide(state, history, definition, user, s.now())
	marked := progression.Mark(state, suggestion)
	if marked.State != state.State {
		if err = s.repo.saveProgression(ctx, userID, marked); err != nil {
			return ProgressionStatus{}, errors.Wrap(err, "save progression")
		}
	}
	return ProgressionStatus{State: marked, Suggestion: suggestion}, nil
}

// ApplyProgression commits a previously suggested decision: state moves, and
// the decision lands on the audit trail.
func (s *Service) ApplyProgression(
	ctx context.Context,
	userID int64,
	exerciseName string,
	suggestion progression.Suggestion,
) (progression.ExerciseProgression, error) {
	state, err := s.repo.getProgression(ctx, userID, exerciseName)
	if err != nil {
		return progression.ExerciseProgression{}, errors.Wrap(err, "get progression")
	}

	oldWeight := state.WeightKg
	updated := progression.Apply(state, suggestion, s.now())
	if err = s.repo.saveProgression(ctx, userID, updated); err != nil {
		return progression.ExerciseProgression{}, errors.Wrap(err, "save progression")
	}
	if suggestion.Axis != progression.AxisHold {
		if err = s.repo.saveProgressionEvent(ctx, userID, exerciseName, oldWeight, suggestion); err != nil {
			return progression.ExerciseProgression{}, errors.Wrap(err, "save progression event")
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "applied progression",
		slog.String("exercise", exerciseName),
		slog.String("axis", string(suggestion.Axis)),
		slog.Float64("oldWeightKg", oldWeight),
		slog.Float64("newWeightKg", updated.WeightKg))
	return updated, nil
}

// CurrentProtocol rebuilds the protocol for the stored progression state.
func (s *Service) CurrentProtocol(
	ctx context.Context,
	userID int64,
	exerciseName string,
) (protocol.ExerciseProtocol, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return protocol.ExerciseProtocol{}, errors.Wrap(err, "get profile")
	}
	state, err := s.repo.getProgression(ctx, userID, exerciseName)
	if err != nil {
		return protocol.ExerciseProtocol{}, errors.Wrap(err, "get progression")
	}

	definition, ok := taxonomy.Lookup(exerciseName)
	if !ok {
		definition = taxonomy.Infer(exerciseName)
	}
	return protocol.CreateExerciseProtocol(
		exerciseName, state.WeightKg, state.TargetReps, definition.Equipment, profile.Goal), nil
}

// ExerciseNotes returns markdown coaching notes for an exercise. AI-generated
// when a generator is configured, templated otherwise. Generator failures
// degrade to the template with a warning.
func (s *Service) ExerciseNotes(ctx context.Context, exerciseName string) (string, error) {
	definition, ok := taxonomy.Lookup(exerciseName)
	if !ok {
		definition = taxonomy.Infer(exerciseName)
	}

	if s.notes != nil {
		generated, err := s.notes.Generate(ctx, definition)
		if err == nil {
			return generated, nil
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "notes generation failed, using template",
			slog.String("exercise", exerciseName),
			slog.Any("error", err))
	}

	return templateNotes(definition, protocol.FormCues(definition.Category)), nil
}
