package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/protocol"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/sqlite"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/taxonomy"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository handles database operations for the coaching domain.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// newSQLiteRepository creates a new SQLite-backed repository.
func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// ensureUser creates the user row if it does not exist yet. Anonymous
// sessions mint their user on first write.
func (r *sqliteRepository) ensureUser(ctx context.Context, userID int64) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (id) VALUES (?)
		ON CONFLICT (id) DO NOTHING`, userID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// getProfile retrieves the coaching profile for a user. Missing users get
// the default profile.
func (r *sqliteRepository) getProfile(ctx context.Context, userID int64) (Profile, error) {
	profile := Profile{
		ID:         userID,
		Experience: taxonomy.ExperienceBeginner,
		Access:     taxonomy.AccessFullGym,
		Goal:       protocol.GoalHypertrophy,
	}
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT experience, equipment_access, goal
		FROM users
		WHERE id = ?`, userID).Scan(&profile.Experience, &profile.Access, &profile.Goal)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return profile, nil
}

// saveProfile upserts the coaching profile for a user.
func (r *sqliteRepository) saveProfile(ctx context.Context, profile Profile) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (id, experience, equipment_access, goal)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			experience = excluded.experience,
			equipment_access = excluded.equipment_access,
			goal = excluded.goal`,
		profile.ID, profile.Experience, profile.Access, profile.Goal); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
