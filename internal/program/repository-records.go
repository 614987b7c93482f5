package program

import (
	"context"
	"fmt"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/progression"
)

// saveRecord persists a performance record and its sets in one transaction.
func (r *sqliteRepository) saveRecord(
	ctx context.Context,
	userID int64,
	record progression.PerformanceRecord,
) (int64, error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO performance_records (user_id, exercise_name, performed_at, form_quality)
		VALUES (?, ?, ?, ?)`,
		userID, record.ExerciseName, record.PerformedAt.UTC().Format(timestampFormat), record.Form)
	if err != nil {
		return 0, fmt.Errorf("insert performance record: %w", err)
	}
	recordID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, set := range record.Sets {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO performance_sets (record_id, set_id, weight_kg, target_reps, achieved_reps, rpe)
			VALUES (?, ?, ?, ?, ?, ?)`,
			recordID, set.SetID, set.WeightKg, set.TargetReps, set.AchievedReps, set.RPE); err != nil {
			return 0, fmt.Errorf("insert performance set: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return recordID, nil
}

// recentRecords returns the newest records for an exercise in chronological
// order, sets included.
func (r *sqliteRepository) recentRecords(
	ctx context.Context,
	userID int64,
	exerciseName string,
	limit int,
) ([]progression.PerformanceRecord, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, exercise_name, performed_at, form_quality
		FROM performance_records
		WHERE user_id = ? AND exercise_name = ?
		ORDER BY performed_at DESC
		LIMIT ?`, userID, exerciseName, limit)
	if err != nil {
		return nil, fmt.Errorf("query performance records: %w", err)
	}
	defer rows.Close()

	var records []progression.PerformanceRecord
	for rows.Next() {
		var (
			record      progression.PerformanceRecord
			performedAt string
		)
		if err = rows.Scan(&record.ID, &record.ExerciseName, &performedAt, &record.Form); err != nil {
			return nil, fmt.Errorf("scan performance record: %w", err)
		}
		if record.PerformedAt, err = time.Parse(timestampFormat, performedAt); err != nil {
			return nil, fmt.Errorf("parse performed_at: %w", err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performance records: %w", err)
	}

	for i := range records {
		if records[i].Sets, err = r.recordSets(ctx, records[i].ID); err != nil {
			return nil, fmt.Errorf("load sets for record %d: %w", records[i].ID, err)
		}
	}

	// Newest-first from the query, oldest-first for the engine.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (r *sqliteRepository) recordSets(ctx context.Context, recordID int64) ([]progression.SetResult, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT set_id, weight_kg, target_reps, achieved_reps, rpe
		FROM performance_sets
		WHERE record_id = ?
		ORDER BY id`, recordID)
	if err != nil {
		return nil, fmt.Errorf("query performance sets: %w", err)
	}
	defer rows.Close()

	var sets []progression.SetResult
	for rows.Next() {
		var set progression.SetResult
		if err = rows.Scan(&set.SetID, &set.WeightKg, &set.TargetReps, &set.AchievedReps, &set.RPE); err != nil {
			return nil, fmt.Errorf("scan performance set: %w", err)
		}
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performance sets: %w", err)
	}
	return sets, nil
}
