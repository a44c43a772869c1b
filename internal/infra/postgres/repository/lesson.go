package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres"
)

// LessonRepository stores finished lessons.
type LessonRepository struct {
	db postgres.DBTX
}

// NewLessonRepository creates a new LessonRepository.
func NewLessonRepository(db postgres.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

// Record saves a lesson summary. Recording the same lesson twice is a no-op.
func (r *LessonRepository) Record(ctx context.Context, s entities.LessonSummary) error {
	query := `
		INSERT INTO lesson_history (
			id, user_id, total, answered, correct, out_of_lives, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.Total,
		s.Answered,
		s.Correct,
		s.OutOfLives,
		s.StartedAt,
		s.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("record lesson: %w", err)
	}

	return nil
}

// Stats aggregates the lesson history of a user.
func (r *LessonRepository) Stats(ctx context.Context, userID int64) (entities.LessonStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(answered), 0), COALESCE(SUM(correct), 0), MAX(finished_at)
		FROM lesson_history
		WHERE user_id = $1
	`

	var stats entities.LessonStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.Lessons,
		&stats.Answered,
		&stats.Correct,
		&stats.LastAt,
	)
	if err != nil {
		return entities.LessonStats{}, fmt.Errorf("lesson stats: %w", err)
	}

	return stats, nil
}

// Recent returns the latest lessons, newest first.
func (r *LessonRepository) Recent(ctx context.Context, userID int64, limit int) ([]entities.LessonSummary, error) {
	query := `
		SELECT id, user_id, total, answered, correct, out_of_lives, started_at, finished_at
		FROM lesson_history
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent lessons: %w", err)
	}
	defer rows.Close()

	var lessons []entities.LessonSummary
	for rows.Next() {
		var s entities.LessonSummary
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Total,
			&s.Answered,
			&s.Correct,
			&s.OutOfLives,
			&s.StartedAt,
			&s.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}

	return lessons, nil
}
