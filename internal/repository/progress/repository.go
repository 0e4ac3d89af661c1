package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ai-school/internal/models"
	"ai-school/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const progressColumns = `id, user_id, lesson_id, is_completed, completed_at, percentage, created_at, updated_at`

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Upsert(ctx context.Context, p *models.UserProgress) error {
	query := r.db.Rebind(`
		INSERT INTO user_progress (id, user_id, lesson_id, is_completed, completed_at, percentage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, lesson_id)
		DO UPDATE SET
			is_completed = EXCLUDED.is_completed,
			completed_at = EXCLUDED.completed_at,
			percentage = EXCLUDED.percentage,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.UserID, p.LessonID, p.IsCompleted, p.CompletedAt, p.Percentage, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("upsert progress user=%d lesson=%s: %w", p.UserID, p.LessonID, err)
	}
	return nil
}

func (r *progressRepository) GetByUserLesson(ctx context.Context, userID int64, lessonID uuid.UUID) (*models.UserProgress, error) {
	var p models.UserProgress
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ? AND lesson_id = ?`)
	err := r.db.GetContext(ctx, &p, query, userID, lessonID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserProgress, error) {
	var list []*models.UserProgress
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ? ORDER BY updated_at DESC`)
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, fmt.Errorf("list progress of user %d: %w", userID, err)
	}
	return list, nil
}

func (r *progressRepository) Delete(ctx context.Context, userID int64, lessonID uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM user_progress WHERE user_id = ? AND lesson_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, userID, lessonID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (r *progressRepository) ListLessonRows(ctx context.Context, userID int64, courseID *uuid.UUID) ([]models.LessonProgressRow, error) {
	query := `
		SELECT c.id AS course_id, c.title AS course_title, l.id AS lesson_id, l.duration,
			COALESCE(p.is_completed, FALSE) AS is_completed, p.completed_at
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		LEFT JOIN user_progress p ON p.lesson_id = l.id AND p.user_id = ?
		WHERE l.is_active = TRUE AND c.is_active = TRUE`
	args := []any{userID}
	if courseID != nil {
		query += ` AND c.id = ?`
		args = append(args, *courseID)
	}
	query += ` ORDER BY c.created_at DESC, c.id, l.order_index`

	var rows []models.LessonProgressRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list lesson progress rows of user %d: %w", userID, err)
	}
	return rows, nil
}
