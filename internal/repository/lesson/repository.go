package lesson

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

const lessonColumns = `id, course_id, title, description, content, video_url, type, track,
	duration, order_index, is_active, created_at, updated_at`

type lessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) ListByCourse(ctx context.Context, courseID uuid.UUID, filter models.LessonFilter) ([]*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = ?`
	args := []any{courseID}

	if filter.OnlyActive {
		query += ` AND is_active = TRUE`
	}
	if filter.Track != "" {
		query += ` AND track = ?`
		args = append(args, filter.Track)
	}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	query += ` ORDER BY order_index, created_at`

	var lessons []*models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list lessons of course %s: %w", courseID, err)
	}
	return lessons, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var l models.Lesson
	query := r.db.Rebind(`SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`)
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson %s: %w", id, err)
	}
	return &l, nil
}

func (r *lessonRepository) Create(ctx context.Context, l *models.Lesson) error {
	query := r.db.Rebind(`
		INSERT INTO lessons (id, course_id, title, description, content, video_url, type, track,
			duration, order_index, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.CourseID, l.Title, l.Description, l.Content, l.VideoURL, l.Type, l.Track,
		l.Duration, l.OrderIndex, l.IsActive, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

func (r *lessonRepository) Update(ctx context.Context, l *models.Lesson) error {
	query := r.db.Rebind(`
		UPDATE lessons
		SET course_id = ?, title = ?, description = ?, content = ?, video_url = ?, type = ?, track = ?,
			duration = ?, order_index = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`)
	_, err := r.db.ExecContext(ctx, query,
		l.CourseID, l.Title, l.Description, l.Content, l.VideoURL, l.Type, l.Track,
		l.Duration, l.OrderIndex, l.IsActive, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update lesson %s: %w", l.ID, err)
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM lessons WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete lesson %s: %w", id, err)
	}
	return nil
}
