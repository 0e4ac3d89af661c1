package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const courseColumns = `id, title, description, icon, color, duration, lessons_count, is_active, created_at, updated_at`

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	var (
		where []string
		args  []any
	)
	if filter.OnlyActive {
		where = append(where, "is_active = TRUE")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}

	query := `SELECT ` + courseColumns + ` FROM courses`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	var courses []*models.Course
	if err := r.db.SelectContext(ctx, &courses, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var c models.Course
	query := r.db.Rebind(`SELECT ` + courseColumns + ` FROM courses WHERE id = ?`)
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", id, err)
	}
	return &c, nil
}

func (r *courseRepository) Create(ctx context.Context, c *models.Course) error {
	query := r.db.Rebind(`
		INSERT INTO courses (id, title, description, icon, color, duration, lessons_count, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Description, c.Icon, c.Color, c.Duration,
		c.LessonsCount, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *courseRepository) Update(ctx context.Context, c *models.Course) error {
	query := r.db.Rebind(`
		UPDATE courses
		SET title = ?, description = ?, icon = ?, color = ?, duration = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`)
	_, err := r.db.ExecContext(ctx, query,
		c.Title, c.Description, c.Icon, c.Color, c.Duration, c.IsActive, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update course %s: %w", c.ID, err)
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM courses WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	return nil
}

func (r *courseRepository) RecountLessons(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := r.db.Rebind(`
		UPDATE courses
		SET lessons_count = (SELECT COUNT(*) FROM lessons WHERE course_id = ? AND is_active = TRUE),
			updated_at = ?
		WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, id, now, id); err != nil {
		return fmt.Errorf("recount lessons for course %s: %w", id, err)
	}
	return nil
}
