// Package repotest поднимает in-memory SQLite с боевыми миграциями для тестов
// репозиториев, сервисов и хендлеров.
package repotest

import (
	"testing"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/models/config"
	database "ai-school/pkg"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Now - фиксированное время фикстур
var Now = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, config.DriverSQLite))

	t.Cleanup(func() { db.Close() })
	return db
}

func InsertUser(t testing.TB, db *sqlx.DB, telegramID int64, firstName string) *models.TelegramUser {
	t.Helper()

	u := &models.TelegramUser{
		TelegramUserID: telegramID,
		FirstName:      firstName,
		Username:       "user" + firstName,
		CreatedAt:      Now,
		UpdatedAt:      Now,
	}
	err := db.QueryRowx(db.Rebind(`
		INSERT INTO telegram_users (telegram_user_id, username, first_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`),
		u.TelegramUserID, u.Username, u.FirstName, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	require.NoError(t, err)
	return u
}

func InsertCourse(t testing.TB, db *sqlx.DB, title string, createdAt time.Time) *models.Course {
	t.Helper()

	c := &models.Course{
		ID:        uuid.New(),
		Title:     title,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	_, err := db.Exec(db.Rebind(`
		INSERT INTO courses (id, title, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		c.ID, c.Title, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	require.NoError(t, err)
	return c
}

func InsertLesson(t testing.TB, db *sqlx.DB, courseID uuid.UUID, title string, order, duration int) *models.Lesson {
	t.Helper()

	l := &models.Lesson{
		ID:         uuid.New(),
		CourseID:   courseID,
		Title:      title,
		Type:       models.LessonTypeVideo,
		Track:      models.TrackSprint,
		Duration:   duration,
		OrderIndex: order,
		IsActive:   true,
		CreatedAt:  Now,
		UpdatedAt:  Now,
	}
	_, err := db.Exec(db.Rebind(`
		INSERT INTO lessons (id, course_id, title, type, track, duration, order_index, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		l.ID, l.CourseID, l.Title, l.Type, l.Track, l.Duration, l.OrderIndex, l.IsActive, l.CreatedAt, l.UpdatedAt,
	)
	require.NoError(t, err)
	return l
}
