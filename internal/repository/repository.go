package repository

import (
	"context"
	"time"

	"ai-school/internal/models"

	"github.com/google/uuid"
)

// Get* методы возвращают (nil, nil), если запись не найдена.

type UserRepository interface {
	CreateOrUpdate(ctx context.Context, user *models.TelegramUser) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.TelegramUser, error)
	GetByID(ctx context.Context, id int64) (*models.TelegramUser, error)
	List(ctx context.Context) ([]*models.TelegramUser, error)
	Update(ctx context.Context, user *models.TelegramUser) error
	SetAdmin(ctx context.Context, id int64, isAdmin bool, now time.Time) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetByToken(ctx context.Context, token string) (*models.AuthToken, error)
	// Redeem атомарно гасит токен. ok=false, если токен не найден, уже использован или истек
	Redeem(ctx context.Context, token string, now time.Time) (userID int64, ok bool, err error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type CourseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	// RecountLessons пересчитывает lessons_count по активным урокам курса
	RecountLessons(ctx context.Context, id uuid.UUID, now time.Time) error
}

type LessonRepository interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID, filter models.LessonFilter) ([]*models.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TopicRepository interface {
	// Темы
	List(ctx context.Context, onlyActive bool) ([]*models.Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) error
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Подтемы
	ListSubtopics(ctx context.Context, topicID uuid.UUID, onlyActive bool) ([]*models.Subtopic, error)
	GetSubtopicByID(ctx context.Context, id uuid.UUID) (*models.Subtopic, error)
	CreateSubtopic(ctx context.Context, subtopic *models.Subtopic) error
	UpdateSubtopic(ctx context.Context, subtopic *models.Subtopic) error
	DeleteSubtopic(ctx context.Context, id uuid.UUID) error
}

type ProgressRepository interface {
	Upsert(ctx context.Context, progress *models.UserProgress) error
	GetByUserLesson(ctx context.Context, userID int64, lessonID uuid.UUID) (*models.UserProgress, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.UserProgress, error)
	Delete(ctx context.Context, userID int64, lessonID uuid.UUID) error

	// Статистика: активные уроки активных курсов вместе с прогрессом пользователя.
	// courseID == nil - по всем курсам
	ListLessonRows(ctx context.Context, userID int64, courseID *uuid.UUID) ([]models.LessonProgressRow, error)
}
