package service

import (
	"context"

	"ai-school/internal/models"

	"github.com/google/uuid"
)

type UserService interface {
	// RegisterOrUpdate создает пользователя или обновляет его данные из Telegram.
	// Флаг администратора сохраняется и выставляется для ADMIN_IDS
	RegisterOrUpdate(ctx context.Context, profile models.TelegramProfile) (*models.TelegramUser, error)
	GetByID(ctx context.Context, id int64) (*models.TelegramUser, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.TelegramUser, error)
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.TelegramUser, error)

	// Админка
	List(ctx context.Context) ([]*models.TelegramUser, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) (*models.TelegramUser, error)
}

type AuthService interface {
	IssueToken(ctx context.Context, userID int64) (*models.AuthToken, error)
	RedeemToken(ctx context.Context, token string) (*models.TelegramUser, error)
	// LoginWebApp проверяет подпись initData и синхронизирует пользователя
	LoginWebApp(ctx context.Context, initData string) (*models.TelegramUser, error)
	// PurgeExpired удаляет истекшие и погашенные токены
	PurgeExpired(ctx context.Context) (int64, error)
}

type CourseService interface {
	// Курсы
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, in models.CourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	// Уроки
	ListLessons(ctx context.Context, courseID uuid.UUID, filter models.LessonFilter) ([]*models.Lesson, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	CreateLesson(ctx context.Context, courseID uuid.UUID, in models.LessonInput) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id uuid.UUID, in models.LessonInput) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID) error
}

type TopicService interface {
	ListTopics(ctx context.Context, onlyActive bool) ([]*models.Topic, error)
	GetTopic(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	CreateTopic(ctx context.Context, in models.TopicInput) (*models.Topic, error)
	UpdateTopic(ctx context.Context, id uuid.UUID, in models.TopicInput) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id uuid.UUID) error

	ListSubtopics(ctx context.Context, topicID uuid.UUID, onlyActive bool) ([]*models.Subtopic, error)
	CreateSubtopic(ctx context.Context, topicID uuid.UUID, in models.SubtopicInput) (*models.Subtopic, error)
	UpdateSubtopic(ctx context.Context, id uuid.UUID, in models.SubtopicInput) (*models.Subtopic, error)
	DeleteSubtopic(ctx context.Context, id uuid.UUID) error
}

type ProgressService interface {
	GetStats(ctx context.Context, userID int64) (*models.ProgressStats, error)
	GetCourseStats(ctx context.Context, userID int64, courseID uuid.UUID) (*models.ProgressStats, error)
	ListProgress(ctx context.Context, userID int64) ([]*models.UserProgress, error)

	SetPercentage(ctx context.Context, userID int64, lessonID uuid.UUID, percentage int) (*models.UserProgress, error)
	CompleteLesson(ctx context.Context, userID int64, lessonID uuid.UUID) (*models.UserProgress, error)
	ResetLesson(ctx context.Context, userID int64, lessonID uuid.UUID) error
}

// CourseCache - кэш списка курсов (Redis или no-op)
type CourseCache interface {
	GetCourses(ctx context.Context, key string) ([]*models.Course, bool, error)
	SetCourses(ctx context.Context, key string, courses []*models.Course) error
	Invalidate(ctx context.Context) error
}

// VideoResolver достает метаданные ролика по ссылке
type VideoResolver interface {
	Resolve(ctx context.Context, url string) (*models.VideoInfo, error)
}
