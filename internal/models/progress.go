package models

import (
	"time"

	"github.com/google/uuid"
)

type UserProgress struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	LessonID    uuid.UUID  `db:"lesson_id" json:"lesson_id"`
	IsCompleted bool       `db:"is_completed" json:"is_completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Percentage  int        `db:"percentage" json:"percentage"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// LessonProgressRow - урок вместе с прогрессом пользователя по нему (LEFT JOIN)
type LessonProgressRow struct {
	CourseID    uuid.UUID  `db:"course_id"`
	CourseTitle string     `db:"course_title"`
	LessonID    uuid.UUID  `db:"lesson_id"`
	Duration    int        `db:"duration"`
	IsCompleted bool       `db:"is_completed"`
	CompletedAt *time.Time `db:"completed_at"`
}

type CourseProgress struct {
	CourseID   uuid.UUID `json:"course_id"`
	Title      string    `json:"title"`
	Lessons    int       `json:"lessons"`
	Completed  int       `json:"completed"`
	Percentage int       `json:"percentage"`
}

type DayActivity struct {
	Day       string `json:"day"` // "Пн"
	Date      string `json:"date"`
	Lessons   int    `json:"lessons"`
	Completed bool   `json:"completed"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// ProgressStats - сводная статистика обучения пользователя
type ProgressStats struct {
	TotalLessons     int              `json:"total_lessons"`
	CompletedLessons int              `json:"completed_lessons"`
	TotalMinutes     int              `json:"total_minutes"`
	CompletedMinutes int              `json:"completed_minutes"`
	Percentage       int              `json:"percentage"`
	CurrentStreak    int              `json:"current_streak"`
	LongestStreak    int              `json:"longest_streak"`
	Courses          []CourseProgress `json:"courses"`
	Weekly           []DayActivity    `json:"weekly"`
	Achievements     []Achievement    `json:"achievements"`
}
