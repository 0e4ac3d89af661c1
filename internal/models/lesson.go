package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonType string

const (
	LessonTypeVideo    LessonType = "video"
	LessonTypePractice LessonType = "practice"
	LessonTypeReading  LessonType = "reading"
	LessonTypeQuiz     LessonType = "quiz"
)

func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeVideo, LessonTypePractice, LessonTypeReading, LessonTypeQuiz:
		return true
	}
	return false
}

// LessonTrack - актуальный поток (sprint) или архив записей (archive)
type LessonTrack string

const (
	TrackSprint  LessonTrack = "sprint"
	TrackArchive LessonTrack = "archive"
)

func (t LessonTrack) Valid() bool {
	return t == TrackSprint || t == TrackArchive
}

type Lesson struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	CourseID    uuid.UUID   `db:"course_id" json:"course_id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Content     string      `db:"content" json:"content"`
	VideoURL    string      `db:"video_url" json:"video_url,omitempty"`
	Type        LessonType  `db:"type" json:"type"`
	Track       LessonTrack `db:"track" json:"track"`
	Duration    int         `db:"duration" json:"duration"` // минуты
	OrderIndex  int         `db:"order_index" json:"order_index"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

type LessonInput struct {
	CourseID    *uuid.UUID   `json:"course_id"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Content     *string      `json:"content"`
	VideoURL    *string      `json:"video_url"`
	Type        *LessonType  `json:"type"`
	Track       *LessonTrack `json:"track"`
	Duration    *int         `json:"duration"`
	OrderIndex  *int         `json:"order_index"`
	IsActive    *bool        `json:"is_active"`
}

func (in LessonInput) Apply(l *Lesson) {
	if in.CourseID != nil {
		l.CourseID = *in.CourseID
	}
	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Content != nil {
		l.Content = *in.Content
	}
	if in.VideoURL != nil {
		l.VideoURL = *in.VideoURL
	}
	if in.Type != nil {
		l.Type = *in.Type
	}
	if in.Track != nil {
		l.Track = *in.Track
	}
	if in.Duration != nil {
		l.Duration = *in.Duration
	}
	if in.OrderIndex != nil {
		l.OrderIndex = *in.OrderIndex
	}
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}
}

// LessonFilter - фильтры выборки уроков курса
type LessonFilter struct {
	Track      LessonTrack
	Type       LessonType
	OnlyActive bool
}
