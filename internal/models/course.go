package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Icon         string    `db:"icon" json:"icon"`
	Color        string    `db:"color" json:"color"`
	Duration     string    `db:"duration" json:"duration"` // "4-6 недель"
	LessonsCount int       `db:"lessons_count" json:"lessons_count"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CourseInput - тело запроса на создание/обновление курса
type CourseInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Duration    *string `json:"duration"`
	IsActive    *bool   `json:"is_active"`
}

// Apply переносит заданные поля в курс
func (in CourseInput) Apply(c *Course) {
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

// CourseFilter - фильтры списка курсов
type CourseFilter struct {
	Search     string
	OnlyActive bool
}

// CacheKey - ключ кэша для списка курсов с этим фильтром
func (f CourseFilter) CacheKey() string {
	return fmt.Sprintf("active=%t:search=%s", f.OnlyActive, strings.ToLower(strings.TrimSpace(f.Search)))
}
