package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic - раздел базы знаний (админка тем)
type Topic struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	Color       string    `db:"color" json:"color"`
	OrderIndex  int       `db:"order_index" json:"order_index"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Subtopic struct {
	ID         uuid.UUID `db:"id" json:"id"`
	TopicID    uuid.UUID `db:"topic_id" json:"topic_id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	OrderIndex int       `db:"order_index" json:"order_index"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type TopicInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	OrderIndex  *int    `json:"order_index"`
	IsActive    *bool   `json:"is_active"`
}

func (in TopicInput) Apply(t *Topic) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Icon != nil {
		t.Icon = *in.Icon
	}
	if in.Color != nil {
		t.Color = *in.Color
	}
	if in.OrderIndex != nil {
		t.OrderIndex = *in.OrderIndex
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

type SubtopicInput struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	OrderIndex *int    `json:"order_index"`
	IsActive   *bool   `json:"is_active"`
}

func (in SubtopicInput) Apply(s *Subtopic) {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Content != nil {
		s.Content = *in.Content
	}
	if in.OrderIndex != nil {
		s.OrderIndex = *in.OrderIndex
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
}
