package topic

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

const (
	topicColumns    = `id, title, description, icon, color, order_index, is_active, created_at, updated_at`
	subtopicColumns = `id, topic_id, title, content, order_index, is_active, created_at, updated_at`
)

type topicRepository struct {
	db *sqlx.DB
}

func NewTopicRepository(db *sqlx.DB) repository.TopicRepository {
	return &topicRepository{db: db}
}

// ============ Темы ============

func (r *topicRepository) List(ctx context.Context, onlyActive bool) ([]*models.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY order_index, created_at`

	var topics []*models.Topic
	if err := r.db.SelectContext(ctx, &topics, query); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	var t models.Topic
	query := r.db.Rebind(`SELECT ` + topicColumns + ` FROM topics WHERE id = ?`)
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get topic %s: %w", id, err)
	}
	return &t, nil
}

func (r *topicRepository) Create(ctx context.Context, t *models.Topic) error {
	query := r.db.Rebind(`
		INSERT INTO topics (id, title, description, icon, color, order_index, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Icon, t.Color, t.OrderIndex, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

func (r *topicRepository) Update(ctx context.Context, t *models.Topic) error {
	query := r.db.Rebind(`
		UPDATE topics
		SET title = ?, description = ?, icon = ?, color = ?, order_index = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`)
	_, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Icon, t.Color, t.OrderIndex, t.IsActive, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update topic %s: %w", t.ID, err)
	}
	return nil
}

func (r *topicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM topics WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete topic %s: %w", id, err)
	}
	return nil
}

// ============ Подтемы ============

func (r *topicRepository) ListSubtopics(ctx context.Context, topicID uuid.UUID, onlyActive bool) ([]*models.Subtopic, error) {
	query := `SELECT ` + subtopicColumns + ` FROM subtopics WHERE topic_id = ?`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY order_index, created_at`

	var subtopics []*models.Subtopic
	if err := r.db.SelectContext(ctx, &subtopics, r.db.Rebind(query), topicID); err != nil {
		return nil, fmt.Errorf("list subtopics of topic %s: %w", topicID, err)
	}
	return subtopics, nil
}

func (r *topicRepository) GetSubtopicByID(ctx context.Context, id uuid.UUID) (*models.Subtopic, error) {
	var s models.Subtopic
	query := r.db.Rebind(`SELECT ` + subtopicColumns + ` FROM subtopics WHERE id = ?`)
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subtopic %s: %w", id, err)
	}
	return &s, nil
}

func (r *topicRepository) CreateSubtopic(ctx context.Context, s *models.Subtopic) error {
	query := r.db.Rebind(`
		INSERT INTO subtopics (id, topic_id, title, content, order_index, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.TopicID, s.Title, s.Content, s.OrderIndex, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create subtopic: %w", err)
	}
	return nil
}

func (r *topicRepository) UpdateSubtopic(ctx context.Context, s *models.Subtopic) error {
	query := r.db.Rebind(`
		UPDATE subtopics
		SET title = ?, content = ?, order_index = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`)
	_, err := r.db.ExecContext(ctx, query,
		s.Title, s.Content, s.OrderIndex, s.IsActive, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update subtopic %s: %w", s.ID, err)
	}
	return nil
}

func (r *topicRepository) DeleteSubtopic(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM subtopics WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete subtopic %s: %w", id, err)
	}
	return nil
}
