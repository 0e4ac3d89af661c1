package topic_service

import (
	"context"
	"strings"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository"
	"ai-school/internal/service"

	"github.com/google/uuid"
)

type topicService struct {
	topicRepo repository.TopicRepository
	now       func() time.Time
}

func NewTopicService(topicRepo repository.TopicRepository) service.TopicService {
	return &topicService{
		topicRepo: topicRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *topicService) ListTopics(ctx context.Context, onlyActive bool) ([]*models.Topic, error) {
	return s.topicRepo.List(ctx, onlyActive)
}

func (s *topicService) GetTopic(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, service.ErrNotFound
	}
	return topic, nil
}

func (s *topicService) CreateTopic(ctx context.Context, in models.TopicInput) (*models.Topic, error) {
	now := s.now()
	topic := &models.Topic{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(topic)
	if err := validate(&topic.Title, topic.OrderIndex); err != nil {
		return nil, err
	}

	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *topicService) UpdateTopic(ctx context.Context, id uuid.UUID, in models.TopicInput) (*models.Topic, error) {
	topic, err := s.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(topic)
	if err := validate(&topic.Title, topic.OrderIndex); err != nil {
		return nil, err
	}
	topic.UpdatedAt = s.now()

	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *topicService) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTopic(ctx, id); err != nil {
		return err
	}
	return s.topicRepo.Delete(ctx, id)
}

// ============ Подтемы ============

func (s *topicService) ListSubtopics(ctx context.Context, topicID uuid.UUID, onlyActive bool) ([]*models.Subtopic, error) {
	topic, err := s.GetTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	// подтемы скрытой темы наружу не отдаем
	if onlyActive && !topic.IsActive {
		return nil, service.ErrNotFound
	}
	return s.topicRepo.ListSubtopics(ctx, topicID, onlyActive)
}

func (s *topicService) CreateSubtopic(ctx context.Context, topicID uuid.UUID, in models.SubtopicInput) (*models.Subtopic, error) {
	if _, err := s.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	now := s.now()
	sub := &models.Subtopic{
		ID:        uuid.New(),
		TopicID:   topicID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(sub)
	if err := validate(&sub.Title, sub.OrderIndex); err != nil {
		return nil, err
	}

	if err := s.topicRepo.CreateSubtopic(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *topicService) UpdateSubtopic(ctx context.Context, id uuid.UUID, in models.SubtopicInput) (*models.Subtopic, error) {
	sub, err := s.getSubtopic(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(sub)
	if err := validate(&sub.Title, sub.OrderIndex); err != nil {
		return nil, err
	}
	sub.UpdatedAt = s.now()

	if err := s.topicRepo.UpdateSubtopic(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *topicService) DeleteSubtopic(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getSubtopic(ctx, id); err != nil {
		return err
	}
	return s.topicRepo.DeleteSubtopic(ctx, id)
}

func (s *topicService) getSubtopic(ctx context.Context, id uuid.UUID) (*models.Subtopic, error) {
	sub, err := s.topicRepo.GetSubtopicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, service.ErrNotFound
	}
	return sub, nil
}

func validate(title *string, orderIndex int) error {
	*title = strings.TrimSpace(*title)
	if *title == "" {
		return service.Validationf("title is required")
	}
	if orderIndex < 0 {
		return service.Validationf("order_index must not be negative")
	}
	return nil
}
