package topic_service_test

import (
	"context"
	"testing"

	"ai-school/internal/models"
	"ai-school/internal/repository/repotest"
	"ai-school/internal/repository/topic"
	"ai-school/internal/service"
	topic_service "ai-school/internal/service/topic"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) service.TopicService {
	return topic_service.NewTopicService(topic.NewTopicRepository(repotest.NewDB(t)))
}

func TestTopicLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateTopic(ctx, models.TopicInput{Title: ptr("")})
	assert.ErrorIs(t, err, service.ErrValidation)

	tp, err := svc.CreateTopic(ctx, models.TopicInput{Title: ptr("Нейросети"), Icon: ptr("🧠"), OrderIndex: ptr(1)})
	require.NoError(t, err)
	assert.True(t, tp.IsActive)

	updated, err := svc.UpdateTopic(ctx, tp.ID, models.TopicInput{Description: ptr("Все о нейросетях")})
	require.NoError(t, err)
	assert.Equal(t, "Нейросети", updated.Title)
	assert.Equal(t, "Все о нейросетях", updated.Description)

	_, err = svc.UpdateTopic(ctx, tp.ID, models.TopicInput{OrderIndex: ptr(-3)})
	assert.ErrorIs(t, err, service.ErrValidation)

	topics, err := svc.ListTopics(ctx, true)
	require.NoError(t, err)
	assert.Len(t, topics, 1)

	require.NoError(t, svc.DeleteTopic(ctx, tp.ID))
	assert.ErrorIs(t, svc.DeleteTopic(ctx, tp.ID), service.ErrNotFound)
}

func TestSubtopics(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	tp, err := svc.CreateTopic(ctx, models.TopicInput{Title: ptr("Промпты")})
	require.NoError(t, err)

	_, err = svc.CreateSubtopic(ctx, uuid.New(), models.SubtopicInput{Title: ptr("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	s1, err := svc.CreateSubtopic(ctx, tp.ID, models.SubtopicInput{Title: ptr("Роли"), OrderIndex: ptr(2)})
	require.NoError(t, err)
	s0, err := svc.CreateSubtopic(ctx, tp.ID, models.SubtopicInput{Title: ptr("Основы"), OrderIndex: ptr(1)})
	require.NoError(t, err)

	subs, err := svc.ListSubtopics(ctx, tp.ID, true)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, s0.ID, subs[0].ID)

	_, err = svc.UpdateSubtopic(ctx, s1.ID, models.SubtopicInput{IsActive: ptr(false)})
	require.NoError(t, err)
	subs, err = svc.ListSubtopics(ctx, tp.ID, true)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	// скрытая тема не отдает подтемы публично, но видна в админке
	_, err = svc.UpdateTopic(ctx, tp.ID, models.TopicInput{IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = svc.ListSubtopics(ctx, tp.ID, true)
	assert.ErrorIs(t, err, service.ErrNotFound)
	subs, err = svc.ListSubtopics(ctx, tp.ID, false)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	require.NoError(t, svc.DeleteSubtopic(ctx, s1.ID))
	assert.ErrorIs(t, svc.DeleteSubtopic(ctx, s1.ID), service.ErrNotFound)
}
