package lesson_test

import (
	"context"
	"testing"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository/lesson"
	"ai-school/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonRepository_ListByCourseOrdered(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewDB(t)
	repo := lesson.NewLessonRepository(db)

	c := repotest.InsertCourse(t, db, "AI", repotest.Now)
	third := repotest.InsertLesson(t, db, c.ID, "third", 3, 10)
	first := repotest.InsertLesson(t, db, c.ID, "first", 1, 10)
	second := repotest.InsertLesson(t, db, c.ID, "second", 2, 10)

	lessons, err := repo.ListByCourse(ctx, c.ID, models.LessonFilter{})
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID},
		[]uuid.UUID{lessons[0].ID, lessons[1].ID, lessons[2].ID})
}

func TestLessonRepository_Filters(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewDB(t)
	repo := lesson.NewLessonRepository(db)

	c := repotest.InsertCourse(t, db, "AI", repotest.Now)
	video := repotest.InsertLesson(t, db, c.ID, "video", 1, 10)

	quiz := repotest.InsertLesson(t, db, c.ID, "quiz", 2, 5)
	quiz.Type = models.LessonTypeQuiz
	quiz.Track = models.TrackArchive
	require.NoError(t, repo.Update(ctx, quiz))

	hidden := repotest.InsertLesson(t, db, c.ID, "hidden", 3, 5)
	hidden.IsActive = false
	require.NoError(t, repo.Update(ctx, hidden))

	active, err := repo.ListByCourse(ctx, c.ID, models.LessonFilter{OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	archive, err := repo.ListByCourse(ctx, c.ID, models.LessonFilter{Track: models.TrackArchive})
	require.NoError(t, err)
	require.Len(t, archive, 1)
	assert.Equal(t, quiz.ID, archive[0].ID)

	videos, err := repo.ListByCourse(ctx, c.ID, models.LessonFilter{Type: models.LessonTypeVideo, OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, video.ID, videos[0].ID)
}

func TestLessonRepository_CRUDAndCascade(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewDB(t)
	repo := lesson.NewLessonRepository(db)
	c := repotest.InsertCourse(t, db, "AI", repotest.Now)

	l := &models.Lesson{
		ID:         uuid.New(),
		CourseID:   c.ID,
		Title:      "Введение",
		Content:    "# Привет",
		VideoURL:   "https://youtu.be/abc",
		Type:       models.LessonTypeVideo,
		Track:      models.TrackSprint,
		Duration:   12,
		OrderIndex: 0,
		IsActive:   true,
		CreatedAt:  repotest.Now,
		UpdatedAt:  repotest.Now,
	}
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://youtu.be/abc", got.VideoURL)
	assert.Equal(t, 12, got.Duration)
	assert.Equal(t, models.TrackSprint, got.Track)

	got.Title = "Введение v2"
	got.UpdatedAt = repotest.Now.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Введение v2", got.Title)

	// удаление курса удаляет и уроки
	_, err = db.Exec(db.Rebind(`DELETE FROM courses WHERE id = ?`), c.ID)
	require.NoError(t, err)
	got, err = repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLessonRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewDB(t)
	repo := lesson.NewLessonRepository(db)
	c := repotest.InsertCourse(t, db, "AI", repotest.Now)
	l := repotest.InsertLesson(t, db, c.ID, "x", 1, 1)

	require.NoError(t, repo.Delete(ctx, l.ID))
	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
