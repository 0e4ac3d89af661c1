package course_service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository/course"
	"ai-school/internal/repository/lesson"
	"ai-school/internal/repository/repotest"
	"ai-school/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	mu          sync.Mutex
	data        map[string][]*models.Course
	hits        int
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]*models.Course)}
}

func (c *memoryCache) GetCourses(_ context.Context, key string) ([]*models.Course, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memoryCache) SetCourses(_ context.Context, key string, courses []*models.Course) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = courses
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]*models.Course)
	c.invalidated++
	return nil
}

type stubResolver struct {
	info  *models.VideoInfo
	err   error
	calls int
}

func (r *stubResolver) Resolve(context.Context, string) (*models.VideoInfo, error) {
	r.calls++
	return r.info, r.err
}

type fixture struct {
	svc    *courseService
	cache  *memoryCache
	videos *stubResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := repotest.NewDB(t)
	f := &fixture{
		cache:  newMemoryCache(),
		videos: &stubResolver{info: &models.VideoInfo{Title: "Intro to LLMs", Duration: 12*time.Minute + 30*time.Second}},
	}
	f.svc = NewCourseService(
		course.NewCourseRepository(db),
		lesson.NewLessonRepository(db),
		f.cache,
		f.videos,
		zap.NewNop(),
	).(*courseService)
	f.svc.now = func() time.Time { return repotest.Now }
	return f
}

func ptr[T any](v T) *T { return &v }

func TestCreateCourse_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCourse(context.Background(), models.CourseInput{Title: ptr("   ")})
	assert.ErrorIs(t, err, service.ErrValidation)

	c, err := f.svc.CreateCourse(context.Background(), models.CourseInput{
		Title:    ptr(" Промпт-инжиниринг "),
		Duration: ptr("4-6 недель"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Промпт-инжиниринг", c.Title)
	assert.True(t, c.IsActive)
	assert.Equal(t, 0, c.LessonsCount)
}

func TestListCourses_CacheAndInvalidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("A")})
	require.NoError(t, err)

	filter := models.CourseFilter{OnlyActive: true}
	first, err := f.svc.ListCourses(ctx, filter)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = f.svc.ListCourses(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits, "второй запрос из кэша")

	// запись сбрасывает кэш
	_, err = f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("B")})
	require.NoError(t, err)
	after, err := f.svc.ListCourses(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, after, 2)
	assert.Equal(t, 1, f.cache.hits)

	// админский список мимо кэша
	_, err = f.svc.ListCourses(ctx, models.CourseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
}

func TestLessonsCountFollowsLessons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("AI")})
	require.NoError(t, err)
	other, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("ML")})
	require.NoError(t, err)

	l1, err := f.svc.CreateLesson(ctx, c.ID, models.LessonInput{Title: ptr("one"), Type: ptr(models.LessonTypeReading)})
	require.NoError(t, err)
	_, err = f.svc.CreateLesson(ctx, c.ID, models.LessonInput{Title: ptr("two"), Type: ptr(models.LessonTypeQuiz), OrderIndex: ptr(1)})
	require.NoError(t, err)

	got, err := f.svc.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LessonsCount)

	// перенос урока в другой курс пересчитывает оба
	_, err = f.svc.UpdateLesson(ctx, l1.ID, models.LessonInput{CourseID: &other.ID})
	require.NoError(t, err)
	got, err = f.svc.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LessonsCount)
	gotOther, err := f.svc.GetCourse(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotOther.LessonsCount)

	require.NoError(t, f.svc.DeleteLesson(ctx, l1.ID))
	gotOther, err = f.svc.GetCourse(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotOther.LessonsCount)
}

func TestCreateLesson_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("AI")})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   models.LessonInput
	}{
		{"без названия", models.LessonInput{Type: ptr(models.LessonTypeReading)}},
		{"неизвестный тип", models.LessonInput{Title: ptr("x"), Type: ptr(models.LessonType("webinar"))}},
		{"неизвестный трек", models.LessonInput{Title: ptr("x"), Track: ptr(models.LessonTrack("old"))}},
		{"отрицательная длительность", models.LessonInput{Title: ptr("x"), Duration: ptr(-1)}},
		{"отрицательный порядок", models.LessonInput{Title: ptr("x"), OrderIndex: ptr(-1)}},
		{"ссылка не http", models.LessonInput{Title: ptr("x"), Duration: ptr(5), VideoURL: ptr("ftp://files/video.mp4")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateLesson(ctx, c.ID, tt.in)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	_, err = f.svc.CreateLesson(ctx, uuid.New(), models.LessonInput{Title: ptr("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateLesson_FillsFromVideo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("AI")})
	require.NoError(t, err)

	l, err := f.svc.CreateLesson(ctx, c.ID, models.LessonInput{VideoURL: ptr("https://www.youtube.com/watch?v=dQw4w9WgXcQ")})
	require.NoError(t, err)
	assert.Equal(t, "Intro to LLMs", l.Title)
	assert.Equal(t, 13, l.Duration, "длительность округляется вверх до минут")

	// заданные вручную значения не перетираются
	l2, err := f.svc.CreateLesson(ctx, c.ID, models.LessonInput{
		Title: ptr("Свое название"), Duration: ptr(7), VideoURL: ptr("https://youtu.be/dQw4w9WgXcQ"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Свое название", l2.Title)
	assert.Equal(t, 7, l2.Duration)
	assert.Equal(t, 1, f.videos.calls)
}

func TestCreateLesson_VideoErrorIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.videos.err = errors.New("video unavailable")
	c, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("AI")})
	require.NoError(t, err)

	l, err := f.svc.CreateLesson(ctx, c.ID, models.LessonInput{
		Title: ptr("Лекция"), VideoURL: ptr("https://youtu.be/dQw4w9WgXcQ"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, l.Duration)
}

func TestListLessons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("AI")})
	require.NoError(t, err)
	_, err = f.svc.CreateLesson(ctx, c.ID, models.LessonInput{Title: ptr("b"), OrderIndex: ptr(2), Type: ptr(models.LessonTypePractice)})
	require.NoError(t, err)
	_, err = f.svc.CreateLesson(ctx, c.ID, models.LessonInput{Title: ptr("a"), OrderIndex: ptr(1), Type: ptr(models.LessonTypeReading), Track: ptr(models.TrackArchive)})
	require.NoError(t, err)

	all, err := f.svc.ListLessons(ctx, c.ID, models.LessonFilter{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Title)

	archive, err := f.svc.ListLessons(ctx, c.ID, models.LessonFilter{Track: models.TrackArchive})
	require.NoError(t, err)
	assert.Len(t, archive, 1)

	_, err = f.svc.ListLessons(ctx, c.ID, models.LessonFilter{Type: "webinar"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.ListLessons(ctx, uuid.New(), models.LessonFilter{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.svc.CreateCourse(ctx, models.CourseInput{Title: ptr("AI")})
	require.NoError(t, err)
	before := f.cache.invalidated

	updated, err := f.svc.UpdateCourse(ctx, c.ID, models.CourseInput{Color: ptr("#123456"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "#123456", updated.Color)
	assert.False(t, updated.IsActive)
	assert.Equal(t, before+1, f.cache.invalidated)

	_, err = f.svc.UpdateCourse(ctx, c.ID, models.CourseInput{Title: ptr("")})
	assert.ErrorIs(t, err, service.ErrValidation)

	require.NoError(t, f.svc.DeleteCourse(ctx, c.ID))
	assert.ErrorIs(t, f.svc.DeleteCourse(ctx, c.ID), service.ErrNotFound)
	_, err = f.svc.GetCourse(ctx, c.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
