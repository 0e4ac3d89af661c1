package course_service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository"
	"ai-school/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxTitleLength = 200

type courseService struct {
	courseRepo repository.CourseRepository
	lessonRepo repository.LessonRepository
	cache      service.CourseCache
	videos     service.VideoResolver
	log        *zap.Logger
	now        func() time.Time
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	cache service.CourseCache,
	videos service.VideoResolver,
	log *zap.Logger,
) service.CourseService {
	return &courseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		cache:      cache,
		videos:     videos,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ============ Курсы ============

// ListCourses отдает курсы, новые первыми. Публичный список (OnlyActive) читается через кэш
func (s *courseService) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	if !filter.OnlyActive {
		return s.courseRepo.List(ctx, filter)
	}

	key := filter.CacheKey()
	cached, ok, err := s.cache.GetCourses(ctx, key)
	if err != nil {
		s.log.Warn("⚠️ Кэш курсов недоступен", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	courses, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCourses(ctx, key, courses); err != nil {
		s.log.Warn("⚠️ Не удалось сохранить курсы в кэш", zap.Error(err))
	}
	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, service.ErrNotFound
	}
	return course, nil
}

func (s *courseService) CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	now := s.now()
	course := &models.Course{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(course)
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Info("📚 Создан курс", zap.String("id", course.ID.String()), zap.String("title", course.Title))
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id uuid.UUID, in models.CourseInput) (*models.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(course)
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	course.UpdatedAt = s.now()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.log.Info("🗑️ Удален курс", zap.String("id", id.String()))
	return nil
}

// ============ Уроки ============

func (s *courseService) ListLessons(ctx context.Context, courseID uuid.UUID, filter models.LessonFilter) ([]*models.Lesson, error) {
	if filter.Track != "" && !filter.Track.Valid() {
		return nil, service.Validationf("unknown track %q", filter.Track)
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, service.Validationf("unknown lesson type %q", filter.Type)
	}
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.lessonRepo.ListByCourse(ctx, courseID, filter)
}

func (s *courseService) GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, service.ErrNotFound
	}
	return lesson, nil
}

func (s *courseService) CreateLesson(ctx context.Context, courseID uuid.UUID, in models.LessonInput) (*models.Lesson, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := s.now()
	lesson := &models.Lesson{
		ID:        uuid.New(),
		Type:      models.LessonTypeVideo,
		Track:     models.TrackSprint,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(lesson)
	lesson.CourseID = courseID

	s.fillFromVideo(ctx, lesson)
	if err := validateLesson(lesson); err != nil {
		return nil, err
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	if err := s.lessonsChanged(ctx, courseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *courseService) UpdateLesson(ctx context.Context, id uuid.UUID, in models.LessonInput) (*models.Lesson, error) {
	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	prevCourseID := lesson.CourseID
	prevVideoURL := lesson.VideoURL

	in.Apply(lesson)
	if lesson.CourseID != prevCourseID {
		if _, err := s.GetCourse(ctx, lesson.CourseID); err != nil {
			return nil, err
		}
	}
	if lesson.VideoURL != prevVideoURL {
		s.fillFromVideo(ctx, lesson)
	}
	if err := validateLesson(lesson); err != nil {
		return nil, err
	}
	lesson.UpdatedAt = s.now()

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	courses := []uuid.UUID{lesson.CourseID}
	if lesson.CourseID != prevCourseID {
		courses = append(courses, prevCourseID)
	}
	if err := s.lessonsChanged(ctx, courses...); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *courseService) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return err
	}
	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.lessonsChanged(ctx, lesson.CourseID)
}

// lessonsChanged пересчитывает lessons_count и сбрасывает кэш каталога
func (s *courseService) lessonsChanged(ctx context.Context, courseIDs ...uuid.UUID) error {
	now := s.now()
	for _, id := range courseIDs {
		if err := s.courseRepo.RecountLessons(ctx, id, now); err != nil {
			return err
		}
	}
	s.invalidate(ctx)
	return nil
}

func (s *courseService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("⚠️ Не удалось сбросить кэш курсов", zap.Error(err))
	}
}

// fillFromVideo подставляет длительность и название видеоурока из метаданных ролика.
// Ошибки только логируются: урок сохраняется как есть
func (s *courseService) fillFromVideo(ctx context.Context, lesson *models.Lesson) {
	if s.videos == nil || lesson.Type != models.LessonTypeVideo || lesson.VideoURL == "" {
		return
	}
	if lesson.Duration > 0 && strings.TrimSpace(lesson.Title) != "" {
		return
	}

	info, err := s.videos.Resolve(ctx, lesson.VideoURL)
	if err != nil {
		s.log.Warn("⚠️ Не удалось получить данные видео",
			zap.String("url", lesson.VideoURL),
			zap.Error(err),
		)
		return
	}

	if lesson.Duration == 0 {
		lesson.Duration = info.Minutes()
	}
	if strings.TrimSpace(lesson.Title) == "" {
		lesson.Title = info.Title
	}
}

func validateCourse(c *models.Course) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return service.Validationf("title is required")
	}
	if len([]rune(c.Title)) > maxTitleLength {
		return service.Validationf("title is longer than %d characters", maxTitleLength)
	}
	return nil
}

func validateLesson(l *models.Lesson) error {
	l.Title = strings.TrimSpace(l.Title)
	switch {
	case l.Title == "":
		return service.Validationf("title is required")
	case len([]rune(l.Title)) > maxTitleLength:
		return service.Validationf("title is longer than %d characters", maxTitleLength)
	case !l.Type.Valid():
		return service.Validationf("unknown lesson type %q", l.Type)
	case !l.Track.Valid():
		return service.Validationf("unknown track %q", l.Track)
	case l.Duration < 0:
		return service.Validationf("duration must not be negative")
	case l.OrderIndex < 0:
		return service.Validationf("order_index must not be negative")
	}

	if l.VideoURL != "" {
		u, err := url.Parse(l.VideoURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return service.Validationf("video_url must be an http(s) link")
		}
	}
	return nil
}
