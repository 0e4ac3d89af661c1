package progress_service

import (
	"context"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository"
	"ai-school/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type progressService struct {
	progressRepo repository.ProgressRepository
	lessonRepo   repository.LessonRepository
	courseRepo   repository.CourseRepository
	log          *zap.Logger
	now          func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	lessonRepo repository.LessonRepository,
	courseRepo repository.CourseRepository,
	log *zap.Logger,
) service.ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		courseRepo:   courseRepo,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) GetStats(ctx context.Context, userID int64) (*models.ProgressStats, error) {
	rows, err := s.progressRepo.ListLessonRows(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows, s.now()), nil
}

func (s *progressService) GetCourseStats(ctx context.Context, userID int64, courseID uuid.UUID) (*models.ProgressStats, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsActive {
		return nil, service.ErrNotFound
	}

	rows, err := s.progressRepo.ListLessonRows(ctx, userID, &courseID)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows, s.now()), nil
}

func (s *progressService) ListProgress(ctx context.Context, userID int64) ([]*models.UserProgress, error) {
	return s.progressRepo.ListByUser(ctx, userID)
}

// SetPercentage сохраняет процент просмотра. 100% завершает урок,
// завершенный урок обратно процентом не открывается
func (s *progressService) SetPercentage(ctx context.Context, userID int64, lessonID uuid.UUID, percentage int) (*models.UserProgress, error) {
	if percentage < 0 || percentage > 100 {
		return nil, service.Validationf("percentage must be between 0 and 100")
	}
	return s.save(ctx, userID, lessonID, percentage)
}

func (s *progressService) CompleteLesson(ctx context.Context, userID int64, lessonID uuid.UUID) (*models.UserProgress, error) {
	return s.save(ctx, userID, lessonID, 100)
}

func (s *progressService) ResetLesson(ctx context.Context, userID int64, lessonID uuid.UUID) error {
	existing, err := s.progressRepo.GetByUserLesson(ctx, userID, lessonID)
	if err != nil {
		return err
	}
	if existing == nil {
		return service.ErrNotFound
	}
	return s.progressRepo.Delete(ctx, userID, lessonID)
}

func (s *progressService) save(ctx context.Context, userID int64, lessonID uuid.UUID, percentage int) (*models.UserProgress, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || !lesson.IsActive {
		return nil, service.ErrNotFound
	}
	course, err := s.courseRepo.GetByID(ctx, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsActive {
		return nil, service.ErrNotFound
	}

	p, err := s.progressRepo.GetByUserLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if p == nil {
		p = &models.UserProgress{
			ID:        uuid.New(),
			UserID:    userID,
			LessonID:  lessonID,
			CreatedAt: now,
		}
	}
	p.UpdatedAt = now

	switch {
	case p.IsCompleted:
		// уже завершен: дата завершения не сдвигается
	case percentage == 100:
		p.IsCompleted = true
		p.CompletedAt = &now
		p.Percentage = 100
		s.log.Info("🎓 Урок завершен",
			zap.Int64("user_id", userID),
			zap.String("lesson_id", lessonID.String()),
		)
	default:
		p.Percentage = percentage
	}

	if err := s.progressRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
