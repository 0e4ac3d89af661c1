package user_service

import (
	"context"
	"slices"
	"strings"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository"
	"ai-school/internal/service"

	"go.uber.org/zap"
)

type userService struct {
	userRepo repository.UserRepository
	adminIDs []int64
	log      *zap.Logger
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository, adminIDs []int64, log *zap.Logger) service.UserService {
	return &userService{
		userRepo: userRepo,
		adminIDs: adminIDs,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *userService) RegisterOrUpdate(ctx context.Context, p models.TelegramProfile) (*models.TelegramUser, error) {
	if p.ID <= 0 {
		return nil, service.Validationf("telegram user id is required")
	}

	existing, err := s.userRepo.GetByTelegramID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.TelegramUser{
		TelegramUserID: p.ID,
		Username:       p.Username,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		LanguageCode:   p.LanguageCode,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if existing != nil {
		user.CreatedAt = existing.CreatedAt
		user.IsAdmin = existing.IsAdmin
		user.IsPremium = existing.IsPremium
		if user.LanguageCode == "" {
			user.LanguageCode = existing.LanguageCode
		}
	}
	if p.IsPremium != nil {
		user.IsPremium = *p.IsPremium
	}
	if slices.Contains(s.adminIDs, p.ID) {
		user.IsAdmin = true
	}

	if err := s.userRepo.CreateOrUpdate(ctx, user); err != nil {
		return nil, err
	}

	if existing == nil {
		s.log.Info("👤 Новый пользователь",
			zap.Int64("telegram_id", p.ID),
			zap.String("username", p.Username),
			zap.Bool("admin", user.IsAdmin),
		)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.TelegramUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrNotFound
	}
	return user, nil
}

func (s *userService) GetByTelegramID(ctx context.Context, telegramID int64) (*models.TelegramUser, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.TelegramUser, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		name := strings.TrimSpace(*upd.FirstName)
		if name == "" {
			return nil, service.Validationf("first_name must not be empty")
		}
		user.FirstName = name
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.LanguageCode != nil {
		code := strings.TrimSpace(*upd.LanguageCode)
		if len(code) > 8 {
			return nil, service.Validationf("language_code is too long")
		}
		user.LanguageCode = code
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.TelegramUser, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) SetAdmin(ctx context.Context, id int64, isAdmin bool) (*models.TelegramUser, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.userRepo.SetAdmin(ctx, id, isAdmin, now); err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = now

	s.log.Info("👑 Изменены права администратора",
		zap.Int64("user_id", id),
		zap.Bool("admin", isAdmin),
	)
	return user, nil
}
