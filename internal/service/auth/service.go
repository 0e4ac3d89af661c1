package auth_service

import (
	"context"
	"errors"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/models/config"
	"ai-school/internal/repository"
	"ai-school/internal/service"

	"go.uber.org/zap"
)

type authService struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	userService service.UserService
	cfg         config.AuthConfig
	botToken    string
	log         *zap.Logger

	now      func() time.Time
	generate func() (string, error)
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	userService service.UserService,
	cfg config.AuthConfig,
	botToken string,
	log *zap.Logger,
) service.AuthService {
	return &authService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		userService: userService,
		cfg:         cfg,
		botToken:    botToken,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
		generate:    GenerateToken,
	}
}

func (s *authService) IssueToken(ctx context.Context, userID int64) (*models.AuthToken, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrNotFound
	}

	value, err := s.generate()
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &models.AuthToken{
		Token:     value,
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
		CreatedAt: now,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	s.log.Debug("🔑 Выдан токен входа",
		zap.Int64("user_id", userID),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return token, nil
}

func (s *authService) RedeemToken(ctx context.Context, value string) (*models.TelegramUser, error) {
	if value == "" {
		return nil, service.ErrTokenNotFound
	}

	now := s.now()
	userID, ok, err := s.tokenRepo.Redeem(ctx, value, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.rejectReason(ctx, value)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrTokenNotFound
	}

	s.log.Info("✅ Вход по токену", zap.Int64("user_id", user.ID))
	return user, nil
}

// rejectReason объясняет, почему токен не погасился
func (s *authService) rejectReason(ctx context.Context, value string) error {
	token, err := s.tokenRepo.GetByToken(ctx, value)
	if err != nil {
		return err
	}
	switch {
	case token == nil:
		return service.ErrTokenNotFound
	case token.IsUsed:
		return service.ErrTokenUsed
	default:
		return service.ErrTokenExpired
	}
}

func (s *authService) LoginWebApp(ctx context.Context, initData string) (*models.TelegramUser, error) {
	data, err := ValidateInitData(initData, s.botToken, s.cfg.InitDataMaxAge, s.now())
	if err != nil {
		if !errors.Is(err, service.ErrInitDataExpired) {
			s.log.Warn("⚠️ Неверная подпись initData", zap.Error(err))
		}
		return nil, err
	}

	return s.userService.RegisterOrUpdate(ctx, data.User)
}

func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.tokenRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("🧹 Удалены старые токены входа", zap.Int64("count", removed))
	}
	return removed, nil
}
