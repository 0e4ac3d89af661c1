// Package app собирает бинарники из общих провайдеров fx.
package app

import (
	"context"

	"ai-school/internal/cache"
	"ai-school/internal/logger"
	"ai-school/internal/models/config"
	"ai-school/internal/repository"
	"ai-school/internal/repository/course"
	"ai-school/internal/repository/lesson"
	"ai-school/internal/repository/progress"
	"ai-school/internal/repository/token"
	"ai-school/internal/repository/topic"
	"ai-school/internal/repository/user"
	"ai-school/internal/service"
	auth_service "ai-school/internal/service/auth"
	course_service "ai-school/internal/service/course"
	progress_service "ai-school/internal/service/progress"
	topic_service "ai-school/internal/service/topic"
	user_service "ai-school/internal/service/user"
	"ai-school/internal/video"
	database "ai-school/pkg"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Core - конфиг, логгер, БД, Redis, репозитории и сервисы
var Core = fx.Options(
	fx.Provide(
		config.Load,
		newLogger,
		newDB,
		newRedis,
	),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
	Repositories,
	Services,
)

var Repositories = fx.Provide(
	user.NewUserRepository,
	token.NewTokenRepository,
	course.NewCourseRepository,
	lesson.NewLessonRepository,
	topic.NewTopicRepository,
	progress.NewProgressRepository,
)

var Services = fx.Provide(
	newUserService,
	newAuthService,
	newCourseService,
	topic_service.NewTopicService,
	progress_service.NewProgressService,
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Environment, cfg.Bot.Debug)
	if err != nil {
		return nil, err
	}
	log.Info("🚀 Запуск", zap.String("environment", cfg.Environment))
	return log, nil
}

func newDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("🗄️  Закрытие БД")
			return db.Close()
		},
	})
	return db, nil
}

// newRedis возвращает nil, если REDIS_ADDR не задан
func newRedis(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Warn("⚠️ Redis не настроен: кэш каталога и лимиты отключены")
		return nil, nil
	}

	log.Info("✅ Подключен Redis", zap.String("addr", cfg.Redis.Addr))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return client.Close() },
	})
	return client, nil
}

func newUserService(users repository.UserRepository, cfg *config.Config, log *zap.Logger) service.UserService {
	return user_service.NewUserService(users, cfg.Bot.AdminIDs, log)
}

func newAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	userService service.UserService,
	cfg *config.Config,
	log *zap.Logger,
) service.AuthService {
	return auth_service.NewAuthService(users, tokens, userService, cfg.Auth, cfg.Bot.Token, log)
}

func newCourseService(
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
	client *redis.Client,
	log *zap.Logger,
) service.CourseService {
	return course_service.NewCourseService(courses, lessons, cache.NewCourseCache(client), video.NewYouTubeResolver(), log)
}
