package app

import (
	"context"
	"time"

	"ai-school/internal/models/config"
	"ai-school/internal/service"
	"ai-school/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// раз в час из базы вычищаются отработавшие токены входа
const tokenPurgeInterval = time.Hour

// Server - HTTP API поверх Core
var Server = fx.Options(
	Core,
	fx.Provide(
		newTokenManager,
		newSessionStore,
		web.NewRateLimiter,
		newHandler,
		newRouter,
		newHTTPServer,
	),
	fx.Invoke(runHTTPServer, runTokenJanitor),
)

type handlerParams struct {
	fx.In

	Users    service.UserService
	Auth     service.AuthService
	Courses  service.CourseService
	Topics   service.TopicService
	Progress service.ProgressService

	Tokens   *web.TokenManager
	Sessions *web.SessionStore
	DB       *sqlx.DB
	Log      *zap.Logger
}

func newTokenManager(cfg *config.Config) *web.TokenManager {
	return web.NewTokenManager(cfg.HTTP.JWTSecret, cfg.HTTP.JWTTTL)
}

func newSessionStore(cfg *config.Config) *web.SessionStore {
	return web.NewSessionStore(cfg.HTTP.SessionSecret, cfg.HTTP.JWTTTL, cfg.IsProduction())
}

func newHandler(p handlerParams) *web.Handler {
	return web.NewHandler(web.Services{
		Users:    p.Users,
		Auth:     p.Auth,
		Courses:  p.Courses,
		Topics:   p.Topics,
		Progress: p.Progress,
	}, p.Tokens, p.Sessions, p.DB, p.Log)
}

func newRouter(h *web.Handler, limiter *web.RateLimiter, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	origins := cfg.HTTP.AllowedOrigins
	if len(origins) == 0 && cfg.Bot.WebAppURL != "" {
		origins = []string{cfg.Bot.WebAppURL}
	}
	return web.NewRouter(h, limiter, origins, log)
}

func newHTTPServer(router *gin.Engine, cfg *config.Config, log *zap.Logger) *web.Server {
	return web.NewServer(cfg.HTTP.Port, router, log)
}

func runHTTPServer(lc fx.Lifecycle, srv *web.Server, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownGrace)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

func runTokenJanitor(lc fx.Lifecycle, auth service.AuthService, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(tokenPurgeInterval)
				defer ticker.Stop()

				for {
					if _, err := auth.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
						log.Warn("⚠️ Не удалось удалить старые токены", zap.Error(err))
					}
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
