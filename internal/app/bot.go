package app

import (
	"context"

	"ai-school/internal/bot"
	"ai-school/internal/models/config"
	"ai-school/internal/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Bot - Telegram бот поверх Core
var Bot = fx.Options(
	Core,
	fx.Provide(newBot),
	fx.Invoke(runBot),
)

func newBot(
	cfg *config.Config,
	users service.UserService,
	auth service.AuthService,
	progress service.ProgressService,
	log *zap.Logger,
) (*bot.Bot, error) {
	return bot.NewBot(cfg.Bot, users, auth, progress, log.Named("bot"))
}

func runBot(lc fx.Lifecycle, b *bot.Bot) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return b.Start()
		},
		OnStop: func(ctx context.Context) error {
			b.Stop(ctx)
			return nil
		},
	})
}
