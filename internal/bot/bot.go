package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ai-school/internal/models/config"
	"ai-school/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// botAPI - часть Telegram API, которой пользуются обработчики
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
}

type Bot struct {
	api    botAPI
	client *tgbotapi.BotAPI

	userService     service.UserService
	authService     service.AuthService
	progressService service.ProgressService

	cfg config.BotConfig
	log *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewBot(
	cfg config.BotConfig,
	userService service.UserService,
	authService service.AuthService,
	progressService service.ProgressService,
	log *zap.Logger,
) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("BOT_TOKEN не установлен в конфигурации")
	}

	client, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	client.Debug = cfg.Debug

	log.Info("🤖 Бот инициализирован",
		zap.String("username", client.Self.UserName),
		zap.Bool("debug", cfg.Debug),
		zap.Int64s("admins", cfg.AdminIDs),
	)

	b := newBot(client, cfg, userService, authService, progressService, log)
	b.client = client
	return b, nil
}

func newBot(
	api botAPI,
	cfg config.BotConfig,
	userService service.UserService,
	authService service.AuthService,
	progressService service.ProgressService,
	log *zap.Logger,
) *Bot {
	return &Bot{
		api:             api,
		userService:     userService,
		authService:     authService,
		progressService: progressService,
		cfg:             cfg,
		log:             log,
	}
}

// Start запускает long polling. Каждое обновление обрабатывается в своей горутине
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.client.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})

	b.log.Info("✅ Бот слушает обновления", zap.String("username", b.client.Self.UserName))

	go func() {
		for {
			select {
			case <-b.done:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				b.wg.Add(1)
				go func() {
					defer b.wg.Done()
					b.handleUpdate(ctx, update)
				}()
			}
		}
	}()
	return nil
}

// Stop прекращает polling и ждет обработчики или отмены ctx
func (b *Bot) Stop(ctx context.Context) {
	if b.done == nil {
		return
	}
	b.client.StopReceivingUpdates()
	close(b.done)

	finished := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		b.log.Warn("⚠️ Не все обновления обработаны до остановки")
	}
	b.cancel()
	b.log.Info("🛑 Бот остановлен")
}
