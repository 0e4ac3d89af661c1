package bot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"ai-school/internal/models"
	"ai-school/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

const (
	msgError      = "Произошла ошибка. Попробуйте позже."
	msgNeedStart  = "Сначала отправьте /start"
	msgUseStart   = "Отправьте /start, чтобы получить ссылку для входа на платформу."
	msgLinkUpdate = "Ссылка обновлена"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// Обработка сообщения здесь
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	b.log.Debug("📩 Сообщение",
		zap.String("username", message.From.UserName),
		zap.String("text", message.Text),
	)

	chatID := message.Chat.ID
	if !message.IsCommand() {
		b.sendMessage(chatID, msgUseStart)
		return
	}

	switch message.Command() {
	case "start":
		b.handleStartCommand(ctx, chatID, message.From)
	case "progress":
		b.handleProgressCommand(ctx, chatID, message.From)
	case "help":
		b.handleHelpCommand(chatID, message.From)
	default:
		b.sendMessage(chatID, msgUseStart)
	}
}

func (b *Bot) handleStartCommand(ctx context.Context, chatID int64, from *tgbotapi.User) {
	user, err := b.userService.RegisterOrUpdate(ctx, profileOf(from))
	if err != nil {
		b.fail(chatID, "регистрация пользователя", err)
		return
	}

	loginURL, err := b.issueLoginURL(ctx, user.ID)
	if err != nil {
		b.fail(chatID, "выдача токена", err)
		return
	}

	text := fmt.Sprintf("👋 Привет, %s!\n\n"+
		"Добро пожаловать в AI School. Нажмите кнопку ниже, чтобы войти на платформу.\n"+
		"Ссылка одноразовая и действует ограниченное время.", user.DisplayName())

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = loginKeyboard(loginURL)
	b.send(msg)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Data != callbackOpenPlatform || query.From == nil {
		b.answerCallback(query.ID, "")
		return
	}

	chatID := int64(query.From.ID)
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}

	user, err := b.userService.GetByTelegramID(ctx, int64(query.From.ID))
	if errors.Is(err, service.ErrNotFound) {
		b.answerCallback(query.ID, msgNeedStart)
		return
	}
	if err != nil {
		b.answerCallback(query.ID, "")
		b.fail(chatID, "поиск пользователя", err)
		return
	}

	loginURL, err := b.issueLoginURL(ctx, user.ID)
	if err != nil {
		b.answerCallback(query.ID, "")
		b.fail(chatID, "выдача токена", err)
		return
	}

	b.answerCallback(query.ID, msgLinkUpdate)

	msg := tgbotapi.NewMessage(chatID, "🔗 Новая ссылка для входа на платформу:")
	msg.ReplyMarkup = loginKeyboard(loginURL)
	b.send(msg)
}

func (b *Bot) handleProgressCommand(ctx context.Context, chatID int64, from *tgbotapi.User) {
	user, err := b.userService.GetByTelegramID(ctx, int64(from.ID))
	if errors.Is(err, service.ErrNotFound) {
		b.sendMessage(chatID, msgNeedStart)
		return
	}
	if err != nil {
		b.fail(chatID, "поиск пользователя", err)
		return
	}

	stats, err := b.progressService.GetStats(ctx, user.ID)
	if err != nil {
		b.fail(chatID, "статистика", err)
		return
	}
	b.sendMessage(chatID, formatProgress(stats))
}

func (b *Bot) handleHelpCommand(chatID int64, from *tgbotapi.User) {
	var sb strings.Builder
	sb.WriteString("ℹ️ Команды бота:\n\n")
	sb.WriteString("/start - ссылка для входа на платформу\n")
	sb.WriteString("/progress - ваш прогресс обучения\n")
	sb.WriteString("/help - эта справка\n")

	if b.cfg.IsAdminID(int64(from.ID)) {
		sb.WriteString("\n👑 Вы администратор: курсы, уроки и темы редактируются в админке платформы.")
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) issueLoginURL(ctx context.Context, userID int64) (string, error) {
	token, err := b.authService.IssueToken(ctx, userID)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(b.cfg.WebAppURL, "/") + "/auth?token=" + url.QueryEscape(token.Token), nil
}

func formatProgress(stats *models.ProgressStats) string {
	if stats.TotalLessons == 0 {
		return "📚 Пока нет доступных уроков. Загляните позже!"
	}

	var sb strings.Builder
	sb.WriteString("📊 Ваш прогресс\n\n")
	sb.WriteString(fmt.Sprintf("Уроков пройдено: %d из %d (%d%%)\n",
		stats.CompletedLessons, stats.TotalLessons, stats.Percentage))
	sb.WriteString(fmt.Sprintf("Минут обучения: %d из %d\n", stats.CompletedMinutes, stats.TotalMinutes))
	sb.WriteString(fmt.Sprintf("🔥 Серия: %d дн. (рекорд %d)\n", stats.CurrentStreak, stats.LongestStreak))

	if len(stats.Courses) > 0 {
		sb.WriteString("\nКурсы:\n")
		for _, c := range stats.Courses {
			sb.WriteString(fmt.Sprintf("• %s: %d/%d (%d%%)\n", c.Title, c.Completed, c.Lessons, c.Percentage))
		}
	}

	var earned []string
	for _, a := range stats.Achievements {
		if a.Earned {
			earned = append(earned, a.Icon+" "+a.Title)
		}
	}
	if len(earned) > 0 {
		sb.WriteString("\nДостижения: " + strings.Join(earned, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func profileOf(from *tgbotapi.User) models.TelegramProfile {
	return models.TelegramProfile{
		ID:           int64(from.ID),
		Username:     from.UserName,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		LanguageCode: from.LanguageCode,
	}
}

func (b *Bot) fail(chatID int64, action string, err error) {
	b.log.Error("❌ Ошибка обработки команды",
		zap.String("action", action),
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)
	b.sendMessage(chatID, msgError)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("⚠️ Ошибка отправки сообщения", zap.Error(err))
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.AnswerCallbackQuery(tgbotapi.NewCallback(id, text)); err != nil {
		b.log.Warn("⚠️ Ошибка ответа на callback", zap.Error(err))
	}
}
