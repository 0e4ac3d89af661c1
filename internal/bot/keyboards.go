package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const callbackOpenPlatform = "open_platform"

// loginKeyboard - кнопка входа по одноразовой ссылке и кнопка новой ссылки
func loginKeyboard(loginURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🚀 Открыть платформу", loginURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Получить новую ссылку", callbackOpenPlatform),
		),
	)
}
