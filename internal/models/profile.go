package models

// TelegramProfile - данные пользователя в том виде, как их присылает Telegram
// (апдейт бота или user из initData Web App)
type TelegramProfile struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	LanguageCode string `json:"language_code"`
	IsPremium    *bool  `json:"is_premium"`
}
