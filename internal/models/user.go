package models

import "time"

// TelegramUser - пользователь платформы, пришедший из Telegram
type TelegramUser struct {
	ID             int64     `db:"id" json:"id"`
	TelegramUserID int64     `db:"telegram_user_id" json:"telegram_user_id"`
	Username       string    `db:"username" json:"username,omitempty"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name,omitempty"`
	LanguageCode   string    `db:"language_code" json:"language_code,omitempty"`
	IsPremium      bool      `db:"is_premium" json:"is_premium"`
	IsAdmin        bool      `db:"is_admin" json:"is_admin"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName возвращает имя для приветствий: имя, иначе username
func (u *TelegramUser) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// ProfileUpdate - поля профиля, которые пользователь может менять сам
type ProfileUpdate struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	LanguageCode *string `json:"language_code"`
}
