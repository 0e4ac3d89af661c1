package models

import "time"

// AuthToken - одноразовый токен входа, который выдает бот
type AuthToken struct {
	Token     string     `db:"token" json:"token"`
	UserID    int64      `db:"user_id" json:"user_id"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	IsUsed    bool       `db:"is_used" json:"is_used"`
	UsedAt    *time.Time `db:"used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Redeemable - токен можно погасить, пока он не использован и не истек
func (t *AuthToken) Redeemable(now time.Time) bool {
	return !t.IsUsed && now.Before(t.ExpiresAt)
}
