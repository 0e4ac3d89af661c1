package auth_service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/service"
)

// InitData - проверенные поля initData Telegram Web App
type InitData struct {
	QueryID  string
	AuthDate time.Time
	User     models.TelegramProfile
}

// ValidateInitData проверяет подпись initData:
// secret = HMAC_SHA256("WebAppData", bot_token), hash = hex(HMAC_SHA256(secret, data_check_string)).
// maxAge <= 0 отключает проверку auth_date.
func ValidateInitData(raw, botToken string, maxAge time.Duration, now time.Time) (*InitData, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInitDataInvalid, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: hash is missing", service.ErrInitDataInvalid)
	}

	expected := signature(values, botToken)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(hash))) {
		return nil, fmt.Errorf("%w: hash mismatch", service.ErrInitDataInvalid)
	}

	authUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", service.ErrInitDataInvalid)
	}
	authDate := time.Unix(authUnix, 0).UTC()
	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, service.ErrInitDataExpired
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, fmt.Errorf("%w: user is missing", service.ErrInitDataInvalid)
	}
	var user models.TelegramProfile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("%w: bad user: %v", service.ErrInitDataInvalid, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id is missing", service.ErrInitDataInvalid)
	}

	return &InitData{
		QueryID:  values.Get("query_id"),
		AuthDate: authDate,
		User:     user,
	}, nil
}

// SignInitData кодирует поля и дописывает им hash так же, как это делает Telegram
func SignInitData(values url.Values, botToken string) string {
	signed := url.Values{}
	for k, v := range values {
		if k != "hash" {
			signed[k] = v
		}
	}
	signed.Set("hash", signature(signed, botToken))
	return signed.Encode()
}

func signature(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if k != "hash" && len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + values.Get(k)
	}

	secret := hmacSHA256([]byte("WebAppData"), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secret, []byte(strings.Join(pairs, "\n"))))
}

func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}
