package config

import "time"

// AppConfig глобальная конфигурация приложения
var AppConfig *Config

// Config основной конфиг
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Bot         BotConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
	SessionSecret  string
	JWTSecret      string
	JWTTTL         time.Duration
	ShutdownGrace  time.Duration
}

type BotConfig struct {
	Token     string
	Debug     bool
	AdminIDs  []int64 // Telegram ID, которые всегда получают права админа
	WebAppURL string  // куда ведут ссылки входа: WEB_APP_URL/auth?token=...
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled - Redis необязателен, без него кэш и лимиты отключены
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type AuthConfig struct {
	TokenTTL       time.Duration
	InitDataMaxAge time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsAdminID проверяет, входит ли telegram id в список администраторов
func (c BotConfig) IsAdminID(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
