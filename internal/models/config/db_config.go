package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig конфигурация БД
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	SSLMode  string
	Path     string // файл для sqlite
}

// DSN строка подключения для выбранного драйвера
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Name, c.SSLMode,
	)
}

// Load загружает конфигурацию из окружения (и .env, если он есть)
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := v.GetString("APP_ENV")

	cfg := &Config{
		Environment: env,
		HTTP: HTTPConfig{
			Port:           v.GetString("HTTP_PORT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			SessionSecret:  v.GetString("SESSION_SECRET"),
			JWTSecret:      v.GetString("JWT_SECRET"),
			JWTTTL:         v.GetDuration("JWT_TTL"),
			ShutdownGrace:  v.GetDuration("HTTP_SHUTDOWN_GRACE"),
		},
		Bot: BotConfig{
			Token:     v.GetString("BOT_TOKEN"),
			Debug:     v.GetBool("BOT_DEBUG"),
			AdminIDs:  parseAdminIDs(v.GetString("ADMIN_IDS")),
			WebAppURL: strings.TrimRight(v.GetString("WEB_APP_URL"), "/"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Username: v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  getSSLMode(env),
			Path:     v.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			TokenTTL:       v.GetDuration("AUTH_TOKEN_TTL"),
			InitDataMaxAge: v.GetDuration("INIT_DATA_MAX_AGE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("WEB_APP_URL", "http://localhost:3000")
	v.SetDefault("SESSION_SECRET", "dev-session-secret")
	v.SetDefault("JWT_SECRET", "dev-jwt-secret")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("HTTP_SHUTDOWN_GRACE", "10s")
	v.SetDefault("BOT_DEBUG", false)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "ai-school")
	v.SetDefault("DB_PATH", "ai-school.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AUTH_TOKEN_TTL", "24h")
	v.SetDefault("INIT_DATA_MAX_AGE", "24h")
}

// loadDotEnv подхватывает .env из рабочей директории, если файл есть
func loadDotEnv() error {
	path := os.Getenv("DOTENV_PATH")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// validate проверяет обязательные параметры
func (c *Config) validate() error {
	var errors []string

	if c.Bot.Token == "" {
		errors = append(errors, "BOT_TOKEN is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Username == "" {
			errors = append(errors, "DB_USER is required")
		}
		if c.Database.Password == "" && c.IsProduction() {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			errors = append(errors, "DB_PATH is required for sqlite")
		}
	default:
		errors = append(errors, fmt.Sprintf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	if c.IsProduction() {
		if c.HTTP.SessionSecret == "dev-session-secret" {
			errors = append(errors, "SESSION_SECRET is required in production")
		}
		if c.HTTP.JWTSecret == "dev-jwt-secret" {
			errors = append(errors, "JWT_SECRET is required in production")
		}
	}

	if c.Auth.TokenTTL <= 0 {
		errors = append(errors, "AUTH_TOKEN_TTL must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, ", "))
	}

	return nil
}

// getSSLMode возвращает режим SSL в зависимости от окружения
func getSSLMode(env string) string {
	if env == "production" {
		return "require" // В продакшене всегда SSL
	}
	return "disable"
}

// parseAdminIDs парсит список ID администраторов
func parseAdminIDs(ids string) []int64 {
	if ids == "" {
		return []int64{}
	}

	var result []int64
	for _, idStr := range strings.Split(ids, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil {
			result = append(result, id)
		}
	}
	return result
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
