package database

import (
	"fmt"

	"ai-school/internal/models/config"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Open подключается к БД по конфигу и накатывает миграции
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = NewPostgres(cfg, log)
	case config.DriverSQLite:
		db, err = NewSQLite(cfg.Path)
		if err == nil {
			log.Info("🗄️  Открыта SQLite", zap.String("path", cfg.Path))
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("✅ Миграции применены")

	return db, nil
}
