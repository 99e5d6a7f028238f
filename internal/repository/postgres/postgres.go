package postgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/config"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// общий пул для репозиториев users и tasks

func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	logger.Info("Попытка миграций")

	files := []string{"001_init.up.sql", "002_indexes.up.sql"}
	for _, name := range files {
		sql, err := os.ReadFile(dir + "/" + name)
		if err != nil {
			logger.Error("Repository: Не удалось прочитать миграцию "+name, err)
			return fmt.Errorf("чтение миграции %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logger.Error("Repository: Не удалось применить миграцию "+name, err)
			return fmt.Errorf("применение миграции %s: %w", name, err)
		}
	}

	logger.Info("Repository: Миграции применены")
	return nil
}

func Down(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	logger.Info("Откат миграций")

	files := []string{"002_indexes.down.sql", "001_init.down.sql"}
	for _, name := range files {
		sql, err := os.ReadFile(dir + "/" + name)
		if err != nil {
			logger.Error("Repository: Не удалось прочитать миграцию "+name, err)
			return fmt.Errorf("чтение миграции %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logger.Error("Repository: Не удалось откатить миграцию "+name, err)
			return fmt.Errorf("откат миграции %s: %w", name, err)
		}
	}

	logger.Info("Repository: Миграции откачены")
	return nil
}

func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	start := time.Now()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный ping")
	}
	return nil
}
