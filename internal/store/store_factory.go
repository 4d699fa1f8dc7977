package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/repository"
	"course_api/internal/store/memory"
	"course_api/internal/store/mysql"
	"course_api/internal/store/postgres"
)

const connectTimeout = 10 * time.Second

// NewStore picks Postgres, then MySQL, then the in-memory store, depending
// on which DSN is configured. The cleanup closes any opened connection pool.
func NewStore(cfg *config.Config, logger *zap.Logger) (repository.CourseRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch {
	case cfg.PostgresDSN != "":
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Error("postgres connect failed", zap.Error(err))
			return nil, nil, err
		}
		logger.Info("using postgres course store")
		return postgres.New(pool, logger), pool.Close, nil

	case cfg.MySQLDSN != "":
		sqlDB, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			logger.Error("mysql open failed", zap.Error(err))
			return nil, nil, fmt.Errorf("mysql open: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			logger.Error("mysql ping failed", zap.Error(err))
			return nil, nil, fmt.Errorf("mysql ping: %w", err)
		}
		logger.Info("using mysql course store")
		return mysql.New(sqlDB, logger), func() { _ = sqlDB.Close() }, nil

	default:
		logger.Info("using in-memory course store")
		return memory.New(logger), func() {}, nil
	}
}
