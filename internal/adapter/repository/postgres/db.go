package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Connect opens a pooled connection and pings it.
func Connect(ctx context.Context, dsn string, appLogger *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	appLogger.Info("Connected to PostgreSQL", zap.Int("max_open_conns", 20))
	return db, nil
}
