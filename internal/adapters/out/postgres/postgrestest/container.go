// Package postgrestest starts a disposable PostgreSQL container for the
// repository integration suites and migrates the dispatch schema into it.
package postgrestest

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table Truncate clears, children first.
var Tables = []string{"batch_orders", "batches", "orders", "drivers", "geocode_cache"}

// Start runs postgres:15-alpine and opens a GORM connection to it. The
// caller owns the container and must terminate it.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}

// Truncate empties every dispatch table.
func Truncate(db *gorm.DB) error {
	stmt := "TRUNCATE TABLE "
	for i, table := range Tables {
		if i > 0 {
			stmt += ", "
		}
		stmt += table
	}
	return db.Exec(stmt).Error
}
