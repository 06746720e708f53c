package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	waitForDBRetries  = 30
	waitForDBInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")
	settings := loadDBSettings()

	var lastErr error
	for i := 0; i < waitForDBRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), waitForDBInterval)
		lastErr = settings.withMaintenanceConn(ctx, func(conn *pgx.Conn) error {
			return conn.Ping(ctx)
		})
		cancel()
		if lastErr == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitForDBRetries, lastErr)
		time.Sleep(waitForDBInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", waitForDBRetries, lastErr)
}
