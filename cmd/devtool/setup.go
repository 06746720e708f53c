package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ContestBot_Go/internal/database"
)

// SetupDBCommand creates the contest database when missing and applies migrations
type SetupDBCommand struct{}

func (c *SetupDBCommand) Name() string {
	return "setup-db"
}

func (c *SetupDBCommand) Description() string {
	return "Create the contest database if missing and apply migrations"
}

func (c *SetupDBCommand) Run(args []string) error {
	PrintHeader("Database Setup")
	ctx := context.Background()
	settings := loadDBSettings()

	err := settings.withMaintenanceConn(ctx, func(conn *pgx.Conn) error {
		exists, err := databaseExists(ctx, conn, settings.Name)
		if err != nil {
			return fmt.Errorf("failed to check if database exists: %w", err)
		}
		if exists {
			PrintSuccess("Database %s already exists", settings.Name)
			return nil
		}
		PrintInfo("Creating database %s...", settings.Name)
		if err := createDatabase(ctx, conn, settings.Name); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		PrintSuccess("Database created")
		return nil
	})
	if err != nil {
		return err
	}

	pool, err := settings.openContestPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintInfo("Applying migrations...")
	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	PrintSuccess("Setup complete")
	return nil
}
