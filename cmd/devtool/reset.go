package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ContestBot_Go/internal/database"
)

// ResetDBCommand drops and recreates the contest database, then migrates it.
// It asks for confirmation unless --yes is given.
type ResetDBCommand struct{}

func (c *ResetDBCommand) Name() string {
	return "reset-db"
}

func (c *ResetDBCommand) Description() string {
	return "Drop and recreate the contest database (destroys all contest data)"
}

func (c *ResetDBCommand) Run(args []string) error {
	settings := loadDBSettings()
	PrintHeader(fmt.Sprintf("Reset database %s", settings.Name))

	if !hasFlag(args, "--yes") && !confirm(fmt.Sprintf("Type '%s' to drop %s: ", confirmYes, settings.Name)) {
		PrintWarning("Reset cancelled")
		return nil
	}

	ctx := context.Background()
	err := settings.withMaintenanceConn(ctx, func(conn *pgx.Conn) error {
		PrintInfo("Terminating existing connections...")
		if _, err := conn.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, settings.Name); err != nil {
			PrintWarning("Failed to terminate connections: %v", err)
		}

		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{settings.Name}.Sanitize()); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
		if err := createDatabase(ctx, conn, settings.Name); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	PrintSuccess("Database %s recreated", settings.Name)

	pool, err := settings.openContestPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	PrintSuccess("Database reset complete")
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == confirmYes
}
