package main

import (
	"context"
	"fmt"

	"github.com/osse101/ContestBot_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	ctx := context.Background()
	pool, err := loadDBSettings().openContestPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		err = database.Migrate(ctx, pool)
	case "down":
		err = database.RollbackMigration(ctx, pool)
	case "status":
		err = database.MigrationStatus(ctx, pool)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
	if err != nil {
		return err
	}
	PrintSuccess("migrate %s done", args[0])
	return nil
}
