package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ContestBot_Go/internal/database"
)

const maintenanceDB = "postgres"

type dbSettings struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

func loadDBSettings() dbSettings {
	return dbSettings{
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", appName),
	}
}

// connString targets dbName on the configured server. DB_URL overrides it for the contest database.
func (s dbSettings) connString(dbName string) string {
	if url := os.Getenv("DB_URL"); url != "" && dbName == s.Name {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", s.User, s.Password, s.Host, s.Port, dbName)
}

// openContestPool connects to the contest database with a small pool
func (s dbSettings) openContestPool(ctx context.Context) (*pgxpool.Pool, error) {
	return database.NewPool(ctx, database.PoolConfig{
		ConnString:      s.connString(s.Name),
		MaxConns:        2,
		MaxConnIdleTime: time.Minute,
	})
}

// withMaintenanceConn runs fn against the server's maintenance database
func (s dbSettings) withMaintenanceConn(ctx context.Context, fn func(conn *pgx.Conn) error) error {
	conn, err := pgx.Connect(ctx, s.connString(maintenanceDB))
	if err != nil {
		return fmt.Errorf("unable to connect to %s database: %w", maintenanceDB, err)
	}
	defer conn.Close(ctx)
	return fn(conn)
}

func databaseExists(ctx context.Context, conn *pgx.Conn, name string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists)
	return exists, err
}

func createDatabase(ctx context.Context, conn *pgx.Conn, name string) error {
	_, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize())
	return err
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
