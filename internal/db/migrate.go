package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations applies every pending *.up.sql file from dir in lexical
// order. Applied versions live in schema_migrations; each file runs in its
// own transaction so a failure leaves the earlier migrations in place.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, dir string, log *zap.Logger) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := map[string]bool{}
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return err
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var pending []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		if !applied[strings.TrimSuffix(name, ".up.sql")] {
			pending = append(pending, name)
		}
	}
	sort.Strings(pending)

	for _, name := range pending {
		version := strings.TrimSuffix(name, ".up.sql")
		if err := applyMigration(ctx, pool, filepath.Join(dir, name), version); err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}
		log.Info("migration applied", zap.String("version", version))
	}
	if len(pending) == 0 {
		log.Info("schema up to date", zap.Int("versions", len(applied)))
	}
	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, path, version string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
