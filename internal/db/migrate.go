package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"livestock-invest-go/pkg/logger"

	"gorm.io/gorm"
)

const migrationsDirName = "migrations"

type migration struct {
	name string
	sql  string
}

// Migrate applies the .sql files of the nearest migrations directory, walking
// up from the working directory.
func Migrate(db *gorm.DB, log logger.Logger) error {
	path, err := findMigrationsDir(migrationsDirName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("db: migrations directory not found, skipping")
			return nil
		}
		return err
	}
	return MigrateFS(db, os.DirFS(path), log)
}

// MigrateFS applies every pending migration of fsys in name order, each in
// its own transaction.
func MigrateFS(db *gorm.DB, fsys fs.FS, log logger.Logger) error {
	migrations, err := loadMigrations(fsys)
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		return nil
	}

	if err := ensureSchemaMigrations(db); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.name]; ok {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(m.sql).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", m.name, err)
			}
			return tx.Exec(
				"INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)",
				m.name, time.Now().UTC(),
			).Error
		})
		if err != nil {
			return err
		}
		log.Info("db: applied migration", "file", m.name)
	}
	return nil
}

// loadMigrations reads the non-empty top-level .sql files of fsys, sorted by
// name.
func loadMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	result := make([]migration, 0, len(names))
	for _, name := range names {
		contents, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sql := strings.TrimSpace(string(contents))
		if sql == "" {
			continue
		}
		result = append(result, migration{name: name, sql: sql})
	}
	return result, nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`).Error
}

func appliedMigrations(db *gorm.DB) (map[string]struct{}, error) {
	var names []string
	if err := db.Raw("SELECT filename FROM schema_migrations").Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[string]struct{}, len(names))
	for _, name := range names {
		applied[name] = struct{}{}
	}
	return applied, nil
}

func findMigrationsDir(dirName string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, dirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
