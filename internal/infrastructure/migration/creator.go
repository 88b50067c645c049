package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a newly created up/down pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes a timestamped .up.sql/.down.sql pair into
// migrationsDir, creating the directory if needed. The version prefix is
// the creation time in YYYYMMDDHHMMSS form so files sort in apply order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}

	base := mf.Version + "_" + sanitizeName(name)
	mf.UpPath = filepath.Join(migrationsDir, base+".up.sql")
	mf.DownPath = filepath.Join(migrationsDir, base+".down.sql")

	up := migrationHeader(mf, false) + "-- Write your UP migration SQL here\n\n"
	if err := os.WriteFile(mf.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}

	down := migrationHeader(mf, true) + "-- Write your DOWN migration SQL here\n\n"
	if err := os.WriteFile(mf.DownPath, []byte(down), 0644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}

	return mf, nil
}

func migrationHeader(mf *MigrationFile, rollback bool) string {
	name := mf.Name
	description := mf.Description
	if rollback {
		name += " (Rollback)"
		description = "Rollback for " + description
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s\n", name)
	fmt.Fprintf(&b, "-- Created: %s\n", mf.Timestamp)
	fmt.Fprintf(&b, "-- Description: %s\n\n", description)
	return b.String()
}

// sanitizeName lowercases the name and collapses runs of spaces, dashes
// and underscores into single underscores. Anything else is dropped.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of every up migration in the
// directory. A missing directory yields an empty list.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0)
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok || seen[base] {
			continue
		}
		seen[base] = true
		migrations = append(migrations, base)
	}

	return migrations, nil
}
