// Package sqlite implements the registry store over the crawler's
// SQLite cache database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/roparl/corpus-cli/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS deputies (
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	gender     TEXT NOT NULL,
	image_url  TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (first_name, last_name)
);
CREATE TABLE IF NOT EXISTS organizations (
	name TEXT NOT NULL PRIMARY KEY
);`

// Store reads and writes the legislator registry in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the schema when absent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Deputies loads the legislator records keyed by display name.
func (s *Store) Deputies(ctx context.Context) (map[string]domain.Deputy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT first_name, last_name, gender, image_url FROM deputies`)
	if err != nil {
		return nil, fmt.Errorf("query deputies: %w", err)
	}
	defer rows.Close()

	deputies := make(map[string]domain.Deputy)
	for rows.Next() {
		var d domain.Deputy
		if err := rows.Scan(&d.FirstName, &d.LastName, &d.Gender, &d.ImageURL); err != nil {
			return nil, fmt.Errorf("scan deputy: %w", err)
		}
		deputies[d.DisplayName()] = d
	}
	return deputies, rows.Err()
}

// Organizations loads the distinct organization display names.
func (s *Store) Organizations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM organizations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query organizations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ImportDeputies upserts legislator records, e.g. from a crawler CSV
// export.
func (s *Store) ImportDeputies(ctx context.Context, deputies map[string]domain.Deputy) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, d := range deputies {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO deputies (first_name, last_name, gender, image_url)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT (first_name, last_name) DO UPDATE SET
			   gender = excluded.gender, image_url = excluded.image_url`,
			d.FirstName, d.LastName, d.Gender, d.ImageURL)
		if err != nil {
			return fmt.Errorf("import deputy %s: %w", d.DisplayName(), err)
		}
	}
	return tx.Commit()
}

// ImportOrganizations upserts organization names.
func (s *Store) ImportOrganizations(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO organizations (name) VALUES (?) ON CONFLICT (name) DO NOTHING`,
			name); err != nil {
			return fmt.Errorf("import organization %s: %w", name, err)
		}
	}
	return tx.Commit()
}
