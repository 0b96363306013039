// Package csvfile loads the legislator registry from the CSV files
// produced by the biography crawler.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/logger"
)

// Store reads deputy and organization records from CSV files.
type Store struct {
	deputiesPath      string
	organizationsPath string
}

// NewStore creates a store over the given CSV files.
func NewStore(deputiesPath, organizationsPath string) *Store {
	return &Store{
		deputiesPath:      deputiesPath,
		organizationsPath: organizationsPath,
	}
}

// Deputies loads the legislator records keyed by display name. The
// expected columns are first name, last name, gender and image URL; a
// header row is skipped.
func (s *Store) Deputies(_ context.Context) (map[string]domain.Deputy, error) {
	rows, err := readCSV(s.deputiesPath)
	if err != nil {
		return nil, err
	}
	deputies := make(map[string]domain.Deputy, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			logger.Warn("Skipping malformed deputy row %v.", row)
			continue
		}
		deputy := domain.Deputy{
			FirstName: strings.TrimSpace(row[0]),
			LastName:  strings.TrimSpace(row[1]),
			Gender:    strings.TrimSpace(row[2]),
		}
		if len(row) > 3 {
			deputy.ImageURL = strings.TrimSpace(row[3])
		}
		deputies[deputy.DisplayName()] = deputy
	}
	return deputies, nil
}

// Organizations loads the distinct organization display names from the
// single-column organizations file.
func (s *Store) Organizations(_ context.Context) ([]string, error) {
	rows, err := readCSV(s.organizationsPath)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// Mandates loads the legislator list rows, one mandate record per row.
func Mandates(path string) ([]domain.DeputyMandate, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	var mandates []domain.DeputyMandate
	for _, row := range rows {
		mandate, err := domain.ParseDeputyRow(row)
		if err != nil {
			logger.Warn("Skipping malformed mandate row %v: %v.", row, err)
			continue
		}
		mandates = append(mandates, mandate)
	}
	return mandates, nil
}

// readCSV reads all records of a CSV file, dropping the header row.
// Rows may have varying field counts.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}
