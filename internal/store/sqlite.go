// Package store persists classified locations in SQLite. The classifier
// itself is stateless; this is caller-side bookkeeping so the CLI and HTTP
// API can show previously classified places and re-render their charts.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/lox/koppen/internal/models"
)

type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func New(db *sql.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log}
}

// SaveLocation inserts or replaces a classified location keyed by name.
func (s *Store) SaveLocation(loc models.Location) error {
	precipJSON, err := json.Marshal(loc.Precip)
	if err != nil {
		return fmt.Errorf("marshal precipitation: %w", err)
	}
	tempJSON, err := json.Marshal(loc.Temp)
	if err != nil {
		return fmt.Errorf("marshal temperature: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO locations (name, southern, precip_json, temp_json, code, threshold, temp_mean, precip_sum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			southern = excluded.southern,
			precip_json = excluded.precip_json,
			temp_json = excluded.temp_json,
			code = excluded.code,
			threshold = excluded.threshold,
			temp_mean = excluded.temp_mean,
			precip_sum = excluded.precip_sum
	`, loc.Name, loc.Southern, string(precipJSON), string(tempJSON), loc.Code, loc.Threshold, loc.TempMean, loc.PrecipSum)
	return err
}

// GetLocation returns the named location, or nil if it has not been saved.
func (s *Store) GetLocation(name string) (*models.Location, error) {
	row := s.db.QueryRow(`
		SELECT name, southern, precip_json, temp_json, code, threshold, temp_mean, precip_sum, created_at
		FROM locations
		WHERE name = ?
	`, name)

	loc, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// ListLocations returns every saved location ordered by name.
func (s *Store) ListLocations() ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT name, southern, precip_json, temp_json, code, threshold, temp_mean, precip_sum, created_at
		FROM locations
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

// ListLocationsByCode returns saved locations carrying the given Köppen code.
func (s *Store) ListLocationsByCode(code string) ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT name, southern, precip_json, temp_json, code, threshold, temp_mean, precip_sum, created_at
		FROM locations
		WHERE code = ?
		ORDER BY name ASC
	`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

// DeleteLocation removes the named location, reporting whether it existed.
func (s *Store) DeleteLocation(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM locations WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*models.Location, error) {
	var loc models.Location
	var precipJSON, tempJSON string
	if err := row.Scan(&loc.Name, &loc.Southern, &precipJSON, &tempJSON, &loc.Code, &loc.Threshold, &loc.TempMean, &loc.PrecipSum, &loc.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(precipJSON), &loc.Precip); err != nil {
		return nil, fmt.Errorf("unmarshal precipitation for %q: %w", loc.Name, err)
	}
	if err := json.Unmarshal([]byte(tempJSON), &loc.Temp); err != nil {
		return nil, fmt.Errorf("unmarshal temperature for %q: %w", loc.Name, err)
	}
	return &loc, nil
}
