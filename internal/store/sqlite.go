package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"careerkit/internal/models"
)

var (
	// ErrNotFound is returned when a requested profile doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set busy timeout
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the database schema
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		data TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveProfile creates or replaces the profile blob stored under name
func (s *SQLiteStore) SaveProfile(name string, data json.RawMessage) (*models.Profile, error) {
	if name == "" {
		name = "Default"
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("profile data is not valid JSON")
	}

	now := time.Now()

	// Keep the existing id and created_at on replace
	existing, err := s.GetProfile(name)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	profile := &models.Profile{
		Name:      name,
		Data:      data,
		UpdatedAt: now,
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = uuid.New().String()
		profile.CreatedAt = now
	}

	_, err = s.db.Exec(`
		INSERT INTO profiles (id, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, profile.ID, profile.Name, string(data), profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}

// GetProfile retrieves a profile by name
func (s *SQLiteStore) GetProfile(name string) (*models.Profile, error) {
	var p models.Profile
	var data string
	err := s.db.QueryRow(`
		SELECT id, name, data, created_at, updated_at FROM profiles WHERE name = ?
	`, name).Scan(&p.ID, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Data = json.RawMessage(data)
	return &p, nil
}

// ListProfiles returns all profiles ordered by name
func (s *SQLiteStore) ListProfiles() ([]models.Profile, error) {
	rows, err := s.db.Query(`
		SELECT id, name, data, created_at, updated_at FROM profiles ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		var data string
		if err := rows.Scan(&p.ID, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Data = json.RawMessage(data)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// DeleteProfile removes a profile by name
func (s *SQLiteStore) DeleteProfile(name string) error {
	result, err := s.db.Exec(`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
