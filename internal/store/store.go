package store

import (
	"encoding/json"

	"careerkit/internal/models"
)

// Store defines the interface for persistent profile storage
type Store interface {
	// Close closes the database connection
	Close() error

	// Profile operations
	SaveProfile(name string, data json.RawMessage) (*models.Profile, error)
	GetProfile(name string) (*models.Profile, error)
	ListProfiles() ([]models.Profile, error)
	DeleteProfile(name string) error
}
