package repository

import (
	"errors"

	"github.com/matrukan/tricog/internal/app/ds"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrStale is returned when a versioned row changed since it was read.
	ErrStale = errors.New("stale version")
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tables owned by this service.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&ds.SymptomRule{},
		&ds.PatientIntake{},
	)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
