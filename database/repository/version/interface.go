package versionRepo

import (
	"context"

	"adminpanel/models"
)

// VersionRepository defines methods for app version data access.
type VersionRepository interface {
	Create(ctx context.Context, v *models.Version) error
	GetByID(ctx context.Context, id string) (*models.Version, error)
	// GetByNumber returns the version with that number, or nil, nil.
	GetByNumber(ctx context.Context, number float64) (*models.Version, error)
	// List returns all versions, highest version number first.
	List(ctx context.Context) ([]models.Version, error)
	Update(ctx context.Context, v *models.Version) error
	Delete(ctx context.Context, id string) error
}
