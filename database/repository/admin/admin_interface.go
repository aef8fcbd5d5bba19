package adminRepo

import (
	"context"

	"adminpanel/models"
)

// AdminRepository defines methods for administrator data access.
type AdminRepository interface {
	// Create inserts a new admin. A taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, admin *models.Admin) error
	// GetByID retrieves an admin by ID without the password hash.
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	// GetByEmail returns the admin with its password hash, or nil, nil.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	// CountAdmins counts records flagged isAdmin.
	CountAdmins(ctx context.Context) (int64, error)
}
