package wallpaperRepo

import (
	"context"

	"adminpanel/models"
)

// WallpaperRepository defines methods for wallpaper data access.
type WallpaperRepository interface {
	Create(ctx context.Context, w *models.Wallpaper) error
	GetByID(ctx context.Context, id string) (*models.Wallpaper, error)
	// List returns one page of wallpapers, newest first, and the total count.
	List(ctx context.Context, page models.PageRequest) ([]models.Wallpaper, int64, error)
	Update(ctx context.Context, w *models.Wallpaper) error
	Delete(ctx context.Context, id string) error
	// ImagePaths returns every image path referenced by any wallpaper.
	ImagePaths(ctx context.Context) (map[string]struct{}, error)
}
