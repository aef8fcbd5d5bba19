package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminpanel/database/repository"
	wallpaperRepo "adminpanel/database/repository/wallpaper"
	"adminpanel/models"
	"adminpanel/services/storage"
	"adminpanel/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrWallpaperNotFound = errors.New("wallpaper not found")
	ErrNoImages          = errors.New("please upload at least one image")
	ErrNameRequired      = errors.New("name is required")
)

// WallpaperService manages wallpapers and the images they reference.
type WallpaperService interface {
	Create(ctx context.Context, name string, images []storage.Image) (*models.Wallpaper, error)
	List(ctx context.Context, page models.PageRequest) ([]models.Wallpaper, models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Wallpaper, error)
	// Update changes the name when non-nil and replaces all images when any are given.
	Update(ctx context.Context, id string, name *string, images []storage.Image) (*models.Wallpaper, error)
	Delete(ctx context.Context, id string) error
}

type DefaultWallpaperService struct {
	Repo   wallpaperRepo.WallpaperRepository
	Store  storage.ImageStore
	Reaper storage.Reaper
}

func (s *DefaultWallpaperService) Create(ctx context.Context, name string, images []storage.Image) (*models.Wallpaper, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	paths, err := s.storeAll(ctx, images)
	if err != nil {
		return nil, err
	}

	w := &models.Wallpaper{
		ID:         uuid.New().String(),
		Name:       name,
		ImagePaths: paths,
	}
	if err := s.Repo.Create(ctx, w); err != nil {
		s.discard(ctx, paths)
		return nil, fmt.Errorf("failed to create wallpaper: %w", err)
	}
	utils.GetLogger().Info("Wallpaper created", zap.String("id", w.ID), zap.Int("images", len(paths)))
	return w, nil
}

// List returns one page of wallpapers, newest first.
func (s *DefaultWallpaperService) List(ctx context.Context, page models.PageRequest) ([]models.Wallpaper, models.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.Repo.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(total, page), nil
}

func (s *DefaultWallpaperService) Get(ctx context.Context, id string) (*models.Wallpaper, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return w, nil
}

// Update stores the new images first, then swaps the record, then hands
// the previous images to the reaper. A failure before the swap leaves the
// old record and images untouched.
func (s *DefaultWallpaperService) Update(ctx context.Context, id string, name *string, images []storage.Image) (*models.Wallpaper, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		w.Name = trimmed
	}

	var oldPaths, newPaths []string
	if len(images) > 0 {
		newPaths, err = s.storeAll(ctx, images)
		if err != nil {
			return nil, err
		}
		oldPaths = w.ImagePaths
		w.ImagePaths = newPaths
	}

	if err := s.Repo.Update(ctx, w); err != nil {
		s.discard(ctx, newPaths)
		return nil, mapRepoError(err)
	}

	s.reap(ctx, oldPaths)
	return w, nil
}

// Delete removes the record, then its images.
func (s *DefaultWallpaperService) Delete(ctx context.Context, id string) error {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.reap(ctx, w.ImagePaths)
	return nil
}

// storeAll validates every image before writing any, then writes them in
// order. On failure the images already written are removed.
func (s *DefaultWallpaperService) storeAll(ctx context.Context, images []storage.Image) ([]string, error) {
	if len(images) > storage.MaxImagesPerRequest {
		return nil, storage.ErrTooManyImages
	}
	for _, img := range images {
		if err := storage.ValidateImage(img); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.storeOne(ctx, img)
		if err != nil {
			s.discard(ctx, paths)
			return nil, err
		}
		paths = append(paths, url)
	}
	return paths, nil
}

func (s *DefaultWallpaperService) storeOne(ctx context.Context, img storage.Image) (string, error) {
	rc, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", img.Filename, err)
	}
	defer rc.Close()
	return s.Store.Save(ctx, img.Filename, rc)
}

// discard removes images written by a request that then failed.
func (s *DefaultWallpaperService) discard(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	_ = storage.DeleteAll(context.WithoutCancel(ctx), s.Store, paths)
}

// reap hands superseded images to the reaper. Failures are logged only;
// the orphan sweep picks up anything left behind.
func (s *DefaultWallpaperService) reap(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := s.Reaper.Reap(context.WithoutCancel(ctx), paths); err != nil {
		utils.GetLogger().Warn("Failed to schedule image deletion", zap.Strings("paths", paths), zap.Error(err))
	}
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWallpaperNotFound
	}
	return err
}
