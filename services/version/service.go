package version

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminpanel/database/repository"
	versionRepo "adminpanel/database/repository/version"
	"adminpanel/models"
	"adminpanel/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrVersionExists   = errors.New("version already exists")
	ErrVersionNotFound = errors.New("version not found")
	ErrNameRequired    = errors.New("name is required")
)

// VersionService manages published app versions.
type VersionService interface {
	Create(ctx context.Context, req models.CreateVersionRequest) (*models.Version, error)
	List(ctx context.Context) ([]models.Version, error)
	Get(ctx context.Context, id string) (*models.Version, error)
	Update(ctx context.Context, id string, req models.UpdateVersionRequest) (*models.Version, error)
	Delete(ctx context.Context, id string) error
}

type DefaultVersionService struct {
	Repo versionRepo.VersionRepository
}

func (s *DefaultVersionService) Create(ctx context.Context, req models.CreateVersionRequest) (*models.Version, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Version == nil {
		return nil, fmt.Errorf("version number is required")
	}

	existing, err := s.Repo.GetByNumber(ctx, *req.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to check version: %w", err)
	}
	if existing != nil {
		return nil, ErrVersionExists
	}

	v := &models.Version{
		ID:      uuid.New().String(),
		Name:    name,
		Version: *req.Version,
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVersionExists
		}
		return nil, err
	}
	utils.GetLogger().Info("Version created", zap.String("id", v.ID), zap.Float64("version", v.Version))
	return v, nil
}

// List returns every version, highest number first.
func (s *DefaultVersionService) List(ctx context.Context) ([]models.Version, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultVersionService) Get(ctx context.Context, id string) (*models.Version, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return v, nil
}

// Update changes name and/or number. A new number must not already be used
// by another version.
func (s *DefaultVersionService) Update(ctx context.Context, id string, req models.UpdateVersionRequest) (*models.Version, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Version != nil && *req.Version != v.Version {
		other, err := s.Repo.GetByNumber(ctx, *req.Version)
		if err != nil {
			return nil, fmt.Errorf("failed to check version: %w", err)
		}
		if other != nil && other.ID != v.ID {
			return nil, ErrVersionExists
		}
		v.Version = *req.Version
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		v.Name = name
	}

	if err := s.Repo.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVersionExists
		}
		return nil, mapRepoError(err)
	}
	return v, nil
}

func (s *DefaultVersionService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVersionNotFound
	}
	return err
}
