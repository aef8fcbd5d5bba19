package cron

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"adminpanel/models"
	"adminpanel/services/storage"

	"github.com/hibiken/asynq"
)

type sweepStore struct {
	images  []storage.StoredImage
	deleted []string
}

func (s *sweepStore) Save(context.Context, string, io.Reader) (string, error) { return "", nil }

func (s *sweepStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *sweepStore) List(context.Context) ([]storage.StoredImage, error) { return s.images, nil }

type referencedRepo struct {
	paths map[string]struct{}
}

func (r referencedRepo) Create(context.Context, *models.Wallpaper) error { return nil }
func (r referencedRepo) GetByID(context.Context, string) (*models.Wallpaper, error) {
	return nil, nil
}
func (r referencedRepo) List(context.Context, models.PageRequest) ([]models.Wallpaper, int64, error) {
	return nil, 0, nil
}
func (r referencedRepo) Update(context.Context, *models.Wallpaper) error { return nil }
func (r referencedRepo) Delete(context.Context, string) error            { return nil }
func (r referencedRepo) ImagePaths(context.Context) (map[string]struct{}, error) {
	return r.paths, nil
}

func TestOrphanSweepDeletesOnlyOldUnreferencedImages(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-2 * time.Hour)
	fresh := now.Add(-10 * time.Minute)

	store := &sweepStore{images: []storage.StoredImage{
		{URL: "u/referenced.jpg", ModTime: old},
		{URL: "u/orphan-old.jpg", ModTime: old},
		{URL: "u/orphan-fresh.jpg", ModTime: fresh},
		{URL: "u/orphan-older.png", ModTime: old.Add(-time.Hour)},
	}}
	repo := referencedRepo{paths: map[string]struct{}{"u/referenced.jpg": {}}}

	handler := HandleOrphanSweepTask(store, store, repo, func() time.Time { return now })
	if err := handler(context.Background(), asynq.NewTask(storage.TypeOrphanSweep, nil)); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	sort.Strings(store.deleted)
	want := []string{"u/orphan-old.jpg", "u/orphan-older.png"}
	if strings.Join(store.deleted, ",") != strings.Join(want, ",") {
		t.Fatalf("deleted = %v, want %v", store.deleted, want)
	}
}

func TestImageDeleteTask(t *testing.T) {
	store := &sweepStore{}
	task, err := storage.NewImageDeleteTask([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewImageDeleteTask: %v", err)
	}
	if err := HandleImageDeleteTask(store)(context.Background(), task); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if strings.Join(store.deleted, ",") != "a,b" {
		t.Fatalf("deleted = %v", store.deleted)
	}

	bad := asynq.NewTask(storage.TypeImageDelete, []byte("{"))
	if err := HandleImageDeleteTask(store)(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("bad payload error = %v, want SkipRetry", err)
	}
}
