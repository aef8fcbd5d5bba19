package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/services/storage"
)

type memRepo struct {
	items     map[string]models.Wallpaper
	createErr error
	updateErr error
}

func newMemRepo() *memRepo { return &memRepo{items: map[string]models.Wallpaper{}} }

func (r *memRepo) Create(_ context.Context, w *models.Wallpaper) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[w.ID] = *w
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.Wallpaper, error) {
	w, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("wallpaper %s: %w", id, repository.ErrNotFound)
	}
	return &w, nil
}

func (r *memRepo) List(context.Context, models.PageRequest) ([]models.Wallpaper, int64, error) {
	out := make([]models.Wallpaper, 0, len(r.items))
	for _, w := range r.items {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) Update(_ context.Context, w *models.Wallpaper) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.items[w.ID] = *w
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memRepo) ImagePaths(context.Context) (map[string]struct{}, error) { return nil, nil }

type memStore struct {
	files   map[string]string
	next    int
	failAt  int
	deleted []string
}

func newMemStore() *memStore { return &memStore{files: map[string]string{}, failAt: -1} }

func (s *memStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if s.next == s.failAt {
		return "", errors.New("disk full")
	}
	data, _ := io.ReadAll(r)
	s.next++
	url := fmt.Sprintf("https://cdn.test/uploads/wallpapers/%d-%s", s.next, name)
	s.files[url] = string(data)
	return url, nil
}

func (s *memStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	delete(s.files, url)
	return nil
}

type recordingReaper struct {
	reaped [][]string
}

func (r *recordingReaper) Reap(_ context.Context, urls []string) error {
	r.reaped = append(r.reaped, urls)
	return nil
}

func image(name, contentType string) storage.Image {
	return storage.Image{
		Filename:    name,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("bytes of " + name)), nil
		},
	}
}

func newService() (*DefaultWallpaperService, *memRepo, *memStore, *recordingReaper) {
	repo, store, reaper := newMemRepo(), newMemStore(), &recordingReaper{}
	return &DefaultWallpaperService{Repo: repo, Store: store, Reaper: reaper}, repo, store, reaper
}

func TestCreateWallpaper(t *testing.T) {
	svc, repo, store, _ := newService()

	w, err := svc.Create(context.Background(), "  Sunset ", []storage.Image{
		image("a.jpg", "image/jpeg"),
		image("b.png", "image/png"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.Name != "Sunset" || len(w.ImagePaths) != 2 {
		t.Fatalf("Create = %+v", w)
	}
	if _, ok := repo.items[w.ID]; !ok {
		t.Fatal("wallpaper not persisted")
	}
	if len(store.files) != 2 {
		t.Fatalf("stored files = %d, want 2", len(store.files))
	}
}

func TestCreateWallpaperRejects(t *testing.T) {
	tooMany := make([]storage.Image, storage.MaxImagesPerRequest+1)
	for i := range tooMany {
		tooMany[i] = image(fmt.Sprintf("%d.jpg", i), "image/jpeg")
	}

	tests := []struct {
		name    string
		wpName  string
		images  []storage.Image
		wantErr error
	}{
		{name: "no images", wpName: "x", wantErr: ErrNoImages},
		{name: "no name", wpName: " ", images: []storage.Image{image("a.jpg", "image/jpeg")}, wantErr: ErrNameRequired},
		{name: "bad type", wpName: "x", images: []storage.Image{image("a.jpg", "image/jpeg"), image("evil.exe", "application/octet-stream")}, wantErr: storage.ErrUnsupportedType},
		{name: "too many", wpName: "x", images: tooMany, wantErr: storage.ErrTooManyImages},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, store, _ := newService()
			if _, err := svc.Create(context.Background(), tc.wpName, tc.images); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Create error = %v, want %v", err, tc.wantErr)
			}
			if len(repo.items) != 0 || len(store.files) != 0 {
				t.Fatal("rejected create left state behind")
			}
		})
	}
}

func TestCreateWallpaperDiscardsImagesOnFailure(t *testing.T) {
	svc, repo, store, _ := newService()
	repo.createErr = errors.New("insert failed")

	if _, err := svc.Create(context.Background(), "x", []storage.Image{image("a.jpg", "image/jpeg"), image("b.gif", "image/gif")}); err == nil {
		t.Fatal("Create succeeded with failing repository")
	}
	if len(store.files) != 0 {
		t.Fatalf("%d images left after failed create", len(store.files))
	}

	svc, _, store, _ = newService()
	store.failAt = 1
	if _, err := svc.Create(context.Background(), "x", []storage.Image{image("a.jpg", "image/jpeg"), image("b.gif", "image/gif")}); err == nil {
		t.Fatal("Create succeeded with failing store")
	}
	if len(store.files) != 0 {
		t.Fatalf("%d images left after partial upload", len(store.files))
	}
}

func TestUpdateWallpaperReplacesImagesAndReapsOld(t *testing.T) {
	svc, repo, _, reaper := newService()
	ctx := context.Background()

	w, err := svc.Create(ctx, "x", []storage.Image{image("a.jpg", "image/jpeg"), image("b.jpg", "image/jpeg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	old := append([]string(nil), w.ImagePaths...)

	updated, err := svc.Update(ctx, w.ID, nil, []storage.Image{image("c.png", "image/png")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.ImagePaths) != 1 || !strings.HasSuffix(updated.ImagePaths[0], "c.png") {
		t.Fatalf("ImagePaths = %v, want only the new image", updated.ImagePaths)
	}
	if got := repo.items[w.ID].ImagePaths; len(got) != 1 || got[0] != updated.ImagePaths[0] {
		t.Fatalf("stored ImagePaths = %v", got)
	}
	if len(reaper.reaped) != 1 || strings.Join(reaper.reaped[0], ",") != strings.Join(old, ",") {
		t.Fatalf("reaped = %v, want %v", reaper.reaped, old)
	}
}

func TestUpdateWallpaperNameOnlyKeepsImages(t *testing.T) {
	svc, _, _, reaper := newService()
	ctx := context.Background()
	w, err := svc.Create(ctx, "x", []storage.Image{image("a.jpg", "image/jpeg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "renamed"
	updated, err := svc.Update(ctx, w.ID, &name, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "renamed" || len(updated.ImagePaths) != 1 || updated.ImagePaths[0] != w.ImagePaths[0] {
		t.Fatalf("Update = %+v", updated)
	}
	if len(reaper.reaped) != 0 {
		t.Fatal("rename reaped images")
	}
}

func TestUpdateWallpaperFailureKeepsOldImages(t *testing.T) {
	svc, repo, store, reaper := newService()
	ctx := context.Background()
	w, err := svc.Create(ctx, "x", []storage.Image{image("a.jpg", "image/jpeg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.updateErr = errors.New("write conflict")

	if _, err := svc.Update(ctx, w.ID, nil, []storage.Image{image("c.png", "image/png")}); err == nil {
		t.Fatal("Update succeeded with failing repository")
	}
	if len(reaper.reaped) != 0 {
		t.Fatal("old images reaped although the record was not swapped")
	}
	if _, ok := store.files[w.ImagePaths[0]]; !ok || len(store.files) != 1 {
		t.Fatalf("store = %v, want only the original image", store.files)
	}
}

func TestDeleteWallpaper(t *testing.T) {
	svc, repo, _, reaper := newService()
	ctx := context.Background()
	w, err := svc.Create(ctx, "x", []storage.Image{image("a.jpg", "image/jpeg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, w.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("record not deleted")
	}
	if len(reaper.reaped) != 1 || reaper.reaped[0][0] != w.ImagePaths[0] {
		t.Fatalf("reaped = %v", reaper.reaped)
	}
	if err := svc.Delete(ctx, w.ID); !errors.Is(err, ErrWallpaperNotFound) {
		t.Fatalf("second Delete error = %v, want ErrWallpaperNotFound", err)
	}
}

func TestCreateWallpaperWithSameNamedImagesOnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalImageStore(dir, "https://api.example.com")
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}
	repo := newMemRepo()
	svc := &DefaultWallpaperService{Repo: repo, Store: store, Reaper: &recordingReaper{}}

	w, err := svc.Create(context.Background(), "Phone dump", []storage.Image{
		image("image.jpg", "image/jpeg"),
		image("image.jpg", "image/jpeg"),
		image("image.jpg", "image/jpeg"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(w.ImagePaths) != 3 {
		t.Fatalf("image paths = %v", w.ImagePaths)
	}
	distinct := map[string]bool{}
	for _, p := range w.ImagePaths {
		distinct[p] = true
	}
	if len(distinct) != 3 {
		t.Fatalf("image paths collide: %v", w.ImagePaths)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "wallpapers"))
	if err != nil || len(entries) != 3 {
		t.Fatalf("stored files = %d, %v; want 3", len(entries), err)
	}
}
