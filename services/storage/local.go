package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// wallpaperSubdir is where images live below the upload root; it is also
// the URL segment after /uploads.
const wallpaperSubdir = "wallpapers"

// LocalImageStore writes images to disk and serves them through the
// /uploads static route.
type LocalImageStore struct {
	dir     string
	baseURL string
	now     func() time.Time
	token   func() string
}

// NewLocalImageStore stores files under uploadDir/wallpapers and builds URLs
// of the form domainURL/uploads/wallpapers/<file>.
func NewLocalImageStore(uploadDir, domainURL string) (*LocalImageStore, error) {
	dir := filepath.Join(uploadDir, wallpaperSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(domainURL, "/") + "/uploads/" + wallpaperSubdir + "/",
		now:     time.Now,
		token:   newFileToken,
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileName := StoredFileName(name, s.now(), s.token())
	f, err := os.OpenFile(filepath.Join(s.dir, fileName), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close image file: %w", err)
	}
	return s.baseURL + fileName, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, url string) error {
	fileName, ok := s.fileName(url)
	if !ok {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image %s: %w", fileName, err)
	}
	return nil
}

// List returns every stored image with its modification time.
func (s *LocalImageStore) List(ctx context.Context) ([]StoredImage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}
	out := make([]StoredImage, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, StoredImage{URL: s.baseURL + e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}

// fileName maps a URL produced by Save back to its file. URLs from other
// stores or with path segments are rejected.
func (s *LocalImageStore) fileName(url string) (string, bool) {
	if !strings.HasPrefix(url, s.baseURL) {
		return "", false
	}
	name := strings.TrimPrefix(url, s.baseURL)
	if name == "" || name != path.Base(name) || name == ".." {
		return "", false
	}
	return name, true
}
