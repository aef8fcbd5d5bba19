package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoredFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := StoredFileName("my summer\tpic.jpg", now, "ab12cd34"); got != "1700000000123-ab12cd34-my-summer-pic.jpg" {
		t.Fatalf("StoredFileName = %q", got)
	}
	if got := StoredFileName("../../etc/passwd.png", now, "ab12cd34"); got != "1700000000123-ab12cd34-passwd.png" {
		t.Fatalf("StoredFileName kept path segments: %q", got)
	}
}

func TestLocalImageStoreSameNameSameMillisecond(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir(), "https://api.example.com")
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}
	store.now = func() time.Time { return time.UnixMilli(42) }
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		url, err := store.Save(ctx, "image.jpg", strings.NewReader("jpg"))
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if seen[url] {
			t.Fatalf("save %d reused url %s", i, url)
		}
		seen[url] = true
	}

	listed, err := store.List(ctx)
	if err != nil || len(listed) != 20 {
		t.Fatalf("List = %d images, %v; want 20", len(listed), err)
	}
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		ok          bool
	}{
		{"a.jpg", "image/jpeg", true},
		{"a.JPEG", "image/jpeg", true},
		{"a.png", "image/png", true},
		{"a.gif", "image/gif", true},
		{"a.webp", "image/webp", false},
		{"a.png", "text/plain", false},
		{"noext", "image/png", false},
	}
	for _, tc := range tests {
		err := ValidateImage(Image{Filename: tc.name, ContentType: tc.contentType})
		if tc.ok && err != nil {
			t.Fatalf("ValidateImage(%s, %s) = %v, want ok", tc.name, tc.contentType, err)
		}
		if !tc.ok && !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("ValidateImage(%s, %s) = %v, want ErrUnsupportedType", tc.name, tc.contentType, err)
		}
	}
}

func TestLocalImageStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir, "https://api.example.com/")
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}
	store.now = func() time.Time { return time.UnixMilli(42) }
	store.token = func() string { return "t0" }
	ctx := context.Background()

	url, err := store.Save(ctx, "cat pic.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "https://api.example.com/uploads/wallpapers/42-t0-cat-pic.png" {
		t.Fatalf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "wallpapers", "42-t0-cat-pic.png"))
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("stored file = %q, %v", data, err)
	}

	listed, err := store.List(ctx)
	if err != nil || len(listed) != 1 || listed[0].URL != url {
		t.Fatalf("List = %+v, %v", listed, err)
	}

	if err := store.Delete(ctx, "https://elsewhere.com/uploads/wallpapers/42-t0-cat-pic.png"); err != nil {
		t.Fatalf("Delete foreign url: %v", err)
	}
	if err := store.Delete(ctx, "https://api.example.com/uploads/wallpapers/../secret"); err != nil {
		t.Fatalf("Delete traversal url: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "wallpapers", "42-t0-cat-pic.png")); err != nil {
		t.Fatal("foreign or traversal url deleted a stored file")
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "wallpapers", "42-t0-cat-pic.png")); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}

func TestCloudinaryPublicID(t *testing.T) {
	tests := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1700000000/wallpapers/42-cat.jpg": "wallpapers/42-cat",
		"https://res.cloudinary.com/demo/image/upload/wallpapers/42-cat.png":             "wallpapers/42-cat",
	}
	for url, want := range tests {
		got, ok := cloudinaryPublicID(url)
		if !ok || got != want {
			t.Fatalf("cloudinaryPublicID(%s) = %q, %v; want %q", url, got, ok, want)
		}
	}
	if _, ok := cloudinaryPublicID("https://api.example.com/uploads/wallpapers/a.png"); ok {
		t.Fatal("non-Cloudinary URL accepted")
	}
}

func TestNewImageDeleteTask(t *testing.T) {
	task, err := NewImageDeleteTask([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewImageDeleteTask: %v", err)
	}
	if task.Type() != TypeImageDelete || string(task.Payload()) != `{"urls":["a","b"]}` {
		t.Fatalf("task = %s %s", task.Type(), task.Payload())
	}
}
