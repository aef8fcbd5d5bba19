package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImagesPerRequest caps how many images one upload may carry.
const MaxImagesPerRequest = 10

var (
	ErrUnsupportedType = errors.New("only image files are allowed")
	ErrTooManyImages   = fmt.Errorf("at most %d images are allowed", MaxImagesPerRequest)
)

// allowedImageTypes is matched against both the extension and the MIME type.
var allowedImageTypes = regexp.MustCompile(`jpeg|jpg|png|gif`)

var whitespace = regexp.MustCompile(`\s+`)

// ImageStore persists uploaded images and returns the URL they are served from.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Delete removes the image behind url. Unknown or already deleted images are not an error.
	Delete(ctx context.Context, url string) error
}

// StoredImage is one image found by a Lister.
type StoredImage struct {
	URL     string
	ModTime time.Time
}

// Lister is implemented by stores that can enumerate what they hold.
type Lister interface {
	List(ctx context.Context) ([]StoredImage, error)
}

// Image is an upload waiting to be stored.
type Image struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// ValidateImage accepts jpeg, png and gif uploads only.
func ValidateImage(img Image) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(img.Filename), "."))
	if !allowedImageTypes.MatchString(ext) || !allowedImageTypes.MatchString(strings.ToLower(img.ContentType)) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, img.Filename)
	}
	return nil
}

// StoredFileName prefixes the original name with a millisecond timestamp and
// a short token, and replaces whitespace with dashes. Uploads sharing a name
// and a millisecond differ only by token.
func StoredFileName(original string, now time.Time, token string) string {
	base := filepath.Base(original)
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), token, whitespace.ReplaceAllString(base, "-"))
}

func newFileToken() string {
	return uuid.NewString()[:8]
}
