package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryImageStore uploads images to a Cloudinary folder.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	now    func() time.Time
	token  func() string
}

// NewCloudinaryImageStore builds a store from a CLOUDINARY_URL, or from the
// individual credentials when the URL is empty.
func NewCloudinaryImageStore(cloudinaryURL, cloudName, apiKey, apiSecret, folder string) (*CloudinaryImageStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	} else {
		if cloudName == "" || apiKey == "" || apiSecret == "" {
			return nil, fmt.Errorf("cloudinary credentials not set in configuration")
		}
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryImageStore{cld: cld, folder: folder, now: time.Now, token: newFileToken}, nil
}

func (s *CloudinaryImageStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	fileName := StoredFileName(name, s.now(), s.token())
	publicID := strings.TrimSuffix(fileName, path.Ext(fileName))

	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryImageStore: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryImageStore: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryImageStore: no URL returned")
	}
	return result.SecureURL, nil
}

func (s *CloudinaryImageStore) Delete(ctx context.Context, url string) error {
	publicID, ok := cloudinaryPublicID(url)
	if !ok {
		return nil
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryImageStore: failed to delete image: %w", err)
	}
	return nil
}

var cloudinaryVersionSegment = regexp.MustCompile(`^v\d+/`)

// cloudinaryPublicID extracts "folder/name" from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v1700000000/folder/name.jpg.
func cloudinaryPublicID(url string) (string, bool) {
	const marker = "/upload/"
	i := strings.Index(url, marker)
	if i < 0 {
		return "", false
	}
	rest := cloudinaryVersionSegment.ReplaceAllString(url[i+len(marker):], "")
	rest = strings.TrimSuffix(rest, path.Ext(rest))
	if rest == "" {
		return "", false
	}
	return rest, true
}
