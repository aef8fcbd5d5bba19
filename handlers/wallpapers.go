package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"adminpanel/services/storage"
	"adminpanel/services/wallpaper"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
)

// imagesField is the multipart field carrying wallpaper images.
const imagesField = "images"

type WallpaperHandler struct {
	Service wallpaper.WallpaperService
}

func NewWallpaperHandler(svc wallpaper.WallpaperService) *WallpaperHandler {
	return &WallpaperHandler{Service: svc}
}

// CreateWallpaperHandler handles POST /api/wallpapers (multipart).
func (h *WallpaperHandler) CreateWallpaperHandler(c *gin.Context) {
	images, err := formImages(c)
	if err != nil {
		validationError(c, err)
		return
	}

	w, err := h.Service.Create(c.Request.Context(), c.PostForm("name"), images)
	if err != nil {
		h.wallpaperError(c, "Upload wallpaper", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "", w)
}

func (h *WallpaperHandler) ListWallpapersHandler(c *gin.Context) {
	items, pagination, err := h.Service.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		serverError(c, "Get wallpapers", err)
		return
	}
	utils.JSONPage(c, items, pagination)
}

func (h *WallpaperHandler) GetWallpaperHandler(c *gin.Context) {
	w, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.wallpaperError(c, "Get wallpaper", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", w)
}

// UpdateWallpaperHandler handles PUT /api/wallpapers/:id. Any uploaded
// images replace the existing set.
func (h *WallpaperHandler) UpdateWallpaperHandler(c *gin.Context) {
	images, err := formImages(c)
	if err != nil {
		validationError(c, err)
		return
	}

	var name *string
	if v, ok := c.GetPostForm("name"); ok {
		name = &v
	}

	w, err := h.Service.Update(c.Request.Context(), c.Param("id"), name, images)
	if err != nil {
		h.wallpaperError(c, "Update wallpaper", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Wallpaper updated successfully", w)
}

func (h *WallpaperHandler) DeleteWallpaperHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.wallpaperError(c, "Delete wallpaper", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Wallpaper deleted successfully", gin.H{})
}

func (h *WallpaperHandler) wallpaperError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, wallpaper.ErrWallpaperNotFound):
		utils.JSONError(c, http.StatusNotFound, "Wallpaper not found", "")
	case errors.Is(err, wallpaper.ErrNoImages):
		utils.JSONError(c, http.StatusBadRequest, "Please upload at least one image", "")
	case errors.Is(err, wallpaper.ErrNameRequired):
		validationError(c, err)
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrTooManyImages):
		utils.JSONError(c, http.StatusBadRequest, "Invalid upload", err.Error())
	default:
		serverError(c, op, err)
	}
}

// formImages collects the uploaded images. A request without a multipart
// form or without the images field yields no images.
func formImages(c *gin.Context) ([]storage.Image, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	files := form.File[imagesField]
	if len(files) > storage.MaxImagesPerRequest {
		return nil, storage.ErrTooManyImages
	}

	images := make([]storage.Image, 0, len(files))
	for _, fh := range files {
		images = append(images, imageFromHeader(fh))
	}
	return images, nil
}

func imageFromHeader(fh *multipart.FileHeader) storage.Image {
	return storage.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
