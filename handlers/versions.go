package handlers

import (
	"errors"
	"net/http"

	"adminpanel/models"
	"adminpanel/services/version"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
)

type VersionHandler struct {
	Service version.VersionService
}

func NewVersionHandler(svc version.VersionService) *VersionHandler {
	return &VersionHandler{Service: svc}
}

func (h *VersionHandler) CreateVersionHandler(c *gin.Context) {
	var req models.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	v, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		h.versionError(c, "Create version", err, "Version already exists")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "", v)
}

func (h *VersionHandler) ListVersionsHandler(c *gin.Context) {
	versions, err := h.Service.List(c.Request.Context())
	if err != nil {
		serverError(c, "List versions", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", versions)
}

func (h *VersionHandler) GetVersionHandler(c *gin.Context) {
	v, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.versionError(c, "Get version", err, "")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", v)
}

func (h *VersionHandler) UpdateVersionHandler(c *gin.Context) {
	var req models.UpdateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	v, err := h.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.versionError(c, "Update version", err, "Version number is already taken")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", v)
}

func (h *VersionHandler) DeleteVersionHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.versionError(c, "Delete version", err, "")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Version deleted successfully", gin.H{})
}

func (h *VersionHandler) versionError(c *gin.Context, op string, err error, conflictMessage string) {
	switch {
	case errors.Is(err, version.ErrVersionExists):
		utils.JSONError(c, http.StatusBadRequest, conflictMessage, "")
	case errors.Is(err, version.ErrVersionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Version not found", "")
	case errors.Is(err, version.ErrNameRequired):
		validationError(c, err)
	default:
		serverError(c, op, err)
	}
}
