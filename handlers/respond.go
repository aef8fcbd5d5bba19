package handlers

import (
	"net/http"
	"strconv"

	"adminpanel/models"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func validationError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Validation error", err.Error())
}

func serverError(c *gin.Context, op string, err error) {
	getLogger(c).Error(op+" error", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Server error", err.Error())
}

// pageFromQuery reads page and limit; anything unparsable falls back to the defaults.
func pageFromQuery(c *gin.Context) models.PageRequest {
	page, _ := strconv.ParseInt(c.Query("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	return models.PageRequest{Page: page, Limit: limit}.Normalize()
}
