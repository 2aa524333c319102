package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/services"
	"github.com/spokefoods/spoke-backend/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP codes.
// Anything unrecognized is a plain server error.
func respondServiceError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrLocationRequired):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrLocationNotFound):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrOutOfRegion):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrEmptyCart):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNoChefsAvailable):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &stockErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotAuthorized):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrOrderNotPending):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
