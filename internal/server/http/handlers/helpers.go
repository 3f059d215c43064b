package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/server/http/dto"
	"github.com/slt-fleet/tireflow/internal/server/http/middleware"
)

// CurrentEmployeeID extracts the authenticated employee identifier from context.
func CurrentEmployeeID(c *gin.Context) string {
	val, ok := c.Get(middleware.EmployeeIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// respondError maps domain errors onto the HTTP error taxonomy. Validation
// failures always carry the full violation list.
func respondError(c *gin.Context, err error) {
	if validation, ok := domainErrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: validation.Violations})
		return
	}
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case errors.Is(err, domainErrors.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrTransitionNotAllowed):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
