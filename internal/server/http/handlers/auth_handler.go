package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/server/http/dto"
	"github.com/slt-fleet/tireflow/internal/server/http/middleware"
)

// AuthHandler processes employee registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	employee, token, err := h.facade.Register(c.Request.Context(), req.Email, req.ServiceNo, req.Section, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     token,
		Email:     employee.Email,
		ServiceNo: employee.ServiceNo,
		Section:   employee.Section,
	})
}

// Login handles POST /api/auth/login. The login field accepts an email
// address or a service number.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	employee, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     token,
		Email:     employee.Email,
		ServiceNo: employee.ServiceNo,
		Section:   employee.Section,
	})
}

// Me handles GET /api/auth/me for authenticated callers.
func (h *AuthHandler) Me(c *gin.Context) {
	employee, err := h.facade.Employee(c.Request.Context(), CurrentEmployeeID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{
		Email:     employee.Email,
		ServiceNo: employee.ServiceNo,
		Section:   employee.Section,
	})
}
