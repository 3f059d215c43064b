package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/server/http/dto"
)

// OrderHandler manages tire order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/tire-orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var order model.TireOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.facade.CreateOrder(c.Request.Context(), &order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/tire-orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// List handles GET /api/tire-orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListByVendor handles GET /api/tire-orders/vendor/:email.
func (h *OrderHandler) ListByVendor(c *gin.Context) {
	orders, err := h.facade.OrdersByVendor(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Update handles PUT /api/tire-orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	var order model.TireOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.facade.UpdateOrder(c.Request.Context(), c.Param("id"), &order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/tire-orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Confirm handles PUT /api/tire-orders/:id/confirm.
func (h *OrderHandler) Confirm(c *gin.Context) {
	order, err := h.facade.ConfirmOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Reject handles PUT /api/tire-orders/:id/reject.
func (h *OrderHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.facade.RejectOrder(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
