package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// WarehouseHandler handles the warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *refdataapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *refdataapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create handles POST /api/warehouses/add
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req refdataapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "warehouse_id", warehouse.ID)
}

// List handles GET /api/warehouses/all
func (h *WarehouseHandler) List(c *gin.Context) {
	var filter refdataapp.WarehouseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), getCaller(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "warehouses": warehouses})
}

// GetByID handles GET /api/warehouses/{id}
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid warehouse id")
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), getCaller(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, warehouse)
}

// Update handles PATCH /api/warehouses/{id}
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid warehouse id")
		return
	}

	var req refdataapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if _, err := h.warehouseService.Update(c.Request.Context(), getCaller(c), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /api/warehouses/{id}
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid warehouse id")
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), getCaller(c), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
