package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// CashRegisterHandler handles the cash register endpoints
type CashRegisterHandler struct {
	BaseHandler
	registerService *refdataapp.CashRegisterService
}

// NewCashRegisterHandler creates a new CashRegisterHandler
func NewCashRegisterHandler(registerService *refdataapp.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{registerService: registerService}
}

// Create handles POST /api/cash-registers/add
func (h *CashRegisterHandler) Create(c *gin.Context) {
	var req refdataapp.CreateCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	register, err := h.registerService.Create(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "cash_register_id", register.ID)
}

// List handles GET /api/cash-registers/all
func (h *CashRegisterHandler) List(c *gin.Context) {
	var filter refdataapp.CashRegisterListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	registers, total, err := h.registerService.List(c.Request.Context(), getCaller(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "cash_registers": registers})
}

// GetByID handles GET /api/cash-registers/{id}
func (h *CashRegisterHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid cash register id")
		return
	}

	register, err := h.registerService.GetByID(c.Request.Context(), getCaller(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, register)
}

// Update handles PATCH /api/cash-registers/{id}
func (h *CashRegisterHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid cash register id")
		return
	}

	var req refdataapp.UpdateCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if _, err := h.registerService.Update(c.Request.Context(), getCaller(c), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /api/cash-registers/{id}
func (h *CashRegisterHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid cash register id")
		return
	}

	if err := h.registerService.Delete(c.Request.Context(), getCaller(c), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
