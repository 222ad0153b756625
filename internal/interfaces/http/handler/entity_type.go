package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// EntityTypeHandler handles the read-only legal entity type directory
type EntityTypeHandler struct {
	BaseHandler
	typeService *refdataapp.EntityTypeService
}

// NewEntityTypeHandler creates a new EntityTypeHandler
func NewEntityTypeHandler(typeService *refdataapp.EntityTypeService) *EntityTypeHandler {
	return &EntityTypeHandler{typeService: typeService}
}

// List handles GET /api/legal-entity-types/all
func (h *EntityTypeHandler) List(c *gin.Context) {
	var filter refdataapp.EntityTypeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	types, total, err := h.typeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "legal_entity_types": types})
}
