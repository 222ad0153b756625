package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// RelationHandler handles the entity-company relation endpoints
type RelationHandler struct {
	BaseHandler
	relationService *refdataapp.RelationService
}

// NewRelationHandler creates a new RelationHandler
func NewRelationHandler(relationService *refdataapp.RelationService) *RelationHandler {
	return &RelationHandler{relationService: relationService}
}

// Create handles POST /api/entity-company-relations/add
func (h *RelationHandler) Create(c *gin.Context) {
	var req refdataapp.CreateRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	relation, err := h.relationService.Create(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "entity_company_relation_id", relation.ID)
}

// List handles GET /api/entity-company-relations/all
func (h *RelationHandler) List(c *gin.Context) {
	var filter refdataapp.RelationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	relations, total, err := h.relationService.List(c.Request.Context(), getCaller(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "entity_company_relations": relations})
}

// GetByID handles GET /api/entity-company-relations/{id}
func (h *RelationHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid relation id")
		return
	}

	relation, err := h.relationService.GetByID(c.Request.Context(), getCaller(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, relation)
}

// Update handles PATCH /api/entity-company-relations/{id}
func (h *RelationHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid relation id")
		return
	}

	var req refdataapp.UpdateRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	relation, err := h.relationService.Update(c.Request.Context(), getCaller(c), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.OKWithID(c, "entity_company_relation_id", relation.ID)
}

// Delete handles DELETE /api/entity-company-relations/{id}
func (h *RelationHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid relation id")
		return
	}

	if err := h.relationService.Delete(c.Request.Context(), getCaller(c), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
