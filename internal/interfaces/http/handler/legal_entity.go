package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// LegalEntityHandler handles the legal entity endpoints
type LegalEntityHandler struct {
	BaseHandler
	entityService *refdataapp.LegalEntityService
}

// NewLegalEntityHandler creates a new LegalEntityHandler
func NewLegalEntityHandler(entityService *refdataapp.LegalEntityService) *LegalEntityHandler {
	return &LegalEntityHandler{entityService: entityService}
}

// Create handles POST /api/legal-entities/add
func (h *LegalEntityHandler) Create(c *gin.Context) {
	var req refdataapp.CreateLegalEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "legal_entity_id", entity.ID)
}

// AddByINN handles POST /api/legal-entities/add-by-inn
func (h *LegalEntityHandler) AddByINN(c *gin.Context) {
	var req refdataapp.AddByINNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	entity, err := h.entityService.AddByINN(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "legal_entity_id", entity.ID)
}

// List handles GET /api/legal-entities/all
func (h *LegalEntityHandler) List(c *gin.Context) {
	var filter refdataapp.LegalEntityListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	entities, total, err := h.entityService.List(c.Request.Context(), getCaller(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "legal_entities": entities})
}

// GetBuyers handles GET /api/legal-entities/get-buyers
func (h *LegalEntityHandler) GetBuyers(c *gin.Context) {
	companyID, err := optionalCompanyID(c)
	if err != nil {
		h.BadRequest(c, "invalid company_id")
		return
	}

	entities, err := h.entityService.GetBuyers(c.Request.Context(), getCaller(c), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": int64(len(entities)), "legal_entities": entities})
}

// GetSellers handles GET /api/legal-entities/get-sellers
func (h *LegalEntityHandler) GetSellers(c *gin.Context) {
	companyID, err := optionalCompanyID(c)
	if err != nil {
		h.BadRequest(c, "invalid company_id")
		return
	}

	entities, err := h.entityService.GetSellers(c.Request.Context(), getCaller(c), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": int64(len(entities)), "legal_entities": entities})
}

// GetByCompany handles GET /api/legal-entities/get-by-company
func (h *LegalEntityHandler) GetByCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		h.BadRequest(c, "invalid company_id")
		return
	}

	entities, err := h.entityService.GetByCompany(c.Request.Context(), getCaller(c), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": int64(len(entities)), "legal_entities": entities})
}

// FindByINNKPP handles GET /api/legal-entities/inn-kpp
func (h *LegalEntityHandler) FindByINNKPP(c *gin.Context) {
	inn := c.Query("inn")
	var kpp *string
	if raw, ok := c.GetQuery("kpp"); ok && raw != "" {
		kpp = &raw
	}

	ref, err := h.entityService.FindByINNKPP(c.Request.Context(), inn, kpp)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ref)
}

// GetByIDs handles POST /api/legal-entities/by-ids
func (h *LegalEntityHandler) GetByIDs(c *gin.Context) {
	var req refdataapp.ByIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	entities, err := h.entityService.GetByIDs(c.Request.Context(), getCaller(c), req.IDs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": int64(len(entities)), "legal_entities": entities})
}

// GetByID handles GET /api/legal-entities/{id}
func (h *LegalEntityHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid legal entity id")
		return
	}

	entity, err := h.entityService.GetByID(c.Request.Context(), getCaller(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// Update handles PATCH /api/legal-entities/{id}
func (h *LegalEntityHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid legal entity id")
		return
	}

	var req refdataapp.UpdateLegalEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), getCaller(c), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.OKWithID(c, "legal_entity_id", entity.ID)
}

// Delete handles DELETE /api/legal-entities/{id}
func (h *LegalEntityHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid legal entity id")
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), getCaller(c), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// optionalCompanyID parses the optional company_id query parameter
func optionalCompanyID(c *gin.Context) (*uuid.UUID, error) {
	raw, ok := c.GetQuery("company_id")
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
