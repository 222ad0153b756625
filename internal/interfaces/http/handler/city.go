package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// CityHandler handles the city directory endpoints
type CityHandler struct {
	BaseHandler
	cityService *refdataapp.CityService
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cityService *refdataapp.CityService) *CityHandler {
	return &CityHandler{cityService: cityService}
}

// Create handles POST /api/cities/add
func (h *CityHandler) Create(c *gin.Context) {
	var req refdataapp.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	city, err := h.cityService.Create(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "city_id", city.ID)
}

// List handles GET /api/cities/all
func (h *CityHandler) List(c *gin.Context) {
	var filter refdataapp.CityListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	cities, total, err := h.cityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "cities": cities})
}

// GetByID handles GET /api/cities/{id}
func (h *CityHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid city id")
		return
	}

	city, err := h.cityService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, city)
}

// Update handles PATCH /api/cities/{id}
func (h *CityHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid city id")
		return
	}

	var req refdataapp.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if _, err := h.cityService.Update(c.Request.Context(), getCaller(c), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /api/cities/{id}
func (h *CityHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid city id")
		return
	}

	if err := h.cityService.Delete(c.Request.Context(), getCaller(c), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
