package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
)

// StorageHandler handles the storage endpoints
type StorageHandler struct {
	BaseHandler
	storageService *refdataapp.StorageService
}

// NewStorageHandler creates a new StorageHandler
func NewStorageHandler(storageService *refdataapp.StorageService) *StorageHandler {
	return &StorageHandler{storageService: storageService}
}

// Create handles POST /api/storages/add
func (h *StorageHandler) Create(c *gin.Context) {
	var req refdataapp.CreateStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	storage, err := h.storageService.Create(c.Request.Context(), getCaller(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "storage_id", storage.ID)
}

// List handles GET /api/storages/all
func (h *StorageHandler) List(c *gin.Context) {
	var filter refdataapp.StorageListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	storages, total, err := h.storageService.List(c.Request.Context(), getCaller(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "storages": storages})
}

// GetByID handles GET /api/storages/{id}
func (h *StorageHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid storage id")
		return
	}

	storage, err := h.storageService.GetByID(c.Request.Context(), getCaller(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, storage)
}

// Update handles PATCH /api/storages/{id}
func (h *StorageHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid storage id")
		return
	}

	var req refdataapp.UpdateStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if _, err := h.storageService.Update(c.Request.Context(), getCaller(c), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /api/storages/{id}
func (h *StorageHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid storage id")
		return
	}

	if err := h.storageService.Delete(c.Request.Context(), getCaller(c), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
