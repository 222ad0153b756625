package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/refdata/backend/internal/interfaces/http/dto"
	"github.com/refdata/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response utilities shared by all
// resource handlers.
type BaseHandler struct{}

// getCaller returns the authenticated caller set by the JWT middleware
func getCaller(c *gin.Context) shared.Caller {
	return middleware.GetCaller(c)
}

// parseID parses the {id} path parameter
func parseID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// Created sends a 201 echoing the new resource id under the given key
func (h *BaseHandler) Created(c *gin.Context, idKey string, id uuid.UUID) {
	c.JSON(http.StatusCreated, gin.H{idKey: id})
}

// OKWithID sends a 200 echoing the resource id under the given key
func (h *BaseHandler) OKWithID(c *gin.Context, idKey string, id uuid.UUID) {
	c.JSON(http.StatusOK, gin.H{idKey: id})
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 for malformed input (bad JSON, bad uuid)
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// ValidationError sends a 422 for input that parsed but failed
// validation.
func (h *BaseHandler) ValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(dto.ErrCodeValidation, message))
}

// HandleBindError distinguishes input that failed validator tags (422)
// from input that did not parse at all (400).
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.ValidationError(c, err.Error())
		return
	}
	h.BadRequest(c, err.Error())
}

// HandleDomainError maps a service error onto the HTTP surface. Domain
// errors carry their own code; anything else is an internal error.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}
