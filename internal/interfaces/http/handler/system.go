package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/refdata/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health checking
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler creates a new SystemHandler. db may be nil, in which
// case the check only reports process liveness.
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable,
				dto.NewErrorResponse(dto.ErrCodeInternal, "database unreachable"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
