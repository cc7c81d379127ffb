package auditlog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvo/event-booking-backend/internal/apperror"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// List - GET /audit-logs (admin only)
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	entries, total, err := h.Service.List(f)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count": total,
		"data":        entries,
	})
}
