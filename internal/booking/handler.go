package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dvo/event-booking-backend/internal/apperror"
	"github.com/dvo/event-booking-backend/internal/auditlog"
	"github.com/dvo/event-booking-backend/middleware"
)

type Handler struct {
	Service *Service
	Audit   auditlog.Service
}

func NewHandler(s *Service, audit auditlog.Service) *Handler {
	return &Handler{Service: s, Audit: audit}
}

// FindAll - GET /bookings
func (h *Handler) FindAll(c *gin.Context) {
	page, size := pagination(c)

	bookings, total, err := h.Service.FindAll(page, size)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	data := make([]Response, 0, len(bookings))
	for i := range bookings {
		data = append(data, bookings[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count": total,
		"data":        data,
	})
}

// FindAllByEventID - GET /bookings/event/:id
func (h *Handler) FindAllByEventID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperror.Respond(c, apperror.InvalidArgumentf("invalid event id"))
		return
	}

	bookings, err := h.Service.FindAllByEventID(uint(id))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	data := make([]Response, 0, len(bookings))
	for i := range bookings {
		data = append(data, bookings[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"total_count": len(data),
		"data":        data,
	})
}

// FindByID - GET /bookings/id/:id
func (h *Handler) FindByID(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	b, err := h.Service.FindByID(id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, b.ToResponse())
}

// Create - POST /bookings/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	created, err := h.Service.Create(req.UserID, req.EventID)
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "BOOKING_CREATED",
			map[string]interface{}{"user_id": req.UserID, "event_id": req.EventID, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "BOOKING_CREATED",
		map[string]interface{}{"booking_id": created.ID, "user_id": created.UserID, "event_id": created.EventID},
		c.ClientIP(), "success")

	c.JSON(http.StatusCreated, created.ToResponse())
}

// Update - PUT /bookings/update/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	updated, err := h.Service.Update(id, req)
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "BOOKING_UPDATED",
			map[string]interface{}{"booking_id": id, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "BOOKING_UPDATED",
		map[string]interface{}{"booking_id": updated.ID, "user_id": updated.UserID, "event_id": updated.EventID},
		c.ClientIP(), "success")

	c.JSON(http.StatusOK, updated.ToResponse())
}

// Delete - DELETE /bookings/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "BOOKING_DELETED",
			map[string]interface{}{"booking_id": id, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "BOOKING_DELETED",
		map[string]interface{}{"booking_id": id}, c.ClientIP(), "success")

	c.Status(http.StatusNoContent)
}

func bookingID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperror.InvalidArgumentf("invalid booking id")
	}
	return uint(id), nil
}

func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("pageNumber", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	return page, size
}
