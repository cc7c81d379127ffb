package event

import (
	"net/http"
	"strconv"
	"time"

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

// FindAll - GET /events
// pageNumber and pageSize are mandatory; the remaining filter fields
// are optional and AND-composed.
func (h *Handler) FindAll(c *gin.Context) {
	var filter Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	events, err := h.Service.FindAllByFilter(&filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	data := make([]ShortResponse, 0, len(events))
	for i := range events {
		count, err := h.Service.CountBookings(events[i].ID)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		data = append(data, events[i].ToShortResponse(count))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count": len(data),
		"data":        data,
	})
}

// FindByID - GET /events/id/:id
func (h *Handler) FindByID(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	e, err := h.Service.FindByID(id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	resp, err := h.detail(e)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create - POST /events/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		apperror.Respond(c, apperror.Validationf("invalid date format. Use YYYY-MM-DD"))
		return
	}
	if date.Before(today()) {
		apperror.Respond(c, apperror.Validationf("date must be today or in the future"))
		return
	}

	e := &Event{
		Name:         req.Name,
		Description:  req.Description,
		City:         req.City,
		Address:      req.Address,
		Date:         date,
		MaxAttendees: req.MaxAttendees,
	}

	created, err := h.Service.Create(e)
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "EVENT_CREATED",
			map[string]interface{}{"name": req.Name, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "EVENT_CREATED",
		map[string]interface{}{"event_id": created.ID, "name": created.Name, "max_attendees": created.MaxAttendees},
		c.ClientIP(), "success")

	resp, err := h.detail(created)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update - PUT /events/update/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	updated, err := h.Service.Update(id, req)
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "EVENT_UPDATED",
		map[string]interface{}{"event_id": updated.ID, "name": updated.Name, "max_attendees": updated.MaxAttendees},
		c.ClientIP(), "success")

	resp, err := h.detail(updated)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete - DELETE /events/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "EVENT_DELETED",
			map[string]interface{}{"event_id": id, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "EVENT_DELETED",
		map[string]interface{}{"event_id": id}, c.ClientIP(), "success")

	c.Status(http.StatusNoContent)
}

func (h *Handler) detail(e *Event) (*DetailResponse, error) {
	count, err := h.Service.CountBookings(e.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := h.Service.BookingsFor(e.ID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []BookingSummary{}
	}
	return &DetailResponse{
		ShortResponse: e.ToShortResponse(count),
		Bookings:      bookings,
	}, nil
}

func eventID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperror.InvalidArgumentf("invalid event id")
	}
	return uint(id), nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
