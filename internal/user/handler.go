package user

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

// FindAll - GET /users
func (h *Handler) FindAll(c *gin.Context) {
	page, size := pagination(c)

	users, total, err := h.Service.FindAll(page, size)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	data := make([]Response, 0, len(users))
	for i := range users {
		data = append(data, users[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count": total,
		"data":        data,
	})
}

// FindByUsername - GET /users/name/:username
func (h *Handler) FindByUsername(c *gin.Context) {
	u, err := h.Service.FindByUsername(c.Param("username"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u.ToResponse())
}

// Create - POST /users/create (self-registration; the role field is
// honored only when the caller is an authenticated admin)
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	role := Role("")
	if middleware.CurrentRole(c) == string(RoleAdmin) {
		role = Role(req.Role)
	}

	u := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: req.Password, // hashed by the service
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	created, err := h.Service.Create(u, role)
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_CREATED",
			map[string]interface{}{"username": req.Username, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_CREATED",
		map[string]interface{}{"user_id": created.ID, "username": created.Username, "role": created.Role},
		c.ClientIP(), "success")

	c.JSON(http.StatusCreated, created.ToResponse())
}

// Update - PUT /users/update/:username
func (h *Handler) Update(c *gin.Context) {
	username := c.Param("username")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.FromBinding(err))
		return
	}

	updated, err := h.Service.Update(username, req)
	if err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_UPDATED",
			map[string]interface{}{"username": username, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_UPDATED",
		map[string]interface{}{"user_id": updated.ID, "username": updated.Username},
		c.ClientIP(), "success")

	c.JSON(http.StatusOK, updated.ToResponse())
}

// DeleteByID - DELETE /users/delete/:id
func (h *Handler) DeleteByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperror.Respond(c, apperror.InvalidArgumentf("invalid user id"))
		return
	}

	if err := h.Service.Delete(uint(id)); err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_DELETED",
			map[string]interface{}{"user_id": id, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_DELETED",
		map[string]interface{}{"user_id": id}, c.ClientIP(), "success")

	c.Status(http.StatusNoContent)
}

// DeleteByUsername - DELETE /users/delete/name/:username
func (h *Handler) DeleteByUsername(c *gin.Context) {
	username := c.Param("username")

	if err := h.Service.DeleteByUsername(username); err != nil {
		h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_DELETED",
			map[string]interface{}{"username": username, "error": err.Error()},
			c.ClientIP(), "failure")
		apperror.Respond(c, err)
		return
	}

	h.Audit.LogAction(c.Request.Context(), middleware.CurrentUserID(c), "USER_DELETED",
		map[string]interface{}{"username": username}, c.ClientIP(), "success")

	c.Status(http.StatusNoContent)
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
