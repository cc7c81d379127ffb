package routes

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dvo/event-booking-backend/config"
	"github.com/dvo/event-booking-backend/internal/auditlog"
	"github.com/dvo/event-booking-backend/internal/auth"
	"github.com/dvo/event-booking-backend/internal/booking"
	"github.com/dvo/event-booking-backend/internal/event"
	"github.com/dvo/event-booking-backend/internal/user"
	"github.com/dvo/event-booking-backend/middleware"
	"github.com/dvo/event-booking-backend/utils"
)

// Setup wires repositories, services and handlers and registers every
// route under /api with its role gate.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, rdb *goredis.Client, publisher *auditlog.Publisher) {

	// ========== Repositories ==========
	userRepo := user.NewRepository(db)
	eventRepo := event.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)

	// ========== Services ==========
	auditSvc := auditlog.NewService(auditRepo, publisher)
	userSvc := user.NewService(db, userRepo, &utils.BcryptHasher{}, bookingRepo)
	eventSvc := event.NewService(db, eventRepo, bookingRepo)
	bookingSvc := booking.NewService(db, bookingRepo, userSvc, eventSvc)
	authSvc := auth.NewService(userSvc, cfg)

	// ========== Handlers ==========
	userHandler := user.NewHandler(userSvc, auditSvc)
	eventHandler := event.NewHandler(eventSvc, auditSvc)
	bookingHandler := booking.NewHandler(bookingSvc, auditSvc)
	authHandler := auth.NewHandler(authSvc, auditSvc)
	auditHandler := auditlog.NewHandler(auditSvc)

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(cfg, rdb))

	// ========== Auth (open) ==========
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
	}

	// ========== Users ==========
	userRoutes := api.Group("/users")
	{
		// Self-registration stays open; an authenticated admin may set the role.
		userRoutes.POST("/create", middleware.OptionalAuth(cfg), userHandler.Create)
		userRoutes.GET("/name/:username", userHandler.FindByUsername)

		adminUsers := userRoutes.Group("/")
		adminUsers.Use(middleware.AuthMiddleware(cfg), middleware.RequireRoles(string(user.RoleAdmin)))
		{
			adminUsers.GET("", userHandler.FindAll)
			adminUsers.PUT("/update/:username", userHandler.Update)
			adminUsers.DELETE("/delete/:id", userHandler.DeleteByID)
			adminUsers.DELETE("/delete/name/:username", userHandler.DeleteByUsername)
		}
	}

	// ========== Events ==========
	eventRoutes := api.Group("/events")
	eventRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		readEvents := eventRoutes.Group("/")
		readEvents.Use(middleware.RequireRoles(string(user.RoleAdmin), string(user.RoleUser)))
		{
			readEvents.GET("", eventHandler.FindAll)
			readEvents.GET("/id/:id", eventHandler.FindByID)
		}

		writeEvents := eventRoutes.Group("/")
		writeEvents.Use(middleware.RequireRoles(string(user.RoleAdmin)))
		{
			writeEvents.POST("/create", eventHandler.Create)
			writeEvents.PUT("/update/:id", eventHandler.Update)
			writeEvents.DELETE("/delete/:id", eventHandler.Delete)
		}
	}

	// ========== Bookings ==========
	bookingRoutes := api.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(cfg), middleware.RequireRoles(string(user.RoleAdmin), string(user.RoleUser)))
	{
		bookingRoutes.GET("", bookingHandler.FindAll)
		bookingRoutes.GET("/id/:id", bookingHandler.FindByID)
		bookingRoutes.GET("/event/:id", bookingHandler.FindAllByEventID)
		bookingRoutes.POST("/create", bookingHandler.Create)
		bookingRoutes.PUT("/update/:id", bookingHandler.Update)
		bookingRoutes.DELETE("/delete/:id", bookingHandler.Delete)
	}

	// ========== Audit logs ==========
	auditRoutes := api.Group("/audit-logs")
	auditRoutes.Use(middleware.AuthMiddleware(cfg), middleware.RequireRoles(string(user.RoleAdmin)))
	{
		auditRoutes.GET("", auditHandler.List)
	}
}
