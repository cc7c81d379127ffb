package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dvo/event-booking-backend/config"
	"github.com/dvo/event-booking-backend/database"
	"github.com/dvo/event-booking-backend/internal/auditlog"
	"github.com/dvo/event-booking-backend/internal/booking"
	"github.com/dvo/event-booking-backend/internal/event"
	"github.com/dvo/event-booking-backend/internal/user"
	"github.com/dvo/event-booking-backend/middleware"
	"github.com/dvo/event-booking-backend/routes"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	if err := db.AutoMigrate(
		&user.User{},
		&event.Event{},
		&booking.Booking{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
	log.Println("✅ Database migrated")

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	var publisher *auditlog.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = auditlog.NewPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		defer publisher.Close()
		log.Printf("✅ Audit publisher connected to %v", cfg.KafkaBrokers)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, db, rdb, publisher)

	log.Printf("🚀 Server running on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
