package routes

import (
	"context"
	"net/http"
	"time"

	"agendly/database"
	"agendly/handlers"
	"agendly/middleware"
	"agendly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers the slot and appointment endpoints.
// Everything under /api is tenant scoped and requires authentication.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthOwnerMiddleware())
	{
		api.GET("/slots", h.GetSlotsHandler)

		api.POST("/appointments", h.CreateAppointmentHandler)
		api.GET("/appointments/:id", h.GetAppointmentHandler)
		api.POST("/appointments/:id/cancel", h.CancelAppointmentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint reporting the state
// of the backing stores.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		mongoStatus := "up"
		if err := database.MongoClient.Ping(ctx, nil); err != nil {
			mongoStatus = "down"
			status = http.StatusServiceUnavailable
		}
		redisStatus := "up"
		if err := utils.GetCacheClient().Ping(ctx).Err(); err != nil {
			redisStatus = "down"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{
			"status": overall,
			"mongo":  mongoStatus,
			"redis":  redisStatus,
		})
	})
}

// RegisterRoutes wires up all routes and global middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSchedulingRoutes(r, h)
}
