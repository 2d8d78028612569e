package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendly/config"
	"agendly/cron"
	appointmentRepo "agendly/database/repository/appointment"
	assignmentRepo "agendly/database/repository/assignment"
	professionalRepo "agendly/database/repository/professional"
	serviceRepo "agendly/database/repository/service"
	templateRepo "agendly/database/repository/template"
	timeoffRepo "agendly/database/repository/timeoff"

	"agendly/database"
	"agendly/handlers"
	"agendly/middleware"
	"agendly/routes"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration and initialize the logger.
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize backing stores.
	database.InitDB()
	utils.InitCache()

	// Assemble the scheduling engine.
	appts := appointmentRepo.NewMongoAppointmentRepo()
	slotCache := scheduling.NewSlotCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.SlotCacheTTLSeconds)*time.Second,
	)
	engine := &scheduling.DefaultEngine{
		Professionals: professionalRepo.NewMongoProfessionalRepo(),
		Services:      serviceRepo.NewMongoServiceRepo(),
		Templates:     templateRepo.NewMongoTemplateRepo(),
		Assignments:   assignmentRepo.NewMongoAssignmentRepo(),
		TimeOff:       timeoffRepo.NewMongoTimeOffRepo(),
		Appointments:  appts,
		Cache:         slotCache,
	}

	// Set up the router with global middleware.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlers.NewSchedulingHandler(engine))

	// Background sweep for stale pending appointments.
	cron.InitExpiryWorker(appts, slotCache)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
