package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"volunteer-hub/internal/config"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/repository"
	"volunteer-hub/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// SQLite needs the pragma for FK cascades to fire
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	volunteerRepo, err := repository.NewGormVolunteerRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create volunteer repository")
	}

	eventRepo, err := repository.NewGormEventRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create event repository")
	}

	shiftRepo, err := repository.NewGormShiftRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create shift repository")
	}

	attendanceRepo, err := repository.NewGormAttendanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance repository")
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	authService := service.NewAuthService(userRepo, cfg)
	volunteerService := service.NewVolunteerService(volunteerRepo)
	eventService := service.NewEventService(eventRepo, shiftRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, shiftRepo, volunteerRepo)
	importService := service.NewImportService(db)
	analyticsService := service.NewAnalyticsService(attendanceRepo, shiftRepo, eventRepo, volunteerRepo)

	if err := authService.BootstrapAdmin(); err != nil {
		logrus.Infof("Warning: Failed to bootstrap admin: %v", err)
	}

	h := handler.NewHandler(
		authService,
		volunteerService,
		eventService,
		attendanceService,
		importService,
		analyticsService,
	)

	auth := middleware.NewAuthenticator(cfg.JWTSecret)

	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/api/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	// Protected routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/auth/me", h.Me).Methods("GET")

	// Volunteer CRUD
	api.HandleFunc("/volunteers", h.CreateVolunteer).Methods("POST")
	api.HandleFunc("/volunteers", h.ListVolunteers).Methods("GET")
	api.HandleFunc("/volunteers/{id}", h.GetVolunteer).Methods("GET")
	api.HandleFunc("/volunteers/{id}", h.PatchVolunteer).Methods("PATCH")
	api.HandleFunc("/volunteers/{id}", h.DeleteVolunteer).Methods("DELETE")
	api.HandleFunc("/volunteers/{id}/hours", h.VolunteerHours).Methods("GET")

	// Event and shift CRUD
	api.HandleFunc("/events", h.CreateEvent).Methods("POST")
	api.HandleFunc("/events", h.ListEvents).Methods("GET")
	api.HandleFunc("/events/{id}", h.GetEvent).Methods("GET")
	api.HandleFunc("/events/{id}", h.PatchEvent).Methods("PATCH")
	api.HandleFunc("/events/{id}", h.DeleteEvent).Methods("DELETE")
	api.HandleFunc("/events/{id}/shifts", h.CreateShift).Methods("POST")
	api.HandleFunc("/events/{id}/shifts", h.ListEventShifts).Methods("GET")
	api.HandleFunc("/shifts/{id}", h.GetShift).Methods("GET")
	api.HandleFunc("/shifts/{id}", h.PatchShift).Methods("PATCH")
	api.HandleFunc("/shifts/{id}", h.DeleteShift).Methods("DELETE")

	// Attendance lifecycle
	api.HandleFunc("/shifts/{id}/check-in", h.CheckIn).Methods("POST")
	api.HandleFunc("/shifts/{id}/check-out", h.CheckOut).Methods("POST")

	// Analytics
	api.HandleFunc("/analytics/leaderboard", h.Leaderboard).Methods("GET")
	api.HandleFunc("/analytics/awards", h.Awards).Methods("GET")
	api.HandleFunc("/analytics/events/{id}/coverage", h.EventCoverage).Methods("GET")
	api.HandleFunc("/analytics/volunteers/{id}/reliability", h.VolunteerReliability).Methods("GET")

	// Bulk import (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly)
	admin.HandleFunc("/import", h.AdminImport).Methods("POST")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsHandler.Handler(router),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Server failed:", err)
		}
	}()

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Infof("Error during shutdown: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
