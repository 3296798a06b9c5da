package handler

import (
	"net/http"
	"volunteer-hub/internal/service"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	authService       *service.AuthService
	volunteerService  *service.VolunteerService
	eventService      *service.EventService
	attendanceService *service.AttendanceService
	importService     *service.ImportService
	analyticsService  *service.AnalyticsService
	logger            *logrus.Logger
}

func NewHandler(
	authService *service.AuthService,
	volunteerService *service.VolunteerService,
	eventService *service.EventService,
	attendanceService *service.AttendanceService,
	importService *service.ImportService,
	analyticsService *service.AnalyticsService,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		authService:       authService,
		volunteerService:  volunteerService,
		eventService:      eventService,
		attendanceService: attendanceService,
		importService:     importService,
		analyticsService:  analyticsService,
		logger:            logger,
	}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
