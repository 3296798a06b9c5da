package service

import (
	"io"
	"testing"
	"time"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	logrus.SetOutput(io.Discard)
}

type testEnv struct {
	db             *gorm.DB
	volunteerRepo  *repository.GormVolunteerRepository
	eventRepo      *repository.GormEventRepository
	shiftRepo      *repository.GormShiftRepository
	attendanceRepo *repository.GormAttendanceRepository
	userRepo       *repository.GormUserRepository
}

// newTestEnv opens a private in-memory database with the full schema
// migrated and FK cascades active.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	volunteerRepo, err := repository.NewGormVolunteerRepository(db)
	require.NoError(t, err)
	eventRepo, err := repository.NewGormEventRepository(db)
	require.NoError(t, err)
	shiftRepo, err := repository.NewGormShiftRepository(db)
	require.NoError(t, err)
	attendanceRepo, err := repository.NewGormAttendanceRepository(db)
	require.NoError(t, err)
	userRepo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)

	return &testEnv{
		db:             db,
		volunteerRepo:  volunteerRepo,
		eventRepo:      eventRepo,
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

func (e *testEnv) seedVolunteer(t *testing.T, fullName string) *models.Volunteer {
	t.Helper()
	volunteer := &models.Volunteer{FullName: fullName}
	require.NoError(t, e.volunteerRepo.Create(volunteer))
	return volunteer
}

func (e *testEnv) seedEvent(t *testing.T, title string, date time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:         title,
		EventCategory: "community",
		EventDate:     date,
		Location:      "Town Hall",
	}
	require.NoError(t, e.eventRepo.Create(event))
	return event
}

func (e *testEnv) seedShift(t *testing.T, eventID uint, start time.Time, required int) *models.Shift {
	t.Helper()
	shift := &models.Shift{
		EventID:            eventID,
		Title:              "Morning shift",
		StartTime:          start,
		EndTime:            start.Add(4 * time.Hour),
		RequiredVolunteers: required,
	}
	require.NoError(t, e.shiftRepo.Create(shift))
	return shift
}

func timePtr(t time.Time) *time.Time {
	return &t
}
