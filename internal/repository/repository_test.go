package repository

import (
	"io"
	"testing"
	"time"
	"volunteer-hub/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	logrus.SetOutput(io.Discard)
}

type repos struct {
	db         *gorm.DB
	volunteer  *GormVolunteerRepository
	event      *GormEventRepository
	shift      *GormShiftRepository
	attendance *GormAttendanceRepository
}

func newRepos(t *testing.T) *repos {
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

	volunteer, err := NewGormVolunteerRepository(db)
	require.NoError(t, err)
	event, err := NewGormEventRepository(db)
	require.NoError(t, err)
	shift, err := NewGormShiftRepository(db)
	require.NoError(t, err)
	attendance, err := NewGormAttendanceRepository(db)
	require.NoError(t, err)

	return &repos{db: db, volunteer: volunteer, event: event, shift: shift, attendance: attendance}
}

func (r *repos) seedGraph(t *testing.T) (*models.Event, *models.Shift, *models.Volunteer, *models.Attendance) {
	t.Helper()

	event := &models.Event{
		Title:         "Food Drive",
		EventCategory: "community",
		EventDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Location:      "Town Hall",
	}
	require.NoError(t, r.event.Create(event))

	shift := &models.Shift{
		EventID:            event.ID,
		Title:              "Morning shift",
		StartTime:          time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
		RequiredVolunteers: 2,
	}
	require.NoError(t, r.shift.Create(shift))

	volunteer := &models.Volunteer{FullName: "Alice Smith"}
	require.NoError(t, r.volunteer.Create(volunteer))

	checkedIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	attendance := &models.Attendance{
		ShiftID:     shift.ID,
		VolunteerID: volunteer.ID,
		CheckedInAt: &checkedIn,
		Status:      models.StatusPresent,
	}
	require.NoError(t, r.attendance.Create(attendance))

	return event, shift, volunteer, attendance
}

func TestUniquePairConstraint(t *testing.T) {
	r := newRepos(t)
	_, shift, volunteer, _ := r.seedGraph(t)

	duplicate := &models.Attendance{
		ShiftID:     shift.ID,
		VolunteerID: volunteer.ID,
		Status:      models.StatusPresent,
	}
	err := r.attendance.Create(duplicate)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestEventDeleteCascades(t *testing.T) {
	r := newRepos(t)
	event, shift, _, attendance := r.seedGraph(t)

	require.NoError(t, r.event.Delete(event.ID))

	gone, err := r.shift.GetByID(shift.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "shifts follow their event")

	record, err := r.attendance.GetByID(attendance.ID)
	require.NoError(t, err)
	assert.Nil(t, record, "attendance follows its shift")
}

func TestVolunteerDeleteCascades(t *testing.T) {
	r := newRepos(t)
	_, _, volunteer, attendance := r.seedGraph(t)

	require.NoError(t, r.volunteer.Delete(volunteer.ID))

	record, err := r.attendance.GetByID(attendance.ID)
	require.NoError(t, err)
	assert.Nil(t, record, "attendance follows its volunteer")
}

func TestShiftCreateRejectsInvertedWindow(t *testing.T) {
	r := newRepos(t)
	event, _, _, _ := r.seedGraph(t)

	bad := &models.Shift{
		EventID:   event.ID,
		Title:     "Backwards",
		StartTime: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	assert.Error(t, r.shift.Create(bad))
}

func TestVolunteerPatchLeavesUnsetFields(t *testing.T) {
	r := newRepos(t)

	phone := "555-0101"
	volunteer := &models.Volunteer{FullName: "Alice Smith", Phone: &phone}
	require.NoError(t, r.volunteer.Create(volunteer))

	newName := "Alice Smith-Jones"
	patched, err := r.volunteer.Patch(volunteer.ID, VolunteerPatch{FullName: &newName})
	require.NoError(t, err)
	require.NotNil(t, patched)

	assert.Equal(t, "Alice Smith-Jones", patched.FullName)
	require.NotNil(t, patched.Phone)
	assert.Equal(t, "555-0101", *patched.Phone, "fields not in the patch stay untouched")
}

func TestShiftPatchKeepsInvariant(t *testing.T) {
	r := newRepos(t)
	_, shift, _, _ := r.seedGraph(t)

	badEnd := shift.StartTime.Add(-time.Hour)
	_, err := r.shift.Patch(shift.ID, ShiftPatch{EndTime: &badEnd})
	assert.Error(t, err)

	goodEnd := shift.StartTime.Add(6 * time.Hour)
	patched, err := r.shift.Patch(shift.ID, ShiftPatch{EndTime: &goodEnd})
	require.NoError(t, err)
	assert.True(t, patched.EndTime.Equal(goodEnd))
}

func TestEventGetByTitleAndDate(t *testing.T) {
	r := newRepos(t)
	event, _, _, _ := r.seedGraph(t)

	found, err := r.event.GetByTitleAndDate("Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, event.ID, found.ID)

	missing, err := r.event.GetByTitleAndDate("Food Drive", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, missing)
}
