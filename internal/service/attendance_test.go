package service

import (
	"testing"
	"time"
	"volunteer-hub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMinutesWorked(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		out      time.Time
		expected int
	}{
		{"two hours", base.Add(2 * time.Hour), 120},
		{"zero duration", base, 0},
		{"floors partial minutes", base.Add(90*time.Second + 59*time.Second), 2},
		{"fifty nine seconds floors to zero", base.Add(59 * time.Second), 0},
		{"negative clamps to zero", base.Add(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeMinutesWorked(base, tt.out))
		})
	}
}

func TestCheckInCreatesAttendance(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	attendance, err := svc.CheckIn(shift.ID, volunteer.ID, timePtr(at), "")
	require.NoError(t, err)

	assert.NotZero(t, attendance.ID)
	require.NotNil(t, attendance.CheckedInAt)
	assert.True(t, attendance.CheckedInAt.Equal(at))
	assert.Equal(t, models.StatusPresent, attendance.Status)
	assert.Equal(t, 0, attendance.MinutesWorked)
	assert.Nil(t, attendance.CheckedOutAt)
}

func TestCheckInRejectsSecondCheckIn(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	_, err := svc.CheckIn(shift.ID, volunteer.ID, nil, models.StatusPresent)
	require.NoError(t, err)

	_, err = svc.CheckIn(shift.ID, volunteer.ID, nil, models.StatusPresent)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckInMissingEntities(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	_, err := svc.CheckIn(9999, volunteer.ID, nil, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CheckIn(shift.ID, 9999, nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckOutComputesMinutes(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	checkIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)

	_, err := svc.CheckIn(shift.ID, volunteer.ID, timePtr(checkIn), "")
	require.NoError(t, err)

	attendance, err := svc.CheckOut(shift.ID, volunteer.ID, timePtr(checkOut))
	require.NoError(t, err)

	assert.Equal(t, 120, attendance.MinutesWorked)
	require.NotNil(t, attendance.CheckedOutAt)
	assert.True(t, attendance.CheckedOutAt.Equal(checkOut))
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	_, err := svc.CheckOut(shift.ID, volunteer.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckOutBeforeCheckIn(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	checkIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.CheckIn(shift.ID, volunteer.ID, timePtr(checkIn), "")
	require.NoError(t, err)

	_, err = svc.CheckOut(shift.ID, volunteer.ID, timePtr(checkIn.Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckOutTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	checkIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.CheckIn(shift.ID, volunteer.ID, timePtr(checkIn), "")
	require.NoError(t, err)

	_, err = svc.CheckOut(shift.ID, volunteer.ID, timePtr(checkIn.Add(time.Hour)))
	require.NoError(t, err)

	_, err = svc.CheckOut(shift.ID, volunteer.ID, timePtr(checkIn.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckInReusesImportedCheckoutOnlyRow(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	checkOut := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	imported := &models.Attendance{
		ShiftID:      shift.ID,
		VolunteerID:  volunteer.ID,
		CheckedOutAt: &checkOut,
		Status:       models.StatusPresent,
	}
	require.NoError(t, env.attendanceRepo.Create(imported))

	_, err := svc.CheckIn(shift.ID, volunteer.ID, timePtr(checkOut.Add(time.Hour)), "")
	assert.ErrorIs(t, err, ErrInvalidState)

	attendance, err := svc.CheckIn(shift.ID, volunteer.ID, timePtr(checkOut.Add(-2*time.Hour)), "")
	require.NoError(t, err)
	require.NotNil(t, attendance.CheckedOutAt)
	assert.True(t, attendance.CheckedOutAt.Equal(checkOut))
}

func TestCheckInDefaultsTimestamp(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.attendanceRepo, env.shiftRepo, env.volunteerRepo)

	event := env.seedEvent(t, "Food Drive", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	shift := env.seedShift(t, event.ID, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2)
	volunteer := env.seedVolunteer(t, "Alice Smith")

	before := time.Now()
	attendance, err := svc.CheckIn(shift.ID, volunteer.ID, nil, models.StatusLate)
	require.NoError(t, err)

	require.NotNil(t, attendance.CheckedInAt)
	assert.False(t, attendance.CheckedInAt.Before(before))
	assert.Equal(t, models.StatusLate, attendance.Status)
}
