package models

import (
	"time"
)

type Attendance struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	ShiftID       uint       `gorm:"not null;index;uniqueIndex:uq_shift_volunteer" json:"shift_id"`
	VolunteerID   uint       `gorm:"not null;index;uniqueIndex:uq_shift_volunteer" json:"volunteer_id"`
	CheckedInAt   *time.Time `json:"checked_in_at"`
	CheckedOutAt  *time.Time `json:"checked_out_at"`
	MinutesWorked int        `gorm:"not null;default:0" json:"minutes_worked"`
	Status        string     `gorm:"type:varchar(20);not null;default:'present';index" json:"status"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Shift     Shift     `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE" json:"-"`
	Volunteer Volunteer `gorm:"foreignKey:VolunteerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name in the DB
func (Attendance) TableName() string {
	return "attendances"
}

// Attendance statuses
const (
	StatusPresent = "present" // volunteer showed up
	StatusAbsent  = "absent"  // volunteer did not show up
	StatusLate    = "late"    // volunteer showed up late
)

// IsKnownStatus reports whether s is one of the recognized statuses.
func IsKnownStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLate
}

// IsCheckedIn reports whether a check-in has been recorded.
func (a *Attendance) IsCheckedIn() bool {
	return a.CheckedInAt != nil && !a.CheckedInAt.IsZero()
}

// IsCheckedOut reports whether a check-out has been recorded.
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckedOutAt != nil && !a.CheckedOutAt.IsZero()
}

// IsValid checks the record data
func (a *Attendance) IsValid() bool {
	if a.ShiftID == 0 || a.VolunteerID == 0 {
		return false
	}
	if a.MinutesWorked < 0 {
		return false
	}
	if a.IsCheckedIn() && a.IsCheckedOut() && a.CheckedOutAt.Before(*a.CheckedInAt) {
		return false
	}
	return IsKnownStatus(a.Status)
}
