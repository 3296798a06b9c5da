package models

import (
	"time"
)

type Shift struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	EventID            uint      `gorm:"not null;index" json:"event_id"`
	Title              string    `gorm:"type:varchar(255);not null" json:"title"`
	StartTime          time.Time `gorm:"not null;index" json:"start_time"`
	EndTime            time.Time `gorm:"not null" json:"end_time"`
	RequiredVolunteers int       `gorm:"not null;default:0" json:"required_volunteers"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Event       Event        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Attendances []Attendance `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name in the DB
func (Shift) TableName() string {
	return "shifts"
}

// IsValid checks the record data: the time window must be well-formed
// and the headcount target non-negative.
func (s *Shift) IsValid() bool {
	if s.EventID == 0 || s.Title == "" {
		return false
	}
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return false
	}
	if !s.StartTime.Before(s.EndTime) {
		return false
	}
	return s.RequiredVolunteers >= 0
}
