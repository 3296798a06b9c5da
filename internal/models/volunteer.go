package models

import (
	"time"
)

type Volunteer struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	VolunteerNo *string   `gorm:"type:varchar(100)" json:"volunteer_no"`
	FullName    string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Email       *string   `gorm:"type:varchar(255);index" json:"email"`
	Phone       *string   `gorm:"type:varchar(50)" json:"phone"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Attendances []Attendance `gorm:"foreignKey:VolunteerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name in the DB
func (Volunteer) TableName() string {
	return "volunteers"
}

// IsValid checks the record data
func (v *Volunteer) IsValid() bool {
	return v.FullName != ""
}
