package models

import (
	"time"
)

type Event struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	EventCategory string    `gorm:"type:varchar(100);not null" json:"event_category"`
	EventDate     time.Time `gorm:"type:date;not null;index" json:"event_date"`
	Location      string    `gorm:"type:varchar(255);not null" json:"location"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Shifts []Shift `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name in the DB
func (Event) TableName() string {
	return "events"
}

// IsValid checks the record data
func (e *Event) IsValid() bool {
	if e.Title == "" || e.EventCategory == "" || e.Location == "" {
		return false
	}
	return !e.EventDate.IsZero()
}
