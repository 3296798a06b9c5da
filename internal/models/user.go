package models

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleOrganiser = "organiser"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'organiser'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name in the DB
func (User) TableName() string {
	return "users"
}

// IsAdmin checks whether the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
