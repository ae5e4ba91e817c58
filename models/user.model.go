package models

import (
	"time"

	"gorm.io/gorm"
)

// Role enum values
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR" // course creators
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	ProfileImage string     `gorm:"default:''" json:"profile_image"`
	Name         string     `gorm:"default:''" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Role         Role       `gorm:"type:varchar(10);default:'STUDENT'" json:"role"`
	Password     string     `gorm:"not null" json:"-"`
	LastLogin    *time.Time `json:"last_login"`
	IsDeleted    bool       `gorm:"default:false" json:"isDeleted"`
}
