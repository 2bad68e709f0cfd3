package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name                string    `json:"name" gorm:"default:''"`
	Email               string    `json:"email" gorm:"unique;not null"`
	AvatarURL           string    `json:"avatar_url" gorm:"default:''"`
	Role                string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	Password            string    `json:"-" gorm:"not null"`
	IsEmailVerified     bool      `json:"is_email_verified" gorm:"default:false"`
	LastLogin           time.Time `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int       `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `json:"is_blocked" gorm:"default:false"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
