package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
	RoleStaff      = "staff"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `gorm:"index" json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
