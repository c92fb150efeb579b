package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is looked up or created by phone number at invoice time.
// At most one row exists per distinct phone number.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `gorm:"uniqueIndex" json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}
