package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	PanNumber string    `json:"pan_number"`
	CreatedAt time.Time `json:"created_at"`
}
