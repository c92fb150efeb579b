package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Stock movement directions.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StockMovement is an audit row written in the same transaction as every
// stock mutation, referencing the invoice or supplier invoice that caused
// it.
type StockMovement struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MedicineID  uuid.UUID      `gorm:"type:uuid;index" json:"medicine_id"`
	Direction   string         `gorm:"index" json:"direction"`
	Quantity    int            `json:"quantity"`
	ReferenceID uuid.UUID      `gorm:"type:uuid;index" json:"reference_id"`
	PerformedBy string         `json:"performed_by"`
	Details     datatypes.JSON `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}
