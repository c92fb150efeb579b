package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine categories as stored in the category column.
const (
	CategoryTablet   = "tablet/capsule"
	CategorySyrup    = "syrup"
	CategoryOintment = "ointment"
	CategoryOther    = "other"
)

type Medicine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"index" json:"name"`
	BrandName   string          `gorm:"index" json:"brand_name"`
	BatchNumber string          `json:"batch_number"`
	Category    string          `json:"category"`
	MfgDate     time.Time       `json:"mfg_date"`
	ExpDate     time.Time       `gorm:"index" json:"exp_date"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	// StockQty must never go negative at a committed state.
	StockQty   int        `gorm:"index" json:"stock_qty"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
