package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierInvoice records an inbound stock delivery. Total is the sum of
// quantity x price across its items.
type SupplierInvoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;index" json:"supplier_id"`
	InvoiceNumber string          `gorm:"uniqueIndex" json:"invoice_number"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	ReceivedBy    string          `json:"received_by"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`

	Items []SupplierInvoiceItem `gorm:"foreignKey:SupplierInvoiceID" json:"items,omitempty"`
}

type SupplierInvoiceItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierInvoiceID uuid.UUID       `gorm:"type:uuid;index" json:"supplier_invoice_id"`
	MedicineID        uuid.UUID       `gorm:"type:uuid;index" json:"medicine_id"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
}
