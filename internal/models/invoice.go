package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accepted payment methods.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentEsewa = "esewa"
)

// Invoice is an append-only billing record. Customer linkage is optional
// metadata; the name and phone captured at sale time are denormalized onto
// the row.
type Invoice struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	CustomerName   string           `gorm:"index" json:"customer_name"`
	PhoneNumber    string           `json:"phone_number"`
	PaymentMethod  string           `json:"payment_method"`
	AmountReceived *decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount_received"`
	ReturnAmount   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"return_amount"`
	Subtotal       decimal.Decimal  `gorm:"type:decimal(10,2)" json:"subtotal"`
	Discount       decimal.Decimal  `gorm:"type:decimal(10,2)" json:"discount"`
	Total          decimal.Decimal  `gorm:"type:decimal(10,2)" json:"total"`
	BilledBy       string           `json:"billed_by"`
	CreatedAt      time.Time        `gorm:"index" json:"created_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

type InvoiceItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID  uuid.UUID       `gorm:"type:uuid;index" json:"invoice_id"`
	MedicineID uuid.UUID       `gorm:"type:uuid;index" json:"medicine_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
}
