package repository

import (
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListBetween returns invoices newest first, optionally limited to the
// inclusive [start, end) date range.
func (r *InvoiceRepository) ListBetween(start, end *time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice

	query := r.db.Order("created_at DESC")
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at < ?", *end)
	}

	err := query.Find(&invoices).Error
	return invoices, err
}

// ListByCustomer returns the bare invoice rows; callers needing line items
// fetch them in one go with ItemsForInvoices.
func (r *InvoiceRepository) ListByCustomer(customerID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// SalesSummary aggregates a date range for the sales report.
type SalesSummary struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	TotalTransactions int64           `json:"total_transactions"`
}

func (r *InvoiceRepository) Summarize(start, end *time.Time) (SalesSummary, error) {
	var row struct {
		Total    decimal.Decimal
		Discount decimal.Decimal
		Count    int64
	}

	query := r.db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total),0) as total, COALESCE(SUM(discount),0) as discount, COUNT(*) as count")
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at < ?", *end)
	}

	if err := query.Scan(&row).Error; err != nil {
		return SalesSummary{}, err
	}
	return SalesSummary{
		TotalSales:        row.Total,
		TotalDiscount:     row.Discount,
		TotalTransactions: row.Count,
	}, nil
}

// TopMedicine is one row of the best-sellers aggregate.
type TopMedicine struct {
	MedicineID   uuid.UUID       `json:"medicine_id"`
	Name         string          `json:"name"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

func (r *InvoiceRepository) TopMedicines(limit int) ([]TopMedicine, error) {
	var rows []TopMedicine
	err := r.db.Model(&models.InvoiceItem{}).
		Select("invoice_items.medicine_id, medicines.name, SUM(invoice_items.quantity) as total_sold, COALESCE(SUM(invoice_items.total),0) as total_revenue").
		Joins("JOIN medicines ON medicines.id = invoice_items.medicine_id").
		Group("invoice_items.medicine_id, medicines.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *InvoiceRepository) Recent(limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Order("created_at DESC").Limit(limit).Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) ItemsForInvoices(ids []uuid.UUID) ([]models.InvoiceItem, error) {
	var items []models.InvoiceItem
	err := r.db.Where("invoice_id IN ?", ids).Find(&items).Error
	return items, err
}
