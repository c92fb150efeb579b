package repository

import (
	"github.com/BhailaBigyan/pharmacy-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Expose DB if needed
func (r *SupplierRepository) DB() *gorm.DB {
	return r.db
}

func (r *SupplierRepository) Create(s *models.Supplier) error {
	return r.db.Create(s).Error
}

func (r *SupplierRepository) GetByID(id uuid.UUID) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) List() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *SupplierRepository) Update(s *models.Supplier) error {
	return r.db.Save(s).Error
}

func (r *SupplierRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Supplier{}, "id = ?", id).Error
}

func (r *SupplierRepository) ListInvoices(supplierID uuid.UUID) ([]models.SupplierInvoice, error) {
	var invoices []models.SupplierInvoice
	err := r.db.
		Preload("Items").
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *SupplierRepository) GetInvoice(id uuid.UUID) (*models.SupplierInvoice, error) {
	var invoice models.SupplierInvoice
	if err := r.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}
