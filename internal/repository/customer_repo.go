package repository

import (
	"errors"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreate resolves the customer keyed by phone number, falling back to
// name when no phone is given. Runs on the caller's transaction so the
// uniqueness of phone numbers holds across concurrent invoices.
func (r *CustomerRepository) GetOrCreate(tx *gorm.DB, name, phone string) (*models.Customer, error) {
	var c models.Customer

	query := tx.Model(&models.Customer{})
	if phone != "" {
		query = query.Where("phone_number = ?", phone)
	} else {
		query = query.Where("phone_number IS NULL AND name = ?", name)
	}

	err := query.First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = models.Customer{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if phone != "" {
		c.PhoneNumber = &phone
	}
	if err := tx.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
