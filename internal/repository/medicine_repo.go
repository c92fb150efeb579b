package repository

import (
	"strings"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LowStockThreshold mirrors the reporting cutoff: 0 < stock_qty <= 10 is low.
const LowStockThreshold = 10

type MedicineRepository struct {
	db *gorm.DB
}

func NewMedicineRepository(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// Expose DB if needed
func (r *MedicineRepository) DB() *gorm.DB {
	return r.db
}

func (r *MedicineRepository) Create(m *models.Medicine) error {
	return r.db.Create(m).Error
}

func (r *MedicineRepository) GetByID(id uuid.UUID) (*models.Medicine, error) {
	var m models.Medicine
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicineRepository) Update(m *models.Medicine) error {
	return r.db.Save(m).Error
}

func (r *MedicineRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Medicine{}, "id = ?", id).Error
}

// MedicineFilter carries the optional list filters.
type MedicineFilter struct {
	Name       string
	BrandName  string
	Category   string
	SupplierID *uuid.UUID
}

func (r *MedicineRepository) List(f MedicineFilter) ([]models.Medicine, error) {
	var medicines []models.Medicine

	query := r.db.Model(&models.Medicine{}).Order("name ASC")
	if f.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.BrandName != "" {
		query = query.Where("LOWER(brand_name) LIKE ?", "%"+strings.ToLower(f.BrandName)+"%")
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.SupplierID != nil {
		query = query.Where("supplier_id = ?", *f.SupplierID)
	}

	err := query.Find(&medicines).Error
	return medicines, err
}

// Search matches name or brand. Medicines expiring on or before
// warningCutoff sink below the rest; within each group lowest stock and
// soonest expiry come first. The limit is applied to that ordering, so
// non-expiring matches are never crowded out by expiring ones.
func (r *MedicineRepository) Search(q string, warningCutoff time.Time, limit int) ([]models.Medicine, error) {
	var medicines []models.Medicine
	like := "%" + strings.ToLower(q) + "%"
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(brand_name) LIKE ?", like, like).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN exp_date <= ? THEN 1 ELSE 0 END, stock_qty, exp_date, name",
			Vars:               []any{warningCutoff},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&medicines).Error
	return medicines, err
}

func (r *MedicineRepository) LowStock() ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.
		Where("stock_qty > 0 AND stock_qty <= ?", LowStockThreshold).
		Order("stock_qty ASC").
		Find(&medicines).Error
	return medicines, err
}

func (r *MedicineRepository) OutOfStock() ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Where("stock_qty <= 0").Order("name ASC").Find(&medicines).Error
	return medicines, err
}

func (r *MedicineRepository) Expired(today time.Time) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Where("exp_date < ?", today).Order("exp_date ASC").Find(&medicines).Error
	return medicines, err
}

func (r *MedicineRepository) ExpiringBetween(from, until time.Time) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.
		Where("exp_date >= ? AND exp_date <= ?", from, until).
		Order("exp_date ASC").
		Find(&medicines).Error
	return medicines, err
}

// StockCounts are the stock report statistics.
type StockCounts struct {
	Total        int64 `json:"total_medicines"`
	InStock      int64 `json:"in_stock"`
	LowStock     int64 `json:"low_stock"`
	OutOfStock   int64 `json:"out_of_stock"`
	Expired      int64 `json:"expired"`
	ExpiringSoon int64 `json:"expiring_soon"`
}

func (r *MedicineRepository) CountStock(today time.Time, expiringUntil time.Time) (StockCounts, error) {
	var counts StockCounts

	if err := r.db.Model(&models.Medicine{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Medicine{}).Where("stock_qty > ?", LowStockThreshold).Count(&counts.InStock).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Medicine{}).Where("stock_qty > 0 AND stock_qty <= ?", LowStockThreshold).Count(&counts.LowStock).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Medicine{}).Where("stock_qty <= 0").Count(&counts.OutOfStock).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Medicine{}).Where("exp_date < ?", today).Count(&counts.Expired).Error; err != nil {
		return counts, err
	}
	err := r.db.Model(&models.Medicine{}).
		Where("exp_date >= ? AND exp_date <= ?", today, expiringUntil).
		Count(&counts.ExpiringSoon).Error
	return counts, err
}

// DecrementStock applies the atomic conditional decrement inside tx. It
// returns false when the row was not updated, i.e. the medicine no longer
// has qty units available. Concurrent callers serialize on the row update,
// so stock can never be driven negative.
func (r *MedicineRepository) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&models.Medicine{}).
		Where("id = ? AND stock_qty >= ?", id, qty).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementStock adds qty units inside tx (supplier intake).
func (r *MedicineRepository) IncrementStock(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&models.Medicine{}).
		Where("id = ?", id).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty + ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
