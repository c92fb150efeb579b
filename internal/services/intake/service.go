package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/config"
	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/billing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ItemRequest either references an existing medicine by id or describes a
// brand-new one inline.
type ItemRequest struct {
	MedicineID *uuid.UUID      `json:"medicine_id"`
	Qty        int             `json:"qty"`
	Price      decimal.Decimal `json:"price"`

	// New-medicine fields, used when MedicineID is absent.
	Name        string     `json:"name"`
	BrandName   string     `json:"brand_name"`
	BatchNumber string     `json:"batch_number"`
	Category    string     `json:"category"`
	MfgDate     *time.Time `json:"mfg_date"`
	ExpDate     *time.Time `json:"exp_date"`
}

// InvoiceRequest is a supplier delivery: the inbound counterpart of a sale.
type InvoiceRequest struct {
	InvoiceNumber string        `json:"invoice_number"`
	Items         []ItemRequest `json:"items"`
}

type Service struct {
	supplierRepo *repository.SupplierRepository
	medicineRepo *repository.MedicineRepository
	db           *gorm.DB
	logger       *logrus.Logger
}

func NewService(
	supplierRepo *repository.SupplierRepository,
	medicineRepo *repository.MedicineRepository,
	logger *logrus.Logger,
) *Service {
	return &Service{
		supplierRepo: supplierRepo,
		medicineRepo: medicineRepo,
		db:           supplierRepo.DB(),
		logger:       logger,
	}
}

func validate(req *InvoiceRequest) error {
	if len(req.Items) == 0 {
		return &billing.ValidationError{Message: "At least one item is required"}
	}
	for _, item := range req.Items {
		if item.Qty <= 0 {
			return &billing.ValidationError{Message: "Item quantity must be a positive integer"}
		}
		if item.Price.IsNegative() {
			return &billing.ValidationError{Message: "Item price cannot be negative"}
		}
		if item.MedicineID == nil && item.Name == "" {
			return &billing.ValidationError{Message: "Item needs a medicine_id or a new medicine name"}
		}
	}
	return nil
}

// CreateInvoice commits a supplier delivery atomically: every referenced
// medicine's stock is incremented (or the medicine created) together with
// the invoice and its items, or nothing is applied. The invoice total is
// the sum of quantity x price across items, recorded after all items
// commit.
func (s *Service) CreateInvoice(supplierID uuid.UUID, req *InvoiceRequest, receivedBy string) (uuid.UUID, error) {
	if err := validate(req); err != nil {
		return uuid.Nil, err
	}

	supplier, err := s.supplierRepo.GetByID(supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, &billing.ValidationError{Message: "Supplier not found"}
		}
		return uuid.Nil, err
	}

	invoiceNumber := req.InvoiceNumber
	if invoiceNumber == "" {
		// InvoiceNumber carries a unique index; the uuid suffix keeps two
		// deliveries received in the same second from colliding.
		invoiceNumber = fmt.Sprintf("SI-%d-%s", time.Now().Unix(), uuid.NewString()[:8])
	}

	invoiceID := uuid.New()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		invoice := models.SupplierInvoice{
			ID:            invoiceID,
			SupplierID:    supplier.ID,
			InvoiceNumber: invoiceNumber,
			Total:         decimal.Zero,
			ReceivedBy:    receivedBy,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range req.Items {
			med, err := s.applyItem(tx, supplier.ID, item)
			if err != nil {
				return err
			}

			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
			total = total.Add(lineTotal)

			invoiceItem := models.SupplierInvoiceItem{
				ID:                uuid.New(),
				SupplierInvoiceID: invoice.ID,
				MedicineID:        med.ID,
				Quantity:          item.Qty,
				Price:             item.Price,
				Total:             lineTotal,
			}
			if err := tx.Create(&invoiceItem).Error; err != nil {
				return err
			}

			details, err := json.Marshal(map[string]any{
				"medicine_name":  med.Name,
				"unit_price":     item.Price,
				"invoice_number": invoiceNumber,
			})
			if err != nil {
				return err
			}
			movement := models.StockMovement{
				ID:          uuid.New(),
				MedicineID:  med.ID,
				Direction:   models.MovementIn,
				Quantity:    item.Qty,
				ReferenceID: invoice.ID,
				PerformedBy: receivedBy,
				Details:     details,
				CreatedAt:   time.Now(),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.SupplierInvoice{}).
			Where("id = ?", invoice.ID).
			Update("total", total).Error
	})
	if err != nil {
		var vErr *billing.ValidationError
		var nfErr *billing.MedicineNotFoundError
		if !errors.As(err, &vErr) && !errors.As(err, &nfErr) {
			config.LogError(s.logger, "intake", "CreateInvoice", "transaction failed", invoiceNumber, err)
		}
		return uuid.Nil, err
	}

	return invoiceID, nil
}

// applyItem increments stock for an existing medicine, refreshing its price
// and batch from the delivery, or creates a new medicine with the supplied
// stock as initial quantity.
func (s *Service) applyItem(tx *gorm.DB, supplierID uuid.UUID, item ItemRequest) (*models.Medicine, error) {
	if item.MedicineID != nil {
		var med models.Medicine
		if err := tx.First(&med, "id = ?", *item.MedicineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &billing.MedicineNotFoundError{MedicineID: item.MedicineID.String()}
			}
			return nil, err
		}

		if _, err := s.medicineRepo.IncrementStock(tx, med.ID, item.Qty); err != nil {
			return nil, err
		}

		updates := map[string]any{"price": item.Price}
		if item.BatchNumber != "" {
			updates["batch_number"] = item.BatchNumber
		}
		if err := tx.Model(&models.Medicine{}).Where("id = ?", med.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &med, nil
	}

	category := item.Category
	if category == "" {
		category = models.CategoryOther
	}
	med := models.Medicine{
		ID:          uuid.New(),
		Name:        item.Name,
		BrandName:   item.BrandName,
		BatchNumber: item.BatchNumber,
		Category:    category,
		Price:       item.Price,
		StockQty:    item.Qty,
		SupplierID:  &supplierID,
	}
	if item.MfgDate != nil {
		med.MfgDate = *item.MfgDate
	}
	if item.ExpDate != nil {
		med.ExpDate = *item.ExpDate
	}
	if err := tx.Create(&med).Error; err != nil {
		return nil, err
	}
	return &med, nil
}
