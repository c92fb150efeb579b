package billing

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/config"
	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InvoiceItemRequest is one proposed line of a sale.
type InvoiceItemRequest struct {
	ID    uuid.UUID       `json:"id"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// InvoiceRequest is the canonical billing payload. Monetary fields accept
// JSON numbers or strings; amount_received and return_amount arrive as
// currency-formatted text.
type InvoiceRequest struct {
	CustomerName   string               `json:"customer_name"`
	PhoneNumber    string               `json:"phone_number"`
	PaymentMethod  string               `json:"payment_method"`
	Subtotal       *decimal.Decimal     `json:"subtotal"`
	Discount       *decimal.Decimal     `json:"discount"`
	Total          *decimal.Decimal     `json:"total"`
	AmountReceived string               `json:"amount_received"`
	ReturnAmount   string               `json:"return_amount"`
	Items          []InvoiceItemRequest `json:"items"`
}

type Service struct {
	medicineRepo *repository.MedicineRepository
	customerRepo *repository.CustomerRepository
	db           *gorm.DB
	logger       *logrus.Logger
}

func NewService(
	medicineRepo *repository.MedicineRepository,
	customerRepo *repository.CustomerRepository,
	logger *logrus.Logger,
) *Service {
	return &Service{
		medicineRepo: medicineRepo,
		customerRepo: customerRepo,
		db:           medicineRepo.DB(),
		logger:       logger,
	}
}

var paymentMethods = map[string]bool{
	models.PaymentCash:  true,
	models.PaymentCard:  true,
	models.PaymentEsewa: true,
}

// validate fails fast without touching state. The order matches the error
// precedence callers observe: customer, payment method, items, totals,
// discount, quantities.
func validate(req *InvoiceRequest) (decimal.Decimal, error) {
	if req.CustomerName == "" {
		return decimal.Zero, validationErrorf("Customer name is required")
	}
	if req.PaymentMethod == "" {
		return decimal.Zero, validationErrorf("Payment method is required")
	}
	if !paymentMethods[req.PaymentMethod] {
		return decimal.Zero, validationErrorf("Invalid payment method: %s", req.PaymentMethod)
	}
	if len(req.Items) == 0 {
		return decimal.Zero, validationErrorf("At least one item is required")
	}
	if req.Subtotal == nil || req.Total == nil {
		return decimal.Zero, validationErrorf("Subtotal and total are required")
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if discount.IsNegative() {
		return decimal.Zero, validationErrorf("Discount cannot be negative")
	}
	if discount.GreaterThan(*req.Subtotal) {
		return decimal.Zero, validationErrorf("Discount cannot exceed subtotal")
	}

	for _, item := range req.Items {
		if item.Qty <= 0 {
			return decimal.Zero, validationErrorf("Item quantity must be a positive integer")
		}
		if item.Price.IsNegative() {
			return decimal.Zero, validationErrorf("Item price cannot be negative")
		}
	}
	return discount, nil
}

// GenerateInvoice validates the proposed sale and commits the invoice, its
// items and the matching stock decrements in one transaction. A failure at
// any line rolls everything back; no partial effect is ever visible.
func (s *Service) GenerateInvoice(req *InvoiceRequest, billedBy string) (uuid.UUID, error) {
	discount, err := validate(req)
	if err != nil {
		return uuid.Nil, err
	}

	amountReceived := cleanCurrency(req.AmountReceived)
	returnAmount := cleanCurrency(req.ReturnAmount)

	invoiceID := uuid.New()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := s.customerRepo.GetOrCreate(tx, req.CustomerName, req.PhoneNumber)
		if err != nil {
			return err
		}

		invoice := models.Invoice{
			ID:             invoiceID,
			CustomerID:     &customer.ID,
			CustomerName:   req.CustomerName,
			PhoneNumber:    req.PhoneNumber,
			PaymentMethod:  req.PaymentMethod,
			AmountReceived: amountReceived,
			ReturnAmount:   returnAmount,
			Subtotal:       *req.Subtotal,
			Discount:       discount,
			Total:          *req.Total,
			BilledBy:       billedBy,
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			var med models.Medicine
			if err := tx.First(&med, "id = ?", item.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &MedicineNotFoundError{MedicineID: item.ID.String()}
				}
				return err
			}

			ok, err := s.medicineRepo.DecrementStock(tx, item.ID, item.Qty)
			if err != nil {
				return err
			}
			if !ok {
				// The conditional update lost: report the stock the
				// transaction can currently see.
				available := med.StockQty
				var current models.Medicine
				if err := tx.First(&current, "id = ?", item.ID).Error; err == nil {
					available = current.StockQty
				}
				return &InsufficientStockError{
					MedicineName: med.Name,
					Available:    available,
					Requested:    item.Qty,
				}
			}

			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
			invoiceItem := models.InvoiceItem{
				ID:         uuid.New(),
				InvoiceID:  invoice.ID,
				MedicineID: med.ID,
				Quantity:   item.Qty,
				Price:      item.Price,
				Total:      lineTotal,
			}
			if err := tx.Create(&invoiceItem).Error; err != nil {
				return err
			}

			if err := recordMovement(tx, &med, &invoice, item.Qty, item.Price, billedBy); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var vErr *ValidationError
		var nfErr *MedicineNotFoundError
		var stockErr *InsufficientStockError
		if !errors.As(err, &vErr) && !errors.As(err, &nfErr) && !errors.As(err, &stockErr) {
			config.LogError(s.logger, "billing", "GenerateInvoice", "transaction failed", req.CustomerName, err)
		}
		return uuid.Nil, err
	}

	return invoiceID, nil
}

func recordMovement(tx *gorm.DB, med *models.Medicine, invoice *models.Invoice, qty int, price decimal.Decimal, performedBy string) error {
	details, err := json.Marshal(map[string]any{
		"medicine_name":  med.Name,
		"unit_price":     price,
		"payment_method": invoice.PaymentMethod,
	})
	if err != nil {
		return err
	}

	movement := models.StockMovement{
		ID:          uuid.New(),
		MedicineID:  med.ID,
		Direction:   models.MovementOut,
		Quantity:    qty,
		ReferenceID: invoice.ID,
		PerformedBy: performedBy,
		Details:     details,
		CreatedAt:   time.Now(),
	}
	return tx.Create(&movement).Error
}
