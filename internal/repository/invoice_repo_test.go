package repository

import (
	"testing"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func addInvoiceWithItems(t *testing.T, db *gorm.DB, quantities ...int) uuid.UUID {
	t.Helper()
	inv := models.Invoice{
		ID:            uuid.New(),
		CustomerName:  "Walk-in",
		PaymentMethod: models.PaymentCash,
		Total:         decimal.RequireFromString("10.00"),
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	for _, qty := range quantities {
		item := models.InvoiceItem{
			ID:         uuid.New(),
			InvoiceID:  inv.ID,
			MedicineID: uuid.New(),
			Quantity:   qty,
			Price:      decimal.RequireFromString("1.00"),
			Total:      decimal.NewFromInt(int64(qty)),
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create item: %v", err)
		}
	}
	return inv.ID
}

func TestItemsForInvoices(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)

	first := addInvoiceWithItems(t, db, 3, 5)
	second := addInvoiceWithItems(t, db, 2)
	addInvoiceWithItems(t, db, 99) // not requested

	items, err := repo.ItemsForInvoices([]uuid.UUID{first, second})
	if err != nil {
		t.Fatalf("ItemsForInvoices: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	if total != 10 {
		t.Errorf("summed quantity = %d, want 10", total)
	}
}

func TestSupplierGetInvoice(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupplierRepository(db)

	sup := models.Supplier{ID: uuid.New(), Name: "Acme Pharma"}
	if err := db.Create(&sup).Error; err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	inv := models.SupplierInvoice{
		ID:            uuid.New(),
		SupplierID:    sup.ID,
		InvoiceNumber: "ACME-1",
		Total:         decimal.RequireFromString("20.00"),
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("create supplier invoice: %v", err)
	}
	for i := 0; i < 2; i++ {
		item := models.SupplierInvoiceItem{
			ID:                uuid.New(),
			SupplierInvoiceID: inv.ID,
			MedicineID:        uuid.New(),
			Quantity:          5,
			Price:             decimal.RequireFromString("2.00"),
			Total:             decimal.RequireFromString("10.00"),
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create supplier item: %v", err)
		}
	}

	got, err := repo.GetInvoice(inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.SupplierID != sup.ID {
		t.Errorf("supplier id = %s, want %s", got.SupplierID, sup.ID)
	}
	if len(got.Items) != 2 {
		t.Errorf("preloaded items = %d, want 2", len(got.Items))
	}

	if _, err := repo.GetInvoice(uuid.New()); err == nil {
		t.Error("unknown invoice id returned no error")
	}
}
