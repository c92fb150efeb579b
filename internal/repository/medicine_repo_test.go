package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Supplier{},
		&models.Medicine{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.SupplierInvoice{},
		&models.SupplierInvoiceItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func addMedicine(t *testing.T, db *gorm.DB, name string, stock int, expInDays int) uuid.UUID {
	t.Helper()
	med := models.Medicine{
		ID:       uuid.New(),
		Name:     name,
		Category: models.CategoryTablet,
		ExpDate:  time.Now().AddDate(0, 0, expInDays),
		Price:    decimal.RequireFromString("5.00"),
		StockQty: stock,
	}
	if err := db.Create(&med).Error; err != nil {
		t.Fatalf("create medicine: %v", err)
	}
	return med.ID
}

func TestMedicineStockFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewMedicineRepository(db)

	addMedicine(t, db, "Plenty", 50, 365)
	addMedicine(t, db, "Low", 3, 365)
	addMedicine(t, db, "Boundary", LowStockThreshold, 365)
	addMedicine(t, db, "Gone", 0, 365)

	low, err := repo.LowStock()
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("low stock rows = %d, want 2 (Low and Boundary)", len(low))
	}
	if low[0].Name != "Low" {
		t.Errorf("low stock not ordered ascending: first = %q", low[0].Name)
	}

	out, err := repo.OutOfStock()
	if err != nil {
		t.Fatalf("OutOfStock: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Gone" {
		t.Errorf("out of stock = %v, want [Gone]", names(out))
	}
}

func TestMedicineExpiryFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewMedicineRepository(db)
	now := time.Now()

	addMedicine(t, db, "Stale", 10, -5)
	addMedicine(t, db, "Soon", 10, 20)
	addMedicine(t, db, "Later", 10, 200)

	expired, err := repo.Expired(now)
	if err != nil {
		t.Fatalf("Expired: %v", err)
	}
	if len(expired) != 1 || expired[0].Name != "Stale" {
		t.Errorf("expired = %v, want [Stale]", names(expired))
	}

	expiring, err := repo.ExpiringBetween(now, now.AddDate(0, 0, 90))
	if err != nil {
		t.Fatalf("ExpiringBetween: %v", err)
	}
	if len(expiring) != 1 || expiring[0].Name != "Soon" {
		t.Errorf("expiring within 90d = %v, want [Soon]", names(expiring))
	}
}

func TestMedicineCountStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewMedicineRepository(db)
	now := time.Now()

	addMedicine(t, db, "Plenty", 50, 365)
	addMedicine(t, db, "Low", 3, 365)
	addMedicine(t, db, "Gone", 0, 365)
	addMedicine(t, db, "Stale", 10, -5)

	counts, err := repo.CountStock(now, now.AddDate(0, 0, 90))
	if err != nil {
		t.Fatalf("CountStock: %v", err)
	}
	if counts.Total != 4 {
		t.Errorf("total = %d, want 4", counts.Total)
	}
	if counts.InStock != 1 {
		t.Errorf("in stock = %d, want 1", counts.InStock)
	}
	if counts.LowStock != 2 {
		t.Errorf("low stock = %d, want 2", counts.LowStock)
	}
	if counts.OutOfStock != 1 {
		t.Errorf("out of stock = %d, want 1", counts.OutOfStock)
	}
	if counts.Expired != 1 {
		t.Errorf("expired = %d, want 1", counts.Expired)
	}
}

func TestDecrementStockConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewMedicineRepository(db)
	medID := addMedicine(t, db, "Paracetamol", 10, 365)

	ok, err := repo.DecrementStock(db, medID, 7)
	if err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if !ok {
		t.Fatal("decrement within stock refused")
	}

	// 3 left; requesting 4 must refuse and leave the row untouched.
	ok, err = repo.DecrementStock(db, medID, 4)
	if err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if ok {
		t.Fatal("decrement past stock accepted")
	}

	var med models.Medicine
	db.First(&med, "id = ?", medID)
	if med.StockQty != 3 {
		t.Errorf("stock = %d, want 3", med.StockQty)
	}
}

func TestSearchLimitKeepsNonExpiringFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewMedicineRepository(db)
	now := time.Now()
	cutoff := now.AddDate(0, 0, 90)

	// 11 matches: 6 long-dated, 5 expiring within the warning window. The
	// limit of 10 must drop an expiring one, never a long-dated one.
	for i := 0; i < 6; i++ {
		addMedicine(t, db, fmt.Sprintf("Medicine N%d", i), 10*(i+1), 365)
	}
	for i := 0; i < 5; i++ {
		addMedicine(t, db, fmt.Sprintf("Medicine W%d", i), 10*(i+1), 45)
	}

	results, err := repo.Search("medicine", cutoff, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("results = %d, want 10", len(results))
	}

	for i, m := range results[:6] {
		if !m.ExpDate.After(cutoff) {
			t.Errorf("result %d (%s) expires within the warning window, want long-dated first", i, m.Name)
		}
	}
	warning := 0
	for _, m := range results {
		if !m.ExpDate.After(cutoff) {
			warning++
		}
	}
	if warning != 4 {
		t.Errorf("expiring matches returned = %d, want 4", warning)
	}

	// Within each group, lowest stock first.
	if results[0].StockQty != 10 || results[6].StockQty != 10 {
		t.Errorf("group heads have stock %d and %d, want 10 and 10",
			results[0].StockQty, results[6].StockQty)
	}
}

func TestCustomerGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)

	first, err := repo.GetOrCreate(db, "Jane", "+977111")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := repo.GetOrCreate(db, "Jane Doe", "+977111")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if first.ID != second.ID {
		t.Error("same phone created two customer rows")
	}

	// No phone: matched by name among phoneless customers only.
	anon, err := repo.GetOrCreate(db, "Walk-in", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	again, err := repo.GetOrCreate(db, "Walk-in", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if anon.ID != again.ID {
		t.Error("phoneless customer duplicated")
	}
	if anon.ID == first.ID {
		t.Error("phoneless lookup matched a customer with a phone")
	}
}

func names(meds []models.Medicine) []string {
	out := make([]string, len(meds))
	for i, m := range meds {
		out[i] = m.Name
	}
	return out
}
