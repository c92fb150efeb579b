package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/config"
	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
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
		&models.Medicine{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewService(
		repository.NewInvoiceRepository(db),
		repository.NewMedicineRepository(db),
		config.GetLogger(),
	)
	return svc, db
}

func addInvoice(t *testing.T, db *gorm.DB, total, discount string, createdAt time.Time) uuid.UUID {
	t.Helper()
	inv := models.Invoice{
		ID:            uuid.New(),
		CustomerName:  "Walk-in",
		PaymentMethod: models.PaymentCash,
		Subtotal:      decimal.RequireFromString(total).Add(decimal.RequireFromString(discount)),
		Discount:      decimal.RequireFromString(discount),
		Total:         decimal.RequireFromString(total),
		BilledBy:      "pharmacist",
		CreatedAt:     createdAt,
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return inv.ID
}

func TestSalesReportAggregates(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()

	addInvoice(t, db, "100.00", "0", now)
	addInvoice(t, db, "50.00", "5.00", now)
	addInvoice(t, db, "999.00", "0", now.AddDate(0, 0, -10)) // outside range

	start := truncateDay(now)
	end := start.AddDate(0, 0, 1)
	report, err := svc.SalesReport(&start, &end)
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}

	if len(report.Invoices) != 2 {
		t.Fatalf("invoices in range = %d, want 2", len(report.Invoices))
	}
	if !report.Summary.TotalSales.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("total sales = %s, want 150.00", report.Summary.TotalSales)
	}
	if !report.Summary.TotalDiscount.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("total discount = %s, want 5.00", report.Summary.TotalDiscount)
	}
	if report.Summary.TotalTransactions != 2 {
		t.Errorf("transactions = %d, want 2", report.Summary.TotalTransactions)
	}
}

func TestExportSalesReportWritesWorkbook(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()
	addInvoice(t, db, "100.00", "0", now)

	var buf bytes.Buffer
	if err := svc.ExportSalesReport(&buf, nil, nil); err != nil {
		t.Fatalf("ExportSalesReport: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("exported bytes are not a valid workbook: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "Invoice ID" {
		t.Errorf("A1 = %q, want Invoice ID", header)
	}
	customer, _ := f.GetCellValue("Sheet1", "B2")
	if customer != "Walk-in" {
		t.Errorf("B2 = %q, want Walk-in", customer)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()

	med := models.Medicine{
		ID:       uuid.New(),
		Name:     "Paracetamol",
		Category: models.CategoryTablet,
		ExpDate:  now.AddDate(1, 0, 0),
		Price:    decimal.RequireFromString("10.50"),
		StockQty: 100,
	}
	if err := db.Create(&med).Error; err != nil {
		t.Fatalf("create medicine: %v", err)
	}

	invID := addInvoice(t, db, "315.00", "0", now)
	item := models.InvoiceItem{
		ID:         uuid.New(),
		InvoiceID:  invID,
		MedicineID: med.ID,
		Quantity:   30,
		Price:      decimal.RequireFromString("10.50"),
		Total:      decimal.RequireFromString("315.00"),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	addInvoice(t, db, "40.00", "0", now.AddDate(0, 0, -40)) // last month only

	stats, err := svc.Dashboard(now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if stats.TotalMedicines != 1 {
		t.Errorf("total medicines = %d, want 1", stats.TotalMedicines)
	}
	if !stats.TodaySales.Equal(decimal.RequireFromString("315.00")) {
		t.Errorf("today sales = %s, want 315.00", stats.TodaySales)
	}
	if stats.TodayTransactions != 1 {
		t.Errorf("today transactions = %d, want 1", stats.TodayTransactions)
	}
	if len(stats.TopMedicines) != 1 || stats.TopMedicines[0].Name != "Paracetamol" {
		t.Errorf("top medicines = %+v, want Paracetamol", stats.TopMedicines)
	}
	if len(stats.SalesTrend) != 7 {
		t.Errorf("sales trend days = %d, want 7", len(stats.SalesTrend))
	}
	if !stats.SalesTrend[6].Amount.Equal(decimal.RequireFromString("315.00")) {
		t.Errorf("trend today = %s, want 315.00", stats.SalesTrend[6].Amount)
	}
}

func TestAlertsGrouping(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()

	meds := []models.Medicine{
		{ID: uuid.New(), Name: "Stale", ExpDate: now.AddDate(0, 0, -1), StockQty: 5},
		{ID: uuid.New(), Name: "Soon", ExpDate: now.AddDate(0, 0, 45), StockQty: 50},
		{ID: uuid.New(), Name: "Low", ExpDate: now.AddDate(1, 0, 0), StockQty: 2},
		{ID: uuid.New(), Name: "Gone", ExpDate: now.AddDate(1, 0, 0), StockQty: 0},
	}
	for i := range meds {
		meds[i].Price = decimal.RequireFromString("1.00")
		if err := db.Create(&meds[i]).Error; err != nil {
			t.Fatalf("create medicine: %v", err)
		}
	}

	alerts, err := svc.Alerts(now)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts.Expired) != 1 || alerts.Expired[0].Name != "Stale" {
		t.Errorf("expired = %d, want Stale only", len(alerts.Expired))
	}
	if len(alerts.ExpiringSoon) != 1 || alerts.ExpiringSoon[0].Name != "Soon" {
		t.Errorf("expiring soon = %d, want Soon only", len(alerts.ExpiringSoon))
	}
	if len(alerts.LowStock) != 2 {
		// Stale has 5 in stock and counts as low too.
		t.Errorf("low stock = %d, want 2", len(alerts.LowStock))
	}
	if len(alerts.OutOfStock) != 1 || alerts.OutOfStock[0].Name != "Gone" {
		t.Errorf("out of stock = %d, want Gone only", len(alerts.OutOfStock))
	}
	if alerts.TotalAlerts != 5 {
		t.Errorf("total alerts = %d, want 5", alerts.TotalAlerts)
	}
}
