package reporting

import (
	"fmt"
	"io"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Service struct {
	invoiceRepo  *repository.InvoiceRepository
	medicineRepo *repository.MedicineRepository
	logger       *logrus.Logger
}

func NewService(
	invoiceRepo *repository.InvoiceRepository,
	medicineRepo *repository.MedicineRepository,
	logger *logrus.Logger,
) *Service {
	return &Service{
		invoiceRepo:  invoiceRepo,
		medicineRepo: medicineRepo,
		logger:       logger,
	}
}

// SalesReport is the date-ranged sales listing with its aggregates.
type SalesReport struct {
	Invoices []models.Invoice        `json:"invoices"`
	Summary  repository.SalesSummary `json:"summary"`
}

func (s *Service) SalesReport(start, end *time.Time) (*SalesReport, error) {
	invoices, err := s.invoiceRepo.ListBetween(start, end)
	if err != nil {
		return nil, err
	}
	summary, err := s.invoiceRepo.Summarize(start, end)
	if err != nil {
		return nil, err
	}
	return &SalesReport{Invoices: invoices, Summary: summary}, nil
}

// ExportSalesReport writes the date-ranged report as an XLSX workbook.
func (s *Service) ExportSalesReport(w io.Writer, start, end *time.Time) error {
	report, err := s.SalesReport(start, end)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"Invoice ID", "Customer", "Phone", "Payment", "Subtotal", "Discount", "Total", "Billed By", "Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, inv := range report.Invoices {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), inv.ID.String())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), inv.CustomerName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), inv.PhoneNumber)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), inv.PaymentMethod)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), inv.Subtotal.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), inv.Discount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), inv.Total.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), inv.BilledBy)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), inv.CreatedAt.Format("2006-01-02 15:04"))
	}

	summaryRow := len(report.Invoices) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total Sales")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), report.Summary.TotalSales.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Total Discount")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), report.Summary.TotalDiscount.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+2), "Transactions")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+2), report.Summary.TotalTransactions)

	return f.Write(w)
}

// DashboardStats mirrors the pharmacist dashboard aggregates.
type DashboardStats struct {
	TotalMedicines    int64                    `json:"total_medicines"`
	OutOfStock        int64                    `json:"out_of_stock"`
	ExpiredMedicines  int64                    `json:"expired_medicines"`
	TodaySales        decimal.Decimal          `json:"today_sales"`
	TodayTransactions int64                    `json:"today_transactions"`
	MonthSales        decimal.Decimal          `json:"month_sales"`
	MonthTransactions int64                    `json:"month_transactions"`
	LastMonthSales    decimal.Decimal          `json:"last_month_sales"`
	TopMedicines      []repository.TopMedicine `json:"top_medicines"`
	RecentInvoices    []models.Invoice         `json:"recent_invoices"`
	SalesTrend        []DailySales             `json:"sales_trend"`
}

type DailySales struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Service) Dashboard(now time.Time) (*DashboardStats, error) {
	today := truncateDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	thisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	counts, err := s.medicineRepo.CountStock(today, today.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	todaySum, err := s.invoiceRepo.Summarize(&today, &tomorrow)
	if err != nil {
		return nil, err
	}
	monthSum, err := s.invoiceRepo.Summarize(&thisMonth, &tomorrow)
	if err != nil {
		return nil, err
	}
	lastMonthSum, err := s.invoiceRepo.Summarize(&lastMonth, &thisMonth)
	if err != nil {
		return nil, err
	}

	top, err := s.invoiceRepo.TopMedicines(5)
	if err != nil {
		return nil, err
	}
	recent, err := s.invoiceRepo.Recent(5)
	if err != nil {
		return nil, err
	}

	trend := make([]DailySales, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)
		sum, err := s.invoiceRepo.Summarize(&day, &next)
		if err != nil {
			return nil, err
		}
		trend = append(trend, DailySales{
			Date:   day.Format("01/02"),
			Amount: sum.TotalSales,
		})
	}

	return &DashboardStats{
		TotalMedicines:    counts.Total,
		OutOfStock:        counts.OutOfStock,
		ExpiredMedicines:  counts.Expired,
		TodaySales:        todaySum.TotalSales,
		TodayTransactions: todaySum.TotalTransactions,
		MonthSales:        monthSum.TotalSales,
		MonthTransactions: monthSum.TotalTransactions,
		LastMonthSales:    lastMonthSum.TotalSales,
		TopMedicines:      top,
		RecentInvoices:    recent,
		SalesTrend:        trend,
	}, nil
}

// InventoryAlerts groups the notification lists: expired, expiring within
// 90 days, low stock and out of stock.
type InventoryAlerts struct {
	Expired      []models.Medicine `json:"expired"`
	ExpiringSoon []models.Medicine `json:"expiring_soon"`
	LowStock     []models.Medicine `json:"low_stock"`
	OutOfStock   []models.Medicine `json:"out_of_stock"`
	TotalAlerts  int               `json:"total_alerts"`
}

func (s *Service) Alerts(now time.Time) (*InventoryAlerts, error) {
	today := truncateDay(now)

	expired, err := s.medicineRepo.Expired(today)
	if err != nil {
		return nil, err
	}
	expiring, err := s.medicineRepo.ExpiringBetween(today, today.AddDate(0, 0, 90))
	if err != nil {
		return nil, err
	}
	low, err := s.medicineRepo.LowStock()
	if err != nil {
		return nil, err
	}
	out, err := s.medicineRepo.OutOfStock()
	if err != nil {
		return nil, err
	}

	return &InventoryAlerts{
		Expired:      expired,
		ExpiringSoon: expiring,
		LowStock:     low,
		OutOfStock:   out,
		TotalAlerts:  len(expired) + len(expiring) + len(low) + len(out),
	}, nil
}

func (s *Service) StockReport(now time.Time) (repository.StockCounts, error) {
	today := truncateDay(now)
	return s.medicineRepo.CountStock(today, today.AddDate(0, 0, 30))
}

// LogAlertCounts is the daily scheduler entry point.
func (s *Service) LogAlertCounts(now time.Time) {
	alerts, err := s.Alerts(now)
	if err != nil {
		s.logger.WithField("module", "reporting").Error("inventory alert sweep failed: ", err)
		return
	}
	s.logger.WithFields(logrus.Fields{
		"module":        "reporting",
		"expired":       len(alerts.Expired),
		"expiring_soon": len(alerts.ExpiringSoon),
		"low_stock":     len(alerts.LowStock),
		"out_of_stock":  len(alerts.OutOfStock),
	}).Info("daily inventory alert sweep")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
