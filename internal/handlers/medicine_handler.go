package handlers

import (
	"net/http"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MedicineHandler struct {
	repo *repository.MedicineRepository
}

func NewMedicineHandler(repo *repository.MedicineRepository) *MedicineHandler {
	return &MedicineHandler{repo: repo}
}

type medicinePayload struct {
	Name        string          `json:"name" binding:"required"`
	BrandName   string          `json:"brand_name"`
	BatchNumber string          `json:"batch_number"`
	Category    string          `json:"category"`
	MfgDate     string          `json:"mfg_date"`
	ExpDate     string          `json:"exp_date" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int             `json:"stock_qty"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
}

func (p *medicinePayload) apply(m *models.Medicine) error {
	if p.MfgDate != "" {
		t, err := time.Parse("2006-01-02", p.MfgDate)
		if err != nil {
			return err
		}
		m.MfgDate = t
	}
	t, err := time.Parse("2006-01-02", p.ExpDate)
	if err != nil {
		return err
	}
	m.ExpDate = t

	m.Name = p.Name
	m.BrandName = p.BrandName
	m.BatchNumber = p.BatchNumber
	m.Category = p.Category
	m.Price = p.Price
	m.StockQty = p.StockQty
	m.SupplierID = p.SupplierID
	return nil
}

func (h *MedicineHandler) Create(c *gin.Context) {
	var payload medicinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.StockQty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock quantity cannot be negative"})
		return
	}

	medicine := models.Medicine{ID: uuid.New()}
	if err := payload.apply(&medicine); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected yyyy-mm-dd"})
		return
	}

	if err := h.repo.Create(&medicine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"medicine": medicine})
}

func (h *MedicineHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine ID"})
		return
	}

	medicine, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

func (h *MedicineHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine ID"})
		return
	}

	medicine, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
		return
	}

	var payload medicinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.StockQty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock quantity cannot be negative"})
		return
	}
	if err := payload.apply(medicine); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected yyyy-mm-dd"})
		return
	}

	if err := h.repo.Update(medicine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

func (h *MedicineHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine ID"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "medicine deleted"})
}

func (h *MedicineHandler) List(c *gin.Context) {
	filter := repository.MedicineFilter{
		Name:      c.Query("name"),
		BrandName: c.Query("brand"),
		Category:  c.Query("category"),
	}
	if s := c.Query("supplier_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
			return
		}
		filter.SupplierID = &id
	}

	medicines, err := h.repo.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

type searchResult struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	BrandName        string          `json:"brand_name"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	ExpDate          string          `json:"exp_date"`
	DaysUntilExpiry  int             `json:"days_until_expiry"`
	ExpirationStatus string          `json:"expiration_status"`
	BatchNumber      string          `json:"batch_number"`
}

// Search powers the billing page typeahead. Medicines expiring within 90
// days sink to the end; the repository applies that ordering before the
// limit so non-expiring matches always take precedence.
func (h *MedicineHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if len(q) < 2 {
		c.JSON(http.StatusOK, gin.H{"results": []searchResult{}})
		return
	}

	today := truncateDay(time.Now())
	cutoff := today.AddDate(0, 0, 90)

	medicines, err := h.repo.Search(q, cutoff, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]searchResult, 0, len(medicines))
	for _, m := range medicines {
		// Calendar-day difference, both sides truncated to date.
		days := int(truncateDay(m.ExpDate).Sub(today).Hours() / 24)

		status := "normal"
		switch {
		case days <= 30:
			status = "critical"
		case days <= 90:
			status = "warning"
		}

		batch := m.BatchNumber
		if batch == "" {
			batch = "N/A"
		}

		results = append(results, searchResult{
			ID:               m.ID,
			Name:             m.Name,
			BrandName:        m.BrandName,
			Price:            m.Price,
			Stock:            m.StockQty,
			ExpDate:          m.ExpDate.Format("2006-01-02"),
			DaysUntilExpiry:  days,
			ExpirationStatus: status,
			BatchNumber:      batch,
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (h *MedicineHandler) LowStock(c *gin.Context) {
	medicines, err := h.repo.LowStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

func (h *MedicineHandler) OutOfStock(c *gin.Context) {
	medicines, err := h.repo.OutOfStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

func (h *MedicineHandler) Expired(c *gin.Context) {
	medicines, err := h.repo.Expired(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

func (h *MedicineHandler) ExpiringSoon(c *gin.Context) {
	today := time.Now()
	medicines, err := h.repo.ExpiringBetween(today, today.AddDate(0, 0, 30))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}
