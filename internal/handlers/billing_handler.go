package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/middleware"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BillingHandler struct {
	service     *billing.Service
	invoiceRepo *repository.InvoiceRepository
}

func NewBillingHandler(service *billing.Service, invoiceRepo *repository.InvoiceRepository) *BillingHandler {
	return &BillingHandler{service: service, invoiceRepo: invoiceRepo}
}

// GenerateInvoice accepts a proposed sale and either commits a consistent
// invoice with decremented stock or rejects the whole operation.
func (h *BillingHandler) GenerateInvoice(c *gin.Context) {
	var req billing.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	billedBy := c.GetString(middleware.ContextUsername)

	invoiceID, err := h.service.GenerateInvoice(&req, billedBy)
	if err != nil {
		var vErr *billing.ValidationError
		var nfErr *billing.MedicineNotFoundError
		var stockErr *billing.InsufficientStockError
		switch {
		case errors.As(err, &vErr), errors.As(err, &nfErr), errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invoice_id": invoiceID})
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	invoice, err := h.invoiceRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected yyyy-mm-dd"})
		return
	}

	invoices, err := h.invoiceRepo.ListBetween(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// parseDateRange turns optional yyyy-mm-dd query params into an inclusive
// start / exclusive end pair.
func parseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return nil, nil, err
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	return start, end, nil
}
