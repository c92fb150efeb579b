package handlers

import (
	"net/http"

	"github.com/BhailaBigyan/pharmacy-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerHandler struct {
	customerRepo *repository.CustomerRepository
	invoiceRepo  *repository.InvoiceRepository
}

func NewCustomerHandler(customerRepo *repository.CustomerRepository, invoiceRepo *repository.InvoiceRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo, invoiceRepo: invoiceRepo}
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// Detail returns the customer with purchase history aggregates: total
// spent, order count and item count.
func (h *CustomerHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}

	customer, err := h.customerRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	invoices, err := h.invoiceRepo.ListByCustomer(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalSpent := decimal.Zero
	ids := make([]uuid.UUID, len(invoices))
	for i, inv := range invoices {
		totalSpent = totalSpent.Add(inv.Total)
		ids[i] = inv.ID
	}

	totalItems := 0
	if len(ids) > 0 {
		items, err := h.invoiceRepo.ItemsForInvoices(ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, item := range items {
			totalItems += item.Quantity
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":     customer,
		"invoices":     invoices,
		"total_spent":  totalSpent,
		"total_orders": len(invoices),
		"total_items":  totalItems,
	})
}
