package handlers

import (
	"errors"
	"net/http"

	"github.com/BhailaBigyan/pharmacy-app/internal/middleware"
	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/billing"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/intake"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	repo    *repository.SupplierRepository
	service *intake.Service
}

func NewSupplierHandler(repo *repository.SupplierRepository, service *intake.Service) *SupplierHandler {
	return &SupplierHandler{repo: repo, service: service}
}

type supplierPayload struct {
	Name      string `json:"name" binding:"required"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	PanNumber string `json:"pan_number"`
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var payload supplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	supplier := models.Supplier{
		ID:        uuid.New(),
		Name:      payload.Name,
		Contact:   payload.Contact,
		Email:     payload.Email,
		Address:   payload.Address,
		PanNumber: payload.PanNumber,
	}
	if err := h.repo.Create(&supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supplier": supplier})
}

func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	supplier, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.repo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	supplier, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
		return
	}

	var payload supplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	supplier.Name = payload.Name
	supplier.Contact = payload.Contact
	supplier.Email = payload.Email
	supplier.Address = payload.Address
	supplier.PanNumber = payload.PanNumber

	if err := h.repo.Update(supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supplier deleted"})
}

// CreateIntake commits a supplier delivery, incrementing stock atomically.
func (h *SupplierHandler) CreateIntake(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	var req intake.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	receivedBy := c.GetString(middleware.ContextUsername)

	invoiceID, err := h.service.CreateInvoice(id, &req, receivedBy)
	if err != nil {
		var vErr *billing.ValidationError
		var nfErr *billing.MedicineNotFoundError
		switch {
		case errors.As(err, &vErr), errors.As(err, &nfErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supplier_invoice_id": invoiceID})
}

// GetIntake returns one supplier invoice with its items. The invoice must
// belong to the supplier in the path.
func (h *SupplierHandler) GetIntake(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}
	invoiceID, err := uuid.Parse(c.Param("invoiceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	invoice, err := h.repo.GetInvoice(invoiceID)
	if err != nil || invoice.SupplierID != supplierID {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *SupplierHandler) ListIntakes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	invoices, err := h.repo.ListInvoices(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}
