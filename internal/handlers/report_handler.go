package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/services/reporting"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *reporting.Service
}

func NewReportHandler(service *reporting.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Sales(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected yyyy-mm-dd"})
		return
	}

	report, err := h.service.SalesReport(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) SalesExport(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected yyyy-mm-dd"})
		return
	}

	filename := fmt.Sprintf("sales_report_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.service.ExportSalesReport(c.Writer, start, end); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export"})
		return
	}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) Notifications(c *gin.Context) {
	alerts, err := h.service.Alerts(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *ReportHandler) Stock(c *gin.Context) {
	counts, err := h.service.StockReport(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, counts)
}
