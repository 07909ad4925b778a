package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/stocktrack/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	result, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// TopSelling handles GET /reports/top-selling
func (h *ReportHandler) TopSelling(c *gin.Context) {
	var query reportapp.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.reportService.TopSelling(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SalesByShop handles GET /reports/sales-by-shop
func (h *ReportHandler) SalesByShop(c *gin.Context) {
	var query reportapp.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.reportService.SalesByShop(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PurchaseSummary handles GET /reports/purchases
func (h *ReportHandler) PurchaseSummary(c *gin.Context) {
	var query reportapp.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.reportService.PurchaseSummary(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
