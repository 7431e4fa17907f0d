// internal/handlers/report.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendastock/vendas-backend/internal/services"
	"github.com/vendastock/vendas-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportFilters reads the optional filter query parameters every report
// endpoint shares. Malformed values are dropped, never rejected.
func reportFilters(c *gin.Context) services.ReportFilters {
	filters := services.ReportFilters{
		StartDate:     c.Query("data_inicio"),
		EndDate:       c.Query("data_fim"),
		PaymentMethod: c.Query("forma_pagamento"),
	}

	if idStr := c.Query("produto_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			productID := uint(id)
			filters.ProductID = &productID
		}
	}

	return filters
}

// GET /relatorios/estoque
func (h *ReportHandler) StockSummary(c *gin.Context) {
	report, err := h.reportService.StockSummary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.OKResponse(c, report)
}

// GET /relatorios/vendas
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	report, err := h.reportService.SalesSummary(reportFilters(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.OKResponse(c, report)
}

// GET /relatorios/vendas-por-mes
func (h *ReportHandler) SalesByMonth(c *gin.Context) {
	report, err := h.reportService.SalesByMonth(reportFilters(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.OKResponse(c, report)
}

// GET /relatorios/vendas-por-produto
func (h *ReportHandler) SalesByProduct(c *gin.Context) {
	report, err := h.reportService.SalesByProduct(reportFilters(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.OKResponse(c, report)
}

// GET /relatorios/receita-por-forma-pagamento
func (h *ReportHandler) RevenueByPaymentMethod(c *gin.Context) {
	report, err := h.reportService.RevenueByPaymentMethod(reportFilters(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.OKResponse(c, report)
}

// GET /relatorios/consolidado
func (h *ReportHandler) Consolidated(c *gin.Context) {
	report, err := h.reportService.Consolidated(reportFilters(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.OKResponse(c, report)
}
