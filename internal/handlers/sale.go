// internal/handlers/sale.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendastock/vendas-backend/internal/models"
	"github.com/vendastock/vendas-backend/internal/services"
	"github.com/vendastock/vendas-backend/internal/utils"
)

type SaleHandler struct {
	saleService *services.SaleService
}

// SaleResponse is a sale row as the dashboard sees it, with the owning
// product's name resolved.
type SaleResponse struct {
	ID            uint      `json:"id"`
	ProductID     uint      `json:"produto_id"`
	ProductName   string    `json:"produto_nome"`
	Quantity      int       `json:"quantidade"`
	UnitPrice     float64   `json:"preco_unitario"`
	TotalPrice    float64   `json:"valor_total"`
	PaymentMethod string    `json:"forma_pagamento"`
	SoldAt        time.Time `json:"data_venda"`
}

func newSaleResponse(sale models.Sale) SaleResponse {
	return SaleResponse{
		ID:            sale.ID,
		ProductID:     sale.ProductID,
		ProductName:   sale.ProductName(),
		Quantity:      sale.Quantity,
		UnitPrice:     sale.UnitPrice,
		TotalPrice:    sale.TotalPrice,
		PaymentMethod: sale.PaymentMethod,
		SoldAt:        sale.SoldAt,
	}
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// GET /vendas
func (h *SaleHandler) ListSales(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	sales, total, err := h.saleService.ListSales(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, newSaleResponse(sale))
	}

	result := utils.CreatePaginationResult(rows, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.OKResponse(c, gin.H{
		"vendas":       rows,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
		"total_items":  result.TotalItems,
	})
}

// POST /vendas
func (h *SaleHandler) RegisterSale(c *gin.Context) {
	var req services.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "dados inválidos para a venda", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	sale, err := h.saleService.RegisterSale(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, newSaleResponse(*sale))
}

// DELETE /vendas/:id
func (h *SaleHandler) ReverseSale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.saleService.ReverseSale(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
