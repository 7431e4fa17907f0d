// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendastock/vendas-backend/internal/services"
	"github.com/vendastock/vendas-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /produtos
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListProducts(services.ProductSearchParams{
		PaginationParams: params,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.OKResponse(c, gin.H{
		"produtos":     products,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
		"total_items":  result.TotalItems,
	})
}

// POST /produtos
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "dados inválidos para o produto", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// GET /produtos/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.OKResponse(c, product)
}

// PUT /produtos/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "nenhum dado fornecido para atualização", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.OKResponse(c, product)
}

// DELETE /produtos/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "id inválido", nil)
		return 0, false
	}
	return uint(id), true
}
