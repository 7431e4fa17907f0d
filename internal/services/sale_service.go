// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vendastock/vendas-backend/internal/models"
	"github.com/vendastock/vendas-backend/internal/utils"
)

// SaleService is the only path through which product stock changes.
// Every mutation pairs the sale row and the product quantity in one
// transaction, so partial state never becomes visible.
type SaleService struct {
	db *gorm.DB
}

type RegisterSaleRequest struct {
	ProductID     uint   `json:"produto_id" validate:"required"`
	Quantity      int    `json:"quantidade" validate:"required,gt=0"`
	PaymentMethod string `json:"forma_pagamento" validate:"required"`
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

// RegisterSale snapshots the product's current price, decrements stock and
// persists the sale atomically. On insufficient stock nothing is written and
// the error carries the quantity still available.
func (s *SaleService) RegisterSale(req *RegisterSaleRequest) (*models.Sale, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		return nil, fmt.Errorf("%w: forma de pagamento não pode ser vazia", ErrInvalidInput)
	}

	var sale *models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.Quantity < req.Quantity {
			return &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Quantity,
				Requested:   req.Quantity,
			}
		}

		unitPrice := product.Price
		newSale := &models.Sale{
			ProductID:     product.ID,
			Quantity:      req.Quantity,
			UnitPrice:     unitPrice,
			TotalPrice:    utils.RoundMoney(unitPrice * float64(req.Quantity)),
			PaymentMethod: paymentMethod,
			SoldAt:        time.Now().UTC(),
		}

		if err := tx.Model(&product).
			Update("quantidade", product.Quantity-req.Quantity).Error; err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		if err := tx.Create(newSale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		newSale.Product = &product
		sale = newSale
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// ReverseSale deletes a sale and gives its quantity back to the product.
// A sale whose product vanished is still deleted; there is no stock left
// to restore at that point.
func (s *SaleService) ReverseSale(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var product models.Product
		err := tx.First(&product, sale.ProductID).Error
		switch {
		case err == nil:
			if err := tx.Model(&product).
				Update("quantidade", product.Quantity+sale.Quantity).Error; err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Product deletion is blocked while sales exist, so this
			// should not happen; the sale is removed regardless.
		default:
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Delete(&sale).Error; err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		return nil
	})
}

// ListSales pages through sales, newest first, with the owning product
// preloaded so rows can carry its name.
func (s *SaleService) ListSales(params utils.PaginationParams) ([]models.Sale, int64, error) {
	var total int64
	if err := s.db.Model(&models.Sale{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	var sales []models.Sale
	if err := utils.ApplyPagination(s.db.Model(&models.Sale{}), params).
		Preload("Product").
		Order("data_venda DESC").
		Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	return sales, total, nil
}
