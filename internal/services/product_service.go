// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vendastock/vendas-backend/internal/models"
	"github.com/vendastock/vendas-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name     string  `json:"nome" validate:"required"`
	Quantity int     `json:"quantidade" validate:"min=0"`
	Price    float64 `json:"preco" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name     string  `json:"nome" validate:"required"`
	Quantity int     `json:"quantidade" validate:"min=0"`
	Price    float64 `json:"preco" validate:"min=0"`
}

type ProductSearchParams struct {
	utils.PaginationParams
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome do produto não pode ser vazio", ErrInvalidInput)
	}

	// Name uniqueness is an exact, case-sensitive match
	var count int64
	if err := s.db.Model(&models.Product{}).Where("nome = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	product := &models.Product{
		Name:     name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uint, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome do produto não pode ser vazio", ErrInvalidInput)
	}

	var updated *models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		// Duplicate check excludes the record being updated
		var count int64
		if err := tx.Model(&models.Product{}).
			Where("nome = ? AND id <> ?", name, id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			return ErrDuplicateName
		}

		product.Name = name
		product.Quantity = req.Quantity
		product.Price = req.Price

		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		updated = &product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteProduct removes a product that has no sales referencing it. The
// dependent-sales check runs inside the same transaction as the delete so
// a sale registered concurrently cannot be orphaned.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var saleCount int64
		if err := tx.Model(&models.Sale{}).
			Where("produto_id = ?", id).
			Count(&saleCount).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if saleCount > 0 {
			return ErrHasDependentSales
		}

		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// ListProducts pages through the catalog, optionally filtering by a
// case-insensitive name substring. Pages are 1-indexed; a page past the
// end yields an empty list, not an error.
func (s *ProductService) ListProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPagination(query, params.PaginationParams).
		Order("nome ASC").
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	return products, total, nil
}
