// internal/services/product_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendastock/vendas-backend/internal/models"
	"github.com/vendastock/vendas-backend/internal/utils"
)

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	product, err := svc.CreateProduct(&CreateProductRequest{
		Name:     "  Teclado Mecânico  ",
		Quantity: 5,
		Price:    150.00,
	})
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, "Teclado Mecânico", product.Name, "name should be trimmed")
	assert.Equal(t, 5, product.Quantity)
	assert.Equal(t, 150.00, product.Price)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestCreateProductDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	_, err := svc.CreateProduct(&CreateProductRequest{Name: "Mouse Gamer", Quantity: 1, Price: 80})
	require.NoError(t, err)

	_, err = svc.CreateProduct(&CreateProductRequest{Name: "Mouse Gamer", Quantity: 3, Price: 90})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Uniqueness is case-sensitive; a different casing is a new product
	_, err = svc.CreateProduct(&CreateProductRequest{Name: "mouse gamer", Quantity: 3, Price: 90})
	assert.NoError(t, err)
}

func TestCreateProductInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	cases := []struct {
		name string
		req  CreateProductRequest
	}{
		{"empty name", CreateProductRequest{Name: "", Quantity: 1, Price: 1}},
		{"blank name", CreateProductRequest{Name: "   ", Quantity: 1, Price: 1}},
		{"negative quantity", CreateProductRequest{Name: "Cabo HDMI", Quantity: -1, Price: 1}},
		{"negative price", CreateProductRequest{Name: "Cabo HDMI", Quantity: 1, Price: -0.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(&tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count, "no product should have been written")
}

func TestUpdateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	product := mustCreateProduct(t, db, "Monitor", 3, 1200.00)
	mustCreateProduct(t, db, "Webcam", 10, 200.00)

	updated, err := svc.UpdateProduct(product.ID, &UpdateProductRequest{
		Name:     "Monitor Ultra-Wide",
		Quantity: 4,
		Price:    1100.00,
	})
	require.NoError(t, err)
	assert.Equal(t, "Monitor Ultra-Wide", updated.Name)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, 1100.00, updated.Price)

	// Keeping its own name is not a duplicate
	_, err = svc.UpdateProduct(product.ID, &UpdateProductRequest{
		Name:     "Monitor Ultra-Wide",
		Quantity: 4,
		Price:    1100.00,
	})
	assert.NoError(t, err)

	// Taking another product's name is
	_, err = svc.UpdateProduct(product.ID, &UpdateProductRequest{
		Name:     "Webcam",
		Quantity: 4,
		Price:    1100.00,
	})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = svc.UpdateProduct(9999, &UpdateProductRequest{Name: "X", Quantity: 1, Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)
	sales := NewSaleService(db)

	free := mustCreateProduct(t, db, "Sem Vendas", 2, 10.00)
	sold := mustCreateProduct(t, db, "Com Vendas", 5, 20.00)

	_, err := sales.RegisterSale(&RegisterSaleRequest{
		ProductID: sold.ID, Quantity: 1, PaymentMethod: "pix",
	})
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteProduct(free.ID))
	assert.ErrorIs(t, svc.DeleteProduct(free.ID), ErrProductNotFound)

	err = svc.DeleteProduct(sold.ID)
	assert.ErrorIs(t, err, ErrHasDependentSales)

	// The blocked product is still there
	_, err = svc.GetProduct(sold.ID)
	assert.NoError(t, err)

	// Once its sale is reversed the product becomes deletable
	var sale models.Sale
	require.NoError(t, db.Where("produto_id = ?", sold.ID).First(&sale).Error)
	require.NoError(t, sales.ReverseSale(sale.ID))
	assert.NoError(t, svc.DeleteProduct(sold.ID))
}

func TestListProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	mustCreateProduct(t, db, "Teclado Mecânico", 5, 150)
	mustCreateProduct(t, db, "Mouse Gamer", 12, 80)
	mustCreateProduct(t, db, "Monitor Ultra-Wide", 3, 1200)

	params := func(page, perPage int, search string) ProductSearchParams {
		return ProductSearchParams{PaginationParams: utils.PaginationParams{
			Page: page, PerPage: perPage, Search: search,
		}}
	}

	items, total, err := svc.ListProducts(params(1, 2, ""))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)

	items, _, err = svc.ListProducts(params(2, 2, ""))
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// A page past the end is empty, not an error
	items, total, err = svc.ListProducts(params(5, 2, ""))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, items)

	// Substring search is case-insensitive
	items, total, err = svc.ListProducts(params(1, 10, "mO"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, p := range items {
		assert.Contains(t, []string{"Mouse Gamer", "Monitor Ultra-Wide"}, p.Name)
	}

	items, _, err = svc.ListProducts(params(1, 10, "inexistente"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	_, err := svc.GetProduct(42)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}
