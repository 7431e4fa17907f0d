// internal/services/sale_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendastock/vendas-backend/internal/models"
	"github.com/vendastock/vendas-backend/internal/utils"
)

func TestRegisterSale(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	product := mustCreateProduct(t, db, "Teclado", 5, 150.00)

	sale, err := svc.RegisterSale(&RegisterSaleRequest{
		ProductID:     product.ID,
		Quantity:      2,
		PaymentMethod: "dinheiro",
	})
	require.NoError(t, err)

	assert.Equal(t, product.ID, sale.ProductID)
	assert.Equal(t, 2, sale.Quantity)
	assert.Equal(t, 150.00, sale.UnitPrice)
	assert.Equal(t, 300.00, sale.TotalPrice)
	assert.Equal(t, "dinheiro", sale.PaymentMethod)
	assert.Equal(t, "Teclado", sale.ProductName())
	assert.WithinDuration(t, time.Now().UTC(), sale.SoldAt, 5*time.Second)

	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 3, stored.Quantity)
}

func TestRegisterSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	product := mustCreateProduct(t, db, "Teclado", 3, 150.00)

	_, err := svc.RegisterSale(&RegisterSaleRequest{
		ProductID:     product.ID,
		Quantity:      10,
		PaymentMethod: "cartão",
	})
	require.Error(t, err)

	ise, ok := IsInsufficientStock(err)
	require.True(t, ok)
	assert.Equal(t, 3, ise.Available)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, "Teclado", ise.ProductName)

	// Nothing was written
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 3, stored.Quantity)

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount)
}

func TestRegisterSaleInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	product := mustCreateProduct(t, db, "Teclado", 3, 150.00)

	cases := []struct {
		name string
		req  RegisterSaleRequest
	}{
		{"zero quantity", RegisterSaleRequest{ProductID: product.ID, Quantity: 0, PaymentMethod: "pix"}},
		{"negative quantity", RegisterSaleRequest{ProductID: product.ID, Quantity: -2, PaymentMethod: "pix"}},
		{"blank payment method", RegisterSaleRequest{ProductID: product.ID, Quantity: 1, PaymentMethod: "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterSale(&tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterSaleProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	_, err := svc.RegisterSale(&RegisterSaleRequest{
		ProductID:     999,
		Quantity:      1,
		PaymentMethod: "pix",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUnitPriceIsASnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)
	products := NewProductService(db)

	product := mustCreateProduct(t, db, "Monitor", 5, 1200.00)

	sale, err := svc.RegisterSale(&RegisterSaleRequest{
		ProductID:     product.ID,
		Quantity:      1,
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	// Changing the product's price later must not touch past sales
	_, err = products.UpdateProduct(product.ID, &UpdateProductRequest{
		Name:     "Monitor",
		Quantity: 4,
		Price:    999.00,
	})
	require.NoError(t, err)

	var stored models.Sale
	require.NoError(t, db.First(&stored, sale.ID).Error)
	assert.Equal(t, 1200.00, stored.UnitPrice)
	assert.Equal(t, 1200.00, stored.TotalPrice)
}

func TestReverseSale(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	product := mustCreateProduct(t, db, "Teclado", 5, 150.00)

	sale, err := svc.RegisterSale(&RegisterSaleRequest{
		ProductID:     product.ID,
		Quantity:      2,
		PaymentMethod: "dinheiro",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ReverseSale(sale.ID))

	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 5, stored.Quantity, "reversal restores exactly the sold quantity")

	sales, total, err := svc.ListSales(utils.PaginationParams{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, sales)

	assert.ErrorIs(t, svc.ReverseSale(sale.ID), ErrSaleNotFound)
}

func TestReverseSaleWithoutProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	// Orphan sale row; the deletion invariant normally prevents this,
	// but reversal must still cope.
	orphan := &models.Sale{
		ProductID:     777,
		Quantity:      2,
		UnitPrice:     10,
		TotalPrice:    20,
		PaymentMethod: "pix",
		SoldAt:        time.Now().UTC(),
	}
	require.NoError(t, db.Create(orphan).Error)

	require.NoError(t, svc.ReverseSale(orphan.ID))

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStockConsistencyOverSequence(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	const initial = 20
	product := mustCreateProduct(t, db, "Cabo", initial, 5.00)

	var saleIDs []uint
	for _, qty := range []int{3, 5, 2} {
		sale, err := svc.RegisterSale(&RegisterSaleRequest{
			ProductID: product.ID, Quantity: qty, PaymentMethod: "pix",
		})
		require.NoError(t, err)
		saleIDs = append(saleIDs, sale.ID)
	}

	require.NoError(t, svc.ReverseSale(saleIDs[1]))

	// quantity == initial − Σ(active sale quantities)
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)

	var activeTotal int64
	require.NoError(t, db.Model(&models.Sale{}).
		Where("produto_id = ?", product.ID).
		Select("COALESCE(SUM(quantidade), 0)").
		Scan(&activeTotal).Error)

	assert.EqualValues(t, initial-int(activeTotal), stored.Quantity)
	assert.GreaterOrEqual(t, stored.Quantity, 0)
}

func TestListSalesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewSaleService(db)

	product := mustCreateProduct(t, db, "Teclado", 50, 10.00)

	now := time.Now().UTC()
	for i, offset := range []time.Duration{-2 * time.Hour, -time.Hour, 0} {
		sale := &models.Sale{
			ProductID:     product.ID,
			Quantity:      i + 1,
			UnitPrice:     10,
			TotalPrice:    float64((i + 1) * 10),
			PaymentMethod: "pix",
			SoldAt:        now.Add(offset),
		}
		require.NoError(t, db.Create(sale).Error)
	}

	sales, total, err := svc.ListSales(utils.PaginationParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, sales, 2)
	assert.True(t, sales[0].SoldAt.After(sales[1].SoldAt))
	assert.Equal(t, "Teclado", sales[0].ProductName(), "product relation is preloaded")
}
