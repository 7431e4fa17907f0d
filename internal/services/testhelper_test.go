// internal/services/testhelper_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendastock/vendas-backend/internal/models"
)

// newTestDB opens a fresh in-memory database for one test. The DSN is
// keyed by test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Sale{}))
	return db
}

// mustCreateProduct seeds a product row directly, bypassing validation.
func mustCreateProduct(t *testing.T, db *gorm.DB, name string, quantity int, price float64) *models.Product {
	t.Helper()

	product := &models.Product{Name: name, Quantity: quantity, Price: price}
	require.NoError(t, db.Create(product).Error)
	return product
}
