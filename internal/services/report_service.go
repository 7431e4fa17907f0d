// internal/services/report_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendastock/vendas-backend/internal/models"
)

// PaymentMethodAll is the sentinel the dashboard sends when no payment
// method filter should be applied.
const PaymentMethodAll = "Todos"

const filterDateLayout = "2006-01-02"

// ReportService folds the (optionally filtered) sale set into the report
// shapes the dashboard consumes. Monetary sums accumulate at full
// precision and are rounded to two decimals only on the way out.
type ReportService struct {
	db *gorm.DB
}

// ReportFilters are AND-combined and individually optional. Malformed
// dates are ignored rather than rejected; the dashboard treats filter
// inputs as best-effort.
type ReportFilters struct {
	StartDate     string
	EndDate       string
	PaymentMethod string
	ProductID     *uint
}

type StockReport struct {
	TotalProducts int64   `json:"total_produtos"`
	StockValue    float64 `json:"valor_total_estoque"`
}

type SalesReport struct {
	TotalSales   int64   `json:"total_vendas"`
	TotalRevenue float64 `json:"valor_total_vendas"`
}

type MonthlySales struct {
	Month string  `json:"mes"`
	Total float64 `json:"total"`
}

type ProductSales struct {
	ProductName string  `json:"produto"`
	Total       float64 `json:"total"`
}

type PaymentRevenue struct {
	PaymentMethod string  `json:"forma_pagamento"`
	Total         float64 `json:"total"`
}

type ConsolidatedReport struct {
	Stock     StockReport      `json:"estoque"`
	Sales     SalesReport      `json:"vendas"`
	ByMonth   []MonthlySales   `json:"vendas_por_mes"`
	ByProduct []ProductSales   `json:"vendas_por_produto"`
	ByPayment []PaymentRevenue `json:"receita_por_forma_pagamento"`
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// salesQuery is the shared filtered base every sales report starts from.
// The produtos join is applied at most once no matter how many filters or
// shapes ask for it.
type salesQuery struct {
	db     *gorm.DB
	joined bool
}

func (q *salesQuery) joinProducts() *salesQuery {
	if !q.joined {
		q.db = q.db.Joins("JOIN produtos ON produtos.id = vendas.produto_id")
		q.joined = true
	}
	return q
}

func (s *ReportService) filteredSales(filters ReportFilters) *salesQuery {
	q := &salesQuery{db: s.db.Model(&models.Sale{})}

	if filters.StartDate != "" {
		if day, err := time.ParseInLocation(filterDateLayout, filters.StartDate, time.UTC); err == nil {
			q.db = q.db.Where("data_venda >= ?", day)
		}
	}

	if filters.EndDate != "" {
		if day, err := time.ParseInLocation(filterDateLayout, filters.EndDate, time.UTC); err == nil {
			endOfDay := day.AddDate(0, 0, 1).Add(-time.Microsecond)
			q.db = q.db.Where("data_venda <= ?", endOfDay)
		}
	}

	if filters.PaymentMethod != "" && filters.PaymentMethod != PaymentMethodAll {
		q.db = q.db.Where("forma_pagamento = ?", filters.PaymentMethod)
	}

	if filters.ProductID != nil {
		q.joinProducts()
		q.db = q.db.Where("vendas.produto_id = ?", *filters.ProductID)
	}

	return q
}

// StockSummary reports over the whole catalog; the sale filters do not
// apply to it.
func (s *ReportService) StockSummary() (*StockReport, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	total := decimal.Zero
	for _, p := range products {
		value := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity)))
		total = total.Add(value)
	}

	return &StockReport{
		TotalProducts: int64(len(products)),
		StockValue:    total.Round(2).InexactFloat64(),
	}, nil
}

func (s *ReportService) SalesSummary(filters ReportFilters) (*SalesReport, error) {
	q := s.filteredSales(filters)

	var totals []float64
	if err := q.db.Pluck("vendas.valor_total", &totals).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(decimal.NewFromFloat(t))
	}

	return &SalesReport{
		TotalSales:   int64(len(totals)),
		TotalRevenue: revenue.Round(2).InexactFloat64(),
	}, nil
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// SalesByMonth buckets the filtered sales by the calendar month of
// data_venda, oldest bucket first.
func (s *ReportService) SalesByMonth(filters ReportFilters) ([]MonthlySales, error) {
	q := s.filteredSales(filters)

	var rows []struct {
		SoldAt     time.Time `gorm:"column:data_venda"`
		TotalPrice float64   `gorm:"column:valor_total"`
	}
	if err := q.db.Select("vendas.data_venda, vendas.valor_total").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	buckets := make(map[int]decimal.Decimal)
	for _, row := range rows {
		soldAt := row.SoldAt.UTC()
		key := soldAt.Year()*100 + int(soldAt.Month())
		buckets[key] = buckets[key].Add(decimal.NewFromFloat(row.TotalPrice))
	}

	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	result := make([]MonthlySales, 0, len(keys))
	for _, key := range keys {
		result = append(result, MonthlySales{
			Month: fmt.Sprintf("%s/%d", monthNames[key%100-1], key/100),
			Total: buckets[key].Round(2).InexactFloat64(),
		})
	}
	return result, nil
}

// SalesByProduct groups the filtered sales by product name, highest
// revenue first.
func (s *ReportService) SalesByProduct(filters ReportFilters) ([]ProductSales, error) {
	q := s.filteredSales(filters).joinProducts()

	var rows []struct {
		ProductName string  `gorm:"column:produto_nome"`
		TotalPrice  float64 `gorm:"column:valor_total"`
	}
	if err := q.db.Select("produtos.nome AS produto_nome, vendas.valor_total").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		totals[row.ProductName] = totals[row.ProductName].Add(decimal.NewFromFloat(row.TotalPrice))
	}

	result := make([]ProductSales, 0, len(totals))
	for name, total := range totals {
		result = append(result, ProductSales{
			ProductName: name,
			Total:       total.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].ProductName < result[j].ProductName
	})
	return result, nil
}

// RevenueByPaymentMethod groups the filtered sales by the literal payment
// method value, highest revenue first.
func (s *ReportService) RevenueByPaymentMethod(filters ReportFilters) ([]PaymentRevenue, error) {
	q := s.filteredSales(filters)

	var rows []struct {
		PaymentMethod string  `gorm:"column:forma_pagamento"`
		TotalPrice    float64 `gorm:"column:valor_total"`
	}
	if err := q.db.Select("vendas.forma_pagamento, vendas.valor_total").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		totals[row.PaymentMethod] = totals[row.PaymentMethod].Add(decimal.NewFromFloat(row.TotalPrice))
	}

	result := make([]PaymentRevenue, 0, len(totals))
	for method, total := range totals {
		result = append(result, PaymentRevenue{
			PaymentMethod: method,
			Total:         total.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].PaymentMethod < result[j].PaymentMethod
	})
	return result, nil
}

// Consolidated bundles the five shapes into the single response the
// dashboard consumes. Each shape is recomputed from the same filter set.
func (s *ReportService) Consolidated(filters ReportFilters) (*ConsolidatedReport, error) {
	stock, err := s.StockSummary()
	if err != nil {
		return nil, err
	}
	sales, err := s.SalesSummary(filters)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.SalesByMonth(filters)
	if err != nil {
		return nil, err
	}
	byProduct, err := s.SalesByProduct(filters)
	if err != nil {
		return nil, err
	}
	byPayment, err := s.RevenueByPaymentMethod(filters)
	if err != nil {
		return nil, err
	}

	return &ConsolidatedReport{
		Stock:     *stock,
		Sales:     *sales,
		ByMonth:   byMonth,
		ByProduct: byProduct,
		ByPayment: byPayment,
	}, nil
}
