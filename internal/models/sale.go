// internal/models/sale.go
package models

import (
	"time"
)

// Sale records one stock-decrementing transaction against a product.
// UnitPrice is snapshotted from the product at sale time; TotalPrice is
// stored, never recomputed on read.
type Sale struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProductID     uint      `json:"produto_id" gorm:"column:produto_id;not null;index"`
	Quantity      int       `json:"quantidade" gorm:"column:quantidade;not null"`
	UnitPrice     float64   `json:"preco_unitario" gorm:"column:preco_unitario;type:decimal(10,2);not null"`
	TotalPrice    float64   `json:"valor_total" gorm:"column:valor_total;type:decimal(10,2);not null"`
	PaymentMethod string    `json:"forma_pagamento" gorm:"column:forma_pagamento;size:50;not null"`
	SoldAt        time.Time `json:"data_venda" gorm:"column:data_venda;not null;index"`

	// Relationships
	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}

func (s *Sale) TableName() string {
	return "vendas"
}

// ProductName resolves the owning product's name when the relation is
// preloaded; sale rows on the wire always carry it.
func (s *Sale) ProductName() string {
	if s.Product != nil {
		return s.Product.Name
	}
	return ""
}
