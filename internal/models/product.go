// internal/models/product.go
package models

import (
	"time"
)

// Product is a stocked item. Name is unique across the catalog
// (exact, case-sensitive match); listing searches are case-insensitive.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nome" gorm:"column:nome;size:100;uniqueIndex;not null"`
	Quantity  int       `json:"quantidade" gorm:"column:quantidade;not null;default:0"`
	Price     float64   `json:"preco" gorm:"column:preco;type:decimal(10,2);not null;default:0"`
	CreatedAt time.Time `json:"criado_em" gorm:"column:criado_em"`

	// Relationships
	Sales []Sale `json:"-" gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "produtos"
}
