// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Expected, user-facing failure modes. Handlers translate these into
// HTTP statuses; anything else is an internal error.
var (
	ErrInvalidInput      = errors.New("dados inválidos")
	ErrProductNotFound   = errors.New("produto não encontrado")
	ErrSaleNotFound      = errors.New("venda não encontrada")
	ErrDuplicateName     = errors.New("já existe um produto com este nome")
	ErrHasDependentSales = errors.New("produto possui vendas registradas e não pode ser excluído")
)

// InsufficientStockError reports a sale request that exceeds the stock on
// hand. Available tells the caller how much could still be sold.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %s. Disponível: %d", e.ProductName, e.Available)
}

// IsInsufficientStock unwraps err into an InsufficientStockError, if it is one.
func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
