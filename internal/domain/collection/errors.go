package collection

import (
	"fmt"

	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InsufficientStockError reports that the candidate batches cannot cover the
// requested quantity. It carries both amounts for caller-facing messages
// ("only 5 available, you asked for 20") and unwraps to
// shared.ErrInsufficientStock so errors.Is keeps working.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available=%s, requested=%s", e.Available.String(), e.Requested.String())
}

// Unwrap returns the sentinel domain error
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}
