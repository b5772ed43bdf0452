package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const defaultExpiryWarningDays = 7

// ExpiringBatchResponse is the API shape of one batch approaching expiry
type ExpiringBatchResponse struct {
	BatchID         uuid.UUID       `json:"batch_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	DepartmentID    uuid.UUID       `json:"department_id"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	ExpiryDate      time.Time       `json:"expiry_date"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
}

// StockService answers read-only questions about batch stock, mainly which
// batches should be collected soon before they expire.
type StockService struct {
	batchRepo   collection.BatchRepository
	warningDays int
}

// NewStockService creates a new StockService. warningDays is the default
// expiry lookback window; zero or negative falls back to one week.
func NewStockService(batchRepo collection.BatchRepository, warningDays int) *StockService {
	if warningDays <= 0 {
		warningDays = defaultExpiryWarningDays
	}
	return &StockService{batchRepo: batchRepo, warningDays: warningDays}
}

// ExpiringSoon pages through batches expiring within the window. A zero
// withinDays uses the configured warning window.
func (s *StockService) ExpiringSoon(ctx context.Context, hotelID uuid.UUID, withinDays int, filter shared.Filter) (*shared.Paginated[ExpiringBatchResponse], error) {
	if hotelID == uuid.Nil {
		return nil, shared.ErrMissingScope
	}
	if withinDays <= 0 {
		withinDays = s.warningDays
	}
	if filter.Page <= 0 || filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if filter.Page <= 0 {
			filter.Page = defaults.Page
		}
		if filter.PageSize <= 0 {
			filter.PageSize = defaults.PageSize
		}
	}

	batches, err := s.batchRepo.FindExpiringSoon(ctx, hotelID, withinDays, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.batchRepo.CountExpiringSoon(ctx, hotelID, withinDays)
	if err != nil {
		return nil, err
	}

	items := make([]ExpiringBatchResponse, 0, len(batches))
	for i := range batches {
		items = append(items, ExpiringBatchResponse{
			BatchID:         batches[i].ID,
			ProductID:       batches[i].ProductID,
			DepartmentID:    batches[i].DepartmentID,
			BatchNumber:     batches[i].BatchNumber,
			Quantity:        batches[i].Quantity,
			ExpiryDate:      batches[i].ExpiryDate,
			DaysUntilExpiry: batches[i].DaysUntilExpiry(),
		})
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
