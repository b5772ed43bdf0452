package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/shopspring/decimal"
)

// CollectionResult summarizes one committed collection for the caller
type CollectionResult struct {
	ProductID      uuid.UUID              `json:"product_id"`
	ProductName    string                 `json:"product_name"`
	CategoryName   string                 `json:"category_name,omitempty"`
	TotalCollected decimal.Decimal        `json:"total_collected"`
	BatchesDeleted int                    `json:"batches_deleted"`
	BatchesUpdated int                    `json:"batches_updated"`
	Entries        []HistoryEntryResponse `json:"entries"`
}

// PreviewBatch is the per-batch detail of a dry-run collection
type PreviewBatch struct {
	BatchID           uuid.UUID       `json:"batch_id"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        time.Time       `json:"expiry_date"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	CollectQuantity   decimal.Decimal `json:"collect_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	WillDelete        bool            `json:"will_delete"`
}

// PreviewResult is the forecast of what Collect would apply. It is advisory
// only: stock may change between preview and collection, in which case the
// collection's own locked read is authoritative.
type PreviewResult struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	CategoryName   string          `json:"category_name,omitempty"`
	TotalRequested decimal.Decimal `json:"total_requested"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	Batches        []PreviewBatch  `json:"batches"`
}

// HistoryEntryResponse is the API shape of one history row
type HistoryEntryResponse struct {
	ID                uuid.UUID       `json:"id"`
	BatchID           uuid.UUID       `json:"batch_id"`
	ProductID         uuid.UUID       `json:"product_id"`
	DepartmentID      uuid.UUID       `json:"department_id"`
	UserID            uuid.UUID       `json:"user_id"`
	QuantityCollected decimal.Decimal `json:"quantity_collected"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	ProductName       string          `json:"product_name"`
	CategoryName      string          `json:"category_name,omitempty"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        time.Time       `json:"expiry_date"`
	Reason            string          `json:"reason"`
	Notes             string          `json:"notes,omitempty"`
	CollectedAt       time.Time       `json:"collected_at"`
}

// ToHistoryEntryResponse maps a domain history row to its API shape
func ToHistoryEntryResponse(h *collection.CollectionHistory) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:                h.ID,
		BatchID:           h.BatchID,
		ProductID:         h.ProductID,
		DepartmentID:      h.DepartmentID,
		UserID:            h.UserID,
		QuantityCollected: h.QuantityCollected,
		QuantityRemaining: h.QuantityRemaining,
		ProductName:       h.ProductName,
		CategoryName:      h.CategoryName,
		BatchNumber:       h.BatchNumber,
		ExpiryDate:        h.ExpiryDate,
		Reason:            h.Reason.String(),
		Notes:             h.Notes,
		CollectedAt:       h.CollectedAt,
	}
}

// StatsResponse bundles the aggregate views for one period
type StatsResponse struct {
	Period      collection.Period         `json:"period"`
	From        time.Time                 `json:"from"`
	To          time.Time                 `json:"to"`
	Summary     collection.StatsSummary   `json:"summary"`
	ByReason    []collection.ReasonCount  `json:"by_reason"`
	TopProducts []collection.ProductCount `json:"top_products"`
	DailyTrend  []collection.DailyCount   `json:"daily_trend"`
}

// HistoryPage is a paginated slice of history rows
type HistoryPage struct {
	Items []HistoryEntryResponse `json:"items"`
	Total int64                  `json:"total"`
}
