package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationEntry describes how much one batch contributes to a collection.
// WillDelete is true exactly when the batch is fully consumed.
type AllocationEntry struct {
	BatchID           uuid.UUID       `json:"batch_id"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        time.Time       `json:"expiry_date"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	TakeQuantity      decimal.Decimal `json:"take_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	WillDelete        bool            `json:"will_delete"`
}

// Allocation is the computed per-batch breakdown of a requested quantity,
// in strict collection order (earliest expiry first).
type Allocation struct {
	Entries        []AllocationEntry `json:"entries"`
	TotalRequested decimal.Decimal   `json:"total_requested"`
	TotalAvailable decimal.Decimal   `json:"total_available"`
}

// BatchesToDelete returns how many batches the allocation fully consumes
func (a *Allocation) BatchesToDelete() int {
	n := 0
	for _, e := range a.Entries {
		if e.WillDelete {
			n++
		}
	}
	return n
}

// BatchesToUpdate returns how many batches are only partially consumed
func (a *Allocation) BatchesToUpdate() int {
	return len(a.Entries) - a.BatchesToDelete()
}

// TotalCollected sums the take quantities across all entries.
// Equals TotalRequested for any allocation the selector produces.
func (a *Allocation) TotalCollected() decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.Entries {
		total = total.Add(e.TakeQuantity)
	}
	return total
}
