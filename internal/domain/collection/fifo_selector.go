package collection

import (
	"sort"

	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SortForCollection orders batches by the collection ordering: ascending
// expiry date, ties broken by ascending creation time. This is a total
// order over candidates, so the walk in SelectFIFO is deterministic.
func SortForCollection(batches []Batch) {
	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].ExpiryDate.Equal(batches[j].ExpiryDate) {
			return batches[i].ExpiryDate.Before(batches[j].ExpiryDate)
		}
		return batches[i].CreatedAt.Before(batches[j].CreatedAt)
	})
}

// SelectFIFO computes the allocation for a requested quantity over candidate
// batches already sorted per SortForCollection. It is a pure function: no
// side effects, identical inputs give identical output, which is what lets
// the preview path promise the same breakdown the collect path will apply.
//
// The availability check runs over all candidates before any entry is
// emitted, so an under-filled partial allocation is never produced: the
// result either covers the request exactly or is an
// *InsufficientStockError carrying the total available.
func SelectFIFO(batches []Batch, requested decimal.Decimal) (*Allocation, error) {
	if !requested.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}

	totalAvailable := decimal.Zero
	for i := range batches {
		totalAvailable = totalAvailable.Add(batches[i].Quantity)
	}
	if totalAvailable.LessThan(requested) {
		return nil, &InsufficientStockError{Available: totalAvailable, Requested: requested}
	}

	alloc := &Allocation{
		Entries:        make([]AllocationEntry, 0, len(batches)),
		TotalRequested: requested,
		TotalAvailable: totalAvailable,
	}

	remaining := requested
	for i := range batches {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(batches[i].Quantity, remaining)
		left := batches[i].Quantity.Sub(take)
		alloc.Entries = append(alloc.Entries, AllocationEntry{
			BatchID:           batches[i].ID,
			BatchNumber:       batches[i].BatchNumber,
			ExpiryDate:        batches[i].ExpiryDate,
			CurrentQuantity:   batches[i].Quantity,
			TakeQuantity:      take,
			RemainingQuantity: left,
			WillDelete:        left.IsZero(),
		})
		remaining = remaining.Sub(take)
	}

	return alloc, nil
}
