package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductInfo carries the display fields snapshotted into history rows
type ProductInfo struct {
	Name         string
	CategoryName string
}

// ProductDirectory resolves product display data. Product CRUD lives
// outside this subsystem; the engine only reads names for snapshots.
type ProductDirectory interface {
	Lookup(ctx context.Context, productID uuid.UUID) (*ProductInfo, error)
}

// BatchRepository is the read side for batches outside a collection
// transaction. Candidate reads come back sorted per SortForCollection.
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	// FindCandidates returns active batches for the product within scope,
	// in collection order, without row locks.
	FindCandidates(ctx context.Context, hotelID, productID uuid.UUID, scope DepartmentScope) ([]Batch, error)
	// FindExpiringSoon returns batches with stock expiring within the window
	FindExpiringSoon(ctx context.Context, hotelID uuid.UUID, withinDays int, filter shared.Filter) ([]Batch, error)
	// CountExpiringSoon counts the batches FindExpiringSoon would return
	CountExpiringSoon(ctx context.Context, hotelID uuid.UUID, withinDays int) (int64, error)
	Save(ctx context.Context, batch *Batch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CollectionStore is the transaction-bound view the engine mutates through.
// Every method runs on the same underlying transaction.
type CollectionStore interface {
	// FindCandidatesForUpdate behaves like BatchRepository.FindCandidates
	// but acquires an exclusive row lock on each returned batch for the
	// duration of the transaction.
	FindCandidatesForUpdate(ctx context.Context, hotelID, productID uuid.UUID, scope DepartmentScope) ([]Batch, error)
	UpdateBatchQuantity(ctx context.Context, batchID uuid.UUID, quantity decimal.Decimal) error
	DeleteBatch(ctx context.Context, batchID uuid.UUID) error
	InsertHistory(ctx context.Context, entry *CollectionHistory) error
}

// UnitOfWork runs a function inside a single database transaction.
// An error return rolls the whole transaction back; nil commits it.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(store CollectionStore) error) error
}

// HistoryFilter narrows history queries. Nil pointer fields are ignored.
type HistoryFilter struct {
	DepartmentID *uuid.UUID
	ProductID    *uuid.UUID
	UserID       *uuid.UUID
	Reason       *Reason
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// HistoryRepository is the append-only store of collection history rows
// plus its reporting reads. Rows are write-once; there is no update path.
type HistoryRepository interface {
	Insert(ctx context.Context, entry *CollectionHistory) error
	FindForHotel(ctx context.Context, hotelID uuid.UUID, filter HistoryFilter) ([]CollectionHistory, int64, error)
	GetSummary(ctx context.Context, hotelID uuid.UUID, scope DepartmentScope, from, to time.Time) (*StatsSummary, error)
	GetReasonBreakdown(ctx context.Context, hotelID uuid.UUID, scope DepartmentScope, from, to time.Time) ([]ReasonCount, error)
	GetTopProducts(ctx context.Context, hotelID uuid.UUID, scope DepartmentScope, from, to time.Time, limit int) ([]ProductCount, error)
	GetDailyTrend(ctx context.Context, hotelID uuid.UUID, scope DepartmentScope, from, to time.Time) ([]DailyCount, error)
}

// AuditEntry is the payload handed to the audit collaborator after commit
type AuditEntry struct {
	UserID     uuid.UUID
	HotelID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Details    map[string]interface{}
}

// AuditLogger is the fire-and-forget audit sink. Failures must be logged
// by the caller and never affect an already-committed collection.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry) error
}
