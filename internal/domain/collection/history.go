package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Reason classifies why stock was collected
type Reason string

const (
	// ReasonUsage is normal consumption by a department
	ReasonUsage Reason = "USAGE"
	// ReasonExpired is a write-off of expired stock
	ReasonExpired Reason = "EXPIRED"
	// ReasonDamaged is a write-off of damaged stock
	ReasonDamaged Reason = "DAMAGED"
	// ReasonTransfer is stock moved to another department or hotel
	ReasonTransfer Reason = "TRANSFER"
	// ReasonOther covers anything else; Notes should explain
	ReasonOther Reason = "OTHER"
)

// String returns the string representation of Reason
func (r Reason) String() string {
	return string(r)
}

// IsValid returns true if the reason is a known value
func (r Reason) IsValid() bool {
	switch r {
	case ReasonUsage, ReasonExpired, ReasonDamaged, ReasonTransfer, ReasonOther:
		return true
	}
	return false
}

// CollectionHistory is an immutable record of one batch's contribution to one
// collection request. Display fields (product name, category, expiry date,
// batch number) are copied at collection time so the row stays meaningful
// after the source batch is deleted. Rows are never updated or deleted.
type CollectionHistory struct {
	shared.BaseEntity
	BatchID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_collection_history_batch"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_collection_history_product"`
	HotelID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_collection_history_hotel_time,priority:1"`
	DepartmentID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_collection_history_dept"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_collection_history_user"`
	QuantityCollected decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	QuantityRemaining decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	ProductName       string          `gorm:"size:255;not null"`
	CategoryName      string          `gorm:"size:255"`
	BatchNumber       string          `gorm:"size:100"`
	ExpiryDate        time.Time       `gorm:"type:date;not null"`
	Reason            Reason          `gorm:"size:20;not null"`
	Notes             string          `gorm:"type:text"`
	CollectedAt       time.Time       `gorm:"not null;index:idx_collection_history_hotel_time,priority:2"`
}

// TableName returns the table name for GORM
func (CollectionHistory) TableName() string {
	return "collection_history"
}

// NewCollectionHistory snapshots one allocation entry against its batch.
// The department always comes from the batch itself, so hotel-wide
// collections record where the stock actually lived.
func NewCollectionHistory(batch *Batch, product ProductInfo, req CollectionRequest, entry AllocationEntry, collectedAt time.Time) *CollectionHistory {
	return &CollectionHistory{
		BaseEntity:        shared.NewBaseEntity(),
		BatchID:           batch.ID,
		ProductID:         batch.ProductID,
		HotelID:           batch.HotelID,
		DepartmentID:      batch.DepartmentID,
		UserID:            req.UserID,
		QuantityCollected: entry.TakeQuantity,
		QuantityRemaining: entry.RemainingQuantity,
		ProductName:       product.Name,
		CategoryName:      product.CategoryName,
		BatchNumber:       batch.BatchNumber,
		ExpiryDate:        batch.ExpiryDate,
		Reason:            req.Reason,
		Notes:             req.Notes,
		CollectedAt:       collectedAt,
	}
}
