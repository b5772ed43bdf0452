package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Batch represents a physical lot of a product with a single expiry date.
// CreatedAt doubles as the receipt timestamp and breaks ties between
// batches expiring on the same date (first received, first out).
type Batch struct {
	shared.BaseEntity
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_batches_product_dept,priority:1"`
	HotelID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_batches_hotel"`
	DepartmentID uuid.UUID       `gorm:"type:uuid;not null;index:idx_batches_product_dept,priority:2"`
	BatchNumber  string          `gorm:"size:100"`
	Quantity     decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	ExpiryDate   time.Time       `gorm:"type:date;not null;index:idx_batches_expiry"`
}

// NewBatch creates a new batch
func NewBatch(productID, hotelID, departmentID uuid.UUID, batchNumber string, quantity decimal.Decimal, expiryDate time.Time) *Batch {
	return &Batch{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    productID,
		HotelID:      hotelID,
		DepartmentID: departmentID,
		BatchNumber:  batchNumber,
		Quantity:     quantity,
		ExpiryDate:   expiryDate,
	}
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// HasStock returns true if the batch has remaining quantity
func (b *Batch) HasStock() bool {
	return b.Quantity.IsPositive()
}

// IsExpired returns true if the batch's expiry date has passed
func (b *Batch) IsExpired() bool {
	return b.ExpiryDate.Before(time.Now())
}

// WillExpireWithin returns true if the batch expires within the given duration
func (b *Batch) WillExpireWithin(duration time.Duration) bool {
	return b.ExpiryDate.Before(time.Now().Add(duration))
}

// DaysUntilExpiry returns the number of whole days until the batch expires.
// Negative for already-expired batches.
func (b *Batch) DaysUntilExpiry() int {
	return int(time.Until(b.ExpiryDate).Hours() / 24)
}
