package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionOrder is the FIFO selection ordering: earliest expiry first,
// receipt time as tie-break. Must match collection.SortForCollection.
const collectionOrder = "expiry_date ASC, created_at ASC"

// GormBatchRepository implements collection.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Batch, error) {
	var batch collection.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindCandidates returns active batches for a product within scope, in
// collection order, without row locks. Used by the preview path.
func (r *GormBatchRepository) FindCandidates(ctx context.Context, hotelID, productID uuid.UUID, scope collection.DepartmentScope) ([]collection.Batch, error) {
	return findCandidates(r.db.WithContext(ctx), hotelID, productID, scope, false)
}

// FindCandidatesForUpdate is the locked variant: each returned row holds an
// exclusive lock until the surrounding transaction ends. Only meaningful on
// a transaction-bound DB handle.
func (r *GormBatchRepository) FindCandidatesForUpdate(ctx context.Context, hotelID, productID uuid.UUID, scope collection.DepartmentScope) ([]collection.Batch, error) {
	return findCandidates(r.db.WithContext(ctx), hotelID, productID, scope, true)
}

func findCandidates(db *gorm.DB, hotelID, productID uuid.UUID, scope collection.DepartmentScope, forUpdate bool) ([]collection.Batch, error) {
	query := db.Model(&collection.Batch{}).
		Where("hotel_id = ? AND product_id = ? AND quantity > 0", hotelID, productID)

	if departmentID, scoped := scope.DepartmentID(); scoped {
		query = query.Where("department_id = ?", departmentID)
	}
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var batches []collection.Batch
	if err := query.Order(collectionOrder).Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindExpiringSoon finds batches with stock expiring within the given window
func (r *GormBatchRepository) FindExpiringSoon(ctx context.Context, hotelID uuid.UUID, withinDays int, filter shared.Filter) ([]collection.Batch, error) {
	now := time.Now()
	threshold := now.AddDate(0, 0, withinDays)

	query := r.db.WithContext(ctx).Model(&collection.Batch{}).
		Where("hotel_id = ? AND quantity > 0", hotelID).
		Where("expiry_date > ? AND expiry_date <= ?", now, threshold).
		Order(collectionOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var batches []collection.Batch
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// CountExpiringSoon counts batches with stock expiring within the window
func (r *GormBatchRepository) CountExpiringSoon(ctx context.Context, hotelID uuid.UUID, withinDays int) (int64, error) {
	now := time.Now()
	threshold := now.AddDate(0, 0, withinDays)

	var total int64
	err := r.db.WithContext(ctx).Model(&collection.Batch{}).
		Where("hotel_id = ? AND quantity > 0", hotelID).
		Where("expiry_date > ? AND expiry_date <= ?", now, threshold).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *collection.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// UpdateQuantity sets a batch's quantity after a partial collection
func (r *GormBatchRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&collection.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"quantity": quantity, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a fully consumed batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&collection.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBatchRepository implements collection.BatchRepository
var _ collection.BatchRepository = (*GormBatchRepository)(nil)
