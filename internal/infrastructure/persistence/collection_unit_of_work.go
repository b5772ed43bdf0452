package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormUnitOfWork implements collection.UnitOfWork over a GORM transaction.
// Everything the callback does through the store shares one transaction;
// an error rolls it all back, nil commits.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(store collection.CollectionStore) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCollectionStore{
			batches: NewGormBatchRepository(tx),
			history: NewGormHistoryRepository(tx),
		})
	})
}

// gormCollectionStore is the transaction-bound store handed to the engine.
// It reuses the plain repositories, constructed against the tx handle.
type gormCollectionStore struct {
	batches *GormBatchRepository
	history *GormHistoryRepository
}

func (s *gormCollectionStore) FindCandidatesForUpdate(ctx context.Context, hotelID, productID uuid.UUID, scope collection.DepartmentScope) ([]collection.Batch, error) {
	return s.batches.FindCandidatesForUpdate(ctx, hotelID, productID, scope)
}

func (s *gormCollectionStore) UpdateBatchQuantity(ctx context.Context, batchID uuid.UUID, quantity decimal.Decimal) error {
	return s.batches.UpdateQuantity(ctx, batchID, quantity)
}

func (s *gormCollectionStore) DeleteBatch(ctx context.Context, batchID uuid.UUID) error {
	return s.batches.Delete(ctx, batchID)
}

func (s *gormCollectionStore) InsertHistory(ctx context.Context, entry *collection.CollectionHistory) error {
	return s.history.Insert(ctx, entry)
}

// Ensure interfaces are implemented
var (
	_ collection.UnitOfWork      = (*GormUnitOfWork)(nil)
	_ collection.CollectionStore = (*gormCollectionStore)(nil)
)
