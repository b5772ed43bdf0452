package collection

import (
	"context"
	"errors"
	"time"

	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MetricsRecorder receives collection outcome metrics. Implementations must
// be cheap and must not fail loudly; the engine ignores their errors.
type MetricsRecorder interface {
	RecordCollection(ctx context.Context, reason string, quantity float64, batchCount int)
	RecordRejection(ctx context.Context, code string)
}

// CollectionService executes and previews FIFO collections.
//
// Collect runs inside one database transaction with exclusive row locks on
// the candidate batches, so two concurrent collections of the same product
// serialize on lock acquisition and can never double-spend a batch.
// Preview shares the exact selection logic but takes no locks and writes
// nothing.
type CollectionService struct {
	uow       collection.UnitOfWork
	batchRepo collection.BatchRepository
	products  collection.ProductDirectory
	audit     collection.AuditLogger
	metrics   MetricsRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewCollectionService creates a new CollectionService. audit and metrics
// may be nil; both are best-effort collaborators.
func NewCollectionService(
	uow collection.UnitOfWork,
	batchRepo collection.BatchRepository,
	products collection.ProductDirectory,
	audit collection.AuditLogger,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *CollectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionService{
		uow:       uow,
		batchRepo: batchRepo,
		products:  products,
		audit:     audit,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Collect atomically consumes the requested quantity of a product from its
// earliest-expiring batches. Either the full request is satisfied and
// committed, or nothing is mutated: insufficient stock and missing batches
// roll back cleanly and come back as typed domain errors, infrastructure
// errors roll back and propagate as-is.
func (s *CollectionService) Collect(ctx context.Context, req collection.CollectionRequest) (*CollectionResult, error) {
	if err := req.Validate(); err != nil {
		s.recordRejection(ctx, err)
		return nil, err
	}

	product, err := s.products.Lookup(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	var result *CollectionResult
	err = s.uow.Execute(ctx, func(store collection.CollectionStore) error {
		batches, err := store.FindCandidatesForUpdate(ctx, req.HotelID, req.ProductID, req.Scope)
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			return shared.ErrNoActiveBatches
		}

		alloc, err := collection.SelectFIFO(batches, req.Quantity)
		if err != nil {
			return err
		}

		collectedAt := s.now()
		entries := make([]HistoryEntryResponse, 0, len(alloc.Entries))

		// SelectFIFO consumes a prefix of the sorted candidates, so entry i
		// always refers to batches[i].
		for i, entry := range alloc.Entries {
			history := collection.NewCollectionHistory(&batches[i], *product, req, entry, collectedAt)
			if err := store.InsertHistory(ctx, history); err != nil {
				return err
			}
			if entry.WillDelete {
				if err := store.DeleteBatch(ctx, entry.BatchID); err != nil {
					return err
				}
			} else {
				if err := store.UpdateBatchQuantity(ctx, entry.BatchID, entry.RemainingQuantity); err != nil {
					return err
				}
			}
			entries = append(entries, ToHistoryEntryResponse(history))
		}

		result = &CollectionResult{
			ProductID:      req.ProductID,
			ProductName:    product.Name,
			CategoryName:   product.CategoryName,
			TotalCollected: alloc.TotalCollected(),
			BatchesDeleted: alloc.BatchesToDelete(),
			BatchesUpdated: alloc.BatchesToUpdate(),
			Entries:        entries,
		}
		return nil
	})
	if err != nil {
		s.recordRejection(ctx, err)
		return nil, err
	}

	// Post-commit collaborators are best effort: the collection is already
	// durable, so their failures are logged and swallowed.
	s.auditCollection(ctx, req, result)
	if s.metrics != nil {
		qty, _ := result.TotalCollected.Float64()
		s.metrics.RecordCollection(ctx, req.Reason.String(), qty, len(result.Entries))
	}

	return result, nil
}

// Preview computes the allocation Collect would apply for the same request,
// without locks or mutation. The forecast can go stale if stock changes
// before the actual collection; the collection's own locked read wins.
func (s *CollectionService) Preview(ctx context.Context, req collection.PreviewRequest) (*PreviewResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.products.Lookup(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	batches, err := s.batchRepo.FindCandidates(ctx, req.HotelID, req.ProductID, req.Scope)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, shared.ErrNoActiveBatches
	}

	alloc, err := collection.SelectFIFO(batches, req.Quantity)
	if err != nil {
		return nil, err
	}

	preview := &PreviewResult{
		ProductID:      req.ProductID,
		ProductName:    product.Name,
		CategoryName:   product.CategoryName,
		TotalRequested: alloc.TotalRequested,
		TotalAvailable: alloc.TotalAvailable,
		Batches:        make([]PreviewBatch, 0, len(alloc.Entries)),
	}
	for _, entry := range alloc.Entries {
		preview.Batches = append(preview.Batches, PreviewBatch{
			BatchID:           entry.BatchID,
			BatchNumber:       entry.BatchNumber,
			ExpiryDate:        entry.ExpiryDate,
			CurrentQuantity:   entry.CurrentQuantity,
			CollectQuantity:   entry.TakeQuantity,
			RemainingQuantity: entry.RemainingQuantity,
			WillDelete:        entry.WillDelete,
		})
	}
	return preview, nil
}

// auditCollection emits the post-commit audit entry. Failures never
// propagate: the collection has already committed.
func (s *CollectionService) auditCollection(ctx context.Context, req collection.CollectionRequest, result *CollectionResult) {
	if s.audit == nil {
		return
	}
	entry := collection.AuditEntry{
		UserID:     req.UserID,
		HotelID:    req.HotelID,
		Action:     "COLLECT_STOCK",
		EntityType: "product",
		EntityID:   req.ProductID,
		Details: map[string]interface{}{
			"product_name":    result.ProductName,
			"total_collected": result.TotalCollected.String(),
			"batches_deleted": result.BatchesDeleted,
			"batches_updated": result.BatchesUpdated,
			"reason":          req.Reason.String(),
		},
	}
	if err := s.audit.Log(ctx, entry); err != nil {
		s.logger.Warn("audit log write failed after successful collection",
			zap.String("product_id", req.ProductID.String()),
			zap.String("user_id", req.UserID.String()),
			zap.Error(err))
	}
}

// recordRejection counts business rejections; infrastructure errors are the
// caller's to observe.
func (s *CollectionService) recordRejection(ctx context.Context, err error) {
	if s.metrics == nil {
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		s.metrics.RecordRejection(ctx, domainErr.Code)
	}
}
