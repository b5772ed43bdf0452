package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormHistoryRepository implements collection.HistoryRepository using GORM.
// The table is append-only: Insert is the only write this type offers.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Insert appends one history row
func (r *GormHistoryRepository) Insert(ctx context.Context, entry *collection.CollectionHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindForHotel lists history rows for a hotel, newest first
func (r *GormHistoryRepository) FindForHotel(ctx context.Context, hotelID uuid.UUID, filter collection.HistoryFilter) ([]collection.CollectionHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&collection.CollectionHistory{}).
		Where("hotel_id = ?", hotelID)
	query = applyHistoryFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []collection.CollectionHistory
	if err := query.Order("collected_at DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func applyHistoryFilter(query *gorm.DB, filter collection.HistoryFilter) *gorm.DB {
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Reason != nil {
		query = query.Where("reason = ?", filter.Reason.String())
	}
	if filter.From != nil {
		query = query.Where("collected_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("collected_at <= ?", *filter.To)
	}
	return query
}

func (r *GormHistoryRepository) statsBase(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Table("collection_history").
		Where("hotel_id = ?", hotelID).
		Where("collected_at BETWEEN ? AND ?", from, to)
	if departmentID, scoped := scope.DepartmentID(); scoped {
		query = query.Where("department_id = ?", departmentID)
	}
	return query
}

// GetSummary returns aggregate totals over the window
func (r *GormHistoryRepository) GetSummary(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) (*collection.StatsSummary, error) {
	type summaryRow struct {
		TotalCollections int64
		TotalQuantity    decimal.Decimal
		UniqueProducts   int64
		BatchesDepleted  int64
	}

	var row summaryRow
	err := r.statsBase(ctx, hotelID, scope, from, to).
		Select(`
			COUNT(*) as total_collections,
			COALESCE(SUM(quantity_collected), 0) as total_quantity,
			COUNT(DISTINCT product_id) as unique_products,
			SUM(CASE WHEN quantity_remaining = 0 THEN 1 ELSE 0 END) as batches_depleted
		`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &collection.StatsSummary{
		TotalCollections: row.TotalCollections,
		TotalQuantity:    row.TotalQuantity,
		UniqueProducts:   row.UniqueProducts,
		BatchesDepleted:  row.BatchesDepleted,
	}, nil
}

// GetReasonBreakdown groups collections by reason over the window
func (r *GormHistoryRepository) GetReasonBreakdown(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) ([]collection.ReasonCount, error) {
	type reasonRow struct {
		Reason   string
		Count    int64
		Quantity decimal.Decimal
	}

	var rows []reasonRow
	err := r.statsBase(ctx, hotelID, scope, from, to).
		Select(`reason, COUNT(*) as count, COALESCE(SUM(quantity_collected), 0) as quantity`).
		Group("reason").
		Order("quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]collection.ReasonCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, collection.ReasonCount{
			Reason:   collection.Reason(row.Reason),
			Count:    row.Count,
			Quantity: row.Quantity,
		})
	}
	return result, nil
}

// GetTopProducts ranks products by collected quantity over the window.
// Product names come from the history snapshots, never a live join.
func (r *GormHistoryRepository) GetTopProducts(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time, limit int) ([]collection.ProductCount, error) {
	type productRow struct {
		ProductID   uuid.UUID
		ProductName string
		Count       int64
		Quantity    decimal.Decimal
	}

	var rows []productRow
	err := r.statsBase(ctx, hotelID, scope, from, to).
		Select(`
			product_id,
			MAX(product_name) as product_name,
			COUNT(*) as count,
			COALESCE(SUM(quantity_collected), 0) as quantity
		`).
		Group("product_id").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]collection.ProductCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, collection.ProductCount{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Count:       row.Count,
			Quantity:    row.Quantity,
		})
	}
	return result, nil
}

// GetDailyTrend buckets collections by calendar day over the window
func (r *GormHistoryRepository) GetDailyTrend(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) ([]collection.DailyCount, error) {
	type dailyRow struct {
		Day      time.Time
		Count    int64
		Quantity decimal.Decimal
	}

	var rows []dailyRow
	err := r.statsBase(ctx, hotelID, scope, from, to).
		Select(`
			DATE_TRUNC('day', collected_at) as day,
			COUNT(*) as count,
			COALESCE(SUM(quantity_collected), 0) as quantity
		`).
		Group("DATE_TRUNC('day', collected_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]collection.DailyCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, collection.DailyCount{
			Day:      row.Day,
			Count:    row.Count,
			Quantity: row.Quantity,
		})
	}
	return result, nil
}

// Ensure GormHistoryRepository implements collection.HistoryRepository
var _ collection.HistoryRepository = (*GormHistoryRepository)(nil)
