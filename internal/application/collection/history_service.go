package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	defaultTopProducts  = 10
)

// HistoryService answers read-only questions about collection history.
// It only ever touches append-only rows, so there is nothing to lock.
type HistoryService struct {
	historyRepo collection.HistoryRepository
	now         func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo collection.HistoryRepository) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

// History lists collection history for a hotel, newest first
func (s *HistoryService) History(ctx context.Context, hotelID uuid.UUID, filter collection.HistoryFilter) (*HistoryPage, error) {
	if hotelID == uuid.Nil {
		return nil, shared.ErrMissingScope
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	rows, total, err := s.historyRepo.FindForHotel(ctx, hotelID, filter)
	if err != nil {
		return nil, err
	}

	page := &HistoryPage{
		Items: make([]HistoryEntryResponse, 0, len(rows)),
		Total: total,
	}
	for i := range rows {
		page.Items = append(page.Items, ToHistoryEntryResponse(&rows[i]))
	}
	return page, nil
}

// Stats aggregates collection history over a lookback window ending now
func (s *HistoryService) Stats(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, period collection.Period) (*StatsResponse, error) {
	if hotelID == uuid.Nil {
		return nil, shared.ErrMissingScope
	}
	if !period.IsValid() {
		period = collection.PeriodWeek
	}
	from, to := period.Window(s.now())

	summary, err := s.historyRepo.GetSummary(ctx, hotelID, scope, from, to)
	if err != nil {
		return nil, err
	}
	byReason, err := s.historyRepo.GetReasonBreakdown(ctx, hotelID, scope, from, to)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.historyRepo.GetTopProducts(ctx, hotelID, scope, from, to, defaultTopProducts)
	if err != nil {
		return nil, err
	}
	trend, err := s.historyRepo.GetDailyTrend(ctx, hotelID, scope, from, to)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		Period:      period,
		From:        from,
		To:          to,
		Summary:     *summary,
		ByReason:    byReason,
		TopProducts: topProducts,
		DailyTrend:  trend,
	}, nil
}
