package collection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockHistoryRepository is a mock implementation of collection.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Insert(ctx context.Context, entry *collection.CollectionHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindForHotel(ctx context.Context, hotelID uuid.UUID, filter collection.HistoryFilter) ([]collection.CollectionHistory, int64, error) {
	args := m.Called(ctx, hotelID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]collection.CollectionHistory), args.Get(1).(int64), args.Error(2)
}

func (m *MockHistoryRepository) GetSummary(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) (*collection.StatsSummary, error) {
	args := m.Called(ctx, hotelID, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.StatsSummary), args.Error(1)
}

func (m *MockHistoryRepository) GetReasonBreakdown(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) ([]collection.ReasonCount, error) {
	args := m.Called(ctx, hotelID, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.ReasonCount), args.Error(1)
}

func (m *MockHistoryRepository) GetTopProducts(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time, limit int) ([]collection.ProductCount, error) {
	args := m.Called(ctx, hotelID, scope, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.ProductCount), args.Error(1)
}

func (m *MockHistoryRepository) GetDailyTrend(ctx context.Context, hotelID uuid.UUID, scope collection.DepartmentScope, from, to time.Time) ([]collection.DailyCount, error) {
	args := m.Called(ctx, hotelID, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.DailyCount), args.Error(1)
}

func historyRow(hotelID uuid.UUID, collectedAt time.Time) collection.CollectionHistory {
	return collection.CollectionHistory{
		BaseEntity:        shared.NewBaseEntity(),
		BatchID:           uuid.New(),
		ProductID:         uuid.New(),
		HotelID:           hotelID,
		DepartmentID:      uuid.New(),
		UserID:            uuid.New(),
		QuantityCollected: decimal.NewFromInt(2),
		QuantityRemaining: decimal.NewFromInt(1),
		ProductName:       "Butter",
		Reason:            collection.ReasonUsage,
		CollectedAt:       collectedAt,
	}
}

func TestHistoryService_History(t *testing.T) {
	hotelID := uuid.New()
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	t.Run("lists rows and applies the default limit", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		service := NewHistoryService(repo)

		rows := []collection.CollectionHistory{historyRow(hotelID, now), historyRow(hotelID, now.Add(-time.Hour))}
		repo.On("FindForHotel", mock.Anything, hotelID, mock.MatchedBy(func(f collection.HistoryFilter) bool {
			return f.Limit == 50 && f.Offset == 0
		})).Return(rows, int64(2), nil)

		page, err := service.History(context.Background(), hotelID, collection.HistoryFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Butter", page.Items[0].ProductName)
		repo.AssertExpectations(t)
	})

	t.Run("caps an oversized limit", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		service := NewHistoryService(repo)

		repo.On("FindForHotel", mock.Anything, hotelID, mock.MatchedBy(func(f collection.HistoryFilter) bool {
			return f.Limit == 500
		})).Return([]collection.CollectionHistory{}, int64(0), nil)

		_, err := service.History(context.Background(), hotelID, collection.HistoryFilter{Limit: 9999})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("requires a hotel", func(t *testing.T) {
		service := NewHistoryService(new(MockHistoryRepository))

		page, err := service.History(context.Background(), uuid.Nil, collection.HistoryFilter{})

		assert.Nil(t, page)
		assert.ErrorIs(t, err, shared.ErrMissingScope)
	})
}

func TestHistoryService_Stats(t *testing.T) {
	hotelID := uuid.New()
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	scope := collection.AllDepartments()

	t.Run("composes all aggregate views over the period window", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		service := NewHistoryService(repo)
		service.now = func() time.Time { return now }

		from := now.AddDate(0, 0, -7)
		summary := &collection.StatsSummary{TotalCollections: 12, TotalQuantity: decimal.NewFromInt(40)}
		byReason := []collection.ReasonCount{{Reason: collection.ReasonUsage, Count: 10}}
		topProducts := []collection.ProductCount{{ProductID: uuid.New(), ProductName: "Butter", Count: 5}}
		trend := []collection.DailyCount{{Day: from, Count: 2}}

		repo.On("GetSummary", mock.Anything, hotelID, scope, from, now).Return(summary, nil)
		repo.On("GetReasonBreakdown", mock.Anything, hotelID, scope, from, now).Return(byReason, nil)
		repo.On("GetTopProducts", mock.Anything, hotelID, scope, from, now, 10).Return(topProducts, nil)
		repo.On("GetDailyTrend", mock.Anything, hotelID, scope, from, now).Return(trend, nil)

		stats, err := service.Stats(context.Background(), hotelID, scope, collection.PeriodWeek)

		require.NoError(t, err)
		assert.Equal(t, collection.PeriodWeek, stats.Period)
		assert.Equal(t, from, stats.From)
		assert.Equal(t, now, stats.To)
		assert.Equal(t, int64(12), stats.Summary.TotalCollections)
		assert.Len(t, stats.ByReason, 1)
		assert.Len(t, stats.TopProducts, 1)
		assert.Len(t, stats.DailyTrend, 1)
		repo.AssertExpectations(t)
	})

	t.Run("falls back to a weekly window for unknown periods", func(t *testing.T) {
		repo := new(MockHistoryRepository)
		service := NewHistoryService(repo)
		service.now = func() time.Time { return now }

		from := now.AddDate(0, 0, -7)
		repo.On("GetSummary", mock.Anything, hotelID, scope, from, now).Return(&collection.StatsSummary{}, nil)
		repo.On("GetReasonBreakdown", mock.Anything, hotelID, scope, from, now).Return([]collection.ReasonCount{}, nil)
		repo.On("GetTopProducts", mock.Anything, hotelID, scope, from, now, 10).Return([]collection.ProductCount{}, nil)
		repo.On("GetDailyTrend", mock.Anything, hotelID, scope, from, now).Return([]collection.DailyCount{}, nil)

		stats, err := service.Stats(context.Background(), hotelID, scope, collection.Period("quarter"))

		require.NoError(t, err)
		assert.Equal(t, collection.PeriodWeek, stats.Period)
	})

	t.Run("requires a hotel", func(t *testing.T) {
		service := NewHistoryService(new(MockHistoryRepository))

		stats, err := service.Stats(context.Background(), uuid.Nil, scope, collection.PeriodWeek)

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, shared.ErrMissingScope)
	})
}
