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

func TestStockService_ExpiringSoon(t *testing.T) {
	hotelID := uuid.New()
	productID := uuid.New()

	t.Run("pages expiring batches with defaults", func(t *testing.T) {
		repo := new(MockBatchRepository)
		service := NewStockService(repo, 7)

		batch := makeBatch(hotelID, productID, 6, time.Now().AddDate(0, 0, 3))
		batch.BatchNumber = "LOT-9"

		repo.On("FindExpiringSoon", mock.Anything, hotelID, 7, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]collection.Batch{batch}, nil)
		repo.On("CountExpiringSoon", mock.Anything, hotelID, 7).Return(int64(1), nil)

		page, err := service.ExpiringSoon(context.Background(), hotelID, 0, shared.Filter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
		require.Len(t, page.Items, 1)
		assert.Equal(t, batch.ID, page.Items[0].BatchID)
		assert.Equal(t, "LOT-9", page.Items[0].BatchNumber)
		assert.True(t, page.Items[0].Quantity.Equal(decimal.NewFromInt(6)))
		repo.AssertExpectations(t)
	})

	t.Run("honors an explicit window and paging", func(t *testing.T) {
		repo := new(MockBatchRepository)
		service := NewStockService(repo, 7)

		filter := shared.Filter{Page: 2, PageSize: 10}
		repo.On("FindExpiringSoon", mock.Anything, hotelID, 30, filter).
			Return([]collection.Batch{}, nil)
		repo.On("CountExpiringSoon", mock.Anything, hotelID, 30).Return(int64(15), nil)

		page, err := service.ExpiringSoon(context.Background(), hotelID, 30, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(15), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("requires a hotel", func(t *testing.T) {
		service := NewStockService(new(MockBatchRepository), 7)

		page, err := service.ExpiringSoon(context.Background(), uuid.Nil, 7, shared.Filter{})

		assert.Nil(t, page)
		assert.ErrorIs(t, err, shared.ErrMissingScope)
	})
}
