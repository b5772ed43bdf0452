package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is a fixed lookback window for stats queries, anchored at "now"
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// IsValid returns true for a known period
func (p Period) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// Window returns the [from, to] range the period covers, ending at now
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1), now
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodMonth:
		return now.AddDate(0, -1, 0), now
	case PeriodYear:
		return now.AddDate(-1, 0, 0), now
	default:
		return now.AddDate(0, 0, -7), now
	}
}

// StatsSummary aggregates collection history over a window
type StatsSummary struct {
	TotalCollections int64           `json:"total_collections"`
	TotalQuantity    decimal.Decimal `json:"total_quantity"`
	UniqueProducts   int64           `json:"unique_products"`
	BatchesDepleted  int64           `json:"batches_depleted"`
}

// ReasonCount is one row of the reason breakdown
type ReasonCount struct {
	Reason   Reason          `json:"reason"`
	Count    int64           `json:"count"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ProductCount is one row of the top-products ranking
type ProductCount struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Count       int64           `json:"count"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// DailyCount is one point of the daily collection trend
type DailyCount struct {
	Day      time.Time       `json:"day"`
	Count    int64           `json:"count"`
	Quantity decimal.Decimal `json:"quantity"`
}
