package summary

import (
	"context"
	"time"
)

type SummaryRepository interface {
	// GetAllTime reads the aggregated summary row of one employee
	GetAllTime(ctx context.Context, employeeID string) (AllTimeSummary, error)

	// GetDailyData returns per-day worked hours and lunch minutes in [start, end]
	GetDailyData(ctx context.Context, employeeID string, start, end time.Time) ([]DailyData, error)
}
