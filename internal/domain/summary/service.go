package summary

import "context"

type SummaryService interface {
	GetAllTime(ctx context.Context, employeeID string) (AllTimeSummary, error)
	GetCompliance(ctx context.Context, employeeID string) (ComplianceResponse, error)
	GetDailyData(ctx context.Context, filter DailyDataFilter) (DailyDataResponse, error)
	GetCalendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error)
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
}
