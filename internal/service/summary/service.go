package summary

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/worktime"
)

const exportFilePrefix = "attendance_summary"

type SummaryServiceImpl struct {
	summary.SummaryRepository
	exporters *export.Registry
	clock     *worktime.Calculator
	policy    summary.Policy
}

func NewSummaryService(summaryRepository summary.SummaryRepository, exporters *export.Registry, clock *worktime.Calculator, policy summary.Policy) summary.SummaryService {
	return &SummaryServiceImpl{
		SummaryRepository: summaryRepository,
		exporters:         exporters,
		clock:             clock,
		policy:            policy,
	}
}

// authorize lets callers read their own summary; anyone else needs attendance_summaries.select.
func (s *SummaryServiceImpl) authorize(ctx context.Context, employeeID string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if claims.EmployeeID != employeeID && !claims.Can(user.PermissionAttendanceSummariesSelect) {
		return summary.ErrSummaryAccessDenied
	}
	return nil
}

func (s *SummaryServiceImpl) load(ctx context.Context, employeeID string) (summary.AllTimeSummary, error) {
	if err := s.authorize(ctx, employeeID); err != nil {
		return summary.AllTimeSummary{}, err
	}
	return s.SummaryRepository.GetAllTime(ctx, employeeID)
}

// GetAllTime implements summary.SummaryService.
func (s *SummaryServiceImpl) GetAllTime(ctx context.Context, employeeID string) (summary.AllTimeSummary, error) {
	return s.load(ctx, employeeID)
}

// GetCompliance implements summary.SummaryService.
func (s *SummaryServiceImpl) GetCompliance(ctx context.Context, employeeID string) (summary.ComplianceResponse, error) {
	data, err := s.load(ctx, employeeID)
	if err != nil {
		return summary.ComplianceResponse{}, err
	}

	return summary.ComplianceResponse{
		EmployeeID:           data.EmployeeID,
		HomeWorkPercentage:   data.HomeWorkPercentage,
		OfficeWorkPercentage: data.OfficeWorkPercentage,
		Policy:               s.policy,
		Compliance:           summary.EvaluateWorkModePolicyCompliance(data.HomeWorkPercentage, data.OfficeWorkPercentage, s.policy),
		TotalDays:            data.TotalDays,
		InsufficientData:     data.TotalDays < summary.MinDaysForSummaries,
	}, nil
}

// GetDailyData implements summary.SummaryService.
func (s *SummaryServiceImpl) GetDailyData(ctx context.Context, filter summary.DailyDataFilter) (summary.DailyDataResponse, error) {
	if err := filter.Validate(s.clock.Today()); err != nil {
		return summary.DailyDataResponse{}, err
	}
	if err := s.authorize(ctx, filter.EmployeeID); err != nil {
		return summary.DailyDataResponse{}, err
	}

	start, end := filter.Window()
	records, err := s.SummaryRepository.GetDailyData(ctx, filter.EmployeeID, start, end)
	if err != nil {
		return summary.DailyDataResponse{}, fmt.Errorf("failed to get daily data: %w", err)
	}
	if records == nil {
		records = []summary.DailyData{}
	}

	return summary.DailyDataResponse{
		EmployeeID: filter.EmployeeID,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Records:    records,
	}, nil
}

// GetCalendar implements summary.SummaryService.
func (s *SummaryServiceImpl) GetCalendar(ctx context.Context, req summary.CalendarRequest) (summary.CalendarResponse, error) {
	data, err := s.load(ctx, req.EmployeeID)
	if err != nil {
		return summary.CalendarResponse{}, err
	}

	month := req.MonthStart()
	return summary.CalendarResponse{
		EmployeeID: req.EmployeeID,
		Month:      month.Format("2006-01"),
		Days:       summary.NewCalendar(data).Month(month, s.clock.Today()),
	}, nil
}

// Export implements summary.SummaryService.
func (s *SummaryServiceImpl) Export(ctx context.Context, req summary.ExportRequest) (summary.ExportResult, error) {
	exporter, err := s.exporters.Lookup(req.Format)
	if err != nil {
		return summary.ExportResult{}, err
	}

	data, err := s.load(ctx, req.EmployeeID)
	if err != nil {
		return summary.ExportResult{}, err
	}

	content, err := exporter.Export([]export.Row{summary.ConvertSummaryToFlatRow(data)})
	if err != nil {
		return summary.ExportResult{}, err
	}

	return summary.ExportResult{
		Filename:    export.Filename(exportFilePrefix, data.EmployeeID, exporter.Extension(), s.clock.Today()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}
