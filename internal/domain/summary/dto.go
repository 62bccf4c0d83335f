package summary

import (
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
)

// ComplianceResponse pairs the work mode ratio with its policy narrative.
type ComplianceResponse struct {
	EmployeeID           string           `json:"employee_id"`
	HomeWorkPercentage   float64          `json:"home_work_percentage"`
	OfficeWorkPercentage float64          `json:"office_work_percentage"`
	Policy               Policy           `json:"policy"`
	Compliance           PolicyCompliance `json:"compliance"`
	TotalDays            int              `json:"total_days"`
	InsufficientData     bool             `json:"insufficient_data"`
}

type DailyDataFilter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Timeframe  int    `json:"timeframe,omitempty"`

	start time.Time
	end   time.Time
}

// Validate resolves the window. Explicit dates win; otherwise the window is
// Timeframe days ending at today.
func (f *DailyDataFilter) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.StartDate != "" || f.EndDate != "" {
		start, okStart := validator.IsValidDate(f.StartDate)
		end, okEnd := validator.IsValidDate(f.EndDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		switch {
		case !okStart || !okEnd:
		case end.Before(start):
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		case int(end.Sub(start).Hours()/24)+1 > MaxDailyDataDays():
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: fmt.Sprintf("date range must not exceed %d days", MaxDailyDataDays()),
			})
		}
		f.start, f.end = start, end
	} else {
		if f.Timeframe == 0 {
			f.Timeframe = DefaultChartTimeframe
		}
		if !IsTimeframe(f.Timeframe) {
			errs = append(errs, validator.ValidationError{
				Field:   "timeframe",
				Message: fmt.Sprintf("timeframe must be one of %v", Timeframes),
			})
		}
		end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		f.end = end
		f.start = end.AddDate(0, 0, -(f.Timeframe - 1))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the inclusive date range resolved by Validate.
func (f *DailyDataFilter) Window() (time.Time, time.Time) {
	return f.start, f.end
}

type DailyDataResponse struct {
	EmployeeID string      `json:"employee_id"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	Records    []DailyData `json:"records"`
}

type CalendarRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`

	month time.Time
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	month, ok := validator.IsValidMonth(r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	r.month = month

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CalendarRequest) MonthStart() time.Time {
	return r.month
}

type CalendarResponse struct {
	EmployeeID string        `json:"employee_id"`
	Month      string        `json:"month"`
	Days       []CalendarDay `json:"days"`
}

type ExportRequest struct {
	EmployeeID string `json:"employee_id"`
	Format     string `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Format == "" {
		r.Format = export.FormatCSV
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportResult is a rendered file ready to be sent as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// MaxDailyDataDays is the widest window daily data can be requested for.
func MaxDailyDataDays() int {
	return slices.Max(Timeframes)
}

// IsTimeframe reports whether days is one of Timeframes.
func IsTimeframe(days int) bool {
	for _, t := range Timeframes {
		if t == days {
			return true
		}
	}
	return false
}
