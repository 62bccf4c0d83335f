package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/worktime"
)

// ========================================
// DAY FLOW DTOs
// ========================================

type ClockInRequest struct {
	WorkMode string `json:"work_mode"`
}

func (r *ClockInRequest) Validate() error {
	if !WorkMode(r.WorkMode).IsValid() {
		return validator.ValidationErrors{{
			Field:   "work_mode",
			Message: "work_mode must be one of: office, home",
		}}
	}
	return nil
}

type ClockOutRequest struct {
	Remark      *string `json:"remark,omitempty"`
	OtherRemark *string `json:"other_remark,omitempty"`

	parsed Remark
}

func (r *ClockOutRequest) Validate() error {
	remark, err := ParseRemark(r.Remark, r.OtherRemark)
	if err != nil {
		return validator.ValidationErrors{{Field: remarkField(r.OtherRemark, "remark", "other_remark"), Message: err.Error()}}
	}
	r.parsed = remark
	return nil
}

// Remarks is valid after Validate.
func (r *ClockOutRequest) Remarks() Remark {
	return r.parsed
}

// ========================================
// EDIT DTOs
// ========================================

type EditRemarksRequest struct {
	EmployeeID   string  `json:"employee_id"`
	WorkDate     string  `json:"work_date"`
	Remarks      *string `json:"remarks,omitempty"`
	OtherRemarks *string `json:"other_remarks,omitempty"`

	parsedDate   time.Time
	parsedRemark Remark
}

func (r *EditRemarksRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if date, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	} else {
		r.parsedDate = date
	}
	remark, err := ParseRemark(r.Remarks, r.OtherRemarks)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   remarkField(r.OtherRemarks, "remarks", "other_remarks"),
			Message: err.Error(),
		})
	} else {
		r.parsedRemark = remark
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *EditRemarksRequest) Date() time.Time {
	return r.parsedDate
}

func (r *EditRemarksRequest) Remark() Remark {
	return r.parsedRemark
}

type EditRecordRequest struct {
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	WorkMode   string  `json:"work_mode"`
	ClockIn    string  `json:"clock_in"`
	LunchOut   *string `json:"lunch_out,omitempty"`
	LunchIn    *string `json:"lunch_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`

	parsed RecordTimes
}

// RecordTimes holds the parsed timestamps of an edit.
type RecordTimes struct {
	WorkDate time.Time
	ClockIn  time.Time
	LunchOut *time.Time
	LunchIn  *time.Time
	ClockOut *time.Time
}

func (r *EditRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if date, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	} else {
		r.parsed.WorkDate = date
	}
	if !WorkMode(r.WorkMode).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "work_mode",
			Message: "work_mode must be one of: office, home",
		})
	}

	if t, ok := validator.IsValidDateTime(r.ClockIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be a valid ISO8601 datetime",
		})
	} else {
		r.parsed.ClockIn = t
	}
	optional := []struct {
		field string
		value *string
		dest  **time.Time
	}{
		{"lunch_out", r.LunchOut, &r.parsed.LunchOut},
		{"lunch_in", r.LunchIn, &r.parsed.LunchIn},
		{"clock_out", r.ClockOut, &r.parsed.ClockOut},
	}
	for _, o := range optional {
		if o.value == nil || validator.IsEmpty(*o.value) {
			continue
		}
		t, ok := validator.IsValidDateTime(*o.value)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   o.field,
				Message: o.field + " must be a valid ISO8601 datetime",
			})
			continue
		}
		*o.dest = &t
	}
	if len(errs) > 0 {
		return errs
	}

	if r.parsed.LunchIn != nil && r.parsed.LunchOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_out",
			Message: "lunch_out is required when lunch_in is set",
		})
	}
	sequence := []struct {
		field string
		value *time.Time
	}{
		{"clock_in", &r.parsed.ClockIn},
		{"lunch_out", r.parsed.LunchOut},
		{"lunch_in", r.parsed.LunchIn},
		{"clock_out", r.parsed.ClockOut},
	}
	var prevField string
	var prev *time.Time
	for _, s := range sequence {
		if s.value == nil {
			continue
		}
		if prev != nil && s.value.Before(*prev) {
			errs = append(errs, validator.ValidationError{
				Field:   s.field,
				Message: fmt.Sprintf("%s must not be before %s", s.field, prevField),
			})
		}
		prev, prevField = s.value, s.field
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Times is valid after Validate.
func (r *EditRecordRequest) Times() RecordTimes {
	return r.parsed
}

type DeleteManyRequest struct {
	IDs string `json:"ids"`

	parsed []int64
}

func (r *DeleteManyRequest) Validate() error {
	ids, err := validator.ParseIDList(r.IDs)
	if err != nil {
		return validator.ValidationErrors{{Field: "ids", Message: err.Error()}}
	}
	r.parsed = ids
	return nil
}

func (r *DeleteManyRequest) ParsedIDs() []int64 {
	return r.parsed
}

// ========================================
// LIST DTOs
// ========================================

const (
	DefaultPage          = 1
	DefaultPageSize      = 10
	MaxPageSize          = 100
	DefaultSortBy        = "work_date"
	DefaultSortDirection = "desc"

	FilterPrefix = "filter_"
)

// SortableFields are the columns a list may be ordered by.
var SortableFields = []string{
	"work_date", "work_mode", "clock_in", "clock_out", "lunch_out", "lunch_in",
	"employee_id", "remarks", "created_at", "full_name", "department",
}

// FilterOperator is how a filter value is compared against its column.
type FilterOperator string

const (
	FilterGTE   FilterOperator = "gte"
	FilterEQ    FilterOperator = "eq"
	FilterILike FilterOperator = "ilike"
)

// FilterableFields maps each filterable column to its operator.
var FilterableFields = map[string]FilterOperator{
	"work_date":   FilterGTE,
	"work_mode":   FilterEQ,
	"employee_id": FilterILike,
	"remarks":     FilterILike,
	"full_name":   FilterILike,
	"department":  FilterILike,
}

type ListParams struct {
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
	SortBy        string            `json:"sortBy,omitempty"`
	SortDirection string            `json:"sortDirection,omitempty"`
	Filters       map[string]string `json:"filters,omitempty"`
}

func (p *ListParams) Validate() error {
	var errs validator.ValidationErrors

	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortDirection == "" {
		p.SortDirection = DefaultSortDirection
	}
	p.SortDirection = strings.ToLower(p.SortDirection)

	if p.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		})
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		errs = append(errs, validator.ValidationError{
			Field:   "pageSize",
			Message: fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize),
		})
	}
	if !validator.IsInSlice(p.SortBy, SortableFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "sortBy",
			Message: "sortBy must be one of: " + strings.Join(SortableFields, ", "),
		})
	}
	if p.SortDirection != "asc" && p.SortDirection != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sortDirection",
			Message: "sortDirection must be either 'asc' or 'desc'",
		})
	}
	for field, value := range p.Filters {
		op, ok := FilterableFields[field]
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   FilterPrefix + field,
				Message: "filtering by " + field + " is not supported",
			})
			continue
		}
		switch {
		case op == FilterGTE:
			if _, ok := validator.IsValidDate(value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   FilterPrefix + field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		case field == "work_mode":
			if !WorkMode(value).IsValid() {
				errs = append(errs, validator.ValidationError{
					Field:   FilterPrefix + field,
					Message: "work_mode must be one of: office, home",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Offset is the number of rows skipped before the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the paginated list shape shared by list endpoints.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage computes totalPages as ceil(total/pageSize).
func NewPage[T any](data []T, total int64, page, pageSize int) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	ID         int64   `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	WorkMode   string  `json:"work_mode"`
	ClockIn    *string `json:"clock_in"`
	LunchOut   *string `json:"lunch_out"`
	LunchIn    *string `json:"lunch_in"`
	ClockOut   *string `json:"clock_out"`
	Remarks    Remark  `json:"remarks"`
	RemarkType string  `json:"remark_type"`
	IsOnLeave  bool    `json:"is_on_leave"`
	Status     Status  `json:"status"`
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func ToRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		WorkDate:   r.WorkDate.Format("2006-01-02"),
		WorkMode:   string(r.WorkMode),
		ClockIn:    timePtrToString(r.ClockIn),
		LunchOut:   timePtrToString(r.LunchOut),
		LunchIn:    timePtrToString(r.LunchIn),
		ClockOut:   timePtrToString(r.ClockOut),
		Remarks:    r.Remarks,
		RemarkType: r.Remarks.Kind().String(),
		IsOnLeave:  r.IsOnLeave,
		Status:     r.Status(),
		FullName:   r.FullName,
		Department: r.Department,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
	}
}

// TodayResponse is the dashboard view of the current work day.
type TodayResponse struct {
	WorkDate  string             `json:"work_date"`
	Status    Status             `json:"status"`
	Record    *RecordResponse    `json:"record"`
	Remaining worktime.Remaining `json:"remaining"`
	WorkEnd   *string            `json:"work_end"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func remarkField(other *string, remarkName, otherName string) string {
	if other != nil && strings.TrimSpace(*other) != "" {
		return otherName
	}
	return remarkName
}
