package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SummaryHandler interface {
	GetAllTime(w http.ResponseWriter, r *http.Request)
	GetCompliance(w http.ResponseWriter, r *http.Request)
	GetDailyData(w http.ResponseWriter, r *http.Request)
	GetCalendar(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
	}
}

// GetAllTime implements SummaryHandler.
func (h *summaryHandlerImpl) GetAllTime(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaryService.GetAllTime(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Error("GetAllTime service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetCompliance implements SummaryHandler.
func (h *summaryHandlerImpl) GetCompliance(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaryService.GetCompliance(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Error("GetCompliance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDailyData implements SummaryHandler.
func (h *summaryHandlerImpl) GetDailyData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := summary.DailyDataFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}
	if tf := query.Get("timeframe"); tf != "" {
		days, err := strconv.Atoi(tf)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{Field: "timeframe", Message: "timeframe must be an integer"}})
			return
		}
		filter.Timeframe = days
	}

	// The window is resolved against the service clock
	result, err := h.summaryService.GetDailyData(r.Context(), filter)
	if err != nil {
		slog.Error("GetDailyData service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetCalendar implements SummaryHandler.
func (h *summaryHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	req := summary.CalendarRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      r.URL.Query().Get("month"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.GetCalendar(r.Context(), req)
	if err != nil {
		slog.Error("GetCalendar service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Export implements SummaryHandler.
func (h *summaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := summary.ExportRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Format:     r.URL.Query().Get("format"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.Export(r.Context(), req)
	if err != nil {
		slog.Error("Export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Summary exported", "employee_id", req.EmployeeID, "format", req.Format)
	response.File(w, result.Filename, result.ContentType, result.Content)
}
