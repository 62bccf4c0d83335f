package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	LunchOut(w http.ResponseWriter, r *http.Request)
	LunchIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	EditRemarks(w http.ResponseWriter, r *http.Request)
	EditRecord(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteMany(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Today(r.Context())
	if err != nil {
		slog.Error("Today service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if !decodeAndValidate(w, r, "ClockIn", &req) {
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "You have clocked in.", result)
}

// LunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) LunchOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.LunchOut(r.Context())
	if err != nil {
		slog.Error("LunchOut service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Enjoy your lunch.", result)
}

// LunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) LunchIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.LunchIn(r.Context())
	if err != nil {
		slog.Error("LunchIn service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Welcome back from lunch.", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest

	// An empty body clocks out without a remark
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("ClockOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "You have clocked out.", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := params.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.List(r.Context(), params)
	if err != nil {
		slog.Error("List service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// listParamsFromQuery reads page, pageSize, sortBy, sortDirection and filter_<field> values.
func listParamsFromQuery(r *http.Request) (attendance.ListParams, error) {
	var params attendance.ListParams
	var errs validator.ValidationErrors

	query := r.URL.Query()
	if p := query.Get("page"); p != "" {
		pageNum, err := strconv.Atoi(p)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be an integer"})
		}
		params.Page = pageNum
		if err == nil && pageNum == 0 {
			params.Page = -1
		}
	}
	if ps := query.Get("pageSize"); ps != "" {
		pageSize, err := strconv.Atoi(ps)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "pageSize", Message: "pageSize must be an integer"})
		}
		params.PageSize = pageSize
		if err == nil && pageSize == 0 {
			params.PageSize = -1
		}
	}
	params.SortBy = query.Get("sortBy")
	params.SortDirection = query.Get("sortDirection")

	for key, values := range query {
		if !strings.HasPrefix(key, attendance.FilterPrefix) || len(values) == 0 || values[0] == "" {
			continue
		}
		if params.Filters == nil {
			params.Filters = make(map[string]string)
		}
		params.Filters[strings.TrimPrefix(key, attendance.FilterPrefix)] = values[0]
	}

	if len(errs) > 0 {
		return params, errs
	}
	return params, nil
}

// EditRemarks implements AttendanceHandler.
func (h *attendanceHandlerImpl) EditRemarks(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditRemarksRequest
	if !decodeAndValidate(w, r, "EditRemarks", &req) {
		return
	}

	result, err := h.attendanceService.EditRemarks(r.Context(), req)
	if err != nil {
		slog.Error("EditRemarks service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "New remarks have been saved.", result)
}

// EditRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) EditRecord(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditRecordRequest
	if !decodeAndValidate(w, r, "EditRecord", &req) {
		return
	}

	result, err := h.attendanceService.EditRecord(r.Context(), req)
	if err != nil {
		slog.Error("EditRecord service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record has been edited.", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record has been deleted.", nil)
}

// DeleteMany implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteMany(w http.ResponseWriter, r *http.Request) {
	req := attendance.DeleteManyRequest{IDs: r.URL.Query().Get("ids")}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	deleted, err := h.attendanceService.DeleteMany(r.Context(), req)
	if err != nil {
		slog.Error("DeleteMany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Records have been deleted.", map[string]int64{"deleted": deleted})
}
