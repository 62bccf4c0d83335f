package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateBasicInformation(w http.ResponseWriter, r *http.Request)
	RequestEmailChange(w http.ResponseWriter, r *http.Request)
	ConfirmEmailChange(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// Me implements UserHandler.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.Me(r.Context())
	if err != nil {
		slog.Error("Me service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter user.UserFilter

	query := r.URL.Query()
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}
	if department := query.Get("department"); department != "" {
		filter.Department = &department
	}

	var errs validator.ValidationErrors
	if p := query.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive integer"})
		}
		filter.Page = page
	}
	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 {
			errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive integer"})
		}
		filter.Limit = limit
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Users, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateBasicInformation implements UserHandler.
func (h *userHandlerImpl) UpdateBasicInformation(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateBasicInformationRequest
	if !decodeAndValidate(w, r, "UpdateBasicInformation", &req) {
		return
	}

	result, err := h.userService.UpdateBasicInformation(r.Context(), req)
	if err != nil {
		slog.Error("UpdateBasicInformation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Your information have been updated.", result)
}

// RequestEmailChange implements UserHandler.
func (h *userHandlerImpl) RequestEmailChange(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateEmailRequest
	if !decodeAndValidate(w, r, "RequestEmailChange", &req) {
		return
	}

	if err := h.userService.RequestEmailChange(r.Context(), req); err != nil {
		slog.Error("RequestEmailChange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "A confirmation email has been sent.", nil)
}

// ConfirmEmailChange implements UserHandler.
func (h *userHandlerImpl) ConfirmEmailChange(w http.ResponseWriter, r *http.Request) {
	var req user.ConfirmEmailChangeRequest
	if !decodeAndValidate(w, r, "ConfirmEmailChange", &req) {
		return
	}

	result, err := h.userService.ConfirmEmailChange(r.Context(), req)
	if err != nil {
		slog.Error("ConfirmEmailChange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Email updated", result)
}

// UpdatePassword implements UserHandler.
func (h *userHandlerImpl) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req user.UpdatePasswordRequest
	if !decodeAndValidate(w, r, "UpdatePassword", &req) {
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), req); err != nil {
		slog.Error("UpdatePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Your password have been updated.", nil)
}

// Delete implements UserHandler.
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User has been deleted.", nil)
}
