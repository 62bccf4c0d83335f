package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	OAuthProvider *string `json:"oauth_provider,omitempty"`
	PendingEmail  *string `json:"pending_email,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		EmployeeID:    u.EmployeeID,
		Email:         u.Email,
		FullName:      u.FullName,
		Department:    string(u.Department),
		Role:          string(u.Role),
		OAuthProvider: u.OAuthProvider,
		PendingEmail:  u.PendingEmail,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// UserFilter lists users for the summary employee selector
type UserFilter struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		})
	}
	if f.Limit < 1 || f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 200",
		})
	}
	if f.Department != nil && !Department(*f.Department).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is not a known department",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListUserResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type UpdateBasicInformationRequest struct {
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

func (r *UpdateBasicInformationRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(strings.TrimSpace(r.FullName)) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "Full name must be at least 3 characters",
		})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}
	if !Department(r.Department).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must be one of HR, Finance, Operations, Engineering, Support, Sales, Marketing, Admin, Management",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (r *UpdateEmailRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Email) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Email must be at least 3 characters",
		})
	} else if len(r.Email) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 255 characters",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConfirmEmailChangeRequest struct {
	Token string `json:"token"`
}

func (r *ConfirmEmailChangeRequest) Validate() error {
	if validator.IsEmpty(r.Token) {
		return validator.ValidationErrors{{Field: "token", Message: "token is required"}}
	}
	return nil
}

type UpdatePasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "Password must be at least 8 characters",
		})
	} else if len(r.NewPassword) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must not exceed 100 characters",
		})
	}
	if len(r.ConfirmPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "Password must be at least 8 characters",
		})
	} else if r.ConfirmPassword != r.NewPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "Passwords do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
