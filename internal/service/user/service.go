package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const emailChangeTTL = 24 * time.Hour

type UserServiceImpl struct {
	user.UserRepository
	email.EmailService
	frontendURL string
	now         func() time.Time
}

func NewUserService(userRepository user.UserRepository, emailService email.EmailService, frontendURL string) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		EmailService:   emailService,
		frontendURL:    strings.TrimRight(frontendURL, "/"),
		now:            time.Now,
	}
}

func (s *UserServiceImpl) current(ctx context.Context) (user.User, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return user.User{}, err
	}
	return s.UserRepository.GetByID(ctx, claims.UserID)
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	u, err := s.current(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return user.ListUserResponse{}, err
	}
	if !claims.Can(user.PermissionUsersSelect) {
		return user.ListUserResponse{}, user.ErrInsufficientPermissions
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	return user.ListUserResponse{
		Users:      responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateBasicInformation implements user.UserService.
func (s *UserServiceImpl) UpdateBasicInformation(ctx context.Context, req user.UpdateBasicInformationRequest) (user.UserResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.UpdateBasicInformation(ctx, claims.UserID, strings.TrimSpace(req.FullName), user.Department(req.Department))
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// RequestEmailChange implements user.UserService.
// The address only changes once the link sent to the new address is followed.
func (s *UserServiceImpl) RequestEmailChange(ctx context.Context, req user.UpdateEmailRequest) error {
	u, err := s.current(ctx)
	if err != nil {
		return err
	}

	newEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.EqualFold(newEmail, u.Email) {
		return user.ErrEmailUnchanged
	}
	if _, err := s.UserRepository.GetByEmail(ctx, newEmail); err == nil {
		return user.ErrUserEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	token := uuid.NewString()
	expiresAt := s.now().Add(emailChangeTTL)
	if err := s.UserRepository.SetPendingEmail(ctx, u.ID, newEmail, postgresql.HashToken(token), expiresAt); err != nil {
		return err
	}

	link := s.frontendURL + "/account/confirm-email?token=" + token
	if err := s.EmailService.SendEmailChangeConfirmation(newEmail, u.FullName, link, expiresAt.UTC().Format(time.RFC1123)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// ConfirmEmailChange implements user.UserService.
func (s *UserServiceImpl) ConfirmEmailChange(ctx context.Context, req user.ConfirmEmailChangeRequest) (user.UserResponse, error) {
	updated, err := s.UserRepository.ConfirmPendingEmail(ctx, postgresql.HashToken(strings.TrimSpace(req.Token)))
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// UpdatePassword implements user.UserService.
// Accounts created through Google get their first password this way.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, req user.UpdatePasswordRequest) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.UserRepository.UpdatePassword(ctx, claims.UserID, string(hash))
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.Can(user.PermissionUsersDelete) {
		return user.ErrInsufficientPermissions
	}
	if claims.UserID == id {
		return user.ErrCannotDeleteSelf
	}
	return s.UserRepository.Delete(ctx, id)
}
