package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	Create(ctx context.Context, newUser User) (User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdateBasicInformation(ctx context.Context, id string, fullName string, department Department) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetPendingEmail(ctx context.Context, id, email, tokenHash string, expiresAt time.Time) error
	ConfirmPendingEmail(ctx context.Context, tokenHash string) (User, error)
	Delete(ctx context.Context, id string) error
}
