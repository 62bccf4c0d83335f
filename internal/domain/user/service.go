package user

import "context"

type UserService interface {
	Me(ctx context.Context) (UserResponse, error)
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	UpdateBasicInformation(ctx context.Context, req UpdateBasicInformationRequest) (UserResponse, error)
	RequestEmailChange(ctx context.Context, req UpdateEmailRequest) error
	ConfirmEmailChange(ctx context.Context, req ConfirmEmailChangeRequest) (UserResponse, error)
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
	Delete(ctx context.Context, id string) error
}
