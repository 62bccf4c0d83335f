package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrEmployeeIDExists        = errors.New("employee id already registered")
	ErrEmailUnchanged          = errors.New("new email is the same as the current email")
	ErrEmailChangeTokenInvalid = errors.New("email change link is invalid or has expired")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotDeleteSelf        = errors.New("you cannot delete your own account")
)
