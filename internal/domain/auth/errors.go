package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("Invalid email or password. Please try again.")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrTokenExpired               = errors.New("token has expired")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrResetTokenInvalid          = errors.New("password reset link is invalid or has expired")
	ErrUserNotFound               = errors.New("user not found")
	ErrEmailAlreadyExists         = errors.New("email already registered")
	ErrEmployeeIDAlreadyExists    = errors.New("employee id already registered")
	ErrGoogleLoginDisabled        = errors.New("google login is not configured")
	ErrGoogleAccountNotRegistered = errors.New("no account is registered with this google email, please sign up first")
)
