package auth

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type fakeUserRepository struct {
	users map[string]user.User
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "user-" + newUser.EmployeeID
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepository) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u, err := f.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}
	provider := "google"
	u.OAuthProvider, u.OAuthProviderID = &provider, &googleID
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepository) UpdateBasicInformation(ctx context.Context, id string, fullName string, department user.Department) (user.User, error) {
	return user.User{}, nil
}

func (f *fakeUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return nil
}

func (f *fakeUserRepository) SetPendingEmail(ctx context.Context, id, email, tokenHash string, expiresAt time.Time) error {
	return nil
}

func (f *fakeUserRepository) ConfirmPendingEmail(ctx context.Context, tokenHash string) (user.User, error) {
	return user.User{}, user.ErrEmailChangeTokenInvalid
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type storedToken struct {
	userID  string
	revoked bool
}

type fakeJWTRepository struct {
	tokens map[string]*storedToken
}

func (f *fakeJWTRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.tokens[postgresql.HashToken(token)] = &storedToken{userID: userID}
	return nil
}

func (f *fakeJWTRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	stored, ok := f.tokens[postgresql.HashToken(token)]
	if !ok {
		return "", true, nil
	}
	return stored.userID, stored.revoked, nil
}

func (f *fakeJWTRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	if stored, ok := f.tokens[postgresql.HashToken(token)]; ok {
		stored.revoked = true
	}
	return nil
}

func (f *fakeJWTRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	for _, stored := range f.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

type fakeResetRepository struct {
	tokens map[string]string
}

func (f *fakeResetRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.tokens[postgresql.HashToken(token)] = userID
	return nil
}

func (f *fakeResetRepository) Consume(ctx context.Context, token string) (string, error) {
	userID, ok := f.tokens[postgresql.HashToken(token)]
	if !ok {
		return "", postgresql.ErrResetTokenNotFound
	}
	delete(f.tokens, postgresql.HashToken(token))
	return userID, nil
}

type fakeEmailService struct {
	links []string
}

func (f *fakeEmailService) SendPasswordReset(to, fullName, resetLink, expiresAt string) error {
	f.links = append(f.links, resetLink)
	return nil
}

func (f *fakeEmailService) SendEmailChangeConfirmation(to, fullName, confirmLink, expiresAt string) error {
	f.links = append(f.links, confirmLink)
	return nil
}

type fixture struct {
	service auth.AuthService
	users   *fakeUserRepository
	tokens  *fakeJWTRepository
	resets  *fakeResetRepository
	mail    *fakeEmailService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)

	f := fixture{
		users: &fakeUserRepository{users: map[string]user.User{
			"user-EMP001": {ID: "user-EMP001", EmployeeID: "EMP001", Email: "ana@example.com", FullName: "Ana Lim", Department: user.DepartmentHR, Role: user.RoleEmployee, PasswordHash: &hashed},
			"user-EMP002": {ID: "user-EMP002", EmployeeID: "EMP002", Email: "ben@example.com", FullName: "Ben Ong", Department: user.DepartmentSales, Role: user.RoleEmployee},
		}},
		tokens: &fakeJWTRepository{tokens: map[string]*storedToken{}},
		resets: &fakeResetRepository{tokens: map[string]string{}},
		mail:   &fakeEmailService{},
	}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false)
	f.service = NewAuthService(nil, f.users, jwtService, f.tokens, f.resets, f.mail, "http://localhost:3000/")
	return f
}

var sessionReq = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "ana@example.com", "password123", nil},
		{"email is case insensitive", "ANA@example.com", "password123", nil},
		{"wrong password", "ana@example.com", "wrongpassword", auth.ErrInvalidCredentials},
		{"unknown user", "nobody@example.com", "password123", auth.ErrInvalidCredentials},
		{"google only account", "ben@example.com", "password123", auth.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: tt.email, Password: tt.password}, sessionReq)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)
		})
	}
}

func TestLoginWithGoogle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.LoginWithGoogle(ctx, "stranger@example.com", "google-id-1", sessionReq)
	assert.ErrorIs(t, err, auth.ErrGoogleAccountNotRegistered)

	resp, err := f.service.LoginWithGoogle(ctx, "ben@example.com", "google-id-456", sessionReq)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	linked := f.users.users["user-EMP002"]
	require.NotNil(t, linked.OAuthProvider)
	assert.Equal(t, "google", *linked.OAuthProvider)
	assert.Equal(t, "google-id-456", *linked.OAuthProviderID)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	login, err := f.service.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "password123"}, sessionReq)
	require.NoError(t, err)

	resp, err := f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())

	// An access token is not accepted in place of a refresh token
	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, f.service.Logout(ctx, login.RefreshToken))
	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestForgotPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "nobody@example.com"}))
	assert.Empty(t, f.mail.links)
	assert.Empty(t, f.resets.tokens)

	require.NoError(t, f.service.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "ana@example.com"}))
	require.Len(t, f.mail.links, 1)
	assert.True(t, strings.HasPrefix(f.mail.links[0], "http://localhost:3000/auth/reset-password?token="))

	link, err := url.Parse(f.mail.links[0])
	require.NoError(t, err)
	assert.Equal(t, "user-EMP001", f.resets.tokens[postgresql.HashToken(link.Query().Get("token"))])
}

// Integration tests below need a migrated database in TEST_DATABASE_URL.

func integrationDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	for _, table := range []string{"password_reset_tokens", "refresh_tokens", "attendance_records", "users"} {
		_, err := db.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
	return db
}

func newIntegrationService(db *database.DB, mail *fakeEmailService) (auth.AuthService, postgresql.JWTRepository) {
	jwtRepo := postgresql.NewJWTRepository(db)
	return NewAuthService(
		db,
		postgresql.NewUserRepository(db),
		jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false),
		jwtRepo,
		postgresql.NewPasswordResetRepository(db),
		mail,
		"http://localhost:3000",
	), jwtRepo
}

func TestAuthService_RegisterLoginLogout(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	authService, jwtRepo := newIntegrationService(db, &fakeEmailService{})

	registerReq := auth.RegisterRequest{
		FullName:        "Test User",
		EmployeeID:      fmt.Sprintf("EMP%d", time.Now().UnixNano()%100000),
		Department:      "Engineering",
		Email:           fmt.Sprintf("newuser-%d@example.com", time.Now().UnixNano()),
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
	}
	resp, err := authService.Register(ctx, registerReq, sessionReq)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = authService.Register(ctx, registerReq, sessionReq)
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	login, err := authService.Login(ctx, auth.LoginRequest{Email: registerReq.Email, Password: registerReq.Password}, sessionReq)
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, login.RefreshToken))
	_, isRevoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, isRevoked)
}

func TestAuthService_ResetPassword(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	mail := &fakeEmailService{}
	authService, jwtRepo := newIntegrationService(db, mail)

	registerReq := auth.RegisterRequest{
		FullName:        "Reset User",
		EmployeeID:      "EMP-RESET",
		Department:      "HR",
		Email:           "reset@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
	registered, err := authService.Register(ctx, registerReq, sessionReq)
	require.NoError(t, err)

	require.NoError(t, authService.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: registerReq.Email}))
	require.Len(t, mail.links, 1)
	link, err := url.Parse(mail.links[0])
	require.NoError(t, err)
	token := link.Query().Get("token")

	resetReq := auth.ResetPasswordRequest{Token: token, Password: "brand-new-pass", ConfirmPassword: "brand-new-pass"}
	require.NoError(t, authService.ResetPassword(ctx, resetReq))
	assert.ErrorIs(t, authService.ResetPassword(ctx, resetReq), auth.ErrResetTokenInvalid)

	_, isRevoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	_, err = authService.Login(ctx, auth.LoginRequest{Email: registerReq.Email, Password: "password123"}, sessionReq)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = authService.Login(ctx, auth.LoginRequest{Email: registerReq.Email, Password: "brand-new-pass"}, sessionReq)
	assert.NoError(t, err)
}
