package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h", false)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "ana@example.com", "EMP001", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	verified, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), verified, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "user-1", Email: "ana@example.com", EmployeeID: "EMP001", Role: user.RoleAdmin}, claims)
	assert.True(t, claims.Can(user.PermissionAttendanceRecordsDelete))
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h", false)

	a, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestInvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever", "168h", false)
	_, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", "EMP001", user.RoleEmployee)
	assert.Error(t, err)
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)

	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{"user_id": "user-1", "type": "refresh"})
	require.NoError(t, err)
	_, err = ClaimsFromContext(jwtauth.NewContext(context.Background(), token, nil))
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestCookies(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h", true)

	c := svc.RefreshTokenCookie("abc", 1700000000)
	assert.Equal(t, "refresh_token", c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	cleared := svc.ClearRefreshTokenCookie()
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}
