package postgresql_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := newUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, user.User{
		EmployeeID: "EMP001",
		Email:      "Ana.Lim@Example.com",
		FullName:   "Ana Lim",
		Department: user.DepartmentFinance,
		Role:       user.RoleEmployee,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ana.lim@example.com", created.Email)
	assert.Nil(t, created.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "ana.lim@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byEmployee, err := repo.GetByEmployeeID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmployee.ID)

	_, err = repo.GetByID(ctx, "0190a5c4-7b3e-7d6f-9a1b-2c3d4e5f6a7b")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UniqueViolations(t *testing.T) {
	db := setupTestDB(t)
	repo := newUserRepository(db)
	ctx := context.Background()
	createTestUser(t, repo, "EMP001", user.RoleEmployee)

	_, err := repo.Create(ctx, user.User{
		EmployeeID: "EMP002",
		Email:      "EMP001@example.com",
		FullName:   "Someone Else",
		Department: user.DepartmentSales,
		Role:       user.RoleEmployee,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.Create(ctx, user.User{
		EmployeeID: "EMP001",
		Email:      "other@example.com",
		FullName:   "Someone Else",
		Department: user.DepartmentSales,
		Role:       user.RoleEmployee,
	})
	assert.ErrorIs(t, err, user.ErrEmployeeIDExists)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := newUserRepository(db)
	ctx := context.Background()
	for _, id := range []string{"EMP001", "EMP002", "EMP003"} {
		createTestUser(t, repo, id, user.RoleEmployee)
	}

	users, total, err := repo.List(ctx, user.UserFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	search := "emp003"
	users, total, err = repo.List(ctx, user.UserFilter{Search: &search, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "EMP003", users[0].EmployeeID)
}

func TestUserRepository_EmailChange(t *testing.T) {
	db := setupTestDB(t)
	repo := newUserRepository(db)
	ctx := context.Background()
	u := createTestUser(t, repo, "EMP001", user.RoleEmployee)

	require.NoError(t, repo.SetPendingEmail(ctx, u.ID, "New.Address@example.com", "hash-1", time.Now().Add(time.Hour)))

	_, err := repo.ConfirmPendingEmail(ctx, "hash-unknown")
	assert.ErrorIs(t, err, user.ErrEmailChangeTokenInvalid)

	updated, err := repo.ConfirmPendingEmail(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "new.address@example.com", updated.Email)
	assert.Nil(t, updated.PendingEmail)

	// token is single use
	_, err = repo.ConfirmPendingEmail(ctx, "hash-1")
	assert.ErrorIs(t, err, user.ErrEmailChangeTokenInvalid)
}

func TestUserRepository_LinkGoogleAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := newUserRepository(db)
	ctx := context.Background()
	u := createTestUser(t, repo, "EMP001", user.RoleEmployee)

	linked, err := repo.LinkGoogleAccount(ctx, "google-123", strings.ToUpper(u.Email))
	require.NoError(t, err)
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-123", *linked.OAuthProviderID)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), user.ErrUserNotFound)
}

func TestUserRepository_RollsBackWithTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := newUserRepository(db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)
		createTestUser(t, repo, "EMP009", user.RoleEmployee)
		_, err := repo.Create(txCtx, user.User{
			EmployeeID: "EMP010",
			Email:      "emp010@example.com",
			FullName:   "Rolled Back",
			Department: user.DepartmentHR,
			Role:       user.RoleEmployee,
		})
		require.NoError(t, err)
		return user.ErrInsufficientPermissions
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = repo.GetByEmployeeID(ctx, "EMP010")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.GetByEmployeeID(ctx, "EMP009")
	assert.NoError(t, err)
}
