package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// Tables owned by the API, children first.
var ownedTables = []string{
	"password_reset_tokens",
	"refresh_tokens",
	"attendance_records",
	"users",
}

// setupTestDB connects to TEST_DATABASE_URL and empties the owned tables.
// The schema in migrations/ must already be applied.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	for _, table := range ownedTables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
	require.NoError(t, tx.Commit(ctx))

	return db
}

func createTestUser(t *testing.T, repo user.UserRepository, employeeID string, role user.Role) user.User {
	t.Helper()
	hash := "$2a$04$placeholderhashplaceholderhashplaceholderhashpla"
	u, err := repo.Create(context.Background(), user.User{
		EmployeeID:   employeeID,
		Email:        employeeID + "@example.com",
		FullName:     "Employee " + employeeID,
		Department:   user.DepartmentEngineering,
		Role:         role,
		PasswordHash: &hash,
	})
	require.NoError(t, err)
	return u
}

func newUserRepository(db *database.DB) user.UserRepository {
	return postgresql.NewUserRepository(db)
}
