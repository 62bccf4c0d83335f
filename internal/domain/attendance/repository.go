package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access methods for attendance records.
type RecordRepository interface {
	// Create inserts a record; a duplicate (employee_id, work_date) returns ErrRecordExists
	Create(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate retrieves the record of an employee for one work date
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Record, error)

	// Update writes every mutable column of the record identified by ID
	Update(ctx context.Context, record Record) (Record, error)

	// Delete removes one record; no matching row returns ErrRecordNotFound
	Delete(ctx context.Context, id int64) error

	// DeleteMany removes records by ID and returns how many were deleted
	DeleteMany(ctx context.Context, ids []int64) (int64, error)

	// List pages through records. A nil employeeID lists every employee, joined with user details
	List(ctx context.Context, params ListParams, employeeID *string) ([]Record, int64, error)
}
