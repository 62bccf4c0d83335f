package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepositoryImpl{db: db}
}

const recordColumns = `
	r.id, r.employee_id, r.work_date, r.work_mode,
	r.clock_in, r.clock_out, r.lunch_out, r.lunch_in,
	r.remarks, r.is_on_leave, r.created_at, r.updated_at`

// listColumns maps sortable and filterable fields to their qualified column.
var listColumns = map[string]string{
	"work_date":   "r.work_date",
	"work_mode":   "r.work_mode",
	"clock_in":    "r.clock_in",
	"clock_out":   "r.clock_out",
	"lunch_out":   "r.lunch_out",
	"lunch_in":    "r.lunch_in",
	"employee_id": "r.employee_id",
	"remarks":     "r.remarks",
	"created_at":  "r.created_at",
	"full_name":   "u.full_name",
	"department":  "u.department",
}

func scanRecord(row pgx.Row, extra ...any) (attendance.Record, error) {
	var rec attendance.Record
	var workMode string
	var remarks *string
	dest := []any{
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &workMode,
		&rec.ClockIn, &rec.ClockOut, &rec.LunchOut, &rec.LunchIn,
		&remarks, &rec.IsOnLeave, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return attendance.Record{}, err
	}
	rec.WorkMode = attendance.WorkMode(workMode)
	rec.Remarks = attendance.RemarkFromStored(remarks)
	return rec, nil
}

// Create implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records AS r (
			employee_id, work_date, work_mode, clock_in, clock_out,
			lunch_out, lunch_in, remarks, is_on_leave
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.WorkDate,
		string(record.WorkMode),
		record.ClockIn,
		record.ClockOut,
		record.LunchOut,
		record.LunchIn,
		record.Remarks.Value(),
		record.IsOnLeave,
	))
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return attendance.Record{}, attendance.ErrRecordExists
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		WHERE r.employee_id = $1 AND r.work_date = $2
	`
	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// Update implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records AS r
		SET work_mode = $1, clock_in = $2, clock_out = $3, lunch_out = $4, lunch_in = $5,
			remarks = $6, is_on_leave = $7, updated_at = NOW()
		WHERE r.id = $8
		RETURNING ` + recordColumns

	updated, err := scanRecord(q.QueryRow(ctx, query,
		string(record.WorkMode),
		record.ClockIn,
		record.ClockOut,
		record.LunchOut,
		record.LunchIn,
		record.Remarks.Value(),
		record.IsOnLeave,
		record.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// DeleteMany implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List implements attendance.RecordRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, params attendance.ListParams, employeeID *string) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if employeeID != nil {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}

	for field, value := range params.Filters {
		column, ok := listColumns[field]
		if !ok || value == "" {
			continue
		}
		switch attendance.FilterableFields[field] {
		case attendance.FilterGTE:
			date, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid %s filter: %w", field, err)
			}
			baseWhere += fmt.Sprintf(" AND %s >= $%d", column, argIdx)
			args = append(args, date)
		case attendance.FilterEQ:
			baseWhere += fmt.Sprintf(" AND %s = $%d", column, argIdx)
			args = append(args, value)
		case attendance.FilterILike:
			baseWhere += fmt.Sprintf(" AND %s ILIKE $%d", column, argIdx)
			args = append(args, "%"+value+"%")
		default:
			continue
		}
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records r
		LEFT JOIN users u ON u.employee_id = r.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	// Build ORDER BY
	orderByField, ok := listColumns[params.SortBy]
	if !ok {
		orderByField = listColumns[attendance.DefaultSortBy]
	}
	sortOrder := "DESC"
	if strings.ToLower(params.SortDirection) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, u.full_name, u.department
		FROM attendance_records r
		LEFT JOIN users u ON u.employee_id = r.employee_id
		WHERE %s
		ORDER BY %s %s, r.id %s
		LIMIT $%d OFFSET $%d
	`, recordColumns, baseWhere, orderByField, sortOrder, sortOrder, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var fullName, department *string
		rec, err := scanRecord(rows, &fullName, &department)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		if employeeID == nil {
			rec.FullName = fullName
			rec.Department = department
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}
