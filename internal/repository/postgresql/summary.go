package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// GetAllTime implements summary.SummaryRepository.
func (r *summaryRepositoryImpl) GetAllTime(ctx context.Context, employeeID string) (summary.AllTimeSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			employee_id, total_days::int, total_hours::float8, avg_daily_hours::float8,
			leave_days::int, leave_rate::float8, COALESCE(leave_dates::text[], '{}'),
			avg_lunch_minutes::float8, home_days::int, office_days::int, required_workdays::int,
			COALESCE(home_work_dates::text[], '{}'), COALESCE(office_work_dates::text[], '{}'),
			home_work_percentage::float8, office_work_percentage::float8, attendance_rate::float8,
			avg_clock_in_time::text, avg_clock_out_time::text, clock_in_consistency_minutes::float8,
			COALESCE(incomplete_records_dates::text[], '{}'), COALESCE(preferred_home_days::text[], '{}'),
			COALESCE(public_holidays_dates::jsonb, '[]'::jsonb), first_work_date::text
		FROM employee_analytics_summary_all_time_view
		WHERE employee_id = $1
	`

	var s summary.AllTimeSummary
	var holidays []byte
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.EmployeeID, &s.TotalDays, &s.TotalHours, &s.AvgDailyHours,
		&s.LeaveDays, &s.LeaveRate, &s.LeaveDates,
		&s.AvgLunchMinutes, &s.HomeDays, &s.OfficeDays, &s.RequiredWorkdays,
		&s.HomeWorkDates, &s.OfficeWorkDates,
		&s.HomeWorkPercentage, &s.OfficeWorkPercentage, &s.AttendanceRate,
		&s.AvgClockInTime, &s.AvgClockOutTime, &s.ClockInConsistencyMinutes,
		&s.IncompleteRecordsDates, &s.PreferredHomeDays,
		&holidays, &s.FirstWorkDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.AllTimeSummary{}, summary.ErrSummaryNotFound
		}
		return summary.AllTimeSummary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	if err := json.Unmarshal(holidays, &s.PublicHolidaysDates); err != nil {
		return summary.AllTimeSummary{}, fmt.Errorf("failed to decode public holidays: %w", err)
	}

	return s, nil
}

// GetDailyData implements summary.SummaryRepository.
// get_daily_data_record returns a json array of {date, hours_worked, lunch_taken_minutes}.
func (r *summaryRepositoryImpl) GetDailyData(ctx context.Context, employeeID string, start, end time.Time) ([]summary.DailyData, error) {
	q := GetQuerier(ctx, r.db)

	var raw []byte
	err := q.QueryRow(ctx, `SELECT COALESCE(get_daily_data_record($1, $2, $3)::jsonb, '[]'::jsonb)`,
		employeeID, start.Format("2006-01-02"), end.Format("2006-01-02"),
	).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily data: %w", err)
	}

	var data []summary.DailyData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode daily data: %w", err)
	}
	return data, nil
}
