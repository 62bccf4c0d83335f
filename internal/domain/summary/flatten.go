package summary

import (
	"math"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/export"
)

const (
	listSeparator = "; "
	emptyValue    = "-"
)

// ConvertSummaryToFlatRow flattens a summary into an ordered row of strings.
// Rates and percentages get two decimals, other numbers their shortest form,
// and empty lists or missing values render as "-".
func ConvertSummaryToFlatRow(s AllTimeSummary) export.Row {
	row := export.NewRow()
	row.Set("employee_id", s.EmployeeID)
	row.Set("total_days", strconv.Itoa(s.TotalDays))
	row.Set("total_hours", natural(s.TotalHours))
	row.Set("avg_daily_hours", natural(s.AvgDailyHours))
	row.Set("leave_days", strconv.Itoa(s.LeaveDays))
	row.Set("leave_rate", fixed2(s.LeaveRate))
	row.Set("leave_dates", joinList(s.LeaveDates))
	row.Set("avg_lunch_minutes", naturalPtr(s.AvgLunchMinutes))
	row.Set("home_days", strconv.Itoa(s.HomeDays))
	row.Set("office_days", strconv.Itoa(s.OfficeDays))
	row.Set("required_workdays", strconv.Itoa(s.RequiredWorkdays))
	row.Set("home_work_dates", joinList(s.HomeWorkDates))
	row.Set("office_work_dates", joinList(s.OfficeWorkDates))
	row.Set("home_work_percentage", fixed2(s.HomeWorkPercentage))
	row.Set("office_work_percentage", fixed2(s.OfficeWorkPercentage))
	row.Set("attendance_rate", fixed2(s.AttendanceRate))
	row.Set("avg_clock_in_time", stringPtr(s.AvgClockInTime))
	row.Set("avg_clock_out_time", stringPtr(s.AvgClockOutTime))
	row.Set("clock_in_consistency_minutes", naturalPtr(s.ClockInConsistencyMinutes))
	row.Set("incomplete_records_dates", joinList(s.IncompleteRecordsDates))
	row.Set("preferred_home_days", joinList(s.PreferredHomeDays))
	row.Set("public_holidays_dates", joinHolidays(s.PublicHolidaysDates))
	row.Set("first_work_date", stringPtr(s.FirstWorkDate))
	return row
}

func natural(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func naturalPtr(v *float64) string {
	if v == nil {
		return emptyValue
	}
	return natural(*v)
}

func fixed2(v float64) string {
	return strconv.FormatFloat(roundHalfUp(v, 2), 'f', 2, 64)
}

// roundHalfUp rounds to places decimals with halves going away from zero,
// so 0.125 becomes 0.13 and 62.5 becomes 63. strconv and fmt round halves to even.
func roundHalfUp(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

func stringPtr(v *string) string {
	if v == nil {
		return emptyValue
	}
	return *v
}

func joinList(items []string) string {
	if len(items) == 0 {
		return emptyValue
	}
	return strings.Join(items, listSeparator)
}

func joinHolidays(holidays []PublicHoliday) string {
	if len(holidays) == 0 {
		return emptyValue
	}
	parts := make([]string, len(holidays))
	for i, h := range holidays {
		parts[i] = h.Date + ": " + h.Name
	}
	return strings.Join(parts, listSeparator)
}
