package summary

const (
	MinDaysForSummaries   = 7
	DefaultChartTimeframe = 30

	AttendanceRateGood      = 95
	AttendanceRateWarning   = 90
	ClockInVariationGood    = 15
	ClockInVariationWarning = 45
)

// Timeframes are the accepted day windows for daily data charts.
var Timeframes = []int{7, 30, 90, 180, 365}

type PublicHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// AllTimeSummary is one row of employee_analytics_summary_all_time_view.
type AllTimeSummary struct {
	EmployeeID                string          `json:"employee_id"`
	TotalDays                 int             `json:"total_days"`
	TotalHours                float64         `json:"total_hours"`
	AvgDailyHours             float64         `json:"avg_daily_hours"`
	LeaveDays                 int             `json:"leave_days"`
	LeaveRate                 float64         `json:"leave_rate"`
	LeaveDates                []string        `json:"leave_dates"`
	AvgLunchMinutes           *float64        `json:"avg_lunch_minutes"`
	HomeDays                  int             `json:"home_days"`
	OfficeDays                int             `json:"office_days"`
	RequiredWorkdays          int             `json:"required_workdays"`
	HomeWorkDates             []string        `json:"home_work_dates"`
	OfficeWorkDates           []string        `json:"office_work_dates"`
	HomeWorkPercentage        float64         `json:"home_work_percentage"`
	OfficeWorkPercentage      float64         `json:"office_work_percentage"`
	AttendanceRate            float64         `json:"attendance_rate"`
	AvgClockInTime            *string         `json:"avg_clock_in_time"`
	AvgClockOutTime           *string         `json:"avg_clock_out_time"`
	ClockInConsistencyMinutes *float64        `json:"clock_in_consistency_minutes"`
	IncompleteRecordsDates    []string        `json:"incomplete_records_dates"`
	PreferredHomeDays         []string        `json:"preferred_home_days"`
	PublicHolidaysDates       []PublicHoliday `json:"public_holidays_dates"`
	FirstWorkDate             *string         `json:"first_work_date"`
}

// DailyData is one row returned by get_daily_data_record.
type DailyData struct {
	Date              string   `json:"date"`
	HoursWorked       *float64 `json:"hours_worked"`
	LunchTakenMinutes *float64 `json:"lunch_taken_minutes"`
}

type DayType string

const (
	DayToday      DayType = "today"
	DayHoliday    DayType = "holiday"
	DayWeekend    DayType = "weekend"
	DayIncomplete DayType = "incomplete"
	DayLeave      DayType = "leave"
	DayHome       DayType = "home"
	DayOffice     DayType = "office"
	DayUnknown    DayType = "unknown"
)
