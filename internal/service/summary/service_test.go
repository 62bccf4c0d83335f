package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/worktime"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummaryRepository struct {
	summaries map[string]summary.AllTimeSummary
	daily     []summary.DailyData
	gotStart  time.Time
	gotEnd    time.Time
}

func (f *fakeSummaryRepository) GetAllTime(ctx context.Context, employeeID string) (summary.AllTimeSummary, error) {
	s, ok := f.summaries[employeeID]
	if !ok {
		return summary.AllTimeSummary{}, summary.ErrSummaryNotFound
	}
	return s, nil
}

func (f *fakeSummaryRepository) GetDailyData(ctx context.Context, employeeID string, start, end time.Time) ([]summary.DailyData, error) {
	f.gotStart, f.gotEnd = start, end
	return f.daily, nil
}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

func newService(t *testing.T) (summary.SummaryService, *fakeSummaryRepository) {
	t.Helper()
	repo := &fakeSummaryRepository{
		summaries: map[string]summary.AllTimeSummary{
			"EMP001": {
				EmployeeID:           "EMP001",
				TotalDays:            22,
				TotalHours:           176,
				AvgDailyHours:        8,
				HomeDays:             12,
				OfficeDays:           10,
				HomeWorkPercentage:   54.55,
				OfficeWorkPercentage: 45.45,
				AvgLunchMinutes:      floatPtr(42.5),
				HomeWorkDates:        []string{"2024-07-01"},
				OfficeWorkDates:      []string{"2024-07-02"},
				PublicHolidaysDates:  []summary.PublicHoliday{{Date: "2024-07-09", Name: "Independence Day"}},
				FirstWorkDate:        strPtr("2024-06-03"),
			},
			"EMP002": {EmployeeID: "EMP002", TotalDays: 3, HomeWorkPercentage: 33.33, OfficeWorkPercentage: 66.67},
		},
	}
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	clock := worktime.New(time.UTC, worktime.WithNow(func() time.Time { return now }))
	return NewSummaryService(repo, export.NewDefaultRegistry(), clock, summary.DefaultPolicy()), repo
}

func contextFor(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "1h", "168h", false)
	raw, _, err := svc.GenerateAccessToken("user-"+employeeID, employeeID+"@example.com", employeeID, role)
	require.NoError(t, err)
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), raw)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGetAllTime_Access(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name       string
		caller     string
		role       user.Role
		employeeID string
		wantErr    error
	}{
		{"own summary", "EMP001", user.RoleEmployee, "EMP001", nil},
		{"someone else's summary", "EMP002", user.RoleEmployee, "EMP001", summary.ErrSummaryAccessDenied},
		{"admin", "ADM001", user.RoleAdmin, "EMP001", nil},
		{"missing", "ADM001", user.RoleAdmin, "EMP404", summary.ErrSummaryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetAllTime(contextFor(t, tt.caller, tt.role), tt.employeeID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.employeeID, got.EmployeeID)
		})
	}
}

func TestGetCompliance(t *testing.T) {
	svc, _ := newService(t)
	admin := contextFor(t, "ADM001", user.RoleAdmin)

	got, err := svc.GetCompliance(admin, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, summary.ComplianceRemoteAbove, got.Compliance.Summary)
	assert.Equal(t, "Office: 45% | Home: 55%", got.Compliance.Note)
	assert.False(t, got.InsufficientData)
	assert.Equal(t, summary.DefaultPolicy(), got.Policy)

	got, err = svc.GetCompliance(admin, "EMP002")
	require.NoError(t, err)
	assert.Equal(t, summary.ComplianceWithin, got.Compliance.Summary)
	assert.True(t, got.InsufficientData)
}

func TestGetDailyData_ResolvesTimeframe(t *testing.T) {
	svc, repo := newService(t)
	repo.daily = []summary.DailyData{{Date: "2024-07-15", HoursWorked: floatPtr(8.5)}}

	got, err := svc.GetDailyData(contextFor(t, "EMP001", user.RoleEmployee), summary.DailyDataFilter{EmployeeID: "EMP001", Timeframe: 7})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-09", got.StartDate)
	assert.Equal(t, "2024-07-15", got.EndDate)
	assert.Equal(t, "2024-07-09", repo.gotStart.Format("2006-01-02"))
	assert.Len(t, got.Records, 1)
}

func TestGetDailyData_Errors(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetDailyData(contextFor(t, "EMP001", user.RoleEmployee), summary.DailyDataFilter{EmployeeID: "EMP001", Timeframe: 12})
	assert.Error(t, err)

	_, err = svc.GetDailyData(contextFor(t, "EMP002", user.RoleEmployee), summary.DailyDataFilter{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, summary.ErrSummaryAccessDenied)
}

func TestGetDailyData_EmptyIsNotNil(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.GetDailyData(contextFor(t, "EMP001", user.RoleEmployee), summary.DailyDataFilter{EmployeeID: "EMP001"})
	require.NoError(t, err)
	assert.NotNil(t, got.Records)
	assert.Empty(t, got.Records)
}

func TestGetCalendar(t *testing.T) {
	svc, _ := newService(t)

	req := summary.CalendarRequest{EmployeeID: "EMP001", Month: "2024-07"}
	require.NoError(t, req.Validate())

	got, err := svc.GetCalendar(contextFor(t, "EMP001", user.RoleEmployee), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-07", got.Month)
	require.Len(t, got.Days, 31)
	assert.Equal(t, summary.DayHome, got.Days[0].Type)
	assert.Equal(t, summary.DayHoliday, got.Days[8].Type)
	assert.Equal(t, "Independence Day", got.Days[8].Holiday)
	assert.Equal(t, summary.DayToday, got.Days[14].Type)
	assert.Equal(t, summary.DayUnknown, got.Days[15].Type)
}

func TestExport_CSV(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.Export(contextFor(t, "EMP001", user.RoleEmployee), summary.ExportRequest{EmployeeID: "EMP001", Format: export.FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, "attendance_summary_EMP001_2024-07-15.csv", got.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", got.ContentType)

	lines := strings.Split(string(got.Content), "\r\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "employee_id;total_days;total_hours;"))
	assert.True(t, strings.HasPrefix(lines[1], "EMP001;22;176;8;"))
	assert.Contains(t, lines[1], "2024-07-09: Independence Day")
}

func TestExport_UnsupportedFormat(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Export(contextFor(t, "EMP001", user.RoleEmployee), summary.ExportRequest{EmployeeID: "EMP001", Format: "pdf"})
	var cfgErr *export.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestExport_Denied(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Export(contextFor(t, "EMP002", user.RoleEmployee), summary.ExportRequest{EmployeeID: "EMP001", Format: export.FormatXLSX})
	assert.ErrorIs(t, err, summary.ErrSummaryAccessDenied)
}
