package worktime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kualaLumpur(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)
	return loc
}

func TestRemainingWorkTime(t *testing.T) {
	loc := kualaLumpur(t)
	calc := New(loc)
	clockIn := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)

	tests := []struct {
		name      string
		reference time.Time
		want      Remaining
	}{
		{"before clock in", clockIn.Add(-time.Minute), Remaining{}},
		{"exactly at clock in", clockIn, Remaining{Hours: 9}},
		{"mid morning", time.Date(2024, 3, 4, 15, 0, 0, 0, loc), Remaining{Hours: 3}},
		{"one second before end", clockIn.Add(9*time.Hour - time.Second), Remaining{Seconds: 1}},
		{"exactly at end", clockIn.Add(9 * time.Hour), Remaining{}},
		{"after end", clockIn.Add(10 * time.Hour), Remaining{}},
		{"mixed components", clockIn.Add(2*time.Hour + 14*time.Minute + 31*time.Second), Remaining{Hours: 6, Minutes: 45, Seconds: 29}},
		{"sub second truncated", clockIn.Add(500 * time.Millisecond), Remaining{Hours: 8, Minutes: 59, Seconds: 59}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.RemainingWorkTime(clockIn, tt.reference))
		})
	}
}

func TestRemainingWorkTime_ZoneIndependent(t *testing.T) {
	loc := kualaLumpur(t)
	calc := New(loc)

	clockInUTC := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	reference := time.Date(2024, 3, 4, 15, 30, 0, 0, loc)

	got := calc.RemainingWorkTime(clockInUTC, reference)
	assert.Equal(t, Remaining{Hours: 2, Minutes: 30}, got)
	assert.Equal(t, 2*time.Hour+30*time.Minute, got.Duration())
	assert.Equal(t, "02:30:00", got.String())
}

func TestRemaining_UsesInjectedClock(t *testing.T) {
	loc := kualaLumpur(t)
	clockIn := time.Date(2024, 3, 4, 8, 30, 0, 0, loc)
	now := clockIn.Add(8 * time.Hour)

	calc := New(loc, WithNow(func() time.Time { return now }))
	assert.Equal(t, Remaining{Hours: 1}, calc.Remaining(clockIn))
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, loc), calc.Today())
}

func TestRemaining_CustomHours(t *testing.T) {
	calc := New(time.UTC, WithHours(HalfDayWorkHours, 0))
	clockIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 4*time.Hour, calc.Span())
	assert.Equal(t, Remaining{Hours: 4}, calc.RemainingWorkTime(clockIn, clockIn))
	assert.True(t, calc.RemainingWorkTime(clockIn, clockIn.Add(4*time.Hour)).IsZero())
}

func TestRemainingFromString(t *testing.T) {
	calc := New(time.UTC)
	reference := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	got, err := calc.RemainingFromString("2024-03-04 09:00:00Z", reference)
	require.NoError(t, err)
	assert.Equal(t, Remaining{Hours: 6}, got)

	_, err = calc.RemainingFromString("yesterday-ish", reference)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "yesterday-ish", inputErr.Value)
}

func TestParseInstant(t *testing.T) {
	valid := []string{
		"2024-03-04T09:00:00Z",
		"2024-03-04T09:00:00+08:00",
		"2024-03-04T09:00:00.123Z",
		"2024-03-04 09:00:00Z",
		"2024-03-04 09:00:00+08:00",
		"2024-03-04 09:00:00",
	}
	for _, v := range valid {
		_, err := ParseInstant(v)
		assert.NoError(t, err, v)
	}

	invalid := []string{"", "   ", "2024-03-04", "09:00", "2024-13-01T00:00:00Z"}
	for _, v := range invalid {
		_, err := ParseInstant(v)
		assert.Error(t, err, v)
	}
}

func TestStamp_TruncatesSeconds(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 12, 45, 999, time.UTC)
	calc := New(time.UTC, WithNow(func() time.Time { return now }))
	assert.Equal(t, time.Date(2024, 3, 4, 9, 12, 0, 0, time.UTC), calc.Stamp())
}
