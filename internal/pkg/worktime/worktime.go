package worktime

import (
	"fmt"
	"strings"
	"time"
)

const (
	FullDayWorkHours     = 8
	HalfDayWorkHours     = 4
	LunchHours           = 1
	LunchMinIdealMinutes = 40
)

// Remaining is what is left of the scheduled work day, truncated to whole seconds.
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func (r Remaining) IsZero() bool {
	return r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

func (r Remaining) Duration() time.Duration {
	return time.Duration(r.Hours)*time.Hour + time.Duration(r.Minutes)*time.Minute + time.Duration(r.Seconds)*time.Second
}

func (r Remaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// InputError is returned when a timestamp cannot be parsed.
type InputError struct {
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid timestamp %q", e.Value)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Calculator computes remaining work time in a single configured time zone.
type Calculator struct {
	RegularHours int
	LunchHours   int
	Location     *time.Location
	Now          func() time.Time
}

type Option func(*Calculator)

func WithNow(now func() time.Time) Option {
	return func(c *Calculator) {
		c.Now = now
	}
}

func WithHours(regular, lunch int) Option {
	return func(c *Calculator) {
		c.RegularHours = regular
		c.LunchHours = lunch
	}
}

func New(loc *time.Location, opts ...Option) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	c := &Calculator{
		RegularHours: FullDayWorkHours,
		LunchHours:   LunchHours,
		Location:     loc,
		Now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Span is the full scheduled day measured from clock-in, lunch included.
func (c *Calculator) Span() time.Duration {
	return time.Duration(c.RegularHours+c.LunchHours) * time.Hour
}

// WorkEnd returns the instant the scheduled day ends, in the calculator's zone.
func (c *Calculator) WorkEnd(clockIn time.Time) time.Time {
	return clockIn.In(c.Location).Add(c.Span())
}

// RemainingWorkTime returns the time left between reference and the end of the
// work day that started at clockIn. Outside [clockIn, workEnd] it is zero.
func (c *Calculator) RemainingWorkTime(clockIn, reference time.Time) Remaining {
	start := clockIn.In(c.Location)
	ref := reference.In(c.Location)
	end := start.Add(c.Span())

	total := int64(end.Sub(ref) / time.Second)
	if total <= 0 {
		return Remaining{}
	}
	if ref.Before(start) {
		return Remaining{}
	}

	return Remaining{
		Hours:   int(total / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// Remaining uses the calculator's clock as the reference time.
func (c *Calculator) Remaining(clockIn time.Time) Remaining {
	return c.RemainingWorkTime(clockIn, c.Now())
}

// RemainingFromString parses clockIn before computing; malformed input is an error, never zero.
func (c *Calculator) RemainingFromString(clockIn string, reference time.Time) (Remaining, error) {
	start, err := ParseInstant(clockIn)
	if err != nil {
		return Remaining{}, err
	}
	return c.RemainingWorkTime(start, reference), nil
}

// Today returns the calendar date of now in the calculator's zone.
func (c *Calculator) Today() time.Time {
	now := c.Now().In(c.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.Location)
}

// Stamp is the current instant truncated to the minute, in UTC.
func (c *Calculator) Stamp() time.Time {
	return c.Now().UTC().Truncate(time.Minute)
}

var instantLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseInstant accepts RFC3339 and the "YYYY-MM-DD HH:MM:SSZ" storage format.
// Values without an offset are read as UTC.
func ParseInstant(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, &InputError{Value: s}
	}
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &InputError{Value: s, Err: lastErr}
}
