package attendance

import (
	"time"
)

type WorkMode string

const (
	WorkModeOffice WorkMode = "office"
	WorkModeHome   WorkMode = "home"
)

func (m WorkMode) IsValid() bool {
	return m == WorkModeOffice || m == WorkModeHome
}

type Status string

const (
	StatusNotClockedIn Status = "not-clocked-in"
	StatusClockedIn    Status = "clocked-in"
	StatusOnLunch      Status = "on-lunch"
	StatusClockedOut   Status = "clocked-out"
)

// Record is one employee's attendance for one work date.
// (employee_id, work_date) is unique.
type Record struct {
	ID         int64
	EmployeeID string
	WorkDate   time.Time
	WorkMode   WorkMode
	ClockIn    *time.Time
	ClockOut   *time.Time
	LunchOut   *time.Time
	LunchIn    *time.Time
	Remarks    Remark
	IsOnLeave  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	FullName   *string
	Department *string
}

// Status derives the day state from which timestamps are set.
func (r *Record) Status() Status {
	switch {
	case r == nil || r.ClockIn == nil:
		return StatusNotClockedIn
	case r.ClockOut != nil:
		return StatusClockedOut
	case r.LunchOut != nil && r.LunchIn == nil:
		return StatusOnLunch
	default:
		return StatusClockedIn
	}
}

// LunchTaken reports whether lunch_out has been recorded.
func (r *Record) LunchTaken() bool {
	return r.LunchOut != nil
}
