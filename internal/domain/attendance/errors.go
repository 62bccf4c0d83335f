package attendance

import "errors"

// Attendance domain errors
var (
	// Day flow errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrLunchAlreadyTaken = errors.New("you have already taken your lunch break today")
	ErrNotOnLunch        = errors.New("you are not on a lunch break")
	ErrOnLunch           = errors.New("you are still on your lunch break")

	// General errors
	ErrRecordNotFound         = errors.New("attendance record not found")
	ErrDeleteNotPermitted     = errors.New("record not deletable by caller or does not exist")
	ErrDeleteManyNotPermitted = errors.New("records not deletable by caller or do not exist")
	ErrRecordAccessDenied     = errors.New("you do not have permission to access this record")
	ErrRecordExists           = errors.New("a record for this employee and work date already exists")
)
