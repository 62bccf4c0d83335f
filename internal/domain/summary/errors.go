package summary

import "errors"

var (
	ErrSummaryNotFound     = errors.New("no attendance summary found for this employee")
	ErrSummaryAccessDenied = errors.New("you do not have permission to view this employee's summary")
)
