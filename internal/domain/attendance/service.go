package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The acting employee is read from the request's JWT claims.
type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error)
	LunchOut(ctx context.Context) (RecordResponse, error)
	LunchIn(ctx context.Context) (RecordResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error)

	// Today returns the current day's record with its status and remaining work time
	Today(ctx context.Context) (TodayResponse, error)

	EditRemarks(ctx context.Context, req EditRemarksRequest) (RecordResponse, error)
	EditRecord(ctx context.Context, req EditRecordRequest) (RecordResponse, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, req DeleteManyRequest) (int64, error)
	List(ctx context.Context, params ListParams) (Page[RecordResponse], error)
}
