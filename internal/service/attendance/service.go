package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/worktime"
)

type AttendanceServiceImpl struct {
	attendance.RecordRepository
	clock *worktime.Calculator
}

func NewAttendanceService(recordRepository attendance.RecordRepository, clock *worktime.Calculator) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		RecordRepository: recordRepository,
		clock:            clock,
	}
}

// todayRecord loads the caller's record for the current local work date.
// A missing record is not an error; it returns nil.
func (s *AttendanceServiceImpl) todayRecord(ctx context.Context, employeeID string) (*attendance.Record, error) {
	rec, err := s.RecordRepository.GetByEmployeeAndDate(ctx, employeeID, s.clock.Today())
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}
	return &rec, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.RecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	existing, err := s.todayRecord(ctx, claims.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	}

	stamp := s.clock.Stamp()
	created, err := s.RecordRepository.Create(ctx, attendance.Record{
		EmployeeID: claims.EmployeeID,
		WorkDate:   s.clock.Today(),
		WorkMode:   attendance.WorkMode(req.WorkMode),
		ClockIn:    &stamp,
		Remarks:    attendance.NoRemark(),
	})
	if err != nil {
		if errors.Is(err, attendance.ErrRecordExists) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}

	return attendance.ToRecordResponse(created), nil
}

// LunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LunchOut(ctx context.Context) (attendance.RecordResponse, error) {
	return s.transition(ctx, func(rec *attendance.Record, stamp time.Time) error {
		switch {
		case rec.ClockOut != nil:
			return attendance.ErrAlreadyClockedOut
		case rec.LunchTaken():
			return attendance.ErrLunchAlreadyTaken
		}
		rec.LunchOut = &stamp
		return nil
	})
}

// LunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LunchIn(ctx context.Context) (attendance.RecordResponse, error) {
	return s.transition(ctx, func(rec *attendance.Record, stamp time.Time) error {
		switch rec.Status() {
		case attendance.StatusClockedOut:
			return attendance.ErrAlreadyClockedOut
		case attendance.StatusOnLunch:
			rec.LunchIn = &stamp
			return nil
		}
		return attendance.ErrNotOnLunch
	})
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.RecordResponse, error) {
	return s.transition(ctx, func(rec *attendance.Record, stamp time.Time) error {
		switch rec.Status() {
		case attendance.StatusClockedOut:
			return attendance.ErrAlreadyClockedOut
		case attendance.StatusOnLunch:
			return attendance.ErrOnLunch
		}
		remark := req.Remarks()
		rec.ClockOut = &stamp
		rec.Remarks = remark
		rec.IsOnLeave = remark.IsLeave()
		return nil
	})
}

// transition applies one day-flow step to the caller's record for today.
func (s *AttendanceServiceImpl) transition(ctx context.Context, apply func(rec *attendance.Record, stamp time.Time) error) (attendance.RecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.todayRecord(ctx, claims.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.Status() == attendance.StatusNotClockedIn {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}

	if err := apply(rec, s.clock.Stamp()); err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := s.RecordRepository.Update(ctx, *rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update record: %w", err)
	}
	return attendance.ToRecordResponse(updated), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	rec, err := s.todayRecord(ctx, claims.EmployeeID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	response := attendance.TodayResponse{
		WorkDate: s.clock.Today().Format("2006-01-02"),
		Status:   rec.Status(),
	}
	if rec == nil {
		return response, nil
	}

	recordResponse := attendance.ToRecordResponse(*rec)
	response.Record = &recordResponse
	if rec.ClockIn != nil {
		workEnd := s.clock.WorkEnd(*rec.ClockIn).Format(time.RFC3339)
		response.WorkEnd = &workEnd
		if rec.ClockOut == nil {
			response.Remaining = s.clock.Remaining(*rec.ClockIn)
		}
	}
	return response, nil
}

// canActOn reports whether the caller may change records of employeeID.
func canActOn(claims jwt.Claims, employeeID string, permission user.Permission) bool {
	return claims.EmployeeID == employeeID || claims.Can(permission)
}

// EditRemarks implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EditRemarks(ctx context.Context, req attendance.EditRemarksRequest) (attendance.RecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !canActOn(claims, req.EmployeeID, user.PermissionAttendanceRecordsUpdate) {
		return attendance.RecordResponse{}, attendance.ErrRecordAccessDenied
	}

	rec, err := s.RecordRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date())
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	remark := req.Remark()
	rec.Remarks = remark
	rec.IsOnLeave = remark.IsLeave()

	updated, err := s.RecordRepository.Update(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to save remarks: %w", err)
	}
	return attendance.ToRecordResponse(updated), nil
}

// EditRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EditRecord(ctx context.Context, req attendance.EditRecordRequest) (attendance.RecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !canActOn(claims, req.EmployeeID, user.PermissionAttendanceRecordsUpdate) {
		return attendance.RecordResponse{}, attendance.ErrRecordAccessDenied
	}

	times := req.Times()
	rec, err := s.RecordRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, times.WorkDate)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	clockIn := times.ClockIn.UTC()
	rec.WorkMode = attendance.WorkMode(req.WorkMode)
	rec.ClockIn = &clockIn
	rec.LunchOut = utcPtr(times.LunchOut)
	rec.LunchIn = utcPtr(times.LunchIn)
	rec.ClockOut = utcPtr(times.ClockOut)

	updated, err := s.RecordRepository.Update(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to edit record: %w", err)
	}
	return attendance.ToRecordResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id int64) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.Can(user.PermissionAttendanceRecordsDelete) {
		return attendance.ErrDeleteNotPermitted
	}

	if err := s.RecordRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrDeleteNotPermitted
		}
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// DeleteMany implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteMany(ctx context.Context, req attendance.DeleteManyRequest) (int64, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if !claims.Can(user.PermissionAttendanceRecordsDelete) {
		return 0, attendance.ErrDeleteManyNotPermitted
	}

	deleted, err := s.RecordRepository.DeleteMany(ctx, req.ParsedIDs())
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	if deleted == 0 {
		return 0, attendance.ErrDeleteManyNotPermitted
	}
	return deleted, nil
}

// List implements attendance.AttendanceService.
// Callers without attendance_records.select only see their own records.
func (s *AttendanceServiceImpl) List(ctx context.Context, params attendance.ListParams) (attendance.Page[attendance.RecordResponse], error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.Page[attendance.RecordResponse]{}, err
	}

	var scope *string
	if !claims.Can(user.PermissionAttendanceRecordsSelect) {
		scope = &claims.EmployeeID
	}

	records, total, err := s.RecordRepository.List(ctx, params, scope)
	if err != nil {
		return attendance.Page[attendance.RecordResponse]{}, fmt.Errorf("failed to list records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToRecordResponse(rec))
	}
	return attendance.NewPage(responses, total, params.Page, params.PageSize), nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
