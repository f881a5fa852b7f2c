package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/attendance"
	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
)

// Service is the CRUD surface for attendance records. Bulk import lives
// in the import pipeline; this service covers manual corrections and
// reads.
type Service struct {
	attendanceRepo attendance.AttendanceRepository
	branchRepo     branch.BranchRepository
	loc            *time.Location
}

func NewService(attendanceRepo attendance.AttendanceRepository, branchRepo branch.BranchRepository, loc *time.Location) *Service {
	return &Service{attendanceRepo: attendanceRepo, branchRepo: branchRepo, loc: loc}
}

func (s *Service) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("invalid timestamp %q: %w", req.Timestamp, err)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeKey: req.EmployeeKey,
		FullName:    req.FullName,
		Department:  req.Department,
		BranchID:    req.BranchID,
		Timestamp:   ts.In(s.loc),
		Status:      attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapResponse(record), nil
}

func (s *Service) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid timestamp %q: %w", *req.Timestamp, err)
		}
		record.Timestamp = ts.In(s.loc)
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapResponse(r))
	}
	return result, total, nil
}

func mapResponse(r attendance.Record) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:          r.ID,
		EmployeeKey: r.EmployeeKey,
		FullName:    r.FullName,
		Department:  r.Department,
		BranchID:    r.BranchID,
		Timestamp:   r.Timestamp,
		Status:      string(r.Status),
	}
}
