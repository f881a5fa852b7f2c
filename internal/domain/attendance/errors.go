package attendance

import "errors"

var (
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrDuplicateRecord = errors.New("attendance record already exists for this employee, timestamp, status and branch")
)
