package attendance

import "time"

type Status string

const (
	StatusCheckIn  Status = "CHECK_IN"
	StatusCheckOut Status = "CHECK_OUT"
	StatusUnknown  Status = "UNKNOWN"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCheckIn, StatusCheckOut, StatusUnknown:
		return true
	}
	return false
}

// Record is a single biometric event. Records are immutable after import;
// the payroll engine only ever reads them.
//
// EmployeeKey is the identifier the biometric device reported. It is not
// guaranteed to be a profile ID: it may be the employee's login username
// or a numeric device-assigned code, which is why payroll resolution tries
// two candidate keys (see service/reconcile).
type Record struct {
	ID          string
	EmployeeKey string
	FullName    string
	Department  string
	BranchID    string
	Timestamp   time.Time
	Status      Status
	CreatedAt   time.Time
}
