package holiday

import "errors"

var (
	ErrSuspensionNotFound = errors.New("holiday/suspension record not found")
	ErrDuplicateDate      = errors.New("holiday/suspension already recorded for this date and scope")
)
