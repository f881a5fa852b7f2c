package payroll

import "errors"

var (
	ErrRuleNotFound      = errors.New("payroll rule not found")
	ErrPeriodNotFound    = errors.New("payroll period not found")
	ErrBatchNotFound     = errors.New("payroll batch not found")
	ErrItemNotFound      = errors.New("payroll item not found")
	ErrNoApprovedProfile = errors.New("no approved employee profiles in branch")
)
