package employee

import "errors"

var (
	ErrProfileNotFound      = errors.New("employee profile not found")
	ErrUsernameExists       = errors.New("username already exists")
	ErrContributionNotFound = errors.New("employee contribution not found")
)
