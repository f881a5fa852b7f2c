package branch

import "time"

// Branch is a work site. Each branch owns exactly one payroll rule set and
// zero or more scoped holiday/suspension records.
type Branch struct {
	ID        string
	Name      string
	Region    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
