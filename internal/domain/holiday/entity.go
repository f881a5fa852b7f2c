package holiday

import "time"

type Type string

const (
	TypeHoliday    Type = "holiday"
	TypeSuspension Type = "suspension"
	TypeSpecial    Type = "special"
)

func (t Type) Valid() bool {
	switch t {
	case TypeHoliday, TypeSuspension, TypeSpecial:
		return true
	}
	return false
}

type Scope string

const (
	ScopeNationwide Scope = "nationwide"
	ScopeRegion     Scope = "region"
	ScopeBranch     Scope = "branch"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeNationwide, ScopeRegion, ScopeBranch:
		return true
	}
	return false
}

// Suspension marks a calendar date as non-working. Branch-scoped entries
// reference a specific branch; nationwide and region entries apply to all.
type Suspension struct {
	ID        string
	Date      time.Time
	Name      string
	Type      Type
	Scope     Scope
	BranchID  *string
	Region    *string
	CreatedAt time.Time
}
