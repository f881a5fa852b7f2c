package reconcile

import (
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/attendance"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
)

type DayStatus string

const (
	DayPresent    DayStatus = "Present"
	DayAbsent     DayStatus = "Absent"
	DayMissingIn  DayStatus = "Missing In"
	DayMissingOut DayStatus = "Missing Out"
)

// Day is the reconciled view of one calendar date: the Daily Time Record
// row for that date.
type Day struct {
	Date             time.Time
	Status           DayStatus
	TimeIn           *time.Time
	TimeOut          *time.Time
	WorkedMinutes    int
	LateMinutes      int
	UndertimeMinutes int
}

// Summary aggregates one employee's reconciled period.
type Summary struct {
	DaysPresent      int
	DaysAbsent       int
	LateMinutes      int
	UndertimeMinutes int
	HasMissingLogs   bool
	Days             []Day
}

type dayBucket struct {
	ins  []time.Time
	outs []time.Time
}

// BuildSummary buckets attendance events by calendar date in loc and
// classifies every date in [start, end] inclusive.
//
// A day is present iff it has at least one CHECK_IN. UNKNOWN events are
// ignored. Lateness is measured from the earliest check-in against
// work start + grace; undertime from the latest check-out against work
// end. Both are whole minutes, never negative. Records with a zero
// timestamp cannot be placed on a day; they only raise the missing-logs
// flag.
func BuildSummary(records []attendance.Record, start, end time.Time, rule payroll.Rule, loc *time.Location) Summary {
	var sum Summary

	wsHour, wsMin := parseClock(rule.WorkStart, 8, 0)
	weHour, weMin := parseClock(rule.WorkEnd, 17, 0)

	buckets := make(map[string]*dayBucket)
	for _, r := range records {
		if r.Status == attendance.StatusUnknown {
			continue
		}
		if r.Timestamp.IsZero() {
			// Data error: the event exists but cannot be normalized to a
			// calendar date, so it contributes nothing but the flag.
			sum.HasMissingLogs = true
			continue
		}
		ts := r.Timestamp.In(loc)
		key := ts.Format("2006-01-02")
		b := buckets[key]
		if b == nil {
			b = &dayBucket{}
			buckets[key] = b
		}
		switch r.Status {
		case attendance.StatusCheckIn:
			b.ins = append(b.ins, ts)
		case attendance.StatusCheckOut:
			b.outs = append(b.outs, ts)
		}
	}

	startDay := dateOnly(start.In(loc), loc)
	endDay := dateOnly(end.In(loc), loc)

	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		day := Day{Date: d, Status: DayAbsent}

		b := buckets[d.Format("2006-01-02")]
		if b != nil {
			hasIn := len(b.ins) > 0
			hasOut := len(b.outs) > 0

			switch {
			case hasIn && hasOut:
				day.Status = DayPresent
			case hasIn:
				day.Status = DayMissingOut
				sum.HasMissingLogs = true
			case hasOut:
				day.Status = DayMissingIn
				sum.HasMissingLogs = true
			}

			if hasIn {
				earliest := minTime(b.ins)
				day.TimeIn = &earliest

				cutoff := time.Date(d.Year(), d.Month(), d.Day(), wsHour, wsMin, 0, 0, loc).
					Add(time.Duration(rule.GraceMinutes) * time.Minute)
				if earliest.After(cutoff) {
					day.LateMinutes = int(earliest.Sub(cutoff).Minutes())
				}
			}

			if hasOut {
				latest := maxTime(b.outs)
				day.TimeOut = &latest

				workEnd := time.Date(d.Year(), d.Month(), d.Day(), weHour, weMin, 0, 0, loc)
				if latest.Before(workEnd) {
					day.UndertimeMinutes = int(workEnd.Sub(latest).Minutes())
				}
			}

			if day.TimeIn != nil && day.TimeOut != nil && day.TimeOut.After(*day.TimeIn) {
				day.WorkedMinutes = int(day.TimeOut.Sub(*day.TimeIn).Minutes())
			}
		}

		// Presence follows check-ins only; a check-out-only day stays
		// absent but is flagged above.
		if day.TimeIn != nil {
			sum.DaysPresent++
		} else {
			sum.DaysAbsent++
		}
		sum.LateMinutes += day.LateMinutes
		sum.UndertimeMinutes += day.UndertimeMinutes
		sum.Days = append(sum.Days, day)
	}

	return sum
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func parseClock(clock string, fallbackHour, fallbackMin int) (int, int) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return fallbackHour, fallbackMin
	}
	return t.Hour(), t.Minute()
}

func minTime(ts []time.Time) time.Time {
	min := ts[0]
	for _, t := range ts[1:] {
		if t.Before(min) {
			min = t
		}
	}
	return min
}

func maxTime(ts []time.Time) time.Time {
	max := ts[0]
	for _, t := range ts[1:] {
		if t.After(max) {
			max = t
		}
	}
	return max
}
