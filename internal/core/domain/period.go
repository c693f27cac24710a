package domain

import "time"

// PeriodUnit is the cap-reset window of a policy.
type PeriodUnit string

const (
	PeriodWeekly    PeriodUnit = "weekly" // ISO weeks, Monday start
	PeriodMonthly   PeriodUnit = "monthly"
	PeriodQuarterly PeriodUnit = "quarterly"
	PeriodYearly    PeriodUnit = "yearly"
)

func (u PeriodUnit) IsValid() bool {
	switch u {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodFor returns the accounting period containing t, with boundaries
// computed in loc. Unknown units fall back to monthly.
func PeriodFor(unit PeriodUnit, t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	y, m, d := lt.Date()

	switch unit {
	case PeriodWeekly:
		offset := (int(lt.Weekday()) + 6) % 7
		start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		return Period{Start: start, End: start.AddDate(0, 0, 7)}
	case PeriodQuarterly:
		qm := time.Month(((int(m)-1)/3)*3 + 1)
		start := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: start.AddDate(0, 3, 0)}
	case PeriodYearly:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: start.AddDate(1, 0, 0)}
	default:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: start.AddDate(0, 1, 0)}
	}
}
