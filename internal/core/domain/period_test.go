package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodFor(t *testing.T) {
	// Wednesday
	at := time.Date(2025, time.May, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		unit  PeriodUnit
		start time.Time
		end   time.Time
	}{
		{PeriodWeekly, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 19, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodQuarterly, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodUnit("bogus"), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			p := PeriodFor(tt.unit, at, time.UTC)
			assert.True(t, tt.start.Equal(p.Start), "start %s", p.Start)
			assert.True(t, tt.end.Equal(p.End), "end %s", p.End)
			assert.False(t, at.Before(p.Start))
			assert.True(t, at.Before(p.End))
		})
	}
}

func TestPeriodFor_SundayBelongsToPreviousWeek(t *testing.T) {
	sunday := time.Date(2025, time.May, 18, 23, 0, 0, 0, time.UTC)
	p := PeriodFor(PeriodWeekly, sunday, time.UTC)
	assert.Equal(t, time.Monday, p.Start.Weekday())
	assert.Equal(t, 12, p.Start.Day())
}

func TestPeriodFor_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	// 22:00 UTC on the last day of April is already May in UTC+3.
	at := time.Date(2025, time.April, 30, 22, 0, 0, 0, time.UTC)
	p := PeriodFor(PeriodMonthly, at, loc)
	assert.Equal(t, time.May, p.Start.Month())
}

func TestEnrollment_IsCoverageActive(t *testing.T) {
	enrolled := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	e := Enrollment{
		EnrolledAt:     enrolled,
		CoverageStart:  CoverageStartFor(enrolled, 7),
		PaymentCurrent: true,
		Status:         EnrollmentActive,
	}

	assert.False(t, e.IsCoverageActive(enrolled.AddDate(0, 0, 6)))
	assert.True(t, e.IsCoverageActive(enrolled.AddDate(0, 0, 7)))

	e.PaymentCurrent = false
	assert.False(t, e.IsCoverageActive(enrolled.AddDate(0, 0, 30)))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(ClaimPending, ClaimApproved))
	assert.True(t, CanTransition(ClaimPending, ClaimRejected))
	assert.True(t, CanTransition(ClaimPending, ClaimPaid))
	assert.True(t, CanTransition(ClaimApproved, ClaimPaid))
	assert.True(t, CanTransition(ClaimApproved, ClaimRejected))
	assert.False(t, CanTransition(ClaimApproved, ClaimPending))
	assert.False(t, CanTransition(ClaimRejected, ClaimApproved))
	assert.False(t, CanTransition(ClaimRejected, ClaimPending))
	assert.False(t, CanTransition(ClaimPaid, ClaimPending))
}
