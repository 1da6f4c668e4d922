package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/crewplan/workforce-engine/engine"
	"github.com/crewplan/workforce-engine/engine/store"
)

func TestExpectedDailyHours_FlatOverInclusivePeriod(t *testing.T) {
	// GIVEN: A 30h assignment on a 15-day contract (Nov 24 - Dec 8 inclusive)
	// WHEN: Deriving the daily expectation
	// THEN: 2h per calendar day, weekends included

	a := engine.Assignment{HoursAssigned: hours(30)}
	c := engine.Contract{Period: engine.Period{
		Start: day(2025, time.November, 24),
		End:   day(2025, time.December, 8),
	}}

	if got := c.Period.TotalDays(); got != 15 {
		t.Fatalf("expected 15 days inclusive, got %d", got)
	}
	if got := engine.ExpectedDailyHours(a, c); !got.Equal(hours(2)) {
		t.Errorf("expected 2h/day, got %v", got)
	}
}

func TestExpectedDailyHours_DegeneratePeriod(t *testing.T) {
	a := engine.Assignment{HoursAssigned: hours(8)}

	// Single-day period: everything is expected on that day.
	single := engine.Contract{Period: engine.Period{
		Start: day(2025, time.November, 24),
		End:   day(2025, time.November, 24),
	}}
	if got := engine.ExpectedDailyHours(a, single); !got.Equal(hours(8)) {
		t.Errorf("single day: expected 8h, got %v", got)
	}

	// Inverted period: zero, never a division panic.
	inverted := engine.Contract{Period: engine.Period{
		Start: day(2025, time.November, 24),
		End:   day(2025, time.November, 20),
	}}
	if got := engine.ExpectedDailyHours(a, inverted); !got.IsZero() {
		t.Errorf("inverted period: expected 0, got %v", got)
	}
}

func TestIsUnderperforming_Classification(t *testing.T) {
	// GIVEN: A 30h assignment over 15 days (2h/day expected), with one
	//        exact-pace entry, one short entry, and one missing day
	// WHEN: Classifying days around a pinned "today"
	// THEN: Past short/missing days flag; exact pace and future days do not

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 30, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}
	a := result.NewAssignments[0]
	contract, err := s.FindContract(ctx, "c1")
	if err != nil {
		t.Fatalf("find contract: %v", err)
	}

	ts := &engine.Timesheet{Store: s}
	if _, err := ts.AddEntry(ctx, a.ID, day(2025, time.November, 24), hours(2)); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := ts.AddEntry(ctx, a.ID, day(2025, time.November, 25), hours(1)); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	// Nov 26: no entry at all.

	today := day(2025, time.November, 28)
	an := &engine.Analyzer{Store: s}

	cases := []struct {
		name string
		day  engine.Day
		want bool
	}{
		{"exact pace is on track", day(2025, time.November, 24), false},
		{"short day flags", day(2025, time.November, 25), true},
		{"missing past day flags", day(2025, time.November, 26), true},
		{"today never flags", today, false},
		{"future never flags", day(2025, time.December, 5), false},
	}
	for _, tc := range cases {
		got, err := an.IsUnderperforming(ctx, a, *contract, tc.day, today)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContractCalendar_FullExpansion(t *testing.T) {
	// GIVEN: An active contract with one assignment and a partial log
	// WHEN: Building the contract calendar with a pinned today
	// THEN: One day-cell per period day, worked totals summed, and
	//       hours-behind reported

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 30, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}
	a := result.NewAssignments[0]

	ts := &engine.Timesheet{Store: s}
	if _, err := ts.AddEntry(ctx, a.ID, day(2025, time.November, 24), hours(3)); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := ts.AddEntry(ctx, a.ID, day(2025, time.November, 25), hours(4)); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	an := &engine.Analyzer{Store: s}
	cal, err := an.ContractCalendar(ctx, "c1", day(2025, time.November, 27))
	if err != nil {
		t.Fatalf("contract calendar: %v", err)
	}

	if len(cal.Days) != 15 {
		t.Fatalf("expected 15 period days, got %d", len(cal.Days))
	}
	if len(cal.Schedules) != 1 {
		t.Fatalf("expected 1 schedule row, got %d", len(cal.Schedules))
	}

	sched := cal.Schedules[0]
	if sched.PersonName != "Worker p1" {
		t.Errorf("expected person name resolved, got %q", sched.PersonName)
	}
	if !sched.ExpectedDaily.Equal(hours(2)) {
		t.Errorf("expected 2h/day, got %v", sched.ExpectedDaily)
	}
	if len(sched.Days) != 15 {
		t.Fatalf("expected 15 day cells, got %d", len(sched.Days))
	}
	if !sched.Worked.Equal(hours(7)) {
		t.Errorf("expected 7h worked, got %v", sched.Worked)
	}
	if !sched.HoursBehind.Equal(hours(23)) {
		t.Errorf("expected 23h behind, got %v", sched.HoursBehind)
	}

	// Nov 24: 3h >= 2h expected, on track. Nov 26: no entry, past, flagged.
	if sched.Days[0].Underperforming {
		t.Error("Nov 24 should be on track")
	}
	if sched.Days[0].Clocked == nil || !sched.Days[0].Clocked.Equal(hours(3)) {
		t.Errorf("Nov 24: expected 3h clocked, got %+v", sched.Days[0].Clocked)
	}
	if !sched.Days[2].Underperforming {
		t.Error("Nov 26 should be flagged: past day without an entry")
	}
	if sched.Days[2].Clocked != nil {
		t.Errorf("Nov 26: expected no clocked hours, got %v", *sched.Days[2].Clocked)
	}
	// Nov 27 is today: never flagged even without an entry.
	if sched.Days[3].Underperforming {
		t.Error("today should never be flagged")
	}
}

func TestContractCalendar_PendingContractSuppressesHoursBehind(t *testing.T) {
	// GIVEN: A contract left pending by a partial allocation
	// WHEN: Building its calendar after the period has elapsed
	// THEN: HoursBehind stays zero while the contract is pending

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 30, 40, "Construction")
	seedContract(t, s, "c1", "North", 40, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}
	if result.Contract.Status != engine.StatusPending {
		t.Fatalf("expected pending contract, got %s", result.Contract.Status)
	}

	an := &engine.Analyzer{Store: s}
	cal, err := an.ContractCalendar(ctx, "c1", day(2026, time.January, 1))
	if err != nil {
		t.Fatalf("contract calendar: %v", err)
	}
	if !cal.Schedules[0].HoursBehind.IsZero() {
		t.Errorf("pending contract should suppress hours behind, got %v", cal.Schedules[0].HoursBehind)
	}
}

func TestContractCalendar_UnknownContract_NotFound(t *testing.T) {
	s := store.NewMemory()
	an := &engine.Analyzer{Store: s}

	_, err := an.ContractCalendar(context.Background(), "missing", engine.Today())
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestPeriodDays_InclusiveAcrossMonthBoundary(t *testing.T) {
	p := engine.Period{Start: day(2025, time.November, 29), End: day(2025, time.December, 2)}

	days := p.Days()
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	want := []engine.Day{
		day(2025, time.November, 29),
		day(2025, time.November, 30),
		day(2025, time.December, 1),
		day(2025, time.December, 2),
	}
	for i, d := range want {
		if !days[i].Equal(d) {
			t.Errorf("day %d: got %s, want %s", i, days[i], d)
		}
	}
}
