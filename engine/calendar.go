/*
calendar.go - Calendar expansion and per-day performance

PURPOSE:
  Expands a contract's date range into its day sequence, derives each
  assignment's flat expected-hours-per-day, and classifies past days as
  on-track or underperforming by comparing logged time to expectation.

EXPECTATION MODEL:
  ExpectedDailyHours = HoursAssigned / totalDaysInclusive. Uniform over
  every calendar day of the period, weekends included; the model does
  not carve out non-working days.

CLASSIFICATION:
  Only past days are ever flagged. A past day with no entry is
  underperforming by definition; with an entry, underperforming iff
  clocked < expected. "today" is an explicit argument so results are
  deterministic and testable.
*/
package engine

import "context"

// Analyzer derives calendars and performance classifications.
type Analyzer struct {
	Store Store
}

// ExpectedDailyHours returns the assignment's flat daily rate over the
// contract's inclusive day count.
func ExpectedDailyHours(a Assignment, c Contract) Hours {
	total := c.Period.TotalDays()
	if total <= 0 {
		return ZeroHours()
	}
	return a.HoursAssigned.DivInt(total)
}

// IsUnderperforming classifies a single day for an assignment. Days that
// are today or later are never flagged.
func (an *Analyzer) IsUnderperforming(ctx context.Context, a Assignment, c Contract, day, today Day) (bool, error) {
	if day.AfterOrEqual(today) {
		return false, nil
	}

	ts := &Timesheet{Store: an.Store}
	entry, err := ts.EntryFor(ctx, a.PersonID, c.ID, day)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return true, nil
	}
	return entry.HoursClocked.LessThan(ExpectedDailyHours(a, c)), nil
}

// =============================================================================
// CONTRACT CALENDAR - Full per-day view for rendering and reporting
// =============================================================================

// DayStatus is one calendar cell: the day, what was clocked (nil when
// no entry exists), and whether the day counts as underperforming.
type DayStatus struct {
	Day             Day
	Clocked         *Hours
	Underperforming bool
}

// AssignmentSchedule is one assignment's row across the contract period.
type AssignmentSchedule struct {
	Assignment    Assignment
	PersonName    string
	ExpectedDaily Hours
	Days          []DayStatus

	// Worked is the total clocked against this assignment's
	// (person, contract) pair inside the period.
	Worked Hours

	// HoursBehind is HoursAssigned - Worked when positive and the
	// contract is not pending; zero otherwise.
	HoursBehind Hours
}

// ContractCalendar is the full expansion for one contract.
type ContractCalendar struct {
	Contract  Contract
	Days      []Day
	Schedules []AssignmentSchedule
}

// ContractCalendar expands the contract into per-assignment, per-day
// classification rows.
func (an *Analyzer) ContractCalendar(ctx context.Context, contractID ContractID, today Day) (*ContractCalendar, error) {
	contract, err := an.Store.FindContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := contract.Period.Valid(); err != nil {
		return nil, err
	}

	assignments, err := an.Store.AssignmentsForContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	days := contract.Period.Days()
	ts := &Timesheet{Store: an.Store}

	cal := &ContractCalendar{Contract: *contract, Days: days}
	for _, a := range assignments {
		person, err := an.Store.FindPerson(ctx, a.PersonID)
		if err != nil {
			return nil, err
		}

		expected := ExpectedDailyHours(a, *contract)
		schedule := AssignmentSchedule{
			Assignment:    a,
			PersonName:    person.Name,
			ExpectedDaily: expected,
			Worked:        ZeroHours(),
			HoursBehind:   ZeroHours(),
		}

		for _, day := range days {
			entry, err := ts.EntryFor(ctx, a.PersonID, contract.ID, day)
			if err != nil {
				return nil, err
			}

			status := DayStatus{Day: day}
			if entry != nil {
				clocked := entry.HoursClocked
				status.Clocked = &clocked
				schedule.Worked = schedule.Worked.Add(clocked)
			}
			if day.Before(today) {
				if entry == nil {
					status.Underperforming = true
				} else {
					status.Underperforming = entry.HoursClocked.LessThan(expected)
				}
			}
			schedule.Days = append(schedule.Days, status)
		}

		// Variance is suppressed while the contract is still pending.
		if contract.Status != StatusPending {
			behind := a.HoursAssigned.Sub(schedule.Worked)
			if behind.IsPositive() {
				schedule.HoursBehind = behind
			}
		}

		cal.Schedules = append(cal.Schedules, schedule)
	}

	return cal, nil
}
