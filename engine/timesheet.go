/*
timesheet.go - Time entry lifecycle

PURPOSE:
  Appends, edits, and deletes TimeEntries. Entries never touch
  Person.HoursAllocated; they feed only the "worked" aggregates in
  ledger.go and the per-day classification in calendar.go.

DENORMALIZATION:
  A TimeEntry carries copies of its assignment's PersonID and
  ContractID. AddEntry computes them from the assignment; they are
  never accepted from the caller. VerifyEntry treats a mismatch as a
  data-integrity error.
*/
package engine

import "context"

// Timesheet manages time entries.
type Timesheet struct {
	Store Store
}

// AddEntry records hours clocked against an assignment on a day.
// Zero hours is a valid entry (a worked-nothing day); negative is not.
func (ts *Timesheet) AddEntry(ctx context.Context, assignmentID AssignmentID, date Day, hours Hours) (*TimeEntry, error) {
	if hours.IsNegative() {
		return nil, &InvalidHoursError{Op: "add entry", Hours: hours}
	}

	assignment, err := ts.Store.FindAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	entry := TimeEntry{
		ID:           NewEntryID(),
		AssignmentID: assignment.ID,
		PersonID:     assignment.PersonID,
		ContractID:   assignment.ContractID,
		Date:         date,
		HoursClocked: hours,
	}
	if err := ts.Store.SaveTimeEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry replaces the clocked hours on an existing entry.
func (ts *Timesheet) UpdateEntry(ctx context.Context, id EntryID, hours Hours) (*TimeEntry, error) {
	if hours.IsNegative() {
		return nil, &InvalidHoursError{Op: "update entry", Hours: hours}
	}

	entry, err := ts.Store.FindTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.HoursClocked = hours
	if err := ts.Store.SaveTimeEntry(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a time entry.
func (ts *Timesheet) DeleteEntry(ctx context.Context, id EntryID) error {
	if _, err := ts.Store.FindTimeEntry(ctx, id); err != nil {
		return err
	}
	return ts.Store.DeleteTimeEntry(ctx, id)
}

// VerifyEntry checks that an entry's denormalized references still
// match its owning assignment.
func (ts *Timesheet) VerifyEntry(ctx context.Context, id EntryID) error {
	entry, err := ts.Store.FindTimeEntry(ctx, id)
	if err != nil {
		return err
	}
	assignment, err := ts.Store.FindAssignment(ctx, entry.AssignmentID)
	if err != nil {
		return err
	}
	if entry.PersonID != assignment.PersonID || entry.ContractID != assignment.ContractID {
		return &EntryMismatchError{EntryID: entry.ID, AssignmentID: assignment.ID}
	}
	return nil
}

// EntryFor returns the first entry matching (person, contract, day), or
// nil when none exists. Lookup is first-match in insertion order.
func (ts *Timesheet) EntryFor(ctx context.Context, personID PersonID, contractID ContractID, date Day) (*TimeEntry, error) {
	entries, err := ts.Store.EntriesForPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ContractID == contractID && e.Date.Equal(date) {
			return &e, nil
		}
	}
	return nil, nil
}
