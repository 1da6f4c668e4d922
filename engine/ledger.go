/*
ledger.go - Hour aggregates and counter-preserving edits

PURPOSE:
  Read-side projections over the entity store, plus the two mutation
  paths that keep Person.HoursAllocated consistent with the Assignment
  set. Aggregates are always recomputed from the current Assignments
  and TimeEntries; there is no cached total that can drift.

CRITICAL INVARIANT:
  After any sequence of operations, a person's HoursAllocated equals the
  sum of HoursAssigned over their current Assignments. UpdateAssignment
  and DeleteAssignment are the only edit/delete paths, and each applies
  its paired person-counter update within the same call.

ORPHANS:
  Deleting an assignment leaves its TimeEntries in place, referencing a
  nonexistent assignment. They drop out of per-assignment projections
  but still count toward person/contract worked totals. Preserved
  behavior, flagged for product-owner confirmation.

SEE ALSO:
  - allocator.go: The creation paths
  - export.go: Report rows built on these aggregates
*/
package engine

import "context"

// Ledger computes hour aggregates and applies assignment edits.
type Ledger struct {
	Store Store
}

// PersonHoursSummary is the per-person aggregate view.
type PersonHoursSummary struct {
	// Assigned is the sum of HoursAssigned over the person's assignments.
	Assigned Hours

	// Worked is the sum of HoursClocked over the person's time entries.
	Worked Hours

	// Unassigned is MaxHours minus Assigned.
	Unassigned Hours

	// Remaining is Assigned minus Worked.
	Remaining Hours
}

// ContractHoursSummary is the per-contract aggregate view.
type ContractHoursSummary struct {
	Assigned Hours
	Worked   Hours
}

// PersonHours recomputes the person's aggregates from the store.
func (l *Ledger) PersonHours(ctx context.Context, id PersonID) (*PersonHoursSummary, error) {
	person, err := l.Store.FindPerson(ctx, id)
	if err != nil {
		return nil, err
	}

	assignments, err := l.Store.AssignmentsForPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	assigned := ZeroHours()
	for _, a := range assignments {
		assigned = assigned.Add(a.HoursAssigned)
	}

	entries, err := l.Store.EntriesForPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	worked := ZeroHours()
	for _, e := range entries {
		worked = worked.Add(e.HoursClocked)
	}

	return &PersonHoursSummary{
		Assigned:   assigned,
		Worked:     worked,
		Unassigned: person.MaxHours.Sub(assigned),
		Remaining:  assigned.Sub(worked),
	}, nil
}

// ContractHours recomputes the contract's aggregates from the store.
func (l *Ledger) ContractHours(ctx context.Context, id ContractID) (*ContractHoursSummary, error) {
	if _, err := l.Store.FindContract(ctx, id); err != nil {
		return nil, err
	}

	assignments, err := l.Store.AssignmentsForContract(ctx, id)
	if err != nil {
		return nil, err
	}
	assigned := ZeroHours()
	for _, a := range assignments {
		assigned = assigned.Add(a.HoursAssigned)
	}

	entries, err := l.Store.EntriesForContract(ctx, id)
	if err != nil {
		return nil, err
	}
	worked := ZeroHours()
	for _, e := range entries {
		worked = worked.Add(e.HoursClocked)
	}

	return &ContractHoursSummary{Assigned: assigned, Worked: worked}, nil
}

// UpdateAssignment writes newHours onto the assignment and applies the
// delta to the owning person's counter. This is the only path that
// keeps the counter and the assignment set consistent after an edit.
func (l *Ledger) UpdateAssignment(ctx context.Context, id AssignmentID, newHours Hours) (*Assignment, error) {
	assignment, err := l.Store.FindAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	person, err := l.Store.FindPerson(ctx, assignment.PersonID)
	if err != nil {
		return nil, err
	}

	delta := newHours.Sub(assignment.HoursAssigned)

	assignment.HoursAssigned = newHours
	if err := l.Store.SaveAssignment(ctx, *assignment); err != nil {
		return nil, err
	}

	person.HoursAllocated = person.HoursAllocated.Add(delta)
	if err := l.Store.SavePerson(ctx, *person); err != nil {
		return nil, err
	}

	return assignment, nil
}

// DeleteAssignment removes the assignment and subtracts its hours from
// the owning person. Time entries referencing it are left orphaned, not
// cascade-deleted.
func (l *Ledger) DeleteAssignment(ctx context.Context, id AssignmentID) error {
	assignment, err := l.Store.FindAssignment(ctx, id)
	if err != nil {
		return err
	}
	person, err := l.Store.FindPerson(ctx, assignment.PersonID)
	if err != nil {
		return err
	}

	if err := l.Store.DeleteAssignment(ctx, id); err != nil {
		return err
	}

	person.HoursAllocated = person.HoursAllocated.Sub(assignment.HoursAssigned)
	return l.Store.SavePerson(ctx, *person)
}
