/*
allocator.go - Auto and manual assignment

PURPOSE:
  Matches people to a contract under region/skill/capacity constraints
  and splits the required hours among them. This is the only component
  that creates Assignments in bulk.

ALGORITHM (AutoAssign):
  1. Filter people: same region as the contract, HoursAllocated < MaxHours,
     and at least one shared skill tag (OR semantics, not AND).
  2. Sort eligible candidates ascending by HoursAllocated. Least-loaded
     first is a load-balancing rule, not a skill-quality ranking.
  3. Walk the sorted list assigning min(remaining, available) to each
     candidate, updating the person's counter as each assignment is
     created. Stop once nothing remains.
  4. Status becomes active iff the requirement was fully covered,
     pending otherwise. Partial assignments are kept; there is no
     rollback on shortfall, and a shortfall is not an error.

RE-INVOCATION:
  The walk starts from the contract's requirement minus hours already
  assigned to it, so calling AutoAssign again after capacity was added
  tops up the shortfall instead of allocating the full amount twice.

MANUAL OVERRIDE:
  ManualAssign skips eligibility and capacity checks entirely and may
  push a person past MaxHours. Presenting a warning is the caller's job.

SEE ALSO:
  - ledger.go: The edit/delete paths that keep the person counter honest
*/
package engine

import (
	"context"
	"sort"
)

// Allocator creates assignments against a contract.
type Allocator struct {
	Store Store
}

// AllocationResult describes one AutoAssign run.
type AllocationResult struct {
	// Contract carries the post-run status.
	Contract Contract

	// NewAssignments created by this run, in assignment order.
	NewAssignments []Assignment

	// Shortfall is the requirement left uncovered. Zero when the
	// contract went active.
	Shortfall Hours
}

// AutoAssign selects eligible people and splits the contract's required
// hours among them. Partial coverage leaves the contract pending; the
// assignments already created are kept.
func (al *Allocator) AutoAssign(ctx context.Context, contractID ContractID) (*AllocationResult, error) {
	contract, err := al.Store.FindContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	remaining, err := al.outstanding(ctx, contract)
	if err != nil {
		return nil, err
	}

	eligible, err := al.eligiblePeople(ctx, contract)
	if err != nil {
		return nil, err
	}

	// Least-loaded first.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].HoursAllocated.LessThan(eligible[j].HoursAllocated)
	})

	var created []Assignment
	for _, person := range eligible {
		if !remaining.IsPositive() {
			break
		}

		available := person.Available()
		toAssign := remaining.Min(available)
		if !toAssign.IsPositive() {
			continue
		}

		assignment := Assignment{
			ID:            NewAssignmentID(),
			ContractID:    contract.ID,
			PersonID:      person.ID,
			HoursAssigned: toAssign,
		}
		if err := al.Store.SaveAssignment(ctx, assignment); err != nil {
			return nil, err
		}

		person.HoursAllocated = person.HoursAllocated.Add(toAssign)
		if err := al.Store.SavePerson(ctx, person); err != nil {
			return nil, err
		}

		created = append(created, assignment)
		remaining = remaining.Sub(toAssign)
	}

	if remaining.IsPositive() {
		contract.Status = StatusPending
	} else {
		contract.Status = StatusActive
		remaining = ZeroHours()
	}
	if err := al.Store.SaveContract(ctx, *contract); err != nil {
		return nil, err
	}

	return &AllocationResult{
		Contract:       *contract,
		NewAssignments: created,
		Shortfall:      remaining,
	}, nil
}

// outstanding returns the contract's requirement minus hours already
// assigned to it.
func (al *Allocator) outstanding(ctx context.Context, contract *Contract) (Hours, error) {
	existing, err := al.Store.AssignmentsForContract(ctx, contract.ID)
	if err != nil {
		return Hours{}, err
	}
	covered := ZeroHours()
	for _, a := range existing {
		covered = covered.Add(a.HoursAssigned)
	}
	return contract.HoursRequired.Sub(covered), nil
}

func (al *Allocator) eligiblePeople(ctx context.Context, contract *Contract) ([]Person, error) {
	people, err := al.Store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []Person
	for _, p := range people {
		if p.Region != contract.Region {
			continue
		}
		if !p.HasCapacity() {
			continue
		}
		if !p.HasAnySkill(contract.SkillsRequired) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible, nil
}

// ManualAssign creates an assignment unconditionally and bumps the
// person's counter. No eligibility or capacity check: this is the
// deliberate override path and may exceed MaxHours.
func (al *Allocator) ManualAssign(ctx context.Context, contractID ContractID, personID PersonID, hours Hours) (*Assignment, error) {
	if !hours.IsPositive() {
		return nil, &InvalidHoursError{Op: "manual assign", Hours: hours}
	}

	if _, err := al.Store.FindContract(ctx, contractID); err != nil {
		return nil, err
	}
	person, err := al.Store.FindPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	assignment := Assignment{
		ID:            NewAssignmentID(),
		ContractID:    contractID,
		PersonID:      personID,
		HoursAssigned: hours,
	}
	if err := al.Store.SaveAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	person.HoursAllocated = person.HoursAllocated.Add(hours)
	if err := al.Store.SavePerson(ctx, *person); err != nil {
		return nil, err
	}

	return &assignment, nil
}
