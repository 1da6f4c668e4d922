/*
Package engine provides the workforce allocation and time-accounting core.

PURPOSE:
  This package contains the domain types and algorithms for allocating
  limited personnel capacity against time-bounded work contracts, and for
  tracking whether logged work keeps up with the allocation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Hours: A decimal hour quantity (never float64 in bookkeeping math)
  - Person: A worker with a region, skills, and a capacity ceiling
  - Contract: A time-bounded block of required hours
  - Assignment: The sole link between a Person and a Contract
  - TimeEntry: Hours actually clocked on an assignment for one day

DESIGN PRINCIPLES:
  1. Explicit state: every operation takes a Store; no package-level working set
  2. Precision: decimal.Decimal for all hour arithmetic
  3. Derived aggregates: totals are recomputed from Assignments/TimeEntries,
     with Person.HoursAllocated as the single maintained counter
  4. Type safety: distinct ID types for each entity kind

USAGE:
  alloc := &engine.Allocator{Store: store}
  result, err := alloc.AutoAssign(ctx, contractID)

SEE ALSO:
  - store.go: Entity store interface
  - allocator.go: Auto and manual assignment
  - ledger.go: Hour aggregates and the counter-preserving edit paths
  - calendar.go: Per-day expectation and underperformance
*/
package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Decimal hour quantity
// =============================================================================

type Hours struct {
	Value decimal.Decimal
}

func NewHours(v float64) Hours       { return Hours{Value: decimal.NewFromFloat(v)} }
func NewHoursFromInt(v int) Hours    { return Hours{Value: decimal.NewFromInt(int64(v))} }
func ZeroHours() Hours               { return Hours{Value: decimal.Zero} }

func ParseHours(s string) (Hours, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Hours{}, err
	}
	return Hours{Value: d}, nil
}

func (h Hours) Add(o Hours) Hours          { return Hours{Value: h.Value.Add(o.Value)} }
func (h Hours) Sub(o Hours) Hours          { return Hours{Value: h.Value.Sub(o.Value)} }
func (h Hours) Neg() Hours                 { return Hours{Value: h.Value.Neg()} }
func (h Hours) DivInt(n int) Hours         { return Hours{Value: h.Value.Div(decimal.NewFromInt(int64(n)))} }
func (h Hours) IsZero() bool               { return h.Value.IsZero() }
func (h Hours) IsPositive() bool           { return h.Value.IsPositive() }
func (h Hours) IsNegative() bool           { return h.Value.IsNegative() }
func (h Hours) LessThan(o Hours) bool      { return h.Value.LessThan(o.Value) }
func (h Hours) GreaterThan(o Hours) bool   { return h.Value.GreaterThan(o.Value) }
func (h Hours) Equal(o Hours) bool         { return h.Value.Equal(o.Value) }
func (h Hours) Min(o Hours) Hours          { if h.LessThan(o) { return h }; return o }
func (h Hours) Float64() float64           { f, _ := h.Value.Float64(); return f }
func (h Hours) String() string             { return h.Value.String() }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type PersonID string
type ContractID string
type AssignmentID string
type EntryID string

func NewAssignmentID() AssignmentID { return AssignmentID("asg-" + uuid.NewString()) }
func NewEntryID() EntryID           { return EntryID("ent-" + uuid.NewString()) }

// =============================================================================
// PERSON - A worker with capacity and skills
// =============================================================================

// Person is seeded externally; the engine mutates only HoursAllocated,
// and only through assignment creation, edit, and deletion.
type Person struct {
	ID     PersonID
	Name   string
	Region string

	// HoursAllocated is the running total of hours committed via
	// Assignments. Invariant: equals the sum of HoursAssigned over the
	// person's current Assignments.
	HoursAllocated Hours

	// MaxHours is the capacity ceiling for the accounting period.
	MaxHours Hours

	// Holidays is informational; allocation math never reads it.
	Holidays int

	Skills []string
}

// Available returns the uncommitted capacity. May be negative after a
// manual override past MaxHours.
func (p Person) Available() Hours {
	return p.MaxHours.Sub(p.HoursAllocated)
}

// HasCapacity reports whether the person can take on more hours.
func (p Person) HasCapacity() bool {
	return p.HoursAllocated.LessThan(p.MaxHours)
}

// HasAnySkill reports whether the person shares at least one skill tag
// with required. Matching is any-match, not all-match.
func (p Person) HasAnySkill(required []string) bool {
	for _, want := range required {
		for _, have := range p.Skills {
			if have == want {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// CONTRACT - A time-bounded block of required hours
// =============================================================================

type ContractStatus string

const (
	StatusPending   ContractStatus = "pending"
	StatusActive    ContractStatus = "active"
	StatusCompleted ContractStatus = "completed"
)

type Contract struct {
	ID         ContractID
	VendorName string
	Region     string

	// HoursRequired is the total over the contract's period.
	HoursRequired Hours

	// SkillsRequired uses any-match semantics against Person.Skills.
	SkillsRequired []string

	// Period spans StartDate..EndDate inclusive, every calendar day.
	Period Period

	// Status is an assigned label. The allocator writes pending/active;
	// completed is an external transition.
	Status ContractStatus
}

// =============================================================================
// ASSIGNMENT - Links a person to a contract
// =============================================================================

// Assignment is the sole link between a Person and a Contract. A person
// may hold assignments on many contracts and a contract may spread over
// many people. Normally at most one assignment exists per
// (contract, person) pair; that is not structurally enforced.
type Assignment struct {
	ID         AssignmentID
	ContractID ContractID
	PersonID   PersonID

	// HoursAssigned is positive at creation but may be edited to any
	// value afterwards.
	HoursAssigned Hours
}

// =============================================================================
// TIME ENTRY - Hours clocked on an assignment for one day
// =============================================================================

// TimeEntry records actual work. PersonID and ContractID are derived
// from the owning Assignment at creation time and must always match it;
// they are never taken from the caller.
type TimeEntry struct {
	ID           EntryID
	AssignmentID AssignmentID
	PersonID     PersonID
	ContractID   ContractID
	Date         Day
	HoursClocked Hours
}
