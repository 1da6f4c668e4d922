/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every lookup-dependent operation fails with a NotFound error rather
  than proceeding on an absent record, and every quantity violation is
  detected at the operation boundary before any side effect.

ERROR CATEGORIES:
  1. NotFound errors - referenced Person/Contract/Assignment/TimeEntry missing
  2. Quantity errors - non-positive hours where a positive amount is required
  3. Integrity errors - denormalized references out of sync

NOTE:
  Exhausted capacity is NOT an error anywhere: auto-assignment treats it
  as an exclusion criterion, and manual assignment may exceed MaxHours
  deliberately. A shortfall leaves a contract pending instead of failing.

USAGE:
  if engine.IsNotFound(err) { ... }

  var nf *engine.NotFoundError
  if errors.As(err, &nf) { fmt.Println(nf.Kind, nf.ID) }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrPersonNotFound is returned when a referenced person doesn't exist.
	ErrPersonNotFound = errors.New("person not found")

	// ErrContractNotFound is returned when a referenced contract doesn't exist.
	ErrContractNotFound = errors.New("contract not found")

	// ErrAssignmentNotFound is returned when a referenced assignment doesn't exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrEntryNotFound is returned when a referenced time entry doesn't exist.
	ErrEntryNotFound = errors.New("time entry not found")

	// ErrInvalidHours is returned when a non-positive (or, for clocked
	// time, negative) hour amount is supplied to an operation that
	// requires one.
	ErrInvalidHours = errors.New("invalid hours")

	// ErrEntryMismatch is returned when a time entry's denormalized
	// person/contract references disagree with its owning assignment.
	ErrEntryMismatch = errors.New("time entry references do not match assignment")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError reports which record of which kind was missing.
type NotFoundError struct {
	Kind string // "person", "contract", "assignment", "entry"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case "person":
		return ErrPersonNotFound
	case "contract":
		return ErrContractNotFound
	case "assignment":
		return ErrAssignmentNotFound
	case "entry":
		return ErrEntryNotFound
	}
	return nil
}

// InvalidHoursError reports the rejected amount.
type InvalidHoursError struct {
	Op    string
	Hours Hours
}

func (e *InvalidHoursError) Error() string {
	return fmt.Sprintf("%s: invalid hours %v", e.Op, e.Hours.Value)
}

func (e *InvalidHoursError) Unwrap() error { return ErrInvalidHours }

// EntryMismatchError reports a denormalization integrity violation.
type EntryMismatchError struct {
	EntryID      EntryID
	AssignmentID AssignmentID
}

func (e *EntryMismatchError) Error() string {
	return fmt.Sprintf("entry %s does not match assignment %s", e.EntryID, e.AssignmentID)
}

func (e *EntryMismatchError) Unwrap() error { return ErrEntryMismatch }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPersonNotFound) ||
		errors.Is(err, ErrContractNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return IsNotFound(err) ||
		errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrEntryMismatch) ||
		errors.Is(err, ErrInvalidPeriod)
}
