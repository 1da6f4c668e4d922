/*
store.go - Entity store interface

PURPOSE:
  Defines the interface between the engine and whatever owns the working
  set: an in-memory collection for tests and demos, or SQLite for a
  running service. The store holds the four entity collections and does
  lookup and mutation; it contains no allocation or accounting logic.

CONTRACT:
  - Find* returns the record or a NotFoundError; never (nil, nil).
  - List* and the scoped filters return insertion-ordered sequences.
  - Save* inserts or replaces by ID and touches only the record given.
  - Delete* removes exactly one record. Deleting an assignment does NOT
    cascade to its time entries; orphan handling is the caller's concern
    (see ledger.go).

OWNERSHIP:
  The store is explicit state passed into every engine component. There
  is no package-level working set and no singleton. Callers serialize
  operations; implementations guard their own internals.

IMPLEMENTATIONS:
  - engine/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: Production SQLite

SEE ALSO:
  - allocator.go, ledger.go, calendar.go, export.go: Consumers
*/
package engine

import "context"

// Store holds the four entity collections.
type Store interface {
	// Lookups. Return a NotFoundError when the id is absent.
	FindPerson(ctx context.Context, id PersonID) (*Person, error)
	FindContract(ctx context.Context, id ContractID) (*Contract, error)
	FindAssignment(ctx context.Context, id AssignmentID) (*Assignment, error)
	FindTimeEntry(ctx context.Context, id EntryID) (*TimeEntry, error)

	// Collections, in insertion order.
	ListPeople(ctx context.Context) ([]Person, error)
	ListContracts(ctx context.Context) ([]Contract, error)
	ListAssignments(ctx context.Context) ([]Assignment, error)
	ListTimeEntries(ctx context.Context) ([]TimeEntry, error)

	// Scoped filters, in insertion order.
	AssignmentsForContract(ctx context.Context, id ContractID) ([]Assignment, error)
	AssignmentsForPerson(ctx context.Context, id PersonID) ([]Assignment, error)
	EntriesForAssignment(ctx context.Context, id AssignmentID) ([]TimeEntry, error)
	EntriesForPerson(ctx context.Context, id PersonID) ([]TimeEntry, error)
	EntriesForContract(ctx context.Context, id ContractID) ([]TimeEntry, error)

	// Mutations. Save inserts or replaces by ID.
	SavePerson(ctx context.Context, p Person) error
	SaveContract(ctx context.Context, c Contract) error
	SaveAssignment(ctx context.Context, a Assignment) error
	SaveTimeEntry(ctx context.Context, e TimeEntry) error

	DeleteAssignment(ctx context.Context, id AssignmentID) error
	DeleteTimeEntry(ctx context.Context, id EntryID) error
}
