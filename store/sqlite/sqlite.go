/*
Package sqlite provides a SQLite-backed implementation of engine.Store.

PURPOSE:
  Durable storage for the four entity collections. The same patterns
  apply to PostgreSQL with minor dialect changes.

KEY TABLES:
  people:       Worker records with region, capacity, skills
  contracts:    Contract records with period and status
  assignments:  Person-to-contract hour commitments
  time_entries: Per-day clocked hours

ORDERING:
  Lists and filters return rows in insertion order. Upserts keep the
  original rowid, so editing a record never reorders it.

DECIMALS:
  Hour quantities are stored as TEXT and parsed through
  shopspring/decimal. Never store bookkeeping numbers as REAL.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers
  don't block, one writer at a time.

USAGE:
  store, err := sqlite.New("./data/workforce.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.

SEE ALSO:
  - engine/store.go: Interface definition
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/crewplan/workforce-engine/engine"
)

// Store implements engine.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		region TEXT NOT NULL,
		hours_allocated TEXT NOT NULL,
		max_hours TEXT NOT NULL,
		holidays INTEGER NOT NULL DEFAULT 0,
		skills_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		vendor_name TEXT NOT NULL,
		region TEXT NOT NULL,
		hours_required TEXT NOT NULL,
		skills_required_json TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		person_id TEXT NOT NULL,
		hours_assigned TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_contract
		ON assignments(contract_id);
	CREATE INDEX IF NOT EXISTS idx_assignments_person
		ON assignments(person_id);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		assignment_id TEXT NOT NULL,
		person_id TEXT NOT NULL,
		contract_id TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		hours_clocked TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_assignment
		ON time_entries(assignment_id);
	CREATE INDEX IF NOT EXISTS idx_entries_person_contract_date
		ON time_entries(person_id, contract_id, entry_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PEOPLE
// =============================================================================

func (s *Store) FindPerson(ctx context.Context, id engine.PersonID) (*engine.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, region, hours_allocated, max_hours, holidays, skills_json
		 FROM people WHERE id = ?`, string(id))
	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, &engine.NotFoundError{Kind: "person", ID: string(id)}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPeople(ctx context.Context) ([]engine.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, region, hours_allocated, max_hours, holidays, skills_json
		 FROM people ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []engine.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

func (s *Store) SavePerson(ctx context.Context, p engine.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO people (id, name, region, hours_allocated, max_hours, holidays, skills_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			region = excluded.region,
			hours_allocated = excluded.hours_allocated,
			max_hours = excluded.max_hours,
			holidays = excluded.holidays,
			skills_json = excluded.skills_json`,
		string(p.ID), p.Name, p.Region,
		p.HoursAllocated.String(), p.MaxHours.String(), p.Holidays, string(skills))
	return err
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (s *Store) FindContract(ctx context.Context, id engine.ContractID) (*engine.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, vendor_name, region, hours_required, skills_required_json,
			start_date, end_date, status
		 FROM contracts WHERE id = ?`, string(id))
	c, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, &engine.NotFoundError{Kind: "contract", ID: string(id)}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) ListContracts(ctx context.Context) ([]engine.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vendor_name, region, hours_required, skills_required_json,
			start_date, end_date, status
		 FROM contracts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []engine.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}

func (s *Store) SaveContract(ctx context.Context, c engine.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skills, err := json.Marshal(c.SkillsRequired)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO contracts (id, vendor_name, region, hours_required,
			skills_required_json, start_date, end_date, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			vendor_name = excluded.vendor_name,
			region = excluded.region,
			hours_required = excluded.hours_required,
			skills_required_json = excluded.skills_required_json,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status`,
		string(c.ID), c.VendorName, c.Region, c.HoursRequired.String(),
		string(skills), c.Period.Start.String(), c.Period.End.String(), string(c.Status))
	return err
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (s *Store) FindAssignment(ctx context.Context, id engine.AssignmentID) (*engine.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, contract_id, person_id, hours_assigned
		 FROM assignments WHERE id = ?`, string(id))
	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, &engine.NotFoundError{Kind: "assignment", ID: string(id)}
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) ListAssignments(ctx context.Context) ([]engine.Assignment, error) {
	return s.queryAssignments(ctx,
		`SELECT id, contract_id, person_id, hours_assigned
		 FROM assignments ORDER BY rowid`)
}

func (s *Store) AssignmentsForContract(ctx context.Context, id engine.ContractID) ([]engine.Assignment, error) {
	return s.queryAssignments(ctx,
		`SELECT id, contract_id, person_id, hours_assigned
		 FROM assignments WHERE contract_id = ? ORDER BY rowid`, string(id))
}

func (s *Store) AssignmentsForPerson(ctx context.Context, id engine.PersonID) ([]engine.Assignment, error) {
	return s.queryAssignments(ctx,
		`SELECT id, contract_id, person_id, hours_assigned
		 FROM assignments WHERE person_id = ? ORDER BY rowid`, string(id))
}

func (s *Store) queryAssignments(ctx context.Context, query string, args ...any) ([]engine.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []engine.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func (s *Store) SaveAssignment(ctx context.Context, a engine.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id, contract_id, person_id, hours_assigned)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			contract_id = excluded.contract_id,
			person_id = excluded.person_id,
			hours_assigned = excluded.hours_assigned`,
		string(a.ID), string(a.ContractID), string(a.PersonID), a.HoursAssigned.String())
	return err
}

func (s *Store) DeleteAssignment(ctx context.Context, id engine.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &engine.NotFoundError{Kind: "assignment", ID: string(id)}
	}
	return nil
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

func (s *Store) FindTimeEntry(ctx context.Context, id engine.EntryID) (*engine.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, assignment_id, person_id, contract_id, entry_date, hours_clocked
		 FROM time_entries WHERE id = ?`, string(id))
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, &engine.NotFoundError{Kind: "entry", ID: string(id)}
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) ListTimeEntries(ctx context.Context) ([]engine.TimeEntry, error) {
	return s.queryEntries(ctx,
		`SELECT id, assignment_id, person_id, contract_id, entry_date, hours_clocked
		 FROM time_entries ORDER BY rowid`)
}

func (s *Store) EntriesForAssignment(ctx context.Context, id engine.AssignmentID) ([]engine.TimeEntry, error) {
	return s.queryEntries(ctx,
		`SELECT id, assignment_id, person_id, contract_id, entry_date, hours_clocked
		 FROM time_entries WHERE assignment_id = ? ORDER BY rowid`, string(id))
}

func (s *Store) EntriesForPerson(ctx context.Context, id engine.PersonID) ([]engine.TimeEntry, error) {
	return s.queryEntries(ctx,
		`SELECT id, assignment_id, person_id, contract_id, entry_date, hours_clocked
		 FROM time_entries WHERE person_id = ? ORDER BY rowid`, string(id))
}

func (s *Store) EntriesForContract(ctx context.Context, id engine.ContractID) ([]engine.TimeEntry, error) {
	return s.queryEntries(ctx,
		`SELECT id, assignment_id, person_id, contract_id, entry_date, hours_clocked
		 FROM time_entries WHERE contract_id = ? ORDER BY rowid`, string(id))
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]engine.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []engine.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *Store) SaveTimeEntry(ctx context.Context, e engine.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO time_entries (id, assignment_id, person_id, contract_id, entry_date, hours_clocked)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			assignment_id = excluded.assignment_id,
			person_id = excluded.person_id,
			contract_id = excluded.contract_id,
			entry_date = excluded.entry_date,
			hours_clocked = excluded.hours_clocked`,
		string(e.ID), string(e.AssignmentID), string(e.PersonID),
		string(e.ContractID), e.Date.String(), e.HoursClocked.String())
	return err
}

func (s *Store) DeleteTimeEntry(ctx context.Context, id engine.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &engine.NotFoundError{Kind: "entry", ID: string(id)}
	}
	return nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*engine.Person, error) {
	var (
		id, name, region     string
		allocatedStr, maxStr string
		holidays             int
		skillsJSON           string
	)
	if err := row.Scan(&id, &name, &region, &allocatedStr, &maxStr, &holidays, &skillsJSON); err != nil {
		return nil, err
	}

	allocated, err := engine.ParseHours(allocatedStr)
	if err != nil {
		return nil, fmt.Errorf("person %s: bad hours_allocated: %w", id, err)
	}
	max, err := engine.ParseHours(maxStr)
	if err != nil {
		return nil, fmt.Errorf("person %s: bad max_hours: %w", id, err)
	}

	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		return nil, fmt.Errorf("person %s: bad skills: %w", id, err)
	}

	return &engine.Person{
		ID:             engine.PersonID(id),
		Name:           name,
		Region:         region,
		HoursAllocated: allocated,
		MaxHours:       max,
		Holidays:       holidays,
		Skills:         skills,
	}, nil
}

func scanContract(row scanner) (*engine.Contract, error) {
	var (
		id, vendor, region, status string
		requiredStr, skillsJSON    string
		startStr, endStr           string
	)
	if err := row.Scan(&id, &vendor, &region, &requiredStr, &skillsJSON, &startStr, &endStr, &status); err != nil {
		return nil, err
	}

	required, err := engine.ParseHours(requiredStr)
	if err != nil {
		return nil, fmt.Errorf("contract %s: bad hours_required: %w", id, err)
	}
	start, err := engine.ParseDay(startStr)
	if err != nil {
		return nil, fmt.Errorf("contract %s: bad start_date: %w", id, err)
	}
	end, err := engine.ParseDay(endStr)
	if err != nil {
		return nil, fmt.Errorf("contract %s: bad end_date: %w", id, err)
	}

	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		return nil, fmt.Errorf("contract %s: bad skills_required: %w", id, err)
	}

	return &engine.Contract{
		ID:             engine.ContractID(id),
		VendorName:     vendor,
		Region:         region,
		HoursRequired:  required,
		SkillsRequired: skills,
		Period:         engine.Period{Start: start, End: end},
		Status:         engine.ContractStatus(status),
	}, nil
}

func scanAssignment(row scanner) (*engine.Assignment, error) {
	var id, contractID, personID, hoursStr string
	if err := row.Scan(&id, &contractID, &personID, &hoursStr); err != nil {
		return nil, err
	}

	hours, err := engine.ParseHours(hoursStr)
	if err != nil {
		return nil, fmt.Errorf("assignment %s: bad hours_assigned: %w", id, err)
	}

	return &engine.Assignment{
		ID:            engine.AssignmentID(id),
		ContractID:    engine.ContractID(contractID),
		PersonID:      engine.PersonID(personID),
		HoursAssigned: hours,
	}, nil
}

func scanEntry(row scanner) (*engine.TimeEntry, error) {
	var id, assignmentID, personID, contractID, dateStr, hoursStr string
	if err := row.Scan(&id, &assignmentID, &personID, &contractID, &dateStr, &hoursStr); err != nil {
		return nil, err
	}

	date, err := engine.ParseDay(dateStr)
	if err != nil {
		return nil, fmt.Errorf("entry %s: bad entry_date: %w", id, err)
	}
	hours, err := engine.ParseHours(hoursStr)
	if err != nil {
		return nil, fmt.Errorf("entry %s: bad hours_clocked: %w", id, err)
	}

	return &engine.TimeEntry{
		ID:           engine.EntryID(id),
		AssignmentID: engine.AssignmentID(assignmentID),
		PersonID:     engine.PersonID(personID),
		ContractID:   engine.ContractID(contractID),
		Date:         date,
		HoursClocked: hours,
	}, nil
}
