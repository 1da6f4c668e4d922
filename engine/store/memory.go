// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/crewplan/workforce-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds the four collections as insertion-ordered slices. Copy-in,
// copy-out: callers never see internal slices or share records.
type Memory struct {
	mu          sync.RWMutex
	people      []engine.Person
	contracts   []engine.Contract
	assignments []engine.Assignment
	entries     []engine.TimeEntry
}

func NewMemory() *Memory {
	return &Memory{}
}

// =============================================================================
// LOOKUPS
// =============================================================================

func (m *Memory) FindPerson(_ context.Context, id engine.PersonID) (*engine.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.people {
		if p.ID == id {
			cp := clonePerson(p)
			return &cp, nil
		}
	}
	return nil, &engine.NotFoundError{Kind: "person", ID: string(id)}
}

func (m *Memory) FindContract(_ context.Context, id engine.ContractID) (*engine.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.contracts {
		if c.ID == id {
			cp := cloneContract(c)
			return &cp, nil
		}
	}
	return nil, &engine.NotFoundError{Kind: "contract", ID: string(id)}
}

func (m *Memory) FindAssignment(_ context.Context, id engine.AssignmentID) (*engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assignments {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, &engine.NotFoundError{Kind: "assignment", ID: string(id)}
}

func (m *Memory) FindTimeEntry(_ context.Context, id engine.EntryID) (*engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, &engine.NotFoundError{Kind: "entry", ID: string(id)}
}

// =============================================================================
// COLLECTIONS
// =============================================================================

func (m *Memory) ListPeople(_ context.Context) ([]engine.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.Person, len(m.people))
	for i, p := range m.people {
		out[i] = clonePerson(p)
	}
	return out, nil
}

func (m *Memory) ListContracts(_ context.Context) ([]engine.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.Contract, len(m.contracts))
	for i, c := range m.contracts {
		out[i] = cloneContract(c)
	}
	return out, nil
}

func (m *Memory) ListAssignments(_ context.Context) ([]engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]engine.Assignment{}, m.assignments...), nil
}

func (m *Memory) ListTimeEntries(_ context.Context) ([]engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]engine.TimeEntry{}, m.entries...), nil
}

// =============================================================================
// SCOPED FILTERS
// =============================================================================

func (m *Memory) AssignmentsForContract(_ context.Context, id engine.ContractID) ([]engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Assignment
	for _, a := range m.assignments {
		if a.ContractID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) AssignmentsForPerson(_ context.Context, id engine.PersonID) ([]engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Assignment
	for _, a := range m.assignments {
		if a.PersonID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) EntriesForAssignment(_ context.Context, id engine.AssignmentID) ([]engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.TimeEntry
	for _, e := range m.entries {
		if e.AssignmentID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) EntriesForPerson(_ context.Context, id engine.PersonID) ([]engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.TimeEntry
	for _, e := range m.entries {
		if e.PersonID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) EntriesForContract(_ context.Context, id engine.ContractID) ([]engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.TimeEntry
	for _, e := range m.entries {
		if e.ContractID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

func (m *Memory) SavePerson(_ context.Context, p engine.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := clonePerson(p)
	for i := range m.people {
		if m.people[i].ID == p.ID {
			m.people[i] = cp
			return nil
		}
	}
	m.people = append(m.people, cp)
	return nil
}

func (m *Memory) SaveContract(_ context.Context, c engine.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneContract(c)
	for i := range m.contracts {
		if m.contracts[i].ID == c.ID {
			m.contracts[i] = cp
			return nil
		}
	}
	m.contracts = append(m.contracts, cp)
	return nil
}

func (m *Memory) SaveAssignment(_ context.Context, a engine.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assignments {
		if m.assignments[i].ID == a.ID {
			m.assignments[i] = a
			return nil
		}
	}
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *Memory) SaveTimeEntry(_ context.Context, e engine.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == e.ID {
			m.entries[i] = e
			return nil
		}
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) DeleteAssignment(_ context.Context, id engine.AssignmentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return &engine.NotFoundError{Kind: "assignment", ID: string(id)}
}

func (m *Memory) DeleteTimeEntry(_ context.Context, id engine.EntryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return &engine.NotFoundError{Kind: "entry", ID: string(id)}
}

// =============================================================================
// HELPERS
// =============================================================================

func clonePerson(p engine.Person) engine.Person {
	p.Skills = append([]string{}, p.Skills...)
	return p
}

func cloneContract(c engine.Contract) engine.Contract {
	c.SkillsRequired = append([]string{}, c.SkillsRequired...)
	return c
}
