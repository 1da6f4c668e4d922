package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewplan/workforce-engine/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_PersonRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := engine.Person{
		ID:             "p1",
		Name:           "John Smith",
		Region:         "North",
		HoursAllocated: engine.NewHours(12.5),
		MaxHours:       engine.NewHours(40),
		Holidays:       4,
		Skills:         []string{"Construction", "Safety"},
	}
	require.NoError(t, s.SavePerson(ctx, p))

	found, err := s.FindPerson(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Name, found.Name)
	assert.Equal(t, p.Region, found.Region)
	assert.Equal(t, p.Holidays, found.Holidays)
	assert.Equal(t, p.Skills, found.Skills)
	// Decimals survive the TEXT round trip exactly.
	assert.True(t, found.HoursAllocated.Equal(engine.NewHours(12.5)))
	assert.True(t, found.MaxHours.Equal(engine.NewHours(40)))
}

func TestSQLite_ContractRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := engine.Contract{
		ID:             "c1",
		VendorName:     "BuildCo Industries",
		Region:         "North",
		HoursRequired:  engine.NewHours(80),
		SkillsRequired: []string{"Construction", "Safety"},
		Period: engine.Period{
			Start: engine.NewDay(2025, time.November, 24),
			End:   engine.NewDay(2025, time.December, 8),
		},
		Status: engine.StatusActive,
	}
	require.NoError(t, s.SaveContract(ctx, c))

	found, err := s.FindContract(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, c.VendorName, found.VendorName)
	assert.Equal(t, c.SkillsRequired, found.SkillsRequired)
	assert.Equal(t, engine.StatusActive, found.Status)
	assert.True(t, found.Period.Start.Equal(c.Period.Start))
	assert.True(t, found.Period.End.Equal(c.Period.End))
	assert.Equal(t, 15, found.Period.TotalDays())
}

func TestSQLite_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.FindPerson(ctx, "missing")
	assert.True(t, engine.IsNotFound(err))
	_, err = s.FindContract(ctx, "missing")
	assert.True(t, engine.IsNotFound(err))
	_, err = s.FindAssignment(ctx, "missing")
	assert.True(t, engine.IsNotFound(err))
	_, err = s.FindTimeEntry(ctx, "missing")
	assert.True(t, engine.IsNotFound(err))
	assert.True(t, engine.IsNotFound(s.DeleteAssignment(ctx, "missing")))
	assert.True(t, engine.IsNotFound(s.DeleteTimeEntry(ctx, "missing")))
}

func TestSQLite_UpsertPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"c1", "c2", "c3"} {
		c := engine.Contract{
			ID:             engine.ContractID(id),
			VendorName:     "Vendor " + id,
			Region:         "North",
			HoursRequired:  engine.NewHours(10),
			SkillsRequired: []string{},
			Period: engine.Period{
				Start: engine.NewDay(2025, time.November, 24),
				End:   engine.NewDay(2025, time.November, 30),
			},
			Status: engine.StatusPending,
		}
		require.NoError(t, s.SaveContract(ctx, c))
	}

	// Update the first contract; its rowid (and position) must not change.
	first, err := s.FindContract(ctx, "c1")
	require.NoError(t, err)
	first.Status = engine.StatusActive
	require.NoError(t, s.SaveContract(ctx, *first))

	contracts, err := s.ListContracts(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 3)
	assert.Equal(t, engine.ContractID("c1"), contracts[0].ID)
	assert.Equal(t, engine.StatusActive, contracts[0].Status)
	assert.Equal(t, engine.ContractID("c3"), contracts[2].ID)
}

func TestSQLite_ScopedAssignmentQueries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	assignments := []engine.Assignment{
		{ID: "a1", ContractID: "c1", PersonID: "p1", HoursAssigned: engine.NewHours(10)},
		{ID: "a2", ContractID: "c1", PersonID: "p2", HoursAssigned: engine.NewHours(20)},
		{ID: "a3", ContractID: "c2", PersonID: "p1", HoursAssigned: engine.NewHours(5)},
	}
	for _, a := range assignments {
		require.NoError(t, s.SaveAssignment(ctx, a))
	}

	forContract, err := s.AssignmentsForContract(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, forContract, 2)
	assert.Equal(t, engine.AssignmentID("a1"), forContract[0].ID)
	assert.Equal(t, engine.AssignmentID("a2"), forContract[1].ID)

	forPerson, err := s.AssignmentsForPerson(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, forPerson, 2)
	assert.Equal(t, engine.AssignmentID("a3"), forPerson[1].ID)

	require.NoError(t, s.DeleteAssignment(ctx, "a2"))
	remaining, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestSQLite_TimeEntryQueries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	entries := []engine.TimeEntry{
		{ID: "t1", AssignmentID: "a1", PersonID: "p1", ContractID: "c1",
			Date: engine.NewDay(2025, time.November, 25), HoursClocked: engine.NewHours(4)},
		{ID: "t2", AssignmentID: "a1", PersonID: "p1", ContractID: "c1",
			Date: engine.NewDay(2025, time.November, 26), HoursClocked: engine.NewHours(3.25)},
		{ID: "t3", AssignmentID: "a2", PersonID: "p2", ContractID: "c1",
			Date: engine.NewDay(2025, time.November, 25), HoursClocked: engine.NewHours(5)},
	}
	for _, e := range entries {
		require.NoError(t, s.SaveTimeEntry(ctx, e))
	}

	byAssignment, err := s.EntriesForAssignment(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, byAssignment, 2)
	assert.True(t, byAssignment[1].HoursClocked.Equal(engine.NewHours(3.25)))

	byPerson, err := s.EntriesForPerson(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, byPerson, 1)

	byContract, err := s.EntriesForContract(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byContract, 3)

	found, err := s.FindTimeEntry(ctx, "t2")
	require.NoError(t, err)
	assert.True(t, found.Date.Equal(engine.NewDay(2025, time.November, 26)))
}

// The engine invariants must hold on the durable store too, not just the
// in-memory one.
func TestSQLite_EngineInvariantEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SavePerson(ctx, engine.Person{
		ID: "p1", Name: "John Smith", Region: "North",
		HoursAllocated: engine.ZeroHours(), MaxHours: engine.NewHours(40),
		Skills: []string{"Construction"},
	}))
	require.NoError(t, s.SaveContract(ctx, engine.Contract{
		ID: "c1", VendorName: "BuildCo", Region: "North",
		HoursRequired:  engine.NewHours(30),
		SkillsRequired: []string{"Construction"},
		Period: engine.Period{
			Start: engine.NewDay(2025, time.November, 24),
			End:   engine.NewDay(2025, time.December, 8),
		},
		Status: engine.StatusPending,
	}))

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, result.NewAssignments, 1)
	assert.Equal(t, engine.StatusActive, result.Contract.Status)

	p, err := s.FindPerson(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.HoursAllocated.Equal(engine.NewHours(30)))

	ledger := &engine.Ledger{Store: s}
	require.NoError(t, ledger.DeleteAssignment(ctx, result.NewAssignments[0].ID))

	p, err = s.FindPerson(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.HoursAllocated.IsZero())
}
