package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/crewplan/workforce-engine/engine"
	"github.com/crewplan/workforce-engine/engine/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func hours(v float64) engine.Hours {
	return engine.NewHours(v)
}

func day(y int, m time.Month, d int) engine.Day {
	return engine.NewDay(y, m, d)
}

func seedPerson(t *testing.T, s engine.Store, id string, region string, allocated, max float64, skills ...string) engine.Person {
	t.Helper()
	p := engine.Person{
		ID:             engine.PersonID(id),
		Name:           "Worker " + id,
		Region:         region,
		HoursAllocated: hours(allocated),
		MaxHours:       hours(max),
		Skills:         skills,
	}
	if err := s.SavePerson(context.Background(), p); err != nil {
		t.Fatalf("seed person: %v", err)
	}
	return p
}

func seedContract(t *testing.T, s engine.Store, id string, region string, required float64, skills ...string) engine.Contract {
	t.Helper()
	c := engine.Contract{
		ID:             engine.ContractID(id),
		VendorName:     "Vendor " + id,
		Region:         region,
		HoursRequired:  hours(required),
		SkillsRequired: skills,
		Period:         engine.Period{Start: day(2025, time.November, 24), End: day(2025, time.December, 8)},
		Status:         engine.StatusPending,
	}
	if err := s.SaveContract(context.Background(), c); err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return c
}

func mustFindPerson(t *testing.T, s engine.Store, id string) engine.Person {
	t.Helper()
	p, err := s.FindPerson(context.Background(), engine.PersonID(id))
	if err != nil {
		t.Fatalf("find person %s: %v", id, err)
	}
	return *p
}

// =============================================================================
// AUTO ASSIGNMENT
// =============================================================================

func TestAutoAssign_SingleEligiblePerson_FullCoverage(t *testing.T) {
	// GIVEN: One person with 40h capacity and 0 allocated, matching region and skill
	// WHEN: Auto-assigning a 30h contract
	// THEN: One 30h assignment is created and the contract goes active

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 30, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.NewAssignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(result.NewAssignments))
	}
	if !result.NewAssignments[0].HoursAssigned.Equal(hours(30)) {
		t.Errorf("expected 30h assigned, got %v", result.NewAssignments[0].HoursAssigned)
	}
	if result.Contract.Status != engine.StatusActive {
		t.Errorf("expected active status, got %s", result.Contract.Status)
	}

	p := mustFindPerson(t, s, "p1")
	if !p.HoursAllocated.Equal(hours(30)) {
		t.Errorf("expected person counter 30, got %v", p.HoursAllocated)
	}
}

func TestAutoAssign_LeastLoadedFirst_SplitAcrossTwoPeople(t *testing.T) {
	// GIVEN: Two eligible people at 10h and 30h allocated (both max 40)
	// WHEN: Auto-assigning a 40h contract
	// THEN: The 10h person takes their 30 available first, the 30h person
	//       the remaining 10, and the contract goes active

	ctx := context.Background()
	s := store.NewMemory()
	// Seed in the "wrong" order so the sort has to do the work.
	seedPerson(t, s, "heavy", "North", 30, 40, "Construction")
	seedPerson(t, s, "light", "North", 10, 40, "Construction")
	seedContract(t, s, "c1", "North", 40, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.NewAssignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(result.NewAssignments))
	}
	first, second := result.NewAssignments[0], result.NewAssignments[1]
	if first.PersonID != "light" || !first.HoursAssigned.Equal(hours(30)) {
		t.Errorf("expected light person assigned 30 first, got %s with %v", first.PersonID, first.HoursAssigned)
	}
	if second.PersonID != "heavy" || !second.HoursAssigned.Equal(hours(10)) {
		t.Errorf("expected heavy person assigned 10 second, got %s with %v", second.PersonID, second.HoursAssigned)
	}
	if result.Contract.Status != engine.StatusActive {
		t.Errorf("expected active status, got %s", result.Contract.Status)
	}

	// Nobody over their ceiling.
	for _, id := range []string{"light", "heavy"} {
		p := mustFindPerson(t, s, id)
		if p.HoursAllocated.GreaterThan(p.MaxHours) {
			t.Errorf("person %s pushed past max: %v > %v", id, p.HoursAllocated, p.MaxHours)
		}
	}
}

func TestAutoAssign_RegionMismatch_NoAssignments(t *testing.T) {
	// GIVEN: Only people outside the contract's region
	// WHEN: Auto-assigning
	// THEN: No assignments are created and the contract stays pending

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "South", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 30, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.NewAssignments) != 0 {
		t.Errorf("expected no assignments, got %d", len(result.NewAssignments))
	}
	if result.Contract.Status != engine.StatusPending {
		t.Errorf("expected pending status, got %s", result.Contract.Status)
	}
	if !result.Shortfall.Equal(hours(30)) {
		t.Errorf("expected 30h shortfall, got %v", result.Shortfall)
	}
}

func TestAutoAssign_SkillMatchIsAnyNotAll(t *testing.T) {
	// GIVEN: A person sharing only one of the contract's two required skills
	// WHEN: Auto-assigning
	// THEN: The person is eligible (OR semantics)

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Safety")
	seedContract(t, s, "c1", "North", 20, "Construction", "Safety")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.NewAssignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(result.NewAssignments))
	}
}

func TestAutoAssign_NoSharedSkills_Excluded(t *testing.T) {
	// GIVEN: A person in-region with zero shared skills
	// WHEN: Auto-assigning
	// THEN: The person is never assigned

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Cleaning")
	seedContract(t, s, "c1", "North", 20, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.NewAssignments) != 0 {
		t.Errorf("expected no assignments, got %d", len(result.NewAssignments))
	}
}

func TestAutoAssign_InsufficientCapacity_PartialKept(t *testing.T) {
	// GIVEN: One eligible person with only 15h available
	// WHEN: Auto-assigning a 40h contract
	// THEN: The 15h partial assignment is kept and the contract stays pending

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 25, 40, "Construction")
	seedContract(t, s, "c1", "North", 40, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.NewAssignments) != 1 {
		t.Fatalf("expected 1 partial assignment, got %d", len(result.NewAssignments))
	}
	if !result.NewAssignments[0].HoursAssigned.Equal(hours(15)) {
		t.Errorf("expected 15h partial, got %v", result.NewAssignments[0].HoursAssigned)
	}
	if result.Contract.Status != engine.StatusPending {
		t.Errorf("expected pending status, got %s", result.Contract.Status)
	}
	if !result.Shortfall.Equal(hours(25)) {
		t.Errorf("expected 25h shortfall, got %v", result.Shortfall)
	}
}

func TestAutoAssign_Reinvocation_TopsUpShortfallOnly(t *testing.T) {
	// GIVEN: A partially covered contract (15 of 40 assigned)
	// WHEN: Capacity is added and AutoAssign runs again
	// THEN: Only the 25h shortfall is allocated, not the full 40 again

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 25, 40, "Construction")
	seedContract(t, s, "c1", "North", 40, "Construction")

	alloc := &engine.Allocator{Store: s}
	if _, err := alloc.AutoAssign(ctx, "c1"); err != nil {
		t.Fatalf("first run: %v", err)
	}

	seedPerson(t, s, "p2", "North", 0, 40, "Construction")

	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(result.NewAssignments) != 1 {
		t.Fatalf("expected 1 top-up assignment, got %d", len(result.NewAssignments))
	}
	if !result.NewAssignments[0].HoursAssigned.Equal(hours(25)) {
		t.Errorf("expected 25h top-up, got %v", result.NewAssignments[0].HoursAssigned)
	}
	if result.Contract.Status != engine.StatusActive {
		t.Errorf("expected active status, got %s", result.Contract.Status)
	}

	total := hours(0)
	assignments, _ := s.AssignmentsForContract(ctx, "c1")
	for _, a := range assignments {
		total = total.Add(a.HoursAssigned)
	}
	if !total.Equal(hours(40)) {
		t.Errorf("expected 40h total assigned across runs, got %v", total)
	}
}

func TestAutoAssign_ZeroHoursRequired_TriviallyActive(t *testing.T) {
	// GIVEN: A contract requiring 0 hours
	// WHEN: Auto-assigning
	// THEN: No assignments, status active

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 0, "Construction")

	alloc := &engine.Allocator{Store: s}
	result, err := alloc.AutoAssign(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.NewAssignments) != 0 {
		t.Errorf("expected no assignments, got %d", len(result.NewAssignments))
	}
	if result.Contract.Status != engine.StatusActive {
		t.Errorf("expected active status, got %s", result.Contract.Status)
	}
}

func TestAutoAssign_UnknownContract_NotFound(t *testing.T) {
	s := store.NewMemory()
	alloc := &engine.Allocator{Store: s}

	_, err := alloc.AutoAssign(context.Background(), "missing")
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// =============================================================================
// MANUAL ASSIGNMENT
// =============================================================================

func TestManualAssign_BypassesCapacityCeiling(t *testing.T) {
	// GIVEN: A person already at their 40h ceiling
	// WHEN: Manually assigning 10 more hours
	// THEN: The assignment is created and the counter goes to 50

	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 40, 40, "Construction")
	seedContract(t, s, "c1", "South", 100) // region/skills irrelevant for manual

	alloc := &engine.Allocator{Store: s}
	a, err := alloc.ManualAssign(ctx, "c1", "p1", hours(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.HoursAssigned.Equal(hours(10)) {
		t.Errorf("expected 10h assigned, got %v", a.HoursAssigned)
	}

	p := mustFindPerson(t, s, "p1")
	if !p.HoursAllocated.Equal(hours(50)) {
		t.Errorf("expected counter 50 after override, got %v", p.HoursAllocated)
	}
}

func TestManualAssign_NonPositiveHours_Rejected(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 30, "Construction")

	alloc := &engine.Allocator{Store: s}
	for _, bad := range []float64{0, -5} {
		if _, err := alloc.ManualAssign(ctx, "c1", "p1", hours(bad)); !engine.IsClientError(err) {
			t.Errorf("expected client error for %vh, got %v", bad, err)
		}
	}

	// No side effects from rejected calls.
	assignments, _ := s.ListAssignments(ctx)
	if len(assignments) != 0 {
		t.Errorf("expected no assignments after rejections, got %d", len(assignments))
	}
	p := mustFindPerson(t, s, "p1")
	if !p.HoursAllocated.IsZero() {
		t.Errorf("expected untouched counter, got %v", p.HoursAllocated)
	}
}

func TestManualAssign_UnknownReferences_NotFound(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	seedPerson(t, s, "p1", "North", 0, 40, "Construction")
	seedContract(t, s, "c1", "North", 30, "Construction")

	alloc := &engine.Allocator{Store: s}
	if _, err := alloc.ManualAssign(ctx, "nope", "p1", hours(5)); !engine.IsNotFound(err) {
		t.Errorf("expected not-found for unknown contract, got %v", err)
	}
	if _, err := alloc.ManualAssign(ctx, "c1", "nope", hours(5)); !engine.IsNotFound(err) {
		t.Errorf("expected not-found for unknown person, got %v", err)
	}
}
