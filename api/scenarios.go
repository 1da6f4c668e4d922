/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Seeds the store with recognizable demo data so the API is explorable
  without a client that can create everything by hand. Loading a
  scenario does not clear prior data; use a fresh database per load.

SCENARIOS:
  empty:  Nothing seeded.
  roster: Eight workers across four regions, one completed contract,
          one active contract with mixed performance, one future
          contract already staffed.
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/crewplan/workforce-engine/engine"
)

type scenario struct {
	ID          string
	Name        string
	Description string
	Load        func(ctx context.Context, store engine.Store) error
}

func scenarios() []scenario {
	return []scenario{
		{
			ID:          "empty",
			Name:        "Empty",
			Description: "No seed data",
			Load:        func(context.Context, engine.Store) error { return nil },
		},
		{
			ID:          "roster",
			Name:        "Regional roster",
			Description: "Eight workers, three contracts, mixed performance history",
			Load:        loadRosterScenario,
		},
	}
}

// ListScenarios returns the available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	var dtos []ScenarioDTO
	for _, s := range scenarios() {
		dtos = append(dtos, ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario reports which scenario was loaded last.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"id": h.currentScenario})
}

// LoadScenario seeds the store with the named scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	for _, s := range scenarios() {
		if s.ID == req.ID {
			if err := s.Load(r.Context(), h.Store); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
				return
			}
			h.currentScenario = s.ID
			writeJSON(w, http.StatusOK, map[string]string{"loaded": s.ID})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Unknown scenario", nil)
}

// =============================================================================
// ROSTER SCENARIO
// =============================================================================

func loadRosterScenario(ctx context.Context, store engine.Store) error {
	person := func(id, name, region string, allocated, max float64, skills ...string) engine.Person {
		return engine.Person{
			ID:             engine.PersonID(id),
			Name:           name,
			Region:         region,
			HoursAllocated: engine.NewHours(allocated),
			MaxHours:       engine.NewHours(max),
			Holidays:       4,
			Skills:         skills,
		}
	}

	// HoursAllocated matches the seeded assignments below so the
	// counter invariant holds from the first request.
	people := []engine.Person{
		person("p1", "John Smith", "North", 25, 40, "Construction", "Safety"),
		person("p2", "Sarah Johnson", "North", 0, 40, "Logistics", "Management"),
		person("p3", "Mike Chen", "South", 30, 40, "IT Support", "Networking"),
		person("p4", "Emily Davis", "North", 35, 40, "Construction", "Equipment"),
		person("p5", "James Wilson", "East", 40, 40, "Security", "Safety"),
		person("p6", "Lisa Anderson", "South", 30, 40, "Cleaning", "Maintenance"),
		person("p7", "David Brown", "West", 0, 40, "Logistics", "Driving"),
		person("p8", "Maria Garcia", "East", 30, 40, "IT Support", "Help Desk"),
	}
	for _, p := range people {
		if err := store.SavePerson(ctx, p); err != nil {
			return err
		}
	}

	day := func(y int, m time.Month, d int) engine.Day { return engine.NewDay(y, m, d) }

	contracts := []engine.Contract{
		{
			ID: "c0", VendorName: "TechSupport Co", Region: "South",
			HoursRequired:  engine.NewHours(60),
			SkillsRequired: []string{"IT Support", "Networking"},
			Period:         engine.Period{Start: day(2025, time.November, 10), End: day(2025, time.November, 23)},
			Status:         engine.StatusCompleted,
		},
		{
			ID: "c1", VendorName: "BuildCo Industries", Region: "North",
			HoursRequired:  engine.NewHours(80),
			SkillsRequired: []string{"Construction", "Safety"},
			Period:         engine.Period{Start: day(2025, time.November, 24), End: day(2025, time.December, 8)},
			Status:         engine.StatusActive,
		},
		{
			ID: "c2", VendorName: "FutureTech Systems", Region: "East",
			HoursRequired:  engine.NewHours(70),
			SkillsRequired: []string{"Security", "Safety"},
			Period:         engine.Period{Start: day(2025, time.December, 9), End: day(2025, time.December, 22)},
			Status:         engine.StatusPending,
		},
	}
	for _, c := range contracts {
		if err := store.SaveContract(ctx, c); err != nil {
			return err
		}
	}

	assign := func(id, contractID, personID string, hours float64) engine.Assignment {
		return engine.Assignment{
			ID:            engine.AssignmentID(id),
			ContractID:    engine.ContractID(contractID),
			PersonID:      engine.PersonID(personID),
			HoursAssigned: engine.NewHours(hours),
		}
	}

	assignments := []engine.Assignment{
		assign("a0", "c0", "p3", 30),
		assign("a00", "c0", "p6", 30),
		assign("a1", "c1", "p1", 25),
		assign("a2", "c1", "p4", 35),
		assign("a3", "c2", "p5", 40),
		assign("a4", "c2", "p8", 30),
	}
	for _, a := range assignments {
		if err := store.SaveAssignment(ctx, a); err != nil {
			return err
		}
	}

	entry := func(id, assignmentID, personID, contractID string, d engine.Day, hours float64) engine.TimeEntry {
		return engine.TimeEntry{
			ID:           engine.EntryID(id),
			AssignmentID: engine.AssignmentID(assignmentID),
			PersonID:     engine.PersonID(personID),
			ContractID:   engine.ContractID(contractID),
			Date:         d,
			HoursClocked: engine.NewHours(hours),
		}
	}

	entries := []engine.TimeEntry{
		// Completed contract, both workers on a steady cadence.
		entry("t01", "a0", "p3", "c0", day(2025, time.November, 11), 4),
		entry("t02", "a0", "p3", "c0", day(2025, time.November, 12), 4),
		entry("t03", "a0", "p3", "c0", day(2025, time.November, 13), 4),
		entry("t04", "a0", "p3", "c0", day(2025, time.November, 14), 3),
		entry("t05", "a0", "p3", "c0", day(2025, time.November, 15), 3),
		entry("t06", "a0", "p3", "c0", day(2025, time.November, 18), 4),
		entry("t07", "a0", "p3", "c0", day(2025, time.November, 19), 4),
		entry("t08", "a0", "p3", "c0", day(2025, time.November, 20), 4),
		entry("t09", "a00", "p6", "c0", day(2025, time.November, 11), 4),
		entry("t10", "a00", "p6", "c0", day(2025, time.November, 12), 4),
		entry("t11", "a00", "p6", "c0", day(2025, time.November, 13), 4),
		entry("t12", "a00", "p6", "c0", day(2025, time.November, 14), 3),
		entry("t13", "a00", "p6", "c0", day(2025, time.November, 15), 3),
		entry("t14", "a00", "p6", "c0", day(2025, time.November, 18), 4),
		entry("t15", "a00", "p6", "c0", day(2025, time.November, 19), 4),
		entry("t16", "a00", "p6", "c0", day(2025, time.November, 20), 4),

		// Active contract: John is behind, Emily keeps pace. The gap on
		// Dec 2-3 for John is deliberate: past days with no entries.
		entry("t17", "a1", "p1", "c1", day(2025, time.November, 25), 3),
		entry("t18", "a1", "p1", "c1", day(2025, time.November, 26), 4),
		entry("t19", "a1", "p1", "c1", day(2025, time.November, 27), 3),
		entry("t20", "a1", "p1", "c1", day(2025, time.November, 28), 4),
		entry("t21", "a1", "p1", "c1", day(2025, time.November, 29), 3),
		entry("t22", "a2", "p4", "c1", day(2025, time.November, 25), 5),
		entry("t23", "a2", "p4", "c1", day(2025, time.November, 26), 5),
		entry("t24", "a2", "p4", "c1", day(2025, time.November, 27), 5),
		entry("t25", "a2", "p4", "c1", day(2025, time.November, 28), 5),
		entry("t26", "a2", "p4", "c1", day(2025, time.November, 29), 4),
		entry("t27", "a2", "p4", "c1", day(2025, time.December, 2), 5),
		entry("t28", "a2", "p4", "c1", day(2025, time.December, 3), 5),
	}
	for _, e := range entries {
		if err := store.SaveTimeEntry(ctx, e); err != nil {
			return err
		}
	}

	return nil
}
