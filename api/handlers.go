/*
handlers.go - HTTP API handlers for the workforce engine

PURPOSE:
  Exposes the allocation engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the engine components.

ENDPOINTS:
  People:
    GET    /api/people                 Roster with live hour aggregates
    POST   /api/people                 Create person
    GET    /api/people/{id}            Get person
    GET    /api/people/{id}/hours      Person hour summary

  Contracts:
    GET    /api/contracts              List contracts
    POST   /api/contracts              Create contract (no implicit allocation)
    GET    /api/contracts/{id}         Get contract
    POST   /api/contracts/{id}/auto-assign  Run the allocator
    GET    /api/contracts/{id}/hours   Contract hour summary
    GET    /api/contracts/{id}/calendar  Per-day performance view

  Assignments:
    GET    /api/assignments            List assignments
    POST   /api/assignments            Manual assignment (override path)
    PUT    /api/assignments/{id}       Edit assigned hours
    DELETE /api/assignments/{id}       Delete (person counter updated)

  Time entries:
    POST   /api/entries                Clock hours
    PUT    /api/entries/{id}           Edit clocked hours
    DELETE /api/entries/{id}           Delete entry

  Reports:
    GET    /api/reports/export?scope=  Engine export data as JSON
    GET    /api/reports/schedule.csv   Schedule report
    GET    /api/reports/performance.csv  Performance report

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - csv.go: Caller-side CSV formatters
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crewplan/workforce-engine/engine"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     engine.Store
	Allocator *engine.Allocator
	Ledger    *engine.Ledger
	Timesheet *engine.Timesheet
	Analyzer  *engine.Analyzer
	Exporter  *engine.Exporter

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler over the given store.
func NewHandler(store engine.Store) *Handler {
	return &Handler{
		Store:     store,
		Allocator: &engine.Allocator{Store: store},
		Ledger:    &engine.Ledger{Store: store},
		Timesheet: &engine.Timesheet{Store: store},
		Analyzer:  &engine.Analyzer{Store: store},
		Exporter:  &engine.Exporter{Store: store},
	}
}

// =============================================================================
// PEOPLE HANDLERS
// =============================================================================

// ListPeople returns the roster with live hour aggregates.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.Store.ListPeople(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list people", err)
		return
	}

	roster := make([]RosterEntryDTO, 0, len(people))
	for _, p := range people {
		summary, err := h.Ledger.PersonHours(r.Context(), p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to compute hours", err)
			return
		}
		roster = append(roster, RosterEntryDTO{
			Person: toPersonDTO(p),
			Hours:  toPersonHoursDTO(*summary),
		})
	}

	writeJSON(w, http.StatusOK, roster)
}

// GetPerson returns a single person.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := engine.PersonID(chi.URLParam(r, "id"))
	person, err := h.Store.FindPerson(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(*person))
}

// CreatePerson creates a new person with a zero allocation counter.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	person := engine.Person{
		ID:             engine.PersonID(req.ID),
		Name:           req.Name,
		Region:         req.Region,
		HoursAllocated: engine.ZeroHours(),
		MaxHours:       engine.NewHours(req.MaxHours),
		Holidays:       req.Holidays,
		Skills:         req.Skills,
	}
	if err := h.Store.SavePerson(r.Context(), person); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create person", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonDTO(person))
}

// GetPersonHours returns the ledger's per-person aggregates.
func (h *Handler) GetPersonHours(w http.ResponseWriter, r *http.Request) {
	id := engine.PersonID(chi.URLParam(r, "id"))
	summary, err := h.Ledger.PersonHours(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonHoursDTO(*summary))
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// ListContracts returns all contracts.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Store.ListContracts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	dtos := make([]ContractDTO, len(contracts))
	for i, c := range contracts {
		dtos[i] = toContractDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetContract returns a single contract.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	id := engine.ContractID(chi.URLParam(r, "id"))
	contract, err := h.Store.FindContract(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractDTO(*contract))
}

// CreateContract creates a pending contract. Allocation is the
// caller's next, explicit step; nothing runs on a timer.
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.VendorName == "" {
		writeError(w, http.StatusBadRequest, "id and vendor_name are required", nil)
		return
	}

	start, err := engine.ParseDay(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := engine.ParseDay(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	contract := engine.Contract{
		ID:             engine.ContractID(req.ID),
		VendorName:     req.VendorName,
		Region:         req.Region,
		HoursRequired:  engine.NewHours(req.HoursRequired),
		SkillsRequired: req.SkillsRequired,
		Period:         engine.Period{Start: start, End: end},
		Status:         engine.StatusPending,
	}
	if err := contract.Period.Valid(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	if err := h.Store.SaveContract(r.Context(), contract); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create contract", err)
		return
	}

	writeJSON(w, http.StatusCreated, toContractDTO(contract))
}

// AutoAssignContract runs the allocator for one contract.
func (h *Handler) AutoAssignContract(w http.ResponseWriter, r *http.Request) {
	id := engine.ContractID(chi.URLParam(r, "id"))

	result, err := h.Allocator.AutoAssign(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := AllocationResultDTO{
		Contract:       toContractDTO(result.Contract),
		NewAssignments: make([]AssignmentDTO, len(result.NewAssignments)),
		Shortfall:      result.Shortfall.Float64(),
	}
	for i, a := range result.NewAssignments {
		dto.NewAssignments[i] = toAssignmentDTO(a)
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetContractHours returns the ledger's per-contract aggregates.
func (h *Handler) GetContractHours(w http.ResponseWriter, r *http.Request) {
	id := engine.ContractID(chi.URLParam(r, "id"))
	summary, err := h.Ledger.ContractHours(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContractHoursDTO{
		Assigned: summary.Assigned.Float64(),
		Worked:   summary.Worked.Float64(),
	})
}

// GetContractCalendar returns per-assignment, per-day classifications.
// An optional ?today=YYYY-MM-DD pins the reference day for tests and
// replays; it defaults to the current UTC day.
func (h *Handler) GetContractCalendar(w http.ResponseWriter, r *http.Request) {
	id := engine.ContractID(chi.URLParam(r, "id"))

	today := engine.Today()
	if q := r.URL.Query().Get("today"); q != "" {
		parsed, err := engine.ParseDay(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid today (use YYYY-MM-DD)", err)
			return
		}
		today = parsed
	}

	cal, err := h.Analyzer.ContractCalendar(r.Context(), id, today)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := CalendarDTO{Contract: toContractDTO(cal.Contract)}
	for _, d := range cal.Days {
		dto.Days = append(dto.Days, d.String())
	}
	for _, s := range cal.Schedules {
		sched := ScheduleDTO{
			Assignment:    toAssignmentDTO(s.Assignment),
			PersonName:    s.PersonName,
			ExpectedDaily: s.ExpectedDaily.Float64(),
			Worked:        s.Worked.Float64(),
			HoursBehind:   s.HoursBehind.Float64(),
		}
		for _, day := range s.Days {
			cell := DayStatusDTO{
				Date:            day.Day.String(),
				Underperforming: day.Underperforming,
			}
			if day.Clocked != nil {
				clocked := day.Clocked.Float64()
				cell.Clocked = &clocked
			}
			sched.Days = append(sched.Days, cell)
		}
		dto.Schedules = append(dto.Schedules, sched)
	}

	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

// ListAssignments returns all assignments.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Store.ListAssignments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}

	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = toAssignmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAssignment is the manual override path: no eligibility or
// capacity check, may exceed the person's ceiling.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req ManualAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	assignment, err := h.Allocator.ManualAssign(r.Context(),
		engine.ContractID(req.ContractID),
		engine.PersonID(req.PersonID),
		engine.NewHours(req.Hours))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssignmentDTO(*assignment))
}

// UpdateAssignment edits assigned hours through the ledger so the
// person counter stays consistent.
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := engine.AssignmentID(chi.URLParam(r, "id"))

	var req UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	assignment, err := h.Ledger.UpdateAssignment(r.Context(), id, engine.NewHours(req.Hours))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTO(*assignment))
}

// DeleteAssignment removes an assignment through the ledger.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := engine.AssignmentID(chi.URLParam(r, "id"))
	if err := h.Ledger.DeleteAssignment(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TIME ENTRY HANDLERS
// =============================================================================

// CreateEntry clocks hours against an assignment. Person and contract
// references are derived server-side.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := engine.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	entry, err := h.Timesheet.AddEntry(r.Context(),
		engine.AssignmentID(req.AssignmentID), date, engine.NewHours(req.Hours))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryDTO(*entry))
}

// UpdateEntry edits clocked hours.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Timesheet.UpdateEntry(r.Context(), id, engine.NewHours(req.Hours))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(*entry))
}

// DeleteEntry removes a time entry.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))
	if err := h.Timesheet.DeleteEntry(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// Export returns the engine's export data for a scope as JSON.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	scope := engine.ExportScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = engine.ScopeContracts
	}

	report, err := h.Exporter.Export(r.Context(), scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build export", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing better to do.
		log.Printf("writeJSON: %v", err)
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
