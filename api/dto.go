/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the engine's domain model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers. Hour fields travel as JSON numbers and are converted to
  decimals at the handler boundary.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/crewplan/workforce-engine/engine"
)

// =============================================================================
// PEOPLE
// =============================================================================

// PersonDTO represents a person in API responses.
type PersonDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Region         string   `json:"region"`
	HoursAllocated float64  `json:"hours_allocated"`
	MaxHours       float64  `json:"max_hours"`
	Holidays       int      `json:"holidays"`
	Skills         []string `json:"skills"`
}

// CreatePersonRequest is the request to create a person.
type CreatePersonRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Region   string   `json:"region"`
	MaxHours float64  `json:"max_hours"`
	Holidays int      `json:"holidays"`
	Skills   []string `json:"skills"`
}

// PersonHoursDTO is the ledger's per-person aggregate view.
type PersonHoursDTO struct {
	Assigned   float64 `json:"assigned"`
	Worked     float64 `json:"worked"`
	Unassigned float64 `json:"unassigned"`
	Remaining  float64 `json:"remaining"`
}

// RosterEntryDTO is a person plus their live hour aggregates.
type RosterEntryDTO struct {
	Person PersonDTO      `json:"person"`
	Hours  PersonHoursDTO `json:"hours"`
}

// =============================================================================
// CONTRACTS
// =============================================================================

// ContractDTO represents a contract in API responses.
type ContractDTO struct {
	ID             string   `json:"id"`
	VendorName     string   `json:"vendor_name"`
	Region         string   `json:"region"`
	HoursRequired  float64  `json:"hours_required"`
	SkillsRequired []string `json:"skills_required"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Status         string   `json:"status"`
}

// CreateContractRequest is the request to create a contract.
// Allocation is a separate, explicit call.
type CreateContractRequest struct {
	ID             string   `json:"id"`
	VendorName     string   `json:"vendor_name"`
	Region         string   `json:"region"`
	HoursRequired  float64  `json:"hours_required"`
	SkillsRequired []string `json:"skills_required"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
}

// ContractHoursDTO is the ledger's per-contract aggregate view.
type ContractHoursDTO struct {
	Assigned float64 `json:"assigned"`
	Worked   float64 `json:"worked"`
}

// AllocationResultDTO describes one auto-assign run.
type AllocationResultDTO struct {
	Contract       ContractDTO     `json:"contract"`
	NewAssignments []AssignmentDTO `json:"new_assignments"`
	Shortfall      float64         `json:"shortfall"`
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// AssignmentDTO represents an assignment.
type AssignmentDTO struct {
	ID            string  `json:"id"`
	ContractID    string  `json:"contract_id"`
	PersonID      string  `json:"person_id"`
	HoursAssigned float64 `json:"hours_assigned"`
}

// ManualAssignRequest is the request to assign a person by hand.
type ManualAssignRequest struct {
	ContractID string  `json:"contract_id"`
	PersonID   string  `json:"person_id"`
	Hours      float64 `json:"hours"`
}

// UpdateAssignmentRequest is the request to edit assigned hours.
type UpdateAssignmentRequest struct {
	Hours float64 `json:"hours"`
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

// TimeEntryDTO represents a time entry.
type TimeEntryDTO struct {
	ID           string  `json:"id"`
	AssignmentID string  `json:"assignment_id"`
	PersonID     string  `json:"person_id"`
	ContractID   string  `json:"contract_id"`
	Date         string  `json:"date"`
	HoursClocked float64 `json:"hours_clocked"`
}

// CreateEntryRequest records clocked hours. Person and contract are
// derived from the assignment server-side.
type CreateEntryRequest struct {
	AssignmentID string  `json:"assignment_id"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
}

// UpdateEntryRequest is the request to edit clocked hours.
type UpdateEntryRequest struct {
	Hours float64 `json:"hours"`
}

// =============================================================================
// CALENDAR
// =============================================================================

// DayStatusDTO is one calendar cell.
type DayStatusDTO struct {
	Date            string   `json:"date"`
	Clocked         *float64 `json:"clocked,omitempty"`
	Underperforming bool     `json:"underperforming"`
}

// ScheduleDTO is one assignment's calendar row.
type ScheduleDTO struct {
	Assignment    AssignmentDTO  `json:"assignment"`
	PersonName    string         `json:"person_name"`
	ExpectedDaily float64        `json:"expected_daily"`
	Worked        float64        `json:"worked"`
	HoursBehind   float64        `json:"hours_behind"`
	Days          []DayStatusDTO `json:"days"`
}

// CalendarDTO is the full per-day view for one contract.
type CalendarDTO struct {
	Contract  ContractDTO   `json:"contract"`
	Days      []string      `json:"days"`
	Schedules []ScheduleDTO `json:"schedules"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toPersonDTO(p engine.Person) PersonDTO {
	return PersonDTO{
		ID:             string(p.ID),
		Name:           p.Name,
		Region:         p.Region,
		HoursAllocated: p.HoursAllocated.Float64(),
		MaxHours:       p.MaxHours.Float64(),
		Holidays:       p.Holidays,
		Skills:         p.Skills,
	}
}

func toContractDTO(c engine.Contract) ContractDTO {
	return ContractDTO{
		ID:             string(c.ID),
		VendorName:     c.VendorName,
		Region:         c.Region,
		HoursRequired:  c.HoursRequired.Float64(),
		SkillsRequired: c.SkillsRequired,
		StartDate:      c.Period.Start.String(),
		EndDate:        c.Period.End.String(),
		Status:         string(c.Status),
	}
}

func toAssignmentDTO(a engine.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            string(a.ID),
		ContractID:    string(a.ContractID),
		PersonID:      string(a.PersonID),
		HoursAssigned: a.HoursAssigned.Float64(),
	}
}

func toEntryDTO(e engine.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:           string(e.ID),
		AssignmentID: string(e.AssignmentID),
		PersonID:     string(e.PersonID),
		ContractID:   string(e.ContractID),
		Date:         e.Date.String(),
		HoursClocked: e.HoursClocked.Float64(),
	}
}

func toPersonHoursDTO(s engine.PersonHoursSummary) PersonHoursDTO {
	return PersonHoursDTO{
		Assigned:   s.Assigned.Float64(),
		Worked:     s.Worked.Float64(),
		Unassigned: s.Unassigned.Float64(),
		Remaining:  s.Remaining.Float64(),
	}
}
