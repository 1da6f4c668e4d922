/*
export.go - Report data for caller-side formatters

PURPOSE:
  Produces the data reporting collaborators consume: per contract its
  header fields and aggregates, per assignment the person, assigned and
  worked hours, a performance ratio, and a variance. Textual encoding
  (CSV and friends) belongs to the caller, not this package.

SCOPES:
  ScopeContracts - every contract with its assignment lines
  ScopePersonnel - per-person hour summaries plus their contract lines
  ScopeCompany   - per-contract hour summaries without per-day detail
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type ExportScope string

const (
	ScopeContracts ExportScope = "contracts"
	ScopePersonnel ExportScope = "personnel"
	ScopeCompany   ExportScope = "company"
)

// AssignmentLine is one exported per-assignment row.
type AssignmentLine struct {
	AssignmentID AssignmentID
	PersonID     PersonID
	PersonName   string
	Assigned     Hours
	Worked       Hours

	// Performance is worked/assigned*100, 0 when assigned is 0.
	Performance Hours

	// Variance is worked - assigned.
	Variance Hours
}

// ContractReport is one exported contract with its lines.
type ContractReport struct {
	ContractID    ContractID
	VendorName    string
	Status        ContractStatus
	Region        string
	Period        Period
	HoursRequired Hours
	Assigned      Hours
	Worked        Hours
	Lines         []AssignmentLine
}

// PersonContractLine names one contract a person is assigned to.
type PersonContractLine struct {
	ContractID ContractID
	VendorName string
	Assigned   Hours
}

// PersonReport is one exported person with their hour summary.
type PersonReport struct {
	PersonID PersonID
	Name     string
	Region   string
	Hours    PersonHoursSummary
	Lines    []PersonContractLine
}

// Report is the engine's export contract for one scope.
type Report struct {
	Scope     ExportScope
	Contracts []ContractReport
	People    []PersonReport
}

// Exporter assembles report data from the store.
type Exporter struct {
	Store Store
}

// Export builds the report for the requested scope.
func (ex *Exporter) Export(ctx context.Context, scope ExportScope) (*Report, error) {
	report := &Report{Scope: scope}

	switch scope {
	case ScopePersonnel:
		people, err := ex.personReports(ctx)
		if err != nil {
			return nil, err
		}
		report.People = people
	default:
		// Contract-shaped scopes share the same rows; ScopeCompany
		// consumers ignore the per-assignment lines.
		contracts, err := ex.contractReports(ctx)
		if err != nil {
			return nil, err
		}
		report.Contracts = contracts
	}

	return report, nil
}

func (ex *Exporter) contractReports(ctx context.Context) ([]ContractReport, error) {
	contracts, err := ex.Store.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{Store: ex.Store}

	var reports []ContractReport
	for _, c := range contracts {
		summary, err := ledger.ContractHours(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		cr := ContractReport{
			ContractID:    c.ID,
			VendorName:    c.VendorName,
			Status:        c.Status,
			Region:        c.Region,
			Period:        c.Period,
			HoursRequired: c.HoursRequired,
			Assigned:      summary.Assigned,
			Worked:        summary.Worked,
		}

		assignments, err := ex.Store.AssignmentsForContract(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range assignments {
			line, err := ex.assignmentLine(ctx, a)
			if err != nil {
				return nil, err
			}
			cr.Lines = append(cr.Lines, *line)
		}

		reports = append(reports, cr)
	}
	return reports, nil
}

func (ex *Exporter) assignmentLine(ctx context.Context, a Assignment) (*AssignmentLine, error) {
	person, err := ex.Store.FindPerson(ctx, a.PersonID)
	if err != nil {
		return nil, err
	}

	entries, err := ex.Store.EntriesForAssignment(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	worked := ZeroHours()
	for _, e := range entries {
		worked = worked.Add(e.HoursClocked)
	}

	performance := ZeroHours()
	if a.HoursAssigned.IsPositive() {
		performance = Hours{Value: worked.Value.Div(a.HoursAssigned.Value).Mul(hundred)}
	}

	return &AssignmentLine{
		AssignmentID: a.ID,
		PersonID:     a.PersonID,
		PersonName:   person.Name,
		Assigned:     a.HoursAssigned,
		Worked:       worked,
		Performance:  performance,
		Variance:     worked.Sub(a.HoursAssigned),
	}, nil
}

func (ex *Exporter) personReports(ctx context.Context) ([]PersonReport, error) {
	people, err := ex.Store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{Store: ex.Store}

	var reports []PersonReport
	for _, p := range people {
		summary, err := ledger.PersonHours(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		pr := PersonReport{
			PersonID: p.ID,
			Name:     p.Name,
			Region:   p.Region,
			Hours:    *summary,
		}

		assignments, err := ex.Store.AssignmentsForPerson(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range assignments {
			contract, err := ex.Store.FindContract(ctx, a.ContractID)
			if err != nil {
				return nil, err
			}
			pr.Lines = append(pr.Lines, PersonContractLine{
				ContractID: contract.ID,
				VendorName: contract.VendorName,
				Assigned:   a.HoursAssigned,
			})
		}

		reports = append(reports, pr)
	}
	return reports, nil
}
