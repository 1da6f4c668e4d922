package engine

// =============================================================================
// PERIOD - Inclusive calendar range of a contract
// =============================================================================

// Period is the nominal work period of a contract, [Start, End]
// inclusive. Every calendar day counts, weekends included.
type Period struct {
	Start Day
	End   Day
}

// Valid returns ErrInvalidPeriod if the end precedes the start.
func (p Period) Valid() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains returns true if the day falls within [Start, End].
func (p Period) Contains(d Day) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days expands the period into its ordered day sequence, one entry per
// calendar day including weekends.
func (p Period) Days() []Day {
	var days []Day
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// TotalDays returns the inclusive day count.
func (p Period) TotalDays() int {
	return DaysBetween(p.Start, p.End) + 1
}

func (p Period) String() string {
	return p.Start.String() + " to " + p.End.String()
}
