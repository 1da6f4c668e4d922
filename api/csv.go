/*
csv.go - CSV rendering of engine export data

PURPOSE:
  The engine owns the data to export; this file is the caller-side
  formatter that turns it into the two CSV reports the frontend offers
  for download: the complete schedule report (per contract, per day)
  and the performance report (per assignment, with contract totals).
*/
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crewplan/workforce-engine/engine"
)

// ScheduleCSV renders the complete schedule report: for each contract,
// one row per (assignment, day) with clocked vs expected hours.
func (h *Handler) ScheduleCSV(w http.ResponseWriter, r *http.Request) {
	today := engine.Today()
	if q := r.URL.Query().Get("today"); q != "" {
		parsed, err := engine.ParseDay(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid today (use YYYY-MM-DD)", err)
			return
		}
		today = parsed
	}

	contracts, err := h.Store.ListContracts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	var b strings.Builder
	b.WriteString("Complete Schedule Report\n")
	b.WriteString("Generated: " + time.Now().UTC().Format(time.RFC3339) + "\n")

	for _, c := range contracts {
		cal, err := h.Analyzer.ContractCalendar(r.Context(), c.ID, today)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build calendar", err)
			return
		}

		b.WriteString(fmt.Sprintf("\n%s (%s)\n", c.VendorName, strings.ToUpper(string(c.Status))))
		b.WriteString(fmt.Sprintf("Period: %s\n", c.Period))
		b.WriteString(fmt.Sprintf("Region: %s\n\n", c.Region))
		b.WriteString("Date,Person,Hours Clocked,Expected Hours,Status\n")

		for _, s := range cal.Schedules {
			for _, day := range s.Days {
				clocked := 0.0
				if day.Clocked != nil {
					clocked = day.Clocked.Float64()
				}
				status := "On Track"
				if day.Underperforming {
					status = "Under"
				}
				b.WriteString(fmt.Sprintf("%s,%s,%v,%.1f,%s\n",
					day.Day, csvField(s.PersonName), clocked, s.ExpectedDaily.Float64(), status))
			}
		}
	}

	writeCSV(w, "complete-schedule", b.String())
}

// PerformanceCSV renders the performance report: per assignment the
// assigned/clocked hours, performance percentage, and variance, with a
// totals row per contract.
func (h *Handler) PerformanceCSV(w http.ResponseWriter, r *http.Request) {
	report, err := h.Exporter.Export(r.Context(), engine.ScopeContracts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build export", err)
		return
	}

	var b strings.Builder
	b.WriteString("Performance Report - All Contracts\n")
	b.WriteString("Generated: " + time.Now().UTC().Format(time.RFC3339) + "\n")

	for _, c := range report.Contracts {
		b.WriteString(fmt.Sprintf("\n%s\n", csvField(c.VendorName)))
		b.WriteString(fmt.Sprintf("Status,%s\n", c.Status))
		b.WriteString(fmt.Sprintf("Period,%s\n", c.Period))
		b.WriteString(fmt.Sprintf("Total Hours Required,%v\n\n", c.HoursRequired))
		b.WriteString("Person,Assigned Hours,Clocked Hours,Performance %,Variance\n")

		for _, line := range c.Lines {
			b.WriteString(fmt.Sprintf("%s,%v,%v,%.1f%%,%s\n",
				csvField(line.PersonName), line.Assigned, line.Worked,
				line.Performance.Float64(), signedHours(line.Variance)))
		}

		performance := 0.0
		if c.Assigned.IsPositive() {
			performance = c.Worked.Float64() / c.Assigned.Float64() * 100
		}
		b.WriteString(fmt.Sprintf("\nContract Total,%v,%v,%.1f%%,%s\n",
			c.Assigned, c.Worked, performance, signedHours(c.Worked.Sub(c.Assigned))))
	}

	writeCSV(w, "performance-report", b.String())
}

func signedHours(h engine.Hours) string {
	if h.IsPositive() {
		return "+" + h.String()
	}
	return h.String()
}

// csvField guards names containing commas or quotes.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func writeCSV(w http.ResponseWriter, name, body string) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
