package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
)

// FormatRange renders a workday range with one line per workday.
func FormatRange(rng calendar.WorkdayRange) string {
	var b strings.Builder
	b.WriteString(Header("Workdays"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(DateRange(rng.Start, rng.End)),
		Dim(fmt.Sprintf("(%d workdays)", len(rng.Workdays))))
	if len(rng.Workdays) == 0 {
		b.WriteString(Dim("No workdays in range."))
		b.WriteString("\n")
		return b.String()
	}
	for _, d := range rng.Workdays {
		b.WriteString("  ")
		b.WriteString(DayLabel(d))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAssignments renders an employee's assignments as a table.
func FormatAssignments(assignments []*domain.Assignment) string {
	if len(assignments) == 0 {
		return Dim("No assignments.") + "\n"
	}
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, []string{
			StyleBlue.Render(a.ProjectID),
			projectLabel(a.ProjectName, a.ProjectID),
			a.StartDate.Format(calendar.DateLayout),
			OpenEnded(a.EndDate),
		})
	}
	return RenderTable([]string{"PROJECT", "NAME", "FROM", "UNTIL"}, rows)
}

// FormatSummary renders logged hours per project for a period.
func FormatSummary(s *app.PeriodSummary) string {
	var b strings.Builder
	b.WriteString(Header("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(s.EmployeeID), Dim(DateRange(s.Start, s.End)))

	if len(s.Projects) == 0 {
		b.WriteString(Dim("No hours logged in this period."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		rows = append(rows, []string{
			projectLabel(p.ProjectName, p.ProjectID),
			StyleDim.Render(p.ProjectID),
			FormatHours(p.Hours),
		})
	}
	b.WriteString(RenderTable([]string{"PROJECT", "ID", "HOURS"}, rows,
		AlignRight(2),
		WithFooter("Total", "", FormatHours(s.TotalHours))))
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d day(s) with entries", len(s.Dates))))
	return b.String()
}

// FormatDailyFill renders one fill bar per workday, comparing the hours
// logged that day against the daily cap.
func FormatDailyFill(workdays []time.Time, entries []*domain.TimesheetEntry, dailyCap float64) string {
	perDay := make(map[string]float64)
	for _, e := range entries {
		perDay[e.DateWorked.Format(calendar.DateLayout)] += e.Hours
	}
	var b strings.Builder
	for _, d := range workdays {
		h := perDay[d.Format(calendar.DateLayout)]
		fmt.Fprintf(&b, "  %s  %s\n", DayLabel(d), RenderDayFill(h, dailyCap, 16))
	}
	return b.String()
}

// FormatGaps renders the missing (date, project) pairs grouped by day.
func FormatGaps(r *app.GapReport) string {
	var b strings.Builder
	b.WriteString(Header("Missing entries"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(r.EmployeeID), Dim(DateRange(r.Start, r.End)))

	if len(r.Gaps) == 0 {
		b.WriteString(StyleGreen.Render("✔ Nothing missing."))
		b.WriteString("\n")
		return b.String()
	}

	var lastDay string
	for _, g := range r.Gaps {
		day := DayLabel(g.Date)
		if day != lastDay {
			b.WriteString(Bold(day))
			b.WriteString("\n")
			lastDay = day
		}
		fmt.Fprintf(&b, "  %s %s %s\n", StyleYellow.Render("•"),
			projectLabel(g.ProjectName, g.ProjectID), Dim("("+g.ProjectID+")"))
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d missing", len(r.Gaps))))
	return b.String()
}

// FormatEntryResults renders per-entry outcomes of a submission in input order.
// names maps project IDs to display names; missing IDs are shown as-is.
func FormatEntryResults(results []app.EntryResult, names map[string]string) string {
	sorted := make([]app.EntryResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	inserted := 0
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		if r.Inserted() {
			inserted++
		}
		detail := r.Detail
		if r.Inserted() {
			detail = Dim(TruncID(r.EntryID))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Index+1),
			r.Request.Date.Format(calendar.DateLayout),
			projectLabel(names[r.Request.ProjectID], r.Request.ProjectID),
			FormatHours(r.Request.Hours),
			ResultBadge(r),
			detail,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"#", "DATE", "PROJECT", "HOURS", "RESULT", "DETAIL"}, rows, AlignRight(0, 3)))
	b.WriteString("\n")
	summary := fmt.Sprintf("%d inserted, %d rejected", inserted, len(sorted)-inserted)
	if inserted == len(sorted) {
		b.WriteString(StyleGreen.Render(summary))
	} else if inserted == 0 {
		b.WriteString(StyleRed.Render(summary))
	} else {
		b.WriteString(StyleYellow.Render(summary))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatEmployees renders the employee directory.
func FormatEmployees(employees []*domain.Employee) string {
	if len(employees) == 0 {
		return Dim("No employees. Import reference data with 'timesheets import'.") + "\n"
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{StyleBlue.Render(e.ID), e.Name()})
	}
	return RenderTable([]string{"ID", "NAME"}, rows)
}

// FormatProjects renders the project directory.
func FormatProjects(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects. Import reference data with 'timesheets import'.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{StyleBlue.Render(p.ID), p.DisplayName()})
	}
	return RenderTable([]string{"ID", "NAME"}, rows)
}

// FormatImportResult renders counts of imported reference rows.
func FormatImportResult(r *app.ImportResult) string {
	content := fmt.Sprintf("%s %d\n%s %d\n%s %d",
		Dim("Employees:  "), r.Employees,
		Dim("Projects:   "), r.Projects,
		Dim("Assignments:"), r.Assignments)
	return RenderBox("Imported", content)
}

// TruncID shortens generated IDs to their first 8 characters.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func projectLabel(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
