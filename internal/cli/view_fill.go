package cli

import (
	"context"
	"fmt"
	"strings"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type fillKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	FullDay  key.Binding
	HalfDay  key.Binding
	More     key.Binding
	Less     key.Binding
	Clear    key.Binding
	Submit   key.Binding
	Reload   key.Binding
	ShowHelp key.Binding
	Quit     key.Binding
}

func newFillKeyMap() fillKeyMap {
	return fillKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		FullDay:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "full day")),
		HalfDay:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "half day")),
		More:     key.NewBinding(key.WithKeys("+", "=", "right", "l"), key.WithHelp("+", "add increment")),
		Less:     key.NewBinding(key.WithKeys("-", "left"), key.WithHelp("-", "remove increment")),
		Clear:    key.NewBinding(key.WithKeys("x", "0"), key.WithHelp("x", "clear")),
		Submit:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "submit")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		ShowHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k fillKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FullDay, k.HalfDay, k.More, k.Submit, k.ShowHelp, k.Quit}
}

func (k fillKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.FullDay, k.HalfDay, k.More, k.Less, k.Clear},
		{k.Submit, k.Reload, k.Quit},
	}
}

// fillRow is one gap and the hours the user intends to log for it.
type fillRow struct {
	gap    tsapp.Gap
	hours  float64
	result *tsapp.EntryResult
}

func (r fillRow) done() bool { return r.result != nil && r.result.Inserted() }

type gapsLoadedMsg struct {
	report *tsapp.GapReport
	err    error
}

type fillSubmittedMsg struct {
	rows    []int
	results []tsapp.EntryResult
	err     error
}

// fillModel lists the missing entries of a range and lets the user assign
// hours to them before submitting everything as one batch.
type fillModel struct {
	app        *App
	employeeID string
	rng        calendar.WorkdayRange
	keys       fillKeyMap
	help       help.Model

	rows       []fillRow
	cursor     int
	loading    bool
	submitting bool
	status     string
	err        error
	inserted   int
}

func newFillModel(app *App, employeeID string, rng calendar.WorkdayRange) *fillModel {
	return &fillModel{
		app:        app,
		employeeID: employeeID,
		rng:        rng,
		keys:       newFillKeyMap(),
		help:       help.New(),
		loading:    true,
	}
}

func (m *fillModel) Init() tea.Cmd {
	return m.loadGaps()
}

func (m *fillModel) loadGaps() tea.Cmd {
	app, employeeID, rng := m.app, m.employeeID, m.rng
	return func() tea.Msg {
		report, err := app.Timesheets.FindMissingEntries(context.Background(), employeeID, rng)
		return gapsLoadedMsg{report: report, err: err}
	}
}

// pending returns the row indexes that will be submitted.
func (m *fillModel) pending() []int {
	var idx []int
	for i, r := range m.rows {
		if r.hours > 0 && !r.done() {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m *fillModel) submit() tea.Cmd {
	idx := m.pending()
	if len(idx) == 0 {
		m.status = "Nothing to submit: set hours on at least one row."
		return nil
	}
	uc := m.app.submitEntriesUseCase()
	if uc == nil {
		m.err = fmt.Errorf("submit-entries use case is not configured")
		return nil
	}

	reqs := make([]tsapp.EntryRequest, len(idx))
	for i, rowIdx := range idx {
		r := m.rows[rowIdx]
		reqs[i] = tsapp.EntryRequest{
			EmployeeID: m.employeeID,
			ProjectID:  r.gap.ProjectID,
			Date:       r.gap.Date,
			Hours:      r.hours,
		}
	}
	m.submitting = true
	m.status = ""
	return func() tea.Msg {
		results, err := uc.SubmitEntries(context.Background(), reqs)
		return fillSubmittedMsg{rows: idx, results: results, err: err}
	}
}

func (m *fillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case gapsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = make([]fillRow, len(msg.report.Gaps))
		for i, g := range msg.report.Gaps {
			m.rows[i] = fillRow{gap: g}
		}
		m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
		return m, nil

	case fillSubmittedMsg:
		m.submitting = false
		accepted, rejected := 0, 0
		for _, res := range msg.results {
			res := res // per-iteration copy; &res is retained below
			if res.Index < 0 || res.Index >= len(msg.rows) {
				continue
			}
			m.rows[msg.rows[res.Index]].result = &res
			if res.Inserted() {
				accepted++
			} else {
				rejected++
			}
		}
		m.inserted += accepted
		m.err = msg.err
		m.status = fmt.Sprintf("%d inserted, %d rejected", accepted, rejected)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *fillModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading || m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.FullDay):
		m.setHours(m.app.Rules.FullDay())
	case key.Matches(msg, m.keys.HalfDay):
		m.setHours(m.app.Rules.HalfDay())
	case key.Matches(msg, m.keys.More):
		m.adjustHours(m.app.Rules.IncrementHours)
	case key.Matches(msg, m.keys.Less):
		m.adjustHours(-m.app.Rules.IncrementHours)
	case key.Matches(msg, m.keys.Clear):
		m.setHours(0)
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.status = ""
		return m, m.loadGaps()
	case key.Matches(msg, m.keys.ShowHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *fillModel) setHours(h float64) {
	if m.cursor >= len(m.rows) || m.rows[m.cursor].done() {
		return
	}
	m.rows[m.cursor].hours = h
	m.rows[m.cursor].result = nil
}

func (m *fillModel) adjustHours(delta float64) {
	if m.cursor >= len(m.rows) {
		return
	}
	h := engine.RoundHours(m.rows[m.cursor].hours + delta)
	m.setHours(max(0, min(h, m.app.Rules.DailyCapHours)))
}

func (m *fillModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Fill missing entries"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n\n", formatter.Bold(m.employeeID), formatter.Dim(formatter.DateRange(m.rng.Start, m.rng.End)))

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading gaps..."))
		b.WriteString("\n")
		return b.String()
	case len(m.rows) == 0 && m.err == nil:
		b.WriteString(formatter.StyleGreen.Render("✔ Nothing missing."))
		b.WriteString("\n\n")
		b.WriteString(formatter.Dim("q quit"))
		return b.String()
	}

	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		hours := formatter.Dim("  -  ")
		if r.hours > 0 {
			hours = formatter.StyleBlue.Render(fmt.Sprintf("%5s", formatter.FormatHours(r.hours)))
		}
		status := ""
		if r.result != nil {
			status = formatter.ResultBadge(*r.result)
		}
		fmt.Fprintf(&b, "%s%s  %-16s %s  %s\n", cursor, formatter.DayLabel(r.gap.Date),
			formatter.Truncate(projectLabelOf(r.gap), 16), hours, status)
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(formatter.Dim("Submitting..."))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func projectLabelOf(g tsapp.Gap) string {
	if g.ProjectName != "" {
		return g.ProjectName
	}
	return g.ProjectID
}
