// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs each returned Cmd inline, so a
// test can press keys on the fill view and assert on the rendered gap list
// without starting a tea.Program. Cmds that do not return within the
// driver's timeout (cursor blinks, stalled loaders) are skipped and counted.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// DefaultCmdTimeout fits message factories. Models whose Cmds hit the
// database need WithCmdTimeout.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd yields tea.QuitMsg, which the runtime
	// would normally intercept before the model saw it.
	Quitting bool

	// Skipped counts Cmds that did not return within the timeout.
	Skipped int

	cmdTimeout time.Duration
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout sets how long a Cmd may run before it is skipped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// DrainInit runs the model's Init Cmd and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
// Nothing is sent after the model quits.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// namedKeys maps the key names used by key.Binding to their KeyMsg type.
var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
}

// Press sends each key in order. Keys are named the way key.WithKeys names
// them: "enter", "down", "ctrl+c", or a single character such as "f".
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		if t, ok := namedKeys[k]; ok {
			d.Send(tea.KeyMsg{Type: t})
			continue
		}
		runes := []rune(k)
		if len(runes) != 1 {
			d.T.Fatalf("teatest: unknown key %q", k)
		}
		d.PressKey(runes[0])
	}
}

// PressKey sends a single character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyDown})
}

// Type sends s one character at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

// RequireViewContains stops the test when the view lacks any of parts.
func (d *Driver) RequireViewContains(parts ...string) {
	d.T.Helper()
	view := d.View()
	for _, p := range parts {
		if !strings.Contains(view, p) {
			d.T.Fatalf("view does not contain %q:\n%s", p, view)
		}
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := runCmd(cmd, d.cmdTimeout)
	if !ok {
		d.Skipped++
		return
	}

	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}

	if isCursorBlink(msg) {
		return
	}
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

// runCmd runs cmd in a goroutine and reports whether it returned within
// timeout. A Cmd that misses the deadline is abandoned, not cancelled.
func runCmd(cmd tea.Cmd, timeout time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which chain into timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
