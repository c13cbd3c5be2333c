package common

import tea "github.com/charmbracelet/bubbletea"

// ── Components ──────────────────────────────────────────────────────────────

// CommandInfo describes an action a component advertises to the hint bar.
type CommandInfo struct {
	Name    string
	Enabled bool
	Visible bool
}

// Command names shared between components and the app's key map.
const (
	CmdScroll   = "scroll"
	CmdNavigate = "navigate"
)

// Component is a focusable pane composed into the app.
//
// The app only routes input to the focused component, and HandleInput
// must still return false when called on an unfocused one so siblings
// and the app can handle the event.
type Component interface {
	// HandleInput reports whether msg was consumed.
	HandleInput(msg tea.Msg) bool
	// Render paints the component into a width x height frame.
	Render(width, height int) string
	// Commands is recomputed on every call.
	Commands() []CommandInfo
	Focused() bool
	SetFocus(focused bool)
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals the app to reload data.
type RefreshMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}
