package components

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/diff"
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScrollDirection selects which way Scroll moves the offset.
type ScrollDirection int

// Scroll directions.
const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

// ScrollKeys are the bindings the diff pane reacts to while focused.
type ScrollKeys struct {
	Up   key.Binding
	Down key.Binding
}

// DefaultScrollKeys binds the arrow keys.
func DefaultScrollKeys() ScrollKeys {
	return NewScrollKeys([]string{"up"}, []string{"down"})
}

// NewScrollKeys builds scroll bindings from bubbletea key names.
func NewScrollKeys(up, down []string) ScrollKeys {
	return ScrollKeys{
		Up:   key.NewBinding(key.WithKeys(up...), key.WithHelp(strings.Join(up, "/"), "scroll up")),
		Down: key.NewBinding(key.WithKeys(down...), key.WithHelp(strings.Join(down, "/"), "scroll down")),
	}
}

// StyledLine is one flattened diff line together with the style it is
// painted with.
type StyledLine struct {
	Text  string
	Type  diff.LineType
	Style lipgloss.Style
}

// DiffPaneOption configures a DiffPane.
type DiffPaneOption func(*DiffPane)

// WithScrollKeys replaces the default arrow key bindings.
func WithScrollKeys(k ScrollKeys) DiffPaneOption {
	return func(p *DiffPane) { p.keys = k }
}

// WithMouseWheel lets wheel events scroll the pane while it is focused.
func WithMouseWheel(enabled bool) DiffPaneOption {
	return func(p *DiffPane) { p.wheel = enabled }
}

// WithTabWidth sets how many columns a tab stop spans.
func WithTabWidth(n int) DiffPaneOption {
	return func(p *DiffPane) { p.tabWidth = n }
}

// WithDiffStyles overrides the line style policy taken from ui.Styles.
func WithDiffStyles(s ui.DiffStyles) DiffPaneOption {
	return func(p *DiffPane) { p.lineStyles = s }
}

// DiffPane shows one file's diff in a scrollable, focusable frame.
//
// The host may push the same diff on every refresh tick. Update compares a
// content hash and leaves the scroll offset alone unless the lines really
// changed, so scrolling keeps working during live refresh.
type DiffPane struct {
	styles     ui.Styles
	lineStyles ui.DiffStyles
	keys       ScrollKeys
	wheel      bool
	tabWidth   int

	diff    diff.Diff
	scroll  uint
	focused bool
	target  diff.Target
	hash    diff.Hash
}

// Compile-time check.
var _ common.Component = (*DiffPane)(nil)

// NewDiffPane returns an empty, unfocused pane.
func NewDiffPane(styles ui.Styles, opts ...DiffPaneOption) *DiffPane {
	p := &DiffPane{
		styles:     styles,
		lineStyles: styles.Diff,
		keys:       DefaultScrollKeys(),
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ── State ───────────────────────────────────────────────────────────────────

// Update shows d for target. When d hashes the same as the diff already
// shown nothing changes at all, target included. Otherwise the diff,
// target and hash are replaced and the scroll offset goes back to 0.
// Update reports whether the content changed.
func (p *DiffPane) Update(target diff.Target, d diff.Diff) bool {
	h := diff.HashOf(d)
	if h == p.hash {
		return false
	}
	p.target = target
	p.hash = h
	p.diff = d
	p.scroll = 0
	return true
}

// Clear empties the pane. The hash goes back to the sentinel so that the
// next Update is always treated as a change, even with the diff that was
// shown before.
func (p *DiffPane) Clear() {
	p.target = diff.Target{}
	p.diff = diff.Diff{}
	p.hash = diff.Hash{}
	p.scroll = 0
}

// Current returns the target of the diff on display.
func (p *DiffPane) Current() diff.Target { return p.target }

// Offset returns the number of leading lines scrolled past.
func (p *DiffPane) Offset() uint { return p.scroll }

// CanScroll reports whether scrolling is advertised. It is a coarse check
// on the hunk count, not on the rendered height.
func (p *DiffPane) CanScroll() bool { return len(p.diff.Hunks) > 1 }

// Scroll moves the offset by one line, saturating at 0 and math.MaxUint.
// There is no clamp to the content height.
func (p *DiffPane) Scroll(dir ScrollDirection) {
	switch dir {
	case ScrollDown:
		if p.scroll < math.MaxUint {
			p.scroll++
		}
	case ScrollUp:
		if p.scroll > 0 {
			p.scroll--
		}
	}
}

// ── Focus & input ───────────────────────────────────────────────────────────

// Focused reports whether the pane has focus.
func (p *DiffPane) Focused() bool { return p.focused }

// SetFocus gives or takes focus.
func (p *DiffPane) SetFocus(focused bool) { p.focused = focused }

// HandleInput scrolls on the up/down bindings and, if enabled, on the
// mouse wheel. It never consumes anything while unfocused.
func (p *DiffPane) HandleInput(msg tea.Msg) bool {
	if !p.focused {
		return false
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			p.Scroll(ScrollDown)
			return true
		case key.Matches(msg, p.keys.Up):
			p.Scroll(ScrollUp)
			return true
		}
	case tea.MouseMsg:
		if !p.wheel || msg.Action != tea.MouseActionPress {
			return false
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			p.Scroll(ScrollDown)
			return true
		case tea.MouseButtonWheelUp:
			p.Scroll(ScrollUp)
			return true
		}
	}
	return false
}

// Commands advertises the scroll action.
func (p *DiffPane) Commands() []common.CommandInfo {
	return []common.CommandInfo{
		{Name: common.CmdScroll, Enabled: p.CanScroll(), Visible: p.focused},
	}
}

// ── Rendering ───────────────────────────────────────────────────────────────

// Lines returns the flattened diff with the style of every line.
func (p *DiffPane) Lines() []StyledLine {
	return p.styled(p.diff.Flatten())
}

// VisibleLines returns the lines a content area of the given height shows
// at the current offset. An offset past the end yields no lines.
func (p *DiffPane) VisibleLines(height int) []StyledLine {
	if height <= 0 {
		return nil
	}
	lines := p.diff.Flatten()
	n := uint(len(lines))
	if p.scroll >= n {
		return nil
	}
	end := n
	if n-p.scroll > uint(height) {
		end = p.scroll + uint(height)
	}
	return p.styled(lines[p.scroll:end])
}

func (p *DiffPane) styled(lines []diff.Line) []StyledLine {
	out := make([]StyledLine, len(lines))
	for i, l := range lines {
		out[i] = StyledLine{Text: l.Content, Type: l.Type, Style: p.lineStyles.For(l.Type)}
	}
	return out
}

// Render paints the pane into a width x height frame. The content area is
// two cells smaller on each axis. It does not modify the pane.
func (p *DiffPane) Render(width, height int) string {
	innerW, innerH := width-2, height-2
	visible := p.VisibleLines(innerH)

	textW := innerW
	var bar []string
	if innerW >= 2 {
		bar = RenderScrollbar(p.styles, innerH, p.diff.Len(), p.scroll)
		if bar != nil {
			textW--
		}
	}

	rows := make([]string, 0, max(innerH, 0))
	for i := 0; i < innerH; i++ {
		row := ""
		if i < len(visible) {
			l := visible[i]
			row = l.Style.Render(ui.Clip(ui.ExpandTabs(ui.Sanitize(l.Text), p.tabWidth), textW))
		}
		if bar != nil {
			row = ui.PadRight(row, textW) + bar[i]
		}
		rows = append(rows, row)
	}

	return RenderPanel(p.styles, Panel{
		Title:   p.title(),
		Rows:    rows,
		Width:   width,
		Height:  height,
		Focused: p.focused,
	})
}

func (p *DiffPane) title() string {
	if p.target.Path == "" {
		return "Diff"
	}
	path := ui.Sanitize(p.target.Path)
	if p.target.Staged {
		return "Diff: " + path + " (staged)"
	}
	return "Diff: " + path
}
