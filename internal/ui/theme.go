package ui

import (
	"github.com/Akashdeep-Patra/diffpane/internal/diff"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colours for the application.
type Theme struct {
	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	// Neutral shades used behind diff lines. NeutralDark sits behind
	// additions and deletions; NeutralLight behind hunk headers.
	NeutralDark  lipgloss.Color
	NeutralLight lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Added     lipgloss.Color
	Modified  lipgloss.Color
	Deleted   lipgloss.Color
	Renamed   lipgloss.Color
	Conflict  lipgloss.Color
	Untracked lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	BranchHead lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#a6e3a1"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		NeutralDark:  lipgloss.Color("#11111b"),
		NeutralLight: lipgloss.Color("#a6adc8"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Added:     lipgloss.Color("#a6e3a1"),
		Modified:  lipgloss.Color("#f9e2af"),
		Deleted:   lipgloss.Color("#f38ba8"),
		Renamed:   lipgloss.Color("#89dceb"),
		Conflict:  lipgloss.Color("#fab387"),
		Untracked: lipgloss.Color("#9399b2"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		BranchHead: lipgloss.Color("#89b4fa"),
	}
}

// LightTheme returns a light theme (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#dce0e8"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#40a02b"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#8c8fa1"),
		TextInverse: lipgloss.Color("#eff1f5"),

		NeutralDark:  lipgloss.Color("#4c4f69"),
		NeutralLight: lipgloss.Color("#ccd0da"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Added:     lipgloss.Color("#40a02b"),
		Modified:  lipgloss.Color("#df8e1d"),
		Deleted:   lipgloss.Color("#d20f39"),
		Renamed:   lipgloss.Color("#04a5e5"),
		Conflict:  lipgloss.Color("#fe640b"),
		Untracked: lipgloss.Color("#8c8fa1"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		BranchHead: lipgloss.Color("#1e66f5"),
	}
}

// ThemeByName returns the named theme and whether the name was known.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "dark":
		return DarkTheme(), true
	case "light":
		return LightTheme(), true
	default:
		return DarkTheme(), false
	}
}

// DiffStyles maps each diff line type to the style it is painted with.
// The diff pane receives it as a value so rendering never reaches for a
// global palette.
type DiffStyles struct {
	Add     lipgloss.Style
	Delete  lipgloss.Style
	Header  lipgloss.Style
	Context lipgloss.Style
}

// For returns the style for a line type. Unknown types get Context.
func (s DiffStyles) For(t diff.LineType) lipgloss.Style {
	switch t {
	case diff.Add:
		return s.Add
	case diff.Delete:
		return s.Delete
	case diff.Header:
		return s.Header
	default:
		return s.Context
	}
}

// NewDiffStyles builds the diff line policy: red and green on the dark
// neutral, bold dark-on-light headers, context left raw.
func NewDiffStyles(t Theme) DiffStyles {
	return DiffStyles{
		Add:     lipgloss.NewStyle().Foreground(t.Added).Background(t.NeutralDark),
		Delete:  lipgloss.NewStyle().Foreground(t.Deleted).Background(t.NeutralDark),
		Header:  lipgloss.NewStyle().Foreground(t.NeutralDark).Background(t.NeutralLight).Bold(true),
		Context: lipgloss.NewStyle(),
	}
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Panels
	PanelBorder        lipgloss.Style
	PanelBorderFocused lipgloss.Style
	PanelTitle         lipgloss.Style
	PanelTitleFocused  lipgloss.Style

	// List items
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Text
	Title   lipgloss.Style
	Muted   lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// Git file statuses
	FileAdded     lipgloss.Style
	FileModified  lipgloss.Style
	FileDeleted   lipgloss.Style
	FileRenamed   lipgloss.Style
	FileConflict  lipgloss.Style
	FileUntracked lipgloss.Style

	Diff DiffStyles

	Scrollbar      lipgloss.Style
	ScrollbarTrack lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.PanelBorder = lipgloss.NewStyle()
	s.PanelBorderFocused = lipgloss.NewStyle().Foreground(t.BorderFocused)
	s.PanelTitle = lipgloss.NewStyle()
	s.PanelTitleFocused = lipgloss.NewStyle().Bold(true)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted).Strikethrough(true)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)
	s.FileConflict = lipgloss.NewStyle().Foreground(t.Conflict).Bold(true)
	s.FileUntracked = lipgloss.NewStyle().Foreground(t.Untracked)

	s.Diff = NewDiffStyles(t)

	s.Scrollbar = lipgloss.NewStyle().Foreground(t.Primary)
	s.ScrollbarTrack = lipgloss.NewStyle().Foreground(t.Border)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
