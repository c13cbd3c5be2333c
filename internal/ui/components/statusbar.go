package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Branch   string
	Ahead    int
	Behind   int
	Clean    bool
	Merging  bool
	Rebasing bool
	Files    int
	Message  string // transient info/error message
	IsError  bool
	RepoRoot string
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   main │ ↑2 ↓1 │ ● 3 files              diffpane
// Narrow (< 40):  main │ ● 3 files
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	branchStyle := lipgloss.NewStyle().Foreground(t.BranchHead).Bold(true)
	left := " " + branchStyle.Render(data.Branch)

	if width >= 40 && (data.Ahead > 0 || data.Behind > 0) {
		var parts []string
		if data.Ahead > 0 {
			parts = append(parts, fmt.Sprintf("↑%d", data.Ahead))
		}
		if data.Behind > 0 {
			parts = append(parts, fmt.Sprintf("↓%d", data.Behind))
		}
		left += sep + lipgloss.NewStyle().Foreground(t.Warning).Render(strings.Join(parts, " "))
	}

	badge := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Warning).Bold(true).Padding(0, 1)
	switch {
	case data.Merging:
		left += sep + badge.Render("MERGING")
	case data.Rebasing:
		left += sep + badge.Render("REBASING")
	case data.Clean && data.Files == 0:
		left += sep + lipgloss.NewStyle().Foreground(t.Success).Render("✓ clean")
	default:
		noun := "files"
		if data.Files == 1 {
			noun = "file"
		}
		left += sep + lipgloss.NewStyle().Foreground(t.Modified).Render(fmt.Sprintf("● %d %s", data.Files, noun))
	}

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 && data.RepoRoot != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.RepoRoot)) + " "
	}

	inner := width - styles.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 1
		right = ""
	}

	return styles.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
