package components

import (
	"strings"

	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// Panel describes a framed pane: a rounded border of exactly Width x Height
// cells with Title set into the top edge and Rows painted inside, one per
// line, left aligned. Rows are clipped to the inner width; missing rows
// are left blank.
type Panel struct {
	Title   string
	Rows    []string
	Width   int
	Height  int
	Focused bool
}

// RenderPanel draws p. Border and title switch to the focused styles when
// p.Focused is set. Frames smaller than 2x2 render as an empty string.
//
//	╭─Diff: main.go──────╮
//	│@@ -1,3 +1,3 @@     │
//	│-old                │
//	╰────────────────────╯
func RenderPanel(styles ui.Styles, p Panel) string {
	if p.Width < 2 || p.Height < 2 {
		return ""
	}

	borderStyle, titleStyle := styles.PanelBorder, styles.PanelTitle
	if p.Focused {
		borderStyle, titleStyle = styles.PanelBorderFocused, styles.PanelTitleFocused
	}
	b := lipgloss.RoundedBorder()
	innerW, innerH := p.Width-2, p.Height-2

	var out strings.Builder
	out.Grow(p.Height * (p.Width + 8))

	// Top edge with the title after one border cell.
	title := ""
	if innerW >= 2 {
		title = ui.Truncate(p.Title, innerW-1)
	}
	fill := innerW
	out.WriteString(borderStyle.Render(b.TopLeft))
	if title != "" {
		out.WriteString(borderStyle.Render(b.Top))
		out.WriteString(titleStyle.Render(title))
		fill = innerW - 1 - lipgloss.Width(title)
	}
	out.WriteString(borderStyle.Render(strings.Repeat(b.Top, fill) + b.TopRight))

	left, right := borderStyle.Render(b.Left), borderStyle.Render(b.Right)
	for i := 0; i < innerH; i++ {
		row := ""
		if i < len(p.Rows) {
			row = ui.Clip(p.Rows[i], innerW)
		}
		out.WriteByte('\n')
		out.WriteString(left)
		out.WriteString(ui.PadRight(row, innerW))
		out.WriteString(right)
	}

	out.WriteByte('\n')
	out.WriteString(borderStyle.Render(b.BottomLeft + strings.Repeat(b.Bottom, innerW) + b.BottomRight))
	return out.String()
}
