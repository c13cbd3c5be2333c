package components

import (
	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/diff"
	"github.com/Akashdeep-Patra/diffpane/internal/git"
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileList is the pane listing changed files. Its selection decides which
// diff the app pushes into the diff pane.
type FileList struct {
	styles  ui.Styles
	up      key.Binding
	down    key.Binding
	files   []git.FileStatus
	cursor  int
	focused bool
}

// Compile-time check.
var _ common.Component = (*FileList)(nil)

// NewFileList returns an empty file list.
func NewFileList(styles ui.Styles) *FileList {
	return &FileList{
		styles: styles,
		up:     key.NewBinding(key.WithKeys("up", "k")),
		down:   key.NewBinding(key.WithKeys("down", "j")),
	}
}

// SetFiles replaces the list with the staged, unstaged and conflicted
// entries of st. The selection follows the previously selected file when
// it is still present; otherwise the cursor stays in range.
func (l *FileList) SetFiles(st *git.StatusResult) {
	prev, hadPrev := l.Selected()

	files := make([]git.FileStatus, 0, len(st.Staged)+len(st.Unstaged)+len(st.Conflicts))
	files = append(files, st.Staged...)
	files = append(files, st.Unstaged...)
	files = append(files, st.Conflicts...)
	l.files = files

	if hadPrev {
		for i, f := range files {
			if targetOf(f) == prev {
				l.cursor = i
				return
			}
		}
	}
	if l.cursor >= len(files) {
		l.cursor = len(files) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Len returns the number of listed files.
func (l *FileList) Len() int { return len(l.files) }

// Selected returns the target of the highlighted file. ok is false when
// the list is empty.
func (l *FileList) Selected() (diff.Target, bool) {
	if len(l.files) == 0 {
		return diff.Target{}, false
	}
	return targetOf(l.files[l.cursor]), true
}

func targetOf(f git.FileStatus) diff.Target {
	return diff.Target{Path: f.Path, Staged: f.IsStaged}
}

// Focused reports whether the list has focus.
func (l *FileList) Focused() bool { return l.focused }

// SetFocus gives or takes focus.
func (l *FileList) SetFocus(focused bool) { l.focused = focused }

// HandleInput moves the selection. Like the diff pane it ignores
// everything while unfocused.
func (l *FileList) HandleInput(msg tea.Msg) bool {
	if !l.focused {
		return false
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, l.down):
		if l.cursor < len(l.files)-1 {
			l.cursor++
		}
		return true
	case key.Matches(km, l.up):
		if l.cursor > 0 {
			l.cursor--
		}
		return true
	}
	return false
}

// Commands advertises list navigation.
func (l *FileList) Commands() []common.CommandInfo {
	return []common.CommandInfo{
		{Name: common.CmdNavigate, Enabled: len(l.files) > 1, Visible: l.focused},
	}
}

// Render paints the list, keeping the cursor row in view.
func (l *FileList) Render(width, height int) string {
	innerW, innerH := width-2, height-2

	var rows []string
	if len(l.files) == 0 {
		if innerH > 0 {
			rows = []string{l.styles.Muted.Render("No changes")}
		}
	} else if innerH > 0 {
		start := 0
		if l.cursor >= innerH {
			start = l.cursor - innerH + 1
		}
		end := min(start+innerH, len(l.files))
		for i := start; i < end; i++ {
			rows = append(rows, l.renderItem(l.files[i], i == l.cursor, innerW))
		}
	}

	return RenderPanel(l.styles, Panel{
		Title:   "Files",
		Rows:    rows,
		Width:   width,
		Height:  height,
		Focused: l.focused,
	})
}

func (l *FileList) renderItem(f git.FileStatus, selected bool, width int) string {
	side := "U"
	if f.IsStaged {
		side = "S"
	}
	code := f.Code()
	prefix := side + " " + l.statusStyle(code).Render(code.String()) + " "
	path := ui.Truncate(ui.Sanitize(f.Path), width-lipgloss.Width(prefix))

	if selected && l.focused {
		return l.styles.ListSelected.Render(ui.PadRight(side+" "+code.String()+" "+path, width))
	}
	if selected {
		return prefix + l.styles.Title.Render(path)
	}
	return prefix + l.styles.ListItem.Render(path)
}

func (l *FileList) statusStyle(code git.StatusCode) lipgloss.Style {
	switch code {
	case git.StatusAdded:
		return l.styles.FileAdded
	case git.StatusModified, git.StatusTypeChanged:
		return l.styles.FileModified
	case git.StatusDeleted:
		return l.styles.FileDeleted
	case git.StatusRenamed, git.StatusCopied:
		return l.styles.FileRenamed
	case git.StatusUnmerged:
		return l.styles.FileConflict
	default:
		return l.styles.FileUntracked
	}
}
