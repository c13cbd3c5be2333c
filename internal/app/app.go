package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/config"
	"github.com/Akashdeep-Patra/diffpane/internal/diff"
	"github.com/Akashdeep-Patra/diffpane/internal/git"
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/Akashdeep-Patra/diffpane/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pane indices in focus order.
const (
	paneFiles = iota
	paneDiff
	paneCount
)

// Model is the top-level Bubbletea model. It polls git, feeds the file
// list and the diff pane, and routes input to whichever pane has focus.
type Model struct {
	git    git.Service
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	logger *slog.Logger

	files *components.FileList
	pane  *components.DiffPane
	focus int
	loads *loadSeq

	width     int
	height    int
	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time

	// Status bar data is refreshed via tea.Cmd, never computed in View().
	barData components.StatusBarData
}

// invalidator is implemented by git.CachedService.
type invalidator interface {
	Invalidate()
}

// loadSeq numbers diff loads. Ticks and selection changes can have loads
// for the same file in flight at once; only results at least as new as the
// last applied one reach the pane.
type loadSeq struct {
	issued  uint64
	applied uint64
}

type tickMsg time.Time

// filesMsg carries a fresh `git status`.
type filesMsg struct {
	status *git.StatusResult
}

// diffMsg carries the parsed diff of target.
type diffMsg struct {
	seq    uint64
	target diff.Target
	diff   diff.Diff
}

// statusBarMsg carries refreshed status bar data from a background command.
type statusBarMsg struct {
	data components.StatusBarData
}

// New creates a new application model with the file list focused.
func New(gitSvc git.Service, cfg *config.Config, styles ui.Styles, logger *slog.Logger) Model {
	files := components.NewFileList(styles)
	files.SetFocus(true)

	pane := components.NewDiffPane(styles,
		components.WithScrollKeys(components.NewScrollKeys(cfg.Keys.ScrollUp, cfg.Keys.ScrollDown)),
		components.WithMouseWheel(cfg.MouseWheel),
		components.WithTabWidth(cfg.TabWidth),
	)

	return Model{
		git:     gitSvc,
		cfg:     cfg,
		styles:  styles,
		keys:    DefaultKeyMap(cfg.Keys),
		logger:  logger,
		files:   files,
		pane:    pane,
		focus:   paneFiles,
		loads:   &loadSeq{},
		barData: components.StatusBarData{RepoRoot: gitSvc.RepoRoot()},
	}
}

// Init loads the first data and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh reloads the file list (which in turn reloads the selected diff)
// and the status bar.
func (m Model) refresh() tea.Cmd {
	return tea.Batch(m.loadFiles(), m.refreshStatusBar())
}

func (m Model) loadFiles() tea.Cmd {
	svc := m.git
	return func() tea.Msg {
		st, err := svc.Status()
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("loading status: %w", err)}
		}
		return filesMsg{status: st}
	}
}

func (m Model) loadDiff(target diff.Target) tea.Cmd {
	svc := m.git
	m.loads.issued++
	seq := m.loads.issued
	return func() tea.Msg {
		raw, err := svc.Diff(target.Staged, target.Path)
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("loading diff of %s: %w", target.Path, err)}
		}
		return diffMsg{seq: seq, target: target, diff: git.ParseDiff(raw)}
	}
}

// refreshStatusBar runs git queries in the background and returns a statusBarMsg.
func (m Model) refreshStatusBar() tea.Cmd {
	svc := m.git
	return func() tea.Msg {
		data := components.StatusBarData{RepoRoot: svc.RepoRoot()}
		if head, err := svc.Head(); err == nil {
			data.Branch = head
		}
		data.Ahead, data.Behind, _ = svc.AheadBehind()
		data.Clean, _ = svc.IsClean()
		data.Merging = svc.IsMerging()
		data.Rebasing = svc.IsRebasing()
		return statusBarMsg{data: data}
	}
}

// syncDiff loads the diff of the selected file, or clears the pane when
// nothing is selected.
func (m Model) syncDiff() tea.Cmd {
	target, ok := m.files.Selected()
	if !ok {
		if !m.pane.Current().IsZero() {
			m.logger.Debug("selection cleared")
		}
		m.pane.Clear()
		return nil
	}
	return m.loadDiff(target)
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case common.RefreshMsg:
		if c, ok := m.git.(invalidator); ok {
			c.Invalidate()
		}
		return m, m.refresh()

	case filesMsg:
		m.files.SetFiles(msg.status)
		return m, m.syncDiff()

	case diffMsg:
		// The selection may have moved while the diff was loading.
		if sel, ok := m.files.Selected(); !ok || sel != msg.target {
			return m, nil
		}
		if msg.seq < m.loads.applied {
			m.logger.Debug("dropped out-of-order diff", "path", msg.target.Path, "seq", msg.seq)
			return m, nil
		}
		m.loads.applied = msg.seq
		if m.pane.Update(msg.target, msg.diff) {
			m.logger.Debug("diff changed",
				"path", msg.target.Path,
				"staged", msg.target.Staged,
				"hunks", len(msg.diff.Hunks),
				"lines", msg.diff.Len())
		}
		return m, nil

	case statusBarMsg:
		m.barData = msg.data
		return m, nil

	case common.ErrMsg:
		m.logger.Warn("background command failed", "err", msg.Err)
		m.statusMsg = msg.Err.Error()
		m.statusErr = true
		m.statusExp = time.Now().Add(5 * time.Second)
		return m, nil

	case common.InfoMsg:
		m.statusMsg = msg.Text
		m.statusErr = false
		m.statusExp = time.Now().Add(3 * time.Second)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.showHelp = false
		return m, nil
	}
	if m.showHelp {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		if c, ok := m.git.(invalidator); ok {
			c.Invalidate()
		}
		return m, m.refresh()
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	}

	return m, m.route(msg)
}

// handleMouse focuses the pane under a left click and hands every other
// mouse event to the focused pane.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		if msg.Y < m.bodyHeight() {
			if msg.X < m.listWidth() {
				m.setFocus(paneFiles)
			} else {
				m.setFocus(paneDiff)
			}
		}
		return m, nil
	}
	return m, m.route(msg)
}

// route delivers msg to the focused pane only. A changed file selection
// loads the newly selected diff.
func (m Model) route(msg tea.Msg) tea.Cmd {
	before, _ := m.files.Selected()
	if !m.focused().HandleInput(msg) {
		return nil
	}
	if after, ok := m.files.Selected(); ok && after != before {
		return m.loadDiff(after)
	}
	return nil
}

func (m Model) panes() [paneCount]common.Component {
	return [paneCount]common.Component{m.files, m.pane}
}

func (m Model) focused() common.Component {
	return m.panes()[m.focus]
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j, p := range m.panes() {
		p.SetFocus(j == i)
	}
}

// commands collects the commands of every pane for the hint bar.
func (m Model) commands() []common.CommandInfo {
	var cmds []common.CommandInfo
	for _, p := range m.panes() {
		cmds = append(cmds, p.Commands()...)
	}
	return cmds
}

// View renders the entire UI. It does no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", m.keys.HelpSections(), m.width, m.height)
	}

	bodyH := m.bodyHeight()
	listW := m.listWidth()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.files.Render(listW, bodyH),
		m.pane.Render(m.width-listW, bodyH),
	)

	hints := components.RenderHints(m.styles, m.keys.Hints, m.commands(), m.width, m.keys.ShortHelp()...)

	barData := m.barData
	barData.Files = m.files.Len()
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		barData.Message = m.statusMsg
		barData.IsError = m.statusErr
	}
	statusBar := components.RenderStatusBar(m.styles, barData, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, body, hints, statusBar)
}

// bodyHeight is the height left for the panes: minus hint bar and status bar.
func (m Model) bodyHeight() int {
	return max(m.height-2, 0)
}

// listWidth gives the file list two fifths of the screen.
func (m Model) listWidth() int {
	return m.width * 2 / 5
}
