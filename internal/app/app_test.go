package app

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/config"
	"github.com/Akashdeep-Patra/diffpane/internal/diff"
	"github.com/Akashdeep-Patra/diffpane/internal/git"
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

const twoHunks = "@@ -1,2 +1,2 @@\n-a\n+b\n@@ -10,2 +10,2 @@\n ctx\n-c\n+d\n"

type fakeService struct {
	status      *git.StatusResult
	diffs       map[diff.Target]string
	diffErr     error
	invalidated int
}

func (s *fakeService) RepoRoot() string { return "/src/project" }
func (s *fakeService) GitDir() string { return "/src/project/.git" }
func (s *fakeService) Head() (string, error) { return "main", nil }
func (s *fakeService) IsClean() (bool, error) { return s.status.TotalCount() == 0, nil }
func (s *fakeService) IsMerging() bool { return false }
func (s *fakeService) IsRebasing() bool { return false }
func (s *fakeService) AheadBehind() (int, int, error) { return 0, 0, nil }
func (s *fakeService) Status() (*git.StatusResult, error) { return s.status, nil }
func (s *fakeService) Invalidate() { s.invalidated++ }

func (s *fakeService) Diff(staged bool, path string) (string, error) {
	if s.diffErr != nil {
		return "", s.diffErr
	}
	return s.diffs[diff.Target{Path: path, Staged: staged}], nil
}

func newFake() *fakeService {
	return &fakeService{
		status: &git.StatusResult{
			Unstaged: []git.FileStatus{
				{Staging: git.StatusUnmodified, Worktree: git.StatusModified, Path: "a.go"},
				{Staging: git.StatusUnmodified, Worktree: git.StatusModified, Path: "b.go"},
			},
		},
		diffs: map[diff.Target]string{
			{Path: "a.go"}: twoHunks,
			{Path: "b.go"}: "@@ -1 +1 @@\n-x\n+y\n",
		},
	}
}

func newModel(t *testing.T, svc git.Service) Model {
	t.Helper()
	cfg := &config.Config{
		Theme:           "dark",
		RefreshInterval: 1,
		MouseWheel:      true,
		TabWidth:        4,
		Keys:            config.DefaultKeyBindings(),
	}
	return New(svc, cfg, ui.DefaultStyles(), slog.New(slog.DiscardHandler))
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// load runs the file refresh and the diff load it triggers.
func load(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := send(t, m, m.loadFiles()())
	if cmd != nil {
		m, _ = send(t, m, cmd())
	}
	return m
}

func TestRefreshShowsSelectedDiff(t *testing.T) {
	m := load(t, newModel(t, newFake()))

	assert.Equal(t, diff.Target{Path: "a.go"}, m.pane.Current())
	assert.Len(t, m.pane.Lines(), 7)
	assert.True(t, m.pane.CanScroll())
}

func TestRefreshKeepsScrollWhenDiffUnchanged(t *testing.T) {
	svc := newFake()
	m := load(t, newModel(t, svc))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.pane.Focused())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, uint(2), m.pane.Offset())

	m = load(t, m)
	assert.Equal(t, uint(2), m.pane.Offset())

	svc.diffs[diff.Target{Path: "a.go"}] = twoHunks + " more\n"
	m = load(t, m)
	assert.Equal(t, uint(0), m.pane.Offset())
}

func TestKeysGoToFocusedPaneOnly(t *testing.T) {
	m := load(t, newModel(t, newFake()))
	require.True(t, m.files.Focused())

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd, "moving the selection loads its diff")
	assert.Equal(t, uint(0), m.pane.Offset())

	m, _ = send(t, m, cmd())
	assert.Equal(t, diff.Target{Path: "b.go"}, m.pane.Current())
}

func TestWheelGoesToFocusedPane(t *testing.T) {
	m := load(t, newModel(t, newFake()))
	wheel := tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}

	m, _ = send(t, m, wheel)
	assert.Equal(t, uint(0), m.pane.Offset())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = send(t, m, tea.MouseMsg{X: 90, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.True(t, m.pane.Focused())
	require.False(t, m.files.Focused())

	m, _ = send(t, m, wheel)
	assert.Equal(t, uint(1), m.pane.Offset())
}

func TestEmptyStatusClearsPane(t *testing.T) {
	svc := newFake()
	m := load(t, newModel(t, svc))
	require.False(t, m.pane.Current().IsZero())

	svc.status = &git.StatusResult{}
	m = load(t, m)
	assert.True(t, m.pane.Current().IsZero())
	assert.Empty(t, m.pane.Lines())
}

func TestDiffErrorKeepsPaneContent(t *testing.T) {
	svc := newFake()
	m := load(t, newModel(t, svc))

	svc.diffErr = errors.New("boom")
	m, cmd := send(t, m, m.loadFiles()())
	require.NotNil(t, cmd)
	msg := cmd()
	errMsg, ok := msg.(common.ErrMsg)
	require.True(t, ok)
	assert.ErrorContains(t, errMsg.Err, "a.go")

	m, _ = send(t, m, msg)
	assert.Equal(t, diff.Target{Path: "a.go"}, m.pane.Current())
	assert.Len(t, m.pane.Lines(), 7)
	assert.Equal(t, "loading diff of a.go: boom", m.statusMsg)
}

func TestStaleDiffIgnored(t *testing.T) {
	m := load(t, newModel(t, newFake()))

	m, _ = send(t, m, diffMsg{
		target: diff.Target{Path: "b.go"},
		diff:   diff.Diff{Hunks: []diff.Hunk{{Lines: []diff.Line{{Content: "stale"}}}}},
	})
	assert.Equal(t, diff.Target{Path: "a.go"}, m.pane.Current())
}

func TestOlderDiffLoadDropped(t *testing.T) {
	svc := newFake()
	m := load(t, newModel(t, svc))
	target := diff.Target{Path: "a.go"}

	older := m.loadDiff(target)()
	svc.diffs[target] = twoHunks + " newer\n"
	newer := m.loadDiff(target)()

	m, _ = send(t, m, newer)
	require.Len(t, m.pane.Lines(), 8)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, uint(1), m.pane.Offset())

	m, _ = send(t, m, older)
	assert.Len(t, m.pane.Lines(), 8)
	assert.Equal(t, uint(1), m.pane.Offset())
}

func TestRefreshInvalidatesCache(t *testing.T) {
	svc := newFake()
	m := newModel(t, svc)

	_, cmd := send(t, m, common.RefreshMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, svc.invalidated)

	_, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, 2, svc.invalidated)
}

func TestView(t *testing.T) {
	m := load(t, newModel(t, newFake()))
	assert.Empty(t, m.View())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = send(t, m, m.refreshStatusBar()())

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "Diff: a.go")
	assert.Contains(t, out, "select file")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "2 files")
	assert.NotContains(t, out, "scroll")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	out = ansi.Strip(m.View())
	assert.Contains(t, out, "↑/↓ scroll")
	assert.NotContains(t, out, "select file")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")
}

func TestQuit(t *testing.T) {
	m := newModel(t, newFake())
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
