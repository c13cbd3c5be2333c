package app

import (
	"strings"

	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/config"
	"github.com/Akashdeep-Patra/diffpane/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings. Everything not listed here is
// routed to the focused pane.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Refresh   key.Binding
	Back      key.Binding

	// Hints maps a pane command name to the binding the hint bar shows
	// for it.
	Hints map[string]key.Binding
}

// DefaultKeyMap returns the default keybindings. Scroll hints follow the
// configured scroll keys.
func DefaultKeyMap(kb config.KeyBindings) KeyMap {
	scrollKeys := append(append([]string{}, kb.ScrollUp...), kb.ScrollDown...)
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Refresh:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

		Hints: map[string]key.Binding{
			common.CmdScroll: key.NewBinding(
				key.WithKeys(scrollKeys...),
				key.WithHelp(keyLabel(kb.ScrollUp)+"/"+keyLabel(kb.ScrollDown), "scroll"),
			),
			common.CmdNavigate: key.NewBinding(
				key.WithKeys("up", "down", "k", "j"),
				key.WithHelp("↑/↓", "select file"),
			),
		},
	}
}

// ShortHelp returns the global bindings for the hint bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Refresh, k.Help, k.Quit}
}

// HelpSections returns the entries of the help overlay.
func (k KeyMap) HelpSections() map[string][]components.HelpEntry {
	return map[string][]components.HelpEntry{
		"Files": {
			{Key: k.Hints[common.CmdNavigate].Help().Key, Desc: "select file"},
		},
		"Diff": {
			{Key: k.Hints[common.CmdScroll].Help().Key, Desc: "scroll one line"},
			{Key: "wheel", Desc: "scroll (when enabled)"},
		},
		"General": {
			{Key: "tab / shift+tab", Desc: "switch pane"},
			{Key: "r", Desc: "refresh now"},
			{Key: "?", Desc: "toggle help"},
			{Key: "esc", Desc: "close help"},
			{Key: "q / ctrl+c", Desc: "quit"},
		},
	}
}

var arrows = map[string]string{"up": "↑", "down": "↓", "left": "←", "right": "→"}

// keyLabel renders bubbletea key names compactly: ["up", "k"] → "↑,k".
func keyLabel(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if a, ok := arrows[k]; ok {
			k = a
		}
		out[i] = k
	}
	return strings.Join(out, ",")
}
