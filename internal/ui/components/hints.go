package components

import (
	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// RenderHints renders the command hint bar. Commands are pulled from the
// panes on every draw; a command shows only while its pane is focused and
// only while it is enabled. bindings maps a command name to the key shown
// for it; commands without a binding are skipped. global bindings are
// appended after the pane commands.
func RenderHints(styles ui.Styles, bindings map[string]key.Binding, cmds []common.CommandInfo, width int, global ...key.Binding) string {
	h := help.New()
	h.Width = max(width-styles.HelpBar.GetHorizontalFrameSize(), 0)
	h.Styles.ShortKey = styles.KeyBind
	h.Styles.ShortDesc = styles.KeyDesc
	h.Styles.ShortSeparator = styles.Muted
	h.Styles.Ellipsis = styles.Muted

	keys := make([]key.Binding, 0, len(cmds)+len(global))
	for _, c := range cmds {
		if !c.Visible {
			continue
		}
		b, ok := bindings[c.Name]
		if !ok {
			continue
		}
		b.SetEnabled(c.Enabled)
		keys = append(keys, b)
	}
	keys = append(keys, global...)
	return styles.HelpBar.Render(h.ShortHelpView(keys))
}
