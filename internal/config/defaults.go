package config

// KeyBindings lists the keys, in bubbletea notation, bound to the
// diff pane's scroll command.
type KeyBindings struct {
	ScrollUp   []string `mapstructure:"scroll_up"`
	ScrollDown []string `mapstructure:"scroll_down"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ScrollUp:   []string{"up"},
		ScrollDown: []string{"down"},
	}
}
