package ui

import (
	"testing"

	"github.com/Akashdeep-Patra/diffpane/internal/diff"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDiffStyles_For(t *testing.T) {
	th := DarkTheme()
	s := NewDiffStyles(th)

	add := s.For(diff.Add)
	assert.Equal(t, th.Added, add.GetForeground())
	assert.Equal(t, th.NeutralDark, add.GetBackground())
	assert.False(t, add.GetBold())

	del := s.For(diff.Delete)
	assert.Equal(t, th.Deleted, del.GetForeground())
	assert.Equal(t, th.NeutralDark, del.GetBackground())

	hdr := s.For(diff.Header)
	assert.Equal(t, th.NeutralDark, hdr.GetForeground())
	assert.Equal(t, th.NeutralLight, hdr.GetBackground())
	assert.True(t, hdr.GetBold())

	ctx := s.For(diff.Context)
	assert.Equal(t, lipgloss.NoColor{}, ctx.GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, ctx.GetBackground())
	assert.Equal(t, "raw", s.For(diff.LineType(99)).Render("raw"))
}

func TestThemeByName(t *testing.T) {
	light, ok := ThemeByName("light")
	assert.True(t, ok)
	assert.Equal(t, LightTheme(), light)

	_, ok = ThemeByName("neon")
	assert.False(t, ok)
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a   b", ExpandTabs("a\tb", 4))
	assert.Equal(t, "    x", ExpandTabs("\tx", 4))
	assert.Equal(t, "plain", ExpandTabs("plain", 4))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "abc", Clip("abcdef", 3))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a b c", Sanitize("a\nb\nc"))
	assert.Equal(t, "a b", Sanitize("a\rb"))
	assert.Equal(t, "xy", Sanitize("x\x1b[2J\x1b[Hy"))
	assert.Equal(t, "\tkeep", Sanitize("\tkeep"))
	assert.Equal(t, "plain", Sanitize("plain"))
}
