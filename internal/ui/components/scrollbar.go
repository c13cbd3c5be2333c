package components

import (
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
)

// RenderScrollbar returns one cell per row of a vertical scrollbar track of
// the given height. The thumb is proportional to the visible portion and
// positioned by offset, the number of leading lines scrolled past. An
// offset past the last page pins the thumb to the bottom.
//
// Returns nil if all content fits (no scrolling needed).
func RenderScrollbar(styles ui.Styles, height, totalLines int, offset uint) []string {
	if totalLines <= height || height < 1 {
		return nil
	}

	// Thumb size: proportional to visible/total, min 1 row.
	thumbSize := height * height / totalLines
	if thumbSize < 1 {
		thumbSize = 1
	}

	maxScroll := uint(totalLines - height)
	if offset > maxScroll {
		offset = maxScroll
	}
	maxOffset := height - thumbSize
	thumbStart := int(uint(maxOffset) * offset / maxScroll)

	thumb := styles.Scrollbar.Render("█")
	track := styles.ScrollbarTrack.Render("░")

	cells := make([]string, height)
	for i := range cells {
		if i >= thumbStart && i < thumbStart+thumbSize {
			cells[i] = thumb
		} else {
			cells[i] = track
		}
	}
	return cells
}
