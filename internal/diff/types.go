// Package diff holds the structured diff model shown by the diff pane and
// the content hash used to tell a real change from a plain refresh.
package diff

// LineType classifies a single diff line.
type LineType uint8

// Line classifications. Anything that is not a header, addition or deletion
// is context.
const (
	Context LineType = iota
	Add
	Delete
	Header
)

// String returns a short lowercase name for the line type.
func (t LineType) String() string {
	switch t {
	case Add:
		return "add"
	case Delete:
		return "delete"
	case Header:
		return "header"
	default:
		return "context"
	}
}

// normalize folds unknown values into Context.
func (t LineType) normalize() LineType {
	switch t {
	case Add, Delete, Header:
		return t
	default:
		return Context
	}
}

// Line is one line of diff output.
type Line struct {
	Content string
	Type    LineType
}

// Hunk is a contiguous block of lines belonging to one changed region.
type Hunk struct {
	Lines []Line
}

// Diff is an ordered sequence of hunks.
type Diff struct {
	Hunks []Hunk
}

// Len returns the number of lines across all hunks.
func (d Diff) Len() int {
	n := 0
	for _, h := range d.Hunks {
		n += len(h.Lines)
	}
	return n
}

// IsEmpty reports whether the diff has no lines at all.
func (d Diff) IsEmpty() bool { return d.Len() == 0 }

// Flatten returns every line in hunk order. Empty hunks contribute nothing.
func (d Diff) Flatten() []Line {
	out := make([]Line, 0, d.Len())
	for _, h := range d.Hunks {
		out = append(out, h.Lines...)
	}
	return out
}

// Target identifies what a diff was computed for.
type Target struct {
	Path   string
	Staged bool
}

// IsZero reports whether the target names nothing.
func (t Target) IsZero() bool { return t == Target{} }
