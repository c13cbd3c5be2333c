package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() Diff {
	return Diff{Hunks: []Hunk{
		{Lines: []Line{
			{Content: "@@ -1,2 +1,2 @@", Type: Header},
			{Content: " keep", Type: Context},
			{Content: "-old", Type: Delete},
			{Content: "+new", Type: Add},
		}},
		{Lines: []Line{
			{Content: "@@ -9 +9 @@", Type: Header},
			{Content: "+tail", Type: Add},
		}},
	}}
}

func TestHashOf_EqualContentEqualHash(t *testing.T) {
	a, b := sample(), sample()
	assert.Equal(t, HashOf(a), HashOf(b))
}

func TestHashOf_ContentChange(t *testing.T) {
	b := sample()
	b.Hunks[0].Lines[2].Content = "-older"
	assert.NotEqual(t, HashOf(sample()), HashOf(b))
}

func TestHashOf_TypeChange(t *testing.T) {
	b := sample()
	b.Hunks[0].Lines[1].Type = Add
	assert.NotEqual(t, HashOf(sample()), HashOf(b))
}

func TestHashOf_UnknownTypeIsContext(t *testing.T) {
	ctx := Diff{Hunks: []Hunk{{Lines: []Line{{Content: "x", Type: Context}}}}}
	odd := Diff{Hunks: []Hunk{{Lines: []Line{{Content: "x", Type: LineType(9)}}}}}
	assert.Equal(t, HashOf(ctx), HashOf(odd))
}

func TestHashOf_OrderSensitive(t *testing.T) {
	b := sample()
	b.Hunks[0], b.Hunks[1] = b.Hunks[1], b.Hunks[0]
	assert.NotEqual(t, HashOf(sample()), HashOf(b))
}

func TestHashOf_HunkBoundariesCount(t *testing.T) {
	lines := sample().Flatten()
	one := Diff{Hunks: []Hunk{{Lines: lines}}}
	two := Diff{Hunks: []Hunk{{Lines: lines[:3]}, {Lines: lines[3:]}}}
	assert.NotEqual(t, HashOf(one), HashOf(two))
}

func TestHashOf_ContentSplitIsNotAmbiguous(t *testing.T) {
	a := Diff{Hunks: []Hunk{{Lines: []Line{{Content: "ab"}, {Content: "c"}}}}}
	b := Diff{Hunks: []Hunk{{Lines: []Line{{Content: "a"}, {Content: "bc"}}}}}
	assert.NotEqual(t, HashOf(a), HashOf(b))
}

func TestHashOf_NeverSentinel(t *testing.T) {
	assert.True(t, Hash{}.IsZero())
	assert.False(t, HashOf(Diff{}).IsZero())
	assert.NotEqual(t, Hash{}, HashOf(Diff{}))
}

func TestDiff_FlattenSkipsEmptyHunks(t *testing.T) {
	d := Diff{Hunks: []Hunk{
		{Lines: []Line{{Content: "a"}}},
		{},
		{Lines: []Line{{Content: "b"}, {Content: "c"}}},
	}}

	got := d.Flatten()
	assert.Len(t, got, 3)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, "b", got[1].Content)
	assert.False(t, d.IsEmpty())
	assert.True(t, Diff{Hunks: []Hunk{{}}}.IsEmpty())
}

func TestLineType_String(t *testing.T) {
	assert.Equal(t, "add", Add.String())
	assert.Equal(t, "delete", Delete.String())
	assert.Equal(t, "header", Header.String())
	assert.Equal(t, "context", LineType(42).String())
}
