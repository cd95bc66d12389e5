package selftest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

func litIndexes(t *testing.T, b *model.Buffer) []int {
	t.Helper()
	var out []int
	for i := 0; i < b.Len(); i++ {
		p, err := b.At(i)
		require.NoError(t, err)
		if p != (model.Pixel{}) {
			out = append(out, i)
		}
	}
	return out
}

func run(t *testing.T, r *Runner, l layout.Layout, each func(step int, top, bottom *model.Buffer)) int {
	t.Helper()
	top, bottom := model.NewBuffer(l.Panels), model.NewBuffer(l.Panels)
	steps := 0
	for r.Step(top, bottom) {
		each(steps, top, bottom)
		steps++
		require.LessOrEqual(t, steps, 10000)
	}
	assert.Empty(t, litIndexes(t, top), "cleared when done")
	return steps
}

func TestIndexSweep(t *testing.T) {
	l := layout.New(1)
	r := NewRunner(Plan{Kind: IndexSweep}, l)
	steps := run(t, r, l, func(step int, top, bottom *model.Buffer) {
		if step < 256 {
			assert.Equal(t, []int{step}, litIndexes(t, top))
			assert.Empty(t, litIndexes(t, bottom))
		} else {
			assert.Empty(t, litIndexes(t, top))
			assert.Equal(t, []int{step - 256}, litIndexes(t, bottom))
		}
	})
	assert.Equal(t, 512, steps)
}

func TestRGBChannels(t *testing.T) {
	l := layout.New(1)
	r := NewRunner(Plan{Kind: RGBTest, Divisor: 8}, l)
	want := []model.Pixel{{R: 31}, {G: 31}, {B: 31}}
	steps := run(t, r, l, func(step int, top, bottom *model.Buffer) {
		p, _ := top.At(100)
		assert.Equal(t, want[step], p)
		p, _ = bottom.At(0)
		assert.Equal(t, want[step], p)
	})
	assert.Equal(t, 3, steps)
}

func TestPanelSweep(t *testing.T) {
	l := layout.New(2)
	r := NewRunner(Plan{Kind: PanelSweep}, l)
	steps := run(t, r, l, func(step int, top, bottom *model.Buffer) {
		buf, p := top, step
		if step >= 2 {
			buf, p = bottom, step-2
		}
		got := litIndexes(t, buf)
		require.Len(t, got, 256)
		assert.Equal(t, p*256, got[0])
	})
	assert.Equal(t, 4, steps)
}

func TestColumnSweepFollowsSerpentine(t *testing.T) {
	l := layout.New(1)
	r := NewRunner(Plan{Kind: ColumnSweep}, l)
	steps := run(t, r, l, func(x int, top, bottom *model.Buffer) {
		got := litIndexes(t, top)
		require.Len(t, got, 16)
		// one physical column block per logical column
		assert.Equal(t, x*16, got[0])
		assert.Equal(t, x*16+15, got[15])
		assert.Equal(t, got, litIndexes(t, bottom))
	})
	assert.Equal(t, 16, steps)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("plane_z")
	assert.Error(t, err)
	assert.False(t, NewRunner(Plan{}, layout.New(1)).Step(model.NewBuffer(1), model.NewBuffer(1)))
}
