package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexKnownPositions(t *testing.T) {
	l := New(4)
	cases := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{0, 15, 15},
		{1, 0, 31},
		{1, 15, 16},
		{2, 3, 35},
		{15, 0, 255},
		{16, 0, 256},
		{17, 0, 17*16 + 15},
		{63, 15, 63 * 16},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, l.Index(c.x, c.y), "Index(%d,%d)", c.x, c.y)
	}
}

func TestIndexMatchesFlatFormula(t *testing.T) {
	l := New(4)
	for x := 0; x < l.Width(); x++ {
		for y := 0; y < l.Height(); y++ {
			want := x*16 + y
			if x&1 == 1 {
				want = x*16 + 15 - y
			}
			require.Equal(t, want, l.Index(x, y), "Index(%d,%d)", x, y)
		}
	}
}

func TestColumnIsPermutationOfItsBlock(t *testing.T) {
	l := New(4)
	for x := 0; x < l.Width(); x++ {
		seen := map[int]bool{}
		for y := 0; y < 16; y++ {
			idx := l.Index(x, y)
			require.GreaterOrEqual(t, idx, x*16)
			require.Less(t, idx, x*16+16)
			seen[idx] = true
		}
		assert.Len(t, seen, 16, "column %d", x)

		first, last := l.Index(x, 0), l.Index(x, 15)
		if x%2 == 1 {
			assert.Greater(t, first, last, "odd column %d runs upward", x)
		} else {
			assert.Less(t, first, last, "even column %d runs downward", x)
		}
	}
}

func TestIndexIsPure(t *testing.T) {
	l := New(4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, l.Index(37, 9), l.Index(37, 9))
	}
}

func TestStraightWiring(t *testing.T) {
	l := Layout{Panels: 2}
	assert.Equal(t, 16, l.Index(1, 0))
	assert.Equal(t, 31, l.Index(1, 15))
}

func TestContainsAndCount(t *testing.T) {
	l := New(4)
	assert.Equal(t, 64, l.Width())
	assert.Equal(t, 1024, l.Count())
	assert.True(t, l.Contains(0, 0))
	assert.True(t, l.Contains(63, 15))
	assert.False(t, l.Contains(-1, 0))
	assert.False(t, l.Contains(64, 0))
	assert.False(t, l.Contains(0, 16))
}
