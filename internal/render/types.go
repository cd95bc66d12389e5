package render

import (
	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

// Canvas binds a pixel buffer to its wiring and the font drawn into it.
type Canvas struct {
	Buf    *model.Buffer
	Layout layout.Layout
	Font   *font.Font
}

// NewCanvas allocates a buffer sized for l.
func NewCanvas(l layout.Layout, f *font.Font) *Canvas {
	return &Canvas{Buf: model.NewBuffer(l.Panels), Layout: l, Font: f}
}

// GlyphHeight is the cell height of the canvas font.
func (c *Canvas) GlyphHeight() int { return c.Font.Height }

// Token is one drawable character with the color in effect for it.
type Token struct {
	R     rune
	Color model.Color
}
