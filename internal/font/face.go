package font

import (
	"fmt"
	"os"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceOptions controls how a font.Face is sampled into a cell table.
type FaceOptions struct {
	Width, Height int
	// Top is the number of blank rows above the ascent line.
	Top         int
	First, Last rune
	// SpaceWidth is used for glyphs with no ink. Zero means half the advance.
	SpaceWidth int
}

// FromFace rasterizes First..Last of face into a fixed cell font. Runes the
// face does not know stay undefined.
func FromFace(face xfont.Face, o FaceOptions) (*Font, error) {
	if o.Last < o.First {
		return nil, fmt.Errorf("range %q..%q: %w", o.First, o.Last, ErrFormat)
	}
	ascent := face.Metrics().Ascent.Ceil()
	dot := fixed.P(0, ascent+o.Top)

	glyphs := make([]Glyph, 0, o.Last-o.First+1)
	for r := o.First; r <= o.Last; r++ {
		dr, mask, mp, adv, ok := face.Glyph(dot, r)
		if !ok {
			glyphs = append(glyphs, Glyph{})
			continue
		}

		ink := make([][]int, o.Height)
		minX, maxX, inked := 0, 0, false
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= o.Height {
				continue
			}
			for x := dr.Min.X; x < dr.Max.X; x++ {
				_, _, _, a := mask.At(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y).RGBA()
				if a < 0x8000 {
					continue
				}
				ink[y] = append(ink[y], x)
				if !inked {
					minX, maxX, inked = x, x, true
				}
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}

		g := Glyph{Rows: make([]uint16, o.Height)}
		if !inked {
			g.Width = o.SpaceWidth
			if g.Width == 0 {
				g.Width = adv.Round() / 2
			}
			g.Width = min(g.Width, o.Width-1)
			glyphs = append(glyphs, g)
			continue
		}
		// wide glyphs lose their right edge
		g.Width = min(maxX-minX+1, o.Width-1)
		for y, xs := range ink {
			for _, x := range xs {
				if x-minX < g.Width {
					g.Rows[y] |= 1 << (g.Width - 1 - (x - minX))
				}
			}
		}
		glyphs = append(glyphs, g)
	}
	return New(o.Width, o.Height, o.First, glyphs)
}

var (
	defaultOnce sync.Once
	defaultFont *Font
)

// Default is the 7x13 fixed face in a 9x14 cell, printable ASCII only.
func Default() *Font {
	defaultOnce.Do(func() {
		f, err := FromFace(basicfont.Face7x13, DefaultFaceOptions())
		if err != nil {
			panic("built-in font: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// DefaultFaceOptions is the cell Default samples into.
func DefaultFaceOptions() FaceOptions {
	return FaceOptions{Width: 9, Height: 14, Top: 1, First: ' ', Last: '~'}
}

// ParseTTF samples a TrueType or OpenType font at size pixels.
func ParseTTF(data []byte, size float64, o FaceOptions) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %v: %w", err, ErrFormat)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %v: %w", err, ErrFormat)
	}
	defer face.Close()
	return FromFace(face, o)
}

// LoadTTF reads and samples the font file at path.
func LoadTTF(path string, size float64, o FaceOptions) (*Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTTF(b, size, o)
}
