package led

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"sync"
	"time"

	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

// RowDrawer paints a one pixel high image on the current terminal line.
// *screen.Dev satisfies it.
type RowDrawer interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Console previews frames in a terminal, one text line per LED row.
type Console struct {
	// Gain brightens the preview to undo hardware dimming. Saturates at 255.
	Gain int
	// Every throttles redraws; zero draws every frame.
	Every time.Duration

	mu       sync.Mutex
	layout   layout.Layout
	drawer   RowDrawer
	out      io.Writer
	row      *image.NRGBA
	lastEmit time.Time
	drawn    bool
}

// NewConsole previews panel groups wired as l on stdout.
func NewConsole(l layout.Layout) *Console {
	return NewConsoleWith(l, screen.New(l.Width()), os.Stdout)
}

// NewConsoleWith draws rows with d and ends lines on out.
func NewConsoleWith(l layout.Layout, d RowDrawer, out io.Writer) *Console {
	return &Console{
		Gain:   1,
		layout: l,
		drawer: d,
		out:    out,
		row:    image.NewNRGBA(image.Rect(0, 0, l.Width(), 1)),
	}
}

// Write draws each group of panels below the previous one.
func (c *Console) Write(channels [][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Every > 0 && time.Since(c.lastEmit) < c.Every {
		return nil
	}
	c.lastEmit = time.Now()

	per := c.layout.Panels
	if per == 0 || len(channels) == 0 || len(channels)%per != 0 {
		return fmt.Errorf("%d channels for %d panel groups: %w", len(channels), per, ErrChannels)
	}
	groups := len(channels) / per
	lines := groups * c.layout.Height()
	if c.drawn {
		fmt.Fprintf(c.out, "\033[%dA", lines)
	}

	for g := 0; g < groups; g++ {
		for y := 0; y < c.layout.Height(); y++ {
			for x := 0; x < c.layout.Width(); x++ {
				c.row.SetNRGBA(x, 0, c.pixel(channels[g*per:(g+1)*per], x, y))
			}
			if err := c.drawer.Draw(c.row.Bounds(), c.row, image.Point{}); err != nil {
				return err
			}
			fmt.Fprint(c.out, "\n")
		}
	}
	c.drawn = true
	return nil
}

func (c *Console) pixel(group [][]byte, x, y int) color.NRGBA {
	i := c.layout.Index(x, y)
	ch := group[i/model.PanelPixels]
	off := (i % model.PanelPixels) * model.Channels
	if off+2 >= len(ch) {
		return color.NRGBA{A: 0xFF}
	}
	return color.NRGBA{
		R: c.gain(ch[off+1]),
		G: c.gain(ch[off+0]),
		B: c.gain(ch[off+2]),
		A: 0xFF,
	}
}

func (c *Console) gain(v byte) byte {
	return byte(min(int(v)*max(c.Gain, 1), 0xFF))
}

// Close is a no-op; the terminal keeps the last frame.
func (c *Console) Close() error { return nil }
