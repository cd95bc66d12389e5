package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-marquee/internal/clock"
	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/message"
	"github.com/coreman2200/funtimes-marquee/internal/model"
	"github.com/coreman2200/funtimes-marquee/internal/odometer"
)

// Driver abstracts the LED transport. Write gets one stream per panel, the
// top group first, and must be done reading them when it returns.
type Driver interface {
	Write(channels [][]byte) error
}

// Options configures an Engine. Zero fields take DefaultOptions values
// where noted.
type Options struct {
	// Panels per group.
	Panels int
	Font   *font.Font

	Countdown  clock.Countdown
	DayNight   clock.DayNight
	Brightness Brightness

	// TextRow is the y of the top of the text cell.
	TextRow int
	Label   string
	Done    string
	Static  []string

	Digits        int
	DigitSpacing  int
	OdometerEvery int
	DayColors     []model.Color
	NightColors   []model.Color
	Hooks         odometer.Hooks

	Log zerolog.Logger
}

// DefaultOptions describes the two four-panel groups with a seven digit
// odometer.
func DefaultOptions() Options {
	return Options{
		Panels:        4,
		Font:          font.Default(),
		DayNight:      clock.DefaultDayNight(),
		Brightness:    DefaultBrightness,
		TextRow:       DefaultTextRow,
		Label:         message.DefaultLabel,
		Done:          message.DefaultDone,
		Static:        message.DefaultStatic,
		Digits:        7,
		DigitSpacing:  9,
		OdometerEvery: 2,
		DayColors:     model.DayDigitColors,
		NightColors:   model.NightDigitColors,
		Log:           zerolog.Nop(),
	}
}

// ScrollCursor is where the top display is in its message rotation.
type ScrollCursor struct {
	// Countdown is set while the countdown sentence is scrolling.
	Countdown bool
	Offset    int
	Text      string
	toks      []Token
}

// Engine composes both panel groups each frame and hands them to the
// driver. It is not safe for concurrent use.
type Engine struct {
	Top    *Canvas
	Bottom *Canvas
	Bank   *odometer.Bank
	Drv    Driver

	opt      Options
	cursor   ScrollCursor
	rotation *message.Rotation
	lastLeft int
	cooldown int
	channels [][]byte
	post     PostPipeline
	log      zerolog.Logger

	// Last describes the most recent frame.
	Last struct {
		SecondsLeft int
		Night       bool
		Drawn       int
		RenderMS    float64
	}
}

// NewEngine allocates both buffers and wires the odometer.
func NewEngine(o Options, drv Driver) (*Engine, error) {
	if o.Panels <= 0 {
		return nil, errors.New("invalid panel count")
	}
	if o.Font == nil {
		o.Font = font.Default()
	}
	if o.Digits <= 0 {
		return nil, fmt.Errorf("odometer digits %d must be positive", o.Digits)
	}
	if o.OdometerEvery < 1 {
		return nil, fmt.Errorf("odometer every %d must be at least 1", o.OdometerEvery)
	}
	if err := o.Brightness.Validate(); err != nil {
		return nil, err
	}

	l := layout.New(o.Panels)
	e := &Engine{
		Top:      NewCanvas(l, o.Font),
		Bottom:   NewCanvas(l, o.Font),
		Bank:     odometer.NewBank(o.Digits, o.DigitSpacing, o.Hooks),
		Drv:      drv,
		opt:      o,
		rotation: message.NewRotation(o.Static),
		lastLeft: -1,
		post:     PostPipeline{Scale: ScaleStage(o.Brightness)},
		log:      o.Log,
	}
	for p := 0; p < o.Panels; p++ {
		e.channels = append(e.channels, e.Top.Buf.Panel(p))
	}
	for p := 0; p < o.Panels; p++ {
		e.channels = append(e.channels, e.Bottom.Buf.Panel(p))
	}
	return e, nil
}

func (e *Engine) SetPost(p PostPipeline) { e.post = p }

// Cursor returns the scroll state.
func (e *Engine) Cursor() ScrollCursor { return e.cursor }

// Channels are the panel streams passed to the driver, top group first.
// They alias the buffers.
func (e *Engine) Channels() [][]byte { return e.channels }

// RenderOnce composes the frame for now and writes it. Content errors are
// logged and skipped; only driver errors are returned.
func (e *Engine) RenderOnce(now time.Time) error {
	start := time.Now()
	e.Top.Buf.Clear()

	left := e.opt.Countdown.SecondsLeft(now)
	night := e.opt.DayNight.IsNight(now)
	if left != e.lastLeft {
		e.Bank.Update(clock.Digits(left, e.Bank.Len()))
		e.cooldown = 0
		e.lastLeft = left
	}

	// The bottom group keeps its last frame between odometer steps.
	if e.cooldown == 0 {
		e.renderOdometer(night)
		e.cooldown = e.opt.OdometerEvery - 1
	} else {
		e.cooldown--
	}

	e.renderText(left)
	if e.post.Scale != nil {
		if err := e.post.Scale(e.Top.Buf, night); err != nil {
			e.log.Error().Err(err).Msg("scale top")
		}
	}

	e.Last.SecondsLeft = left
	e.Last.Night = night
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0

	if e.Drv != nil {
		if err := e.Drv.Write(e.channels); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	return nil
}

func (e *Engine) renderOdometer(night bool) {
	e.Bottom.Buf.Clear()
	e.Bank.Resync()

	colors := e.opt.DayColors
	if night {
		colors = e.opt.NightColors
	}
	if _, err := e.Bank.Draw(e.Bottom, 0, 0, colors); err != nil {
		e.log.Warn().Err(err).Str("digits", e.Bank.Text()).Msg("odometer draw")
	}
	if e.post.Scale != nil {
		if err := e.post.Scale(e.Bottom.Buf, night); err != nil {
			e.log.Error().Err(err).Msg("scale bottom")
		}
	}
}

func (e *Engine) renderText(left int) {
	n, err := e.Top.DrawText(e.cursor.toks, e.cursor.Offset, e.opt.TextRow)
	if err != nil {
		e.log.Warn().Err(err).Str("message", e.cursor.Text).Msg("text draw")
	}
	e.Last.Drawn = n
	e.cursor.Offset++
	if n == 0 {
		e.cursor.Offset = 0
		e.nextMessage(left)
	}
}

// nextMessage alternates the countdown sentence with the static table, and
// sticks to the countdown once it has run out. Messages that parse to
// nothing are passed over.
func (e *Engine) nextMessage(left int) {
	for tries := 0; tries <= e.rotation.Len(); tries++ {
		countdown := !e.cursor.Countdown || left == 0 || e.rotation.Len() == 0
		var text string
		if countdown {
			text = message.Countdown(e.opt.Label, e.opt.Done, left)
		} else {
			text = e.rotation.Next()
		}

		toks, err := ParseText(text, e.Top.Font)
		if err != nil {
			e.log.Warn().Err(err).Str("message", text).Int("kept", len(toks)).Msg("message truncated")
		}
		if len(toks) > 0 {
			e.cursor.Countdown = countdown
			e.cursor.Text, e.cursor.toks = text, toks
			return
		}
		// try the static table next
		e.cursor.Countdown = true
	}
	e.cursor.Text, e.cursor.toks = "", nil
}
