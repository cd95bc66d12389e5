// Package diagnostics inspects a configuration before it drives hardware.
package diagnostics

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-marquee/internal/config"
	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/render"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Check reports problems in c as seen at now. Validate should pass first.
func Check(c config.Config, f *font.Font, now time.Time) []Diagnostic {
	var out []Diagnostic
	l := layout.New(c.Panels)

	if d, err := c.DeadlineTime(); err == nil && !d.After(now) {
		out = append(out, Diagnostic{
			Severity: Warn,
			Code:     "deadline_passed",
			Summary:  "the countdown is already over",
			Evidence: map[string]any{"deadline": c.Deadline},
		})
	}

	if c.Driver == "spi" && len(c.SPI.Ports) != 2*c.Panels {
		out = append(out, Diagnostic{
			Severity:       Err,
			Code:           "spi_port_count",
			Summary:        "every panel needs its own SPI port",
			SuggestedFixes: []string{fmt.Sprintf("list %d ports under spi.ports, top group first", 2*c.Panels)},
			Evidence:       map[string]any{"ports": len(c.SPI.Ports), "panels": 2 * c.Panels},
		})
	}

	if c.Brightness.Day == 1 || c.Brightness.Night == 1 {
		out = append(out, Diagnostic{
			Severity:       Warn,
			Code:           "full_brightness",
			Summary:        "a brightness divisor of 1 drives the LEDs at full current",
			SuggestedFixes: []string{"check the supply rating or raise brightness.day"},
		})
	}

	if w := (c.Odometer.Digits-1)*c.Odometer.Spacing + f.Width; w > l.Width() {
		out = append(out, Diagnostic{
			Severity: Warn,
			Code:     "odometer_overflow",
			Summary:  "odometer digits run past the right edge",
			Evidence: map[string]any{"needed": w, "width": l.Width()},
		})
	}

	if c.Text.Row <= -f.Height || c.Text.Row >= l.Height() {
		out = append(out, Diagnostic{
			Severity: Err,
			Code:     "text_offscreen",
			Summary:  "scrolling text is drawn outside the display",
			Evidence: map[string]any{"row": c.Text.Row},
		})
	}

	if c.Night.From == c.Night.Until {
		out = append(out, Diagnostic{Severity: Info, Code: "no_night", Summary: "night brightness is never used"})
	}

	check := func(where, s string) {
		toks, err := render.ParseText(s, f)
		if err == nil {
			return
		}
		sev := Warn
		if len(toks) == 0 {
			sev = Err
		}
		out = append(out, Diagnostic{
			Severity: sev,
			Code:     "message_parse",
			Summary:  where + " does not parse; only its start will scroll",
			Detail:   err.Error(),
			Evidence: map[string]any{"message": s, "kept": len(toks)},
		})
	}
	check("countdown label", c.Countdown.Label)
	check("countdown done text", c.Countdown.Done)
	for i, m := range c.Messages {
		check(fmt.Sprintf("message %d", i), m)
	}
	return out
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Err {
			return true
		}
	}
	return false
}
