// Package selftest lights known patterns to check panel wiring.
package selftest

import (
	"fmt"

	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

type Kind string

const (
	None        Kind = ""
	IndexSweep  Kind = "index_sweep"
	RGBTest     Kind = "rgb_channels"
	PanelSweep  Kind = "panel_sweep"
	ColumnSweep Kind = "column_sweep"
)

// Kinds lists every pattern.
var Kinds = []Kind{IndexSweep, RGBTest, PanelSweep, ColumnSweep}

// ParseKind accepts the names in Kinds.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown self test %q", s)
}

type Plan struct {
	Kind Kind
	// Divisor dims the pattern like the brightness stage does. Zero is 1.
	Divisor int
}

type Runner struct {
	plan   Plan
	layout layout.Layout
	step   int
}

func NewRunner(plan Plan, l layout.Layout) *Runner { return &Runner{plan: plan, layout: l} }
func (r *Runner) Kind() Kind                       { return r.plan.Kind }

// Steps is how many frames the pattern takes.
func (r *Runner) Steps() int {
	n := r.layout.Count()
	switch r.plan.Kind {
	case IndexSweep:
		return 2 * n
	case RGBTest:
		return 3
	case PanelSweep:
		return 2 * r.layout.Panels
	case ColumnSweep:
		return r.layout.Width()
	}
	return 0
}

// Step fills both groups with the next frame; returns false when complete.
func (r *Runner) Step(top, bottom *model.Buffer) bool {
	top.Clear()
	bottom.Clear()
	if r.step >= r.Steps() {
		return false
	}

	n := r.layout.Count()
	switch r.plan.Kind {
	case IndexSweep:
		// top chain then bottom chain, one LED at a time
		if r.step < n {
			_ = top.Set(r.step, model.White)
		} else {
			_ = bottom.Set(r.step-n, model.White)
		}
	case RGBTest:
		// red, green, blue; a wrong order shows up as the wrong color
		col := []model.Color{model.Red, model.Green, model.Blue}[r.step]
		fill(top, 0, n, col)
		fill(bottom, 0, n, col)
	case PanelSweep:
		p := r.step
		buf := top
		if p >= r.layout.Panels {
			buf, p = bottom, p-r.layout.Panels
		}
		fill(buf, p*model.PanelPixels, (p+1)*model.PanelPixels, model.Cyan)
	case ColumnSweep:
		// a straight line here proves the serpentine mapping
		for y := 0; y < r.layout.Height(); y++ {
			i := r.layout.Index(r.step, y)
			_ = top.Set(i, model.Orange)
			_ = bottom.Set(i, model.Green)
		}
	}

	if r.plan.Divisor > 1 {
		_ = top.ScaleBrightness(r.plan.Divisor)
		_ = bottom.ScaleBrightness(r.plan.Divisor)
	}
	r.step++
	return true
}

func fill(b *model.Buffer, from, to int, c model.Color) {
	for i := from; i < to; i++ {
		_ = b.Set(i, c)
	}
}
