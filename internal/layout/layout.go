package layout

// PanelSize is the edge length of one square LED panel.
const PanelSize = 16

// Serpentine describes how the strip zig-zags inside a panel.
type Serpentine struct {
	// FlipOddColumns runs odd panel-local columns bottom to top.
	FlipOddColumns bool
}

// Layout is a row of square panels chained left to right, each wired
// column by column.
type Layout struct {
	Panels int
	Order  Serpentine
}

// New returns the usual wiring: n panels, odd columns reversed.
func New(panels int) Layout {
	return Layout{Panels: panels, Order: Serpentine{FlipOddColumns: true}}
}

// Width is the logical width in pixels.
func (l Layout) Width() int { return l.Panels * PanelSize }

// Height is the logical height in pixels.
func (l Layout) Height() int { return PanelSize }

// Count is the number of LEDs on the chain.
func (l Layout) Count() int { return l.Panels * PanelSize * PanelSize }

// Contains reports whether x,y is on the display.
func (l Layout) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width() && y < PanelSize
}

// Index maps x,y -> linear LED index (0..N-1). Callers clip first.
func (l Layout) Index(x, y int) int {
	panel := x / PanelSize
	col := x % PanelSize
	row := y
	if col%2 == 1 && l.Order.FlipOddColumns {
		row = PanelSize - 1 - y
	}
	return panel*PanelSize*PanelSize + col*PanelSize + row
}
