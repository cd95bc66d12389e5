package render

import (
	"fmt"

	"github.com/coreman2200/funtimes-marquee/internal/model"
)

// Brightness holds the divisors applied to a finished frame. Channels are
// integer divided, so 1 is full brightness.
type Brightness struct {
	Day   int
	Night int
}

// DefaultBrightness is 1/8 by day and 1/64 at night.
var DefaultBrightness = Brightness{Day: 8, Night: 64}

// Divisor picks the divisor for the time of day.
func (b Brightness) Divisor(night bool) int {
	if night {
		return b.Night
	}
	return b.Day
}

// Validate rejects divisors below 1.
func (b Brightness) Validate() error {
	if b.Day < 1 || b.Night < 1 {
		return fmt.Errorf("brightness day=%d night=%d: %w", b.Day, b.Night, model.ErrDivisor)
	}
	return nil
}

// PostPipeline runs on each buffer after it is composed. All stages are
// optional.
type PostPipeline struct {
	Scale func(buf *model.Buffer, night bool) error
}

// ScaleStage divides buffers by the divisor b picks.
func ScaleStage(b Brightness) func(*model.Buffer, bool) error {
	return func(buf *model.Buffer, night bool) error {
		return buf.ScaleBrightness(b.Divisor(night))
	}
}
