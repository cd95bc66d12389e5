// Package message builds the text the top display scrolls.
package message

import "fmt"

// Escapes understood by the text scroller.
const (
	Red    = `\0`
	Orange = `\1`
	Green  = `\2`
	Cyan   = `\3`
	White  = `\4`
)

const (
	DefaultLabel = "Countdown ends in"
	DefaultDone  = Red + "The countdown is over!"
)

// Countdown spells out secondsLeft as days, hours, minutes and seconds,
// numbers in red and words in green. done is returned once nothing is left.
func Countdown(label, done string, secondsLeft int) string {
	if secondsLeft <= 0 {
		return done
	}
	days := secondsLeft / 86400
	hours := secondsLeft / 3600 % 24
	mins := secondsLeft / 60 % 60
	secs := secondsLeft % 60
	return fmt.Sprintf(Green+"%s "+
		Red+"%d "+Green+"%s, "+
		Red+"%d "+Green+"%s, "+
		Red+"%d "+Green+"%s, "+
		Red+"%d "+Green+"%s",
		label,
		days, unit("Day", days),
		hours, unit("Hour", hours),
		mins, unit("Minute", mins),
		secs, unit("Second", secs))
}

func unit(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// DefaultStatic rotates between countdown announcements.
var DefaultStatic = []string{
	Cyan + "Sixty-four by sixteen pixels of pure news.",
	Green + "Hello world",
	Orange + "Wash your hands, it still helps",
	White + "Did you call your family today?",
	Orange + "Every digit below rolls one row at a time",
	White + "The odometer does " + Red + "not" + White + " run backwards.",
	Cyan + "Most of this sign is " + Orange + "asleep" + Cyan + " at night.",
	Green + "Coming soon: " + Orange + "the end of the countdown",
	White + "What's the first thing you're gonna do when this is over?",
	Red + "Eight panels, two thousand LEDs, one clock.",
}

// Rotation walks a static table, wrapping at the end.
type Rotation struct {
	msgs []string
	next int
}

func NewRotation(msgs []string) *Rotation { return &Rotation{msgs: msgs} }

// Next returns the following message, or "" for an empty table.
func (r *Rotation) Next() string {
	if len(r.msgs) == 0 {
		return ""
	}
	m := r.msgs[r.next]
	r.next = (r.next + 1) % len(r.msgs)
	return m
}

func (r *Rotation) Len() int { return len(r.msgs) }
