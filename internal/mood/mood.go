// Package mood classifies how much time remains before the nearest deadline.
package mood

import (
	"strings"
	"time"
)

// Category is the closed set of moods a deadline can produce
type Category int

const (
	Calm Category = iota
	Focused
	Urgent
)

// Thresholds, in hours until the deadline. A deadline exactly FocusHours away
// is Focused and one exactly UrgentHours away is Urgent.
const (
	FocusHours  = 48
	UrgentHours = 24
)

// Labels shown next to the mood
const (
	LabelEmpty   = "Add a task to set the mood"
	LabelCalm    = "Plenty of Time"
	LabelFocused = "Time to Focus"
	LabelUrgent  = "Deadline Panic!"
)

// Color is a symbolic colour token; surfaces map it to their own palette
type Color string

const (
	ColorGreen Color = "green"
	ColorAmber Color = "amber"
	ColorRed   Color = "red"
)

// String returns the lowercase category name
func (c Category) String() string {
	switch c {
	case Calm:
		return "calm"
	case Focused:
		return "focused"
	case Urgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Color returns the colour token for the category
func (c Category) Color() Color {
	switch c {
	case Focused:
		return ColorAmber
	case Urgent:
		return ColorRed
	default:
		return ColorGreen
	}
}

// Emoji returns the glyph shown beside the label
func (c Category) Emoji() string {
	switch c {
	case Focused:
		return "⚡"
	case Urgent:
		return "🔥"
	default:
		return "😌"
	}
}

// ParseCategory parses a category name, case-insensitively
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "calm":
		return Calm, true
	case "focused":
		return Focused, true
	case "urgent":
		return Urgent, true
	default:
		return Calm, false
	}
}

// Result is the outcome of a classification
type Result struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Color    Color    `json:"color"`
	Emoji    string   `json:"emoji"`
}

func newResult(c Category, label string) Result {
	return Result{
		Category: c,
		Label:    label,
		Color:    c.Color(),
		Emoji:    c.Emoji(),
	}
}

// Classify maps the earliest deadline to a mood. A nil deadline means there
// are no tasks.
func Classify(deadline *time.Time, now time.Time) Result {
	if deadline == nil {
		return newResult(Calm, LabelEmpty)
	}

	diffHours := deadline.Sub(now).Hours()

	switch {
	case diffHours > FocusHours:
		return newResult(Calm, LabelCalm)
	case diffHours > UrgentHours:
		return newResult(Focused, LabelFocused)
	default:
		return newResult(Urgent, LabelUrgent)
	}
}
