// Package render formats tasks and moods for the terminal and web surfaces.
package render

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mood-tracker/internal/domain"
	"mood-tracker/internal/mood"
)

// OverdueText replaces the due date of a task whose deadline has passed
const OverdueText = "OVERDUE"

// Terminal palette (ANSI 256) and web palette per colour token
var (
	terminalColors = map[mood.Color]lipgloss.Color{
		mood.ColorGreen: lipgloss.Color("82"),
		mood.ColorAmber: lipgloss.Color("214"),
		mood.ColorRed:   lipgloss.Color("196"),
	}

	cssColors = map[mood.Color]string{
		mood.ColorGreen: "#2e7d32",
		mood.ColorAmber: "#f9a825",
		mood.ColorRed:   "#c62828",
	}
)

var (
	overdueStyle = lipgloss.NewStyle().Foreground(terminalColors[mood.ColorRed]).Bold(true)
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
)

// DueText describes when a task is due relative to now
func DueText(task domain.Task, now time.Time, layout string) string {
	if task.IsOverdue(now) {
		return OverdueText
	}
	return "Due: " + task.Deadline.Format(layout)
}

// CSSColor returns the web colour for a token; unknown tokens get the calm colour
func CSSColor(c mood.Color) string {
	if css, ok := cssColors[c]; ok {
		return css
	}
	return cssColors[mood.ColorGreen]
}

// MoodStyle returns the terminal style for a mood colour
func MoodStyle(c mood.Color) lipgloss.Style {
	color, ok := terminalColors[c]
	if !ok {
		color = terminalColors[mood.ColorGreen]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// MoodLine renders the emoji and label in the mood's colour
func MoodLine(result mood.Result) string {
	return MoodStyle(result.Color).Render(fmt.Sprintf("%s %s", result.Emoji, result.Label))
}

// TaskLine renders one task for the terminal, prefixed by its 1-based position
func TaskLine(index int, task domain.Task, now time.Time, layout string) string {
	due := DueText(task, now, layout)
	style := dueStyle
	if due == OverdueText {
		style = overdueStyle
	}
	return fmt.Sprintf("%d. %s  %s", index+1, nameStyle.Render(task.Name), style.Render(due))
}
