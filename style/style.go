// Package style renders CLI output with lipgloss.
package style

import (
	"fmt"

	"github.com/anisan-cli/anisync/color"
	"github.com/charmbracelet/lipgloss"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a function that renders a string in the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a heading block.
var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

// Progress renders "current/total", with "?" for an unknown total.
func Progress(current, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d/%s", current, Faint("?"))
	}
	if current >= total {
		return Fg(color.Green)(fmt.Sprintf("%d/%d", current, total))
	}
	return fmt.Sprintf("%d/%d", current, total)
}

// Score renders a user score, faint when unset.
func Score(score int) string {
	if score == 0 {
		return Faint("-")
	}
	return Fg(color.Yellow)(fmt.Sprintf("%d", score))
}
