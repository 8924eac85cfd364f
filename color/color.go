// Package color names the terminal colors of the CLI.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, so that the terminal theme decides the exact shade.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	Gray   = New("8")
	HiRed  = New("9")
)

// Provider brand colors.
var (
	AniList     = New("#02a9ff")
	Kitsu       = New("#f75239")
	MyAnimeList = New("#2e51a2")
)
