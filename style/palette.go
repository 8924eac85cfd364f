package style

import (
	"github.com/anisan-cli/anisync/color"
	"github.com/anisan-cli/anisync/entry"
	"github.com/charmbracelet/lipgloss"
)

var statusColors = map[entry.Status]lipgloss.Color{
	entry.NotInList: color.Gray,
	entry.Current:   color.Green,
	entry.Completed: color.Blue,
	entry.OnHold:    color.Yellow,
	entry.Dropped:   color.Red,
	entry.Planned:   color.Purple,
}

var providerColors = map[string]lipgloss.Color{
	"anilist": color.AniList,
	"kitsu":   color.Kitsu,
	"mal":     color.MyAnimeList,
}

// Status renders a status in its color.
func Status(s entry.Status) string {
	c, ok := statusColors[s]
	if !ok {
		c = color.Gray
	}
	return Fg(c)(s.String())
}

// Provider renders a provider name in its brand color.
func Provider(id, name string) string {
	c, ok := providerColors[id]
	if !ok {
		return Bold(name)
	}
	return New().Bold(true).Foreground(c).Render(name)
}
