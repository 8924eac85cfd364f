// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/anisan-cli/anisync/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every icon variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Question
	Link
	Sync
	Pending
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "🎉", nerd: "\uf00c", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "😵", nerd: "\uf00d", plain: "✗", kaomoji: "(╯°□°)╯", squares: "🟥"},
	Warn:     {emoji: "⚠️", nerd: "\uf071", plain: "!", kaomoji: "(・_・;)", squares: "🟨"},
	Progress: {emoji: "⏳", nerd: "\uf110", plain: "…", kaomoji: "(￣▽￣)", squares: "🟦"},
	Question: {emoji: "🤔", nerd: "\uf128", plain: "?", kaomoji: "(・・ )?", squares: "🟪"},
	Link:     {emoji: "🔗", nerd: "\uf0c1", plain: "→", kaomoji: "(☞ﾟヮﾟ)☞", squares: "🟫"},
	Sync:     {emoji: "🔄", nerd: "\uf021", plain: "⇅", kaomoji: "ヽ(°〇°)ﾉ", squares: "🟦"},
	Pending:  {emoji: "📝", nerd: "\uf040", plain: "*", kaomoji: "φ(．．)", squares: "⬜"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders i. An unknown variant renders nothing.
func Get(i Icon) string {
	if d, ok := icons[i]; ok {
		return d.get()
	}
	return ""
}
