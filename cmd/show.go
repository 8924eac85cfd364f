package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/anisan-cli/anisync/color"
	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
	addMangaFlag(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <title or id>",
	Short: "Show the details of a list entry",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		if isManga(cmd) {
			printDetails(resolve(loadManga(cmd), query))
		} else {
			printDetails(resolve(loadAnime(cmd), query))
		}
	},
}

func printDetails[E item[E]](e E) {
	base := e.Base()
	field := func(name, value string) {
		if value != "" {
			fmt.Printf("%s %s\n", style.Fg(color.Blue)(fmt.Sprintf("%-10s", name)), value)
		}
	}

	fmt.Println(style.Title(base.DisplayTitle()))
	fmt.Println()

	field("Title", base.Title)
	field("English", base.EnglishTitle)
	field("Japanese", base.JapaneseTitle)
	field("Synonyms", strings.Join(base.Synonyms(), ", "))
	field("Status", style.Status(base.Status))
	field("Progress", style.Progress(e.Progress(), e.Total()))
	field("Score", style.Score(base.UserScore()))
	if base.PublicScore > 0 {
		field("Public", fmt.Sprintf("%.1f", base.PublicScore))
	}
	field("Started", base.Start.Format("2006-01-02", ""))
	field("Finished", base.End.Format("2006-01-02", ""))

	switch media := any(e).(type) {
	case *entry.Anime:
		field("Type", media.ShowType.String())
		field("Airing", media.RunningStatus.String())
		field("Aired", dateRange(media.StartDate, media.EndDate))
		if next, ok := media.AiredAt(media.CurrentEpisode + 1).Get(); ok {
			field("Next", fmt.Sprintf("episode %d on %s", media.CurrentEpisode+1, next.Local().Format(time.RFC1123)))
		}
	case *entry.Manga:
		field("Type", media.MangaType.String())
		field("Running", media.RunningStatus.String())
		field("Volumes", style.Progress(media.CurrentVolume, media.Volumes))
	}

	field("Notes", base.Notes)

	if base.Synopsis != "" {
		width := 80
		if w, _, err := util.TerminalSize(); err == nil {
			width = util.Min(w, 100)
		}
		fmt.Println()
		fmt.Println(wordwrap.String(base.Synopsis, width))
	}
}

func dateRange(start, end entry.Date) string {
	if !start.IsSet() {
		return ""
	}
	return start.String() + " - " + end.Format("2006-01-02", "?")
}
