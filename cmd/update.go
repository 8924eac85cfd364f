package cmd

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
	addMangaFlag(updateCmd)
	addNoSyncFlag(updateCmd)
	updateCmd.Flags().StringP("status", "s", "", "New status")
	lo.Must0(updateCmd.RegisterFlagCompletionFunc("status", completionStatuses))
	updateCmd.Flags().IntP("progress", "p", 0, "Episodes watched or chapters read")
	updateCmd.Flags().Int("volume", 0, "Volumes read, manga only")
	updateCmd.Flags().IntP("score", "r", 0, "Score from 0 to 10, 0 clears it")
	updateCmd.Flags().StringP("notes", "n", "", "Notes")
	updateCmd.Flags().BoolP("next", "x", false, "Advance progress by one")
	updateCmd.MarkFlagsMutuallyExclusive("progress", "next")
}

var updateCmd = &cobra.Command{
	Use:   "update <title or id>",
	Short: "Change status, progress, score or notes of a list entry",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		if isManga(cmd) {
			updateEntry(cmd, loadManga(cmd), query)
		} else {
			updateEntry(cmd, loadAnime(cmd), query)
		}
	},
}

func updateEntry[E item[E]](cmd *cobra.Command, l *list.List[E], query string) {
	e := resolve(l, query)
	base := e.Base()
	flags := cmd.Flags()

	if !lo.SomeBy([]string{"status", "progress", "volume", "score", "notes", "next"}, flags.Changed) {
		handleErr(fault.New(fault.Validation, "", "nothing to update"))
	}

	if flags.Changed("score") {
		handleErr(base.SetUserScore(lo.Must(flags.GetInt("score"))))
	}

	if flags.Changed("status") {
		status, err := entry.ParseStatus(lo.Must(flags.GetString("status")))
		handleErr(err)
		base.Status = status
	}

	if flags.Changed("notes") {
		base.Notes = lo.Must(flags.GetString("notes"))
	}

	progress := e.Progress()
	switch {
	case flags.Changed("progress"):
		progress = lo.Must(flags.GetInt("progress"))
	case lo.Must(flags.GetBool("next")):
		progress++
	}
	if progress < 0 || (e.Total() > 0 && progress > e.Total()) {
		handleErr(fault.New(fault.Validation, "", "progress %d is out of range", progress))
	}

	switch media := any(e).(type) {
	case *entry.Anime:
		media.CurrentEpisode = progress
	case *entry.Manga:
		media.CurrentChapter = progress
		if flags.Changed("volume") {
			media.CurrentVolume = lo.Must(flags.GetInt("volume"))
		}
	}

	if e.Total() > 0 && progress == e.Total() && !flags.Changed("status") {
		base.Status = entry.Completed
	}

	handleErr(l.Update(e))
	fmt.Printf(
		"%s Updated %s: %s %s %s\n",
		icon.Get(icon.Success),
		style.Bold(base.DisplayTitle()),
		style.Status(base.Status),
		style.Progress(e.Progress(), e.Total()),
		style.Score(base.UserScore()),
	)
	finish(cmd, l)
}
