package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
	addMangaFlag(addCmd)
	addNoSyncFlag(addCmd)
	addCmd.Flags().StringP("status", "s", "planned", "Status to add with")
	lo.Must0(addCmd.RegisterFlagCompletionFunc("status", completionStatuses))
	addCmd.Flags().IntP("id", "i", 0, "Pick the search result with this id instead of asking")
	addCmd.Flags().BoolP("first", "f", false, "Pick the first search result instead of asking")
	addCmd.MarkFlagsMutuallyExclusive("id", "first")
}

var addCmd = &cobra.Command{
	Use:               "add <keywords>",
	Short:             "Search the catalog and add a title to the list",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionQueries,
	Run: func(cmd *cobra.Command, args []string) {
		status, err := entry.ParseStatus(lo.Must(cmd.Flags().GetString("status")))
		handleErr(err)

		keywords := strings.Join(args, " ")
		if isManga(cmd) {
			addEntry(cmd, loadManga(cmd), keywords, status)
		} else {
			addEntry(cmd, loadAnime(cmd), keywords, status)
		}
	},
}

func addEntry[E item[E]](cmd *cobra.Command, l *list.List[E], keywords string, status entry.Status) {
	found := search(cmd, l, keywords)
	if len(found) == 0 {
		handleErr(fault.New(fault.Validation, l.Provider().ID(), "nothing found for %q", keywords))
	}

	picked := pick(cmd, found)
	handleErr(l.Add(picked, status))

	fmt.Printf("%s Added %s as %s\n", icon.Get(icon.Success), style.Bold(picked.Base().DisplayTitle()), style.Status(status))
	finish(cmd, l)
}

func pick[E item[E]](cmd *cobra.Command, found []E) E {
	if id := lo.Must(cmd.Flags().GetInt("id")); id != 0 {
		e, ok := lo.Find(found, func(e E) bool { return e.Key().ID == id })
		if !ok {
			handleErr(fault.New(fault.Validation, "", "no search result has id %d", id))
		}
		return e
	}

	if lo.Must(cmd.Flags().GetBool("first")) || len(found) == 1 || !util.IsInteractive() {
		return found[0]
	}

	options := lo.Map(found, func(e E, _ int) string {
		return fmt.Sprintf("%s #%s", e.Base().DisplayTitle(), strconv.Itoa(e.Key().ID))
	})

	var index int
	handleErr(survey.AskOne(&survey.Select{
		Message: "Which one?",
		Options: options,
	}, &index))
	return found[index]
}
