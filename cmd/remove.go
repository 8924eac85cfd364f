package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
	addMangaFlag(removeCmd)
	addNoSyncFlag(removeCmd)
	removeCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var removeCmd = &cobra.Command{
	Use:     "remove <title or id>",
	Aliases: []string{"rm"},
	Short:   "Remove a title from the list",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		if isManga(cmd) {
			removeEntry(cmd, loadManga(cmd), query)
		} else {
			removeEntry(cmd, loadAnime(cmd), query)
		}
	},
}

func removeEntry[E item[E]](cmd *cobra.Command, l *list.List[E], query string) {
	e := resolve(l, query)
	title := e.Base().DisplayTitle()

	if !lo.Must(cmd.Flags().GetBool("yes")) && util.IsInteractive() {
		var confirmed bool
		handleErr(survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Remove %s from the %s list?", title, l.Kind()),
		}, &confirmed))
		if !confirmed {
			return
		}
	}

	handleErr(l.Remove(e.Key().ID))
	fmt.Printf("%s Removed %s\n", icon.Get(icon.Success), style.Bold(title))
	finish(cmd, l)
}
