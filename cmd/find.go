package cmd

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/query"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(findCmd)
	addMangaFlag(findCmd)
}

var findCmd = &cobra.Command{
	Use:               "find <keywords>",
	Short:             "Search the provider catalog",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionQueries,
	Run: func(cmd *cobra.Command, args []string) {
		keywords := strings.Join(args, " ")
		if isManga(cmd) {
			printFound(cmd, loadManga(cmd), keywords)
		} else {
			printFound(cmd, loadAnime(cmd), keywords)
		}
	},
}

func completionQueries(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	kind := string(list.Anime)
	if manga, err := cmd.Flags().GetBool("manga"); err == nil && manga {
		kind = string(list.Manga)
	}
	return query.SuggestMany(kind, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func search[E item[E]](cmd *cobra.Command, l *list.List[E], keywords string) []E {
	erase := util.PrintErasable(fmt.Sprintf("%s Searching %s...", icon.Get(icon.Progress), l.Provider().Name()))
	found, err := l.Find(cmd.Context(), keywords)
	erase()
	handleErr(err)
	return found
}

func printFound[E item[E]](cmd *cobra.Command, l *list.List[E], keywords string) {
	found := search(cmd, l, keywords)
	if len(found) == 0 {
		fmt.Printf("%s Nothing found for %q\n", icon.Get(icon.Question), keywords)
		return
	}

	for _, e := range found {
		status := style.Faint("not in list")
		if cached, ok := l.Get(e.Key().ID).Get(); ok {
			status = style.Status(cached.Base().Status)
		}
		fmt.Printf("%s %s %s %s\n", style.Faint(fmt.Sprintf("#%-7d", e.Key().ID)), e.Base().DisplayTitle(), style.Faint(lo.Ternary(e.Total() > 0, fmt.Sprintf("(%d)", e.Total()), "")), status)
	}
}
