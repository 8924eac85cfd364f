package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// listedEntry is the JSON form of a list row.
type listedEntry struct {
	ID       int      `json:"id" jsonschema:"description=Provider-scoped id"`
	Provider string   `json:"provider" jsonschema:"enum=anilist,enum=kitsu,enum=mal"`
	Title    string   `json:"title"`
	English  string   `json:"english_title,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
	Status   string   `json:"status" jsonschema:"enum=not in list,enum=current,enum=completed,enum=on hold,enum=dropped,enum=planned"`
	Progress int      `json:"progress" jsonschema:"minimum=0"`
	Total    int      `json:"total" jsonschema:"minimum=0,description=0 when unknown"`
	Score    int      `json:"score" jsonschema:"minimum=0,maximum=10"`
	Start    string   `json:"start,omitempty" jsonschema:"format=date"`
	End      string   `json:"end,omitempty" jsonschema:"format=date"`
	Notes    string   `json:"notes,omitempty"`
	Pending  bool     `json:"pending" jsonschema:"description=Changed locally and not synced yet"`
}

func newListedEntry[E item[E]](e E, pending bool) listedEntry {
	base := e.Base()
	date := func(d entry.Date) string { return d.Format("2006-01-02", "") }
	return listedEntry{
		ID:       base.ID(),
		Provider: base.Provider(),
		Title:    base.Title,
		English:  base.EnglishTitle,
		Synonyms: base.Synonyms(),
		Status:   base.Status.String(),
		Progress: e.Progress(),
		Total:    e.Total(),
		Score:    base.UserScore(),
		Start:    date(base.Start),
		End:      date(base.End),
		Notes:    base.Notes,
		Pending:  pending,
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	addMangaFlag(listCmd)
	listCmd.Flags().StringP("status", "s", "", "Show only entries with this status")
	lo.Must0(listCmd.RegisterFlagCompletionFunc("status", completionStatuses))
	listCmd.Flags().StringP("filter", "f", "", "Show only entries whose title fuzzily matches")
	listCmd.Flags().BoolP("pending", "p", false, "Show only entries with unsynced changes")
	listCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	listCmd.Flags().Bool("json-schema", false, "Print the JSON schema of the --json output")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the cached list",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("json-schema")) {
			schema := jsonschema.Reflect(&[]listedEntry{})
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(schema))
			return
		}

		if isManga(cmd) {
			printList(cmd, loadManga(cmd))
		} else {
			printList(cmd, loadAnime(cmd))
		}
	},
}

func completionStatuses(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(entry.Statuses[1:], func(s entry.Status, _ int) string {
		return strings.ReplaceAll(s.String(), " ", "-")
	}), cobra.ShellCompDirectiveNoFileComp
}

func printList[E item[E]](cmd *cobra.Command, l *list.List[E]) {
	var (
		statusFlag  = lo.Must(cmd.Flags().GetString("status"))
		filter      = lo.Must(cmd.Flags().GetString("filter"))
		pendingOnly = lo.Must(cmd.Flags().GetBool("pending"))
		asJSON      = lo.Must(cmd.Flags().GetBool("json"))
	)

	entries := l.Entries()
	if filter != "" {
		entries = l.Filter(filter)
	}

	if statusFlag != "" {
		status, err := entry.ParseStatus(statusFlag)
		handleErr(err)
		entries = lo.Filter(entries, func(e E, _ int) bool { return e.Base().Status == status })
	}

	pending := lo.SliceToMap(l.Pending(), func(e E) (int, bool) { return e.Key().ID, true })
	if pendingOnly {
		entries = lo.Filter(entries, func(e E, _ int) bool { return pending[e.Key().ID] })
	}

	if asJSON {
		rows := lo.Map(entries, func(e E, _ int) listedEntry { return newListedEntry(e, pending[e.Key().ID]) })
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(rows))
		return
	}

	if len(entries) == 0 {
		fmt.Printf("%s Nothing to show\n", icon.Get(icon.Question))
		return
	}

	width := 48
	if w, _, err := util.TerminalSize(); err == nil {
		width = util.Max(20, w-40)
	}

	for _, e := range entries {
		base := e.Base()
		mark := " "
		if pending[e.Key().ID] {
			mark = icon.Get(icon.Pending)
		}

		fmt.Printf(
			"%s %-*s %s %s %s %s\n",
			mark,
			width,
			util.Truncate(base.DisplayTitle(), width),
			style.Progress(e.Progress(), e.Total()),
			style.Score(base.UserScore()),
			style.Status(base.Status),
			style.Faint(fmt.Sprintf("#%d", base.ID())),
		)
	}

	fmt.Printf("\n%s on %s\n", util.Quantify(len(entries), "entry", "entries"), style.Provider(l.Provider().ID(), l.Provider().Name()))
}
