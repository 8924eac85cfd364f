package cmd

import (
	"fmt"
	"os"

	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/util"
	"github.com/anisan-cli/anisync/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	flag     string
	short    string
	location func() string
}

var clearTargets = []clearTarget{
	{"list caches", "lists", "l", where.Lists},
	{"query history", "queries", "q", where.Queries},
	{"logs", "logs", "L", where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		clearCmd.Flags().BoolP(t.flag, t.short, false, "clear "+t.name)
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached lists, query history or logs",
	Long: "Delete cached lists, query history or logs.\n" +
		"Changes queued with --no-sync are lost when the list caches are cleared.",
	Run: func(cmd *cobra.Command, args []string) {
		var cleared bool

		for _, t := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(t.flag)) {
				continue
			}

			cleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.name))
			err := util.Delete(t.location())
			erase()
			if !os.IsNotExist(err) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(t.name))
		}

		if !cleared {
			handleErr(cmd.Help())
		}
	},
}
