package cmd

import (
	"fmt"
	"time"

	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/log"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configuredInterval is the value of a bare --every.
const configuredInterval = "config"

func init() {
	rootCmd.AddCommand(syncCmd)
	addMangaFlag(syncCmd)
	syncCmd.Flags().StringP("every", "e", "", "Keep running and sync at this interval, e.g. 30m")
	syncCmd.Flags().Lookup("every").NoOptDefVal = configuredInterval
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push queued changes and pull the remote list",
	Run: func(cmd *cobra.Command, args []string) {
		every := lo.Must(cmd.Flags().GetString("every"))

		if isManga(cmd) {
			schedule(cmd, every, loadManga(cmd))
		} else {
			schedule(cmd, every, loadAnime(cmd))
		}
	},
}

func schedule[E item[E]](cmd *cobra.Command, every string, l *list.List[E]) {
	if every == "" {
		runSync(cmd, l)
		return
	}

	if every == configuredInterval {
		every = viper.GetString(key.SyncInterval)
	}
	interval, err := time.ParseDuration(every)
	handleErr(errors.Wrapf(err, "invalid interval %q", every))
	if interval < time.Minute {
		handleErr(errors.Errorf("interval %s is shorter than a minute", interval))
	}

	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()

	_, err = scheduler.Every(interval).Do(func() {
		report, err := l.Sync(cmd.Context())
		if err != nil {
			log.WithProvider(l.Provider().ID()).WithError(err).Error("scheduled sync failed")
			fmt.Printf("%s %s sync failed: %s\n", style.Faint(time.Now().Format(time.Kitchen)), icon.Get(icon.Fail), err)
			return
		}
		fmt.Printf("%s %s\n", style.Faint(time.Now().Format(time.Kitchen)), describe(report))
	})
	handleErr(err)

	fmt.Printf("%s Syncing the %s list every %s, interrupt to stop\n", icon.Get(icon.Sync), l.Kind(), interval)
	scheduler.StartAsync()
	<-cmd.Context().Done()
	scheduler.Stop()
}

func runSync[E item[E]](cmd *cobra.Command, l *list.List[E]) {
	erase := util.PrintErasable(fmt.Sprintf("%s Syncing %s with %s...", icon.Get(icon.Progress), l.Kind(), l.Provider().Name()))
	report, err := l.Sync(cmd.Context())
	erase()
	handleErr(err)

	fmt.Println(describe(report))
}

func describe(report list.Report) string {
	summary := fmt.Sprintf(
		"%s Pushed %s, pulled %s",
		icon.Get(icon.Success),
		util.Quantify(report.Pushed, "change", "changes"),
		util.Quantify(report.Pulled, "entry", "entries"),
	)
	if report.Dropped > 0 {
		summary += fmt.Sprintf("\n%s Dropped %s, see the logs", icon.Get(icon.Warn), util.Quantify(report.Dropped, "change", "changes"))
	}
	return summary
}
