package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/integration"
	"github.com/anisan-cli/anisync/list"
	"github.com/anisan-cli/anisync/open"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/style"
	"github.com/anisan-cli/anisync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// item is what the commands need from an anime or a manga.
type item[E any] interface {
	list.Item[E]
	Progress() int
	Total() int
}

// promptReauthorization asks the user for a new authorization code on the terminal.
var promptReauthorization = auth.ReauthorizeFunc(func(ctx context.Context, id, authURL string) (string, error) {
	if !util.IsInteractive() {
		return "", fault.ErrAuthRequired
	}

	fmt.Printf("%s The %s session expired. Authorize again at\n%s\n", icon.Get(icon.Warn), id, style.Faint(authURL))
	if err := open.URL(authURL); err != nil {
		fmt.Println("Open the link above in your browser")
	}

	return awaitCode(ctx, func(code *string) error {
		return survey.AskOne(&survey.Password{Message: "Paste the new code:"}, code)
	})
})

// awaitCode runs ask until it answers or ctx is done. A cancelled wait leaves the prompt
// goroutine blocked on the terminal until the process exits.
func awaitCode(ctx context.Context, ask func(code *string) error) (string, error) {
	type answer struct {
		code string
		err  error
	}
	answered := make(chan answer, 1)
	go func() {
		var code string
		err := ask(&code)
		answered <- answer{code, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-answered:
		if a.err != nil {
			return "", a.err
		}
		if a.code == "" {
			return "", fault.ErrAuthRequired
		}
		return a.code, nil
	}
}

func currentIntegration() *integration.Integration {
	i, err := integration.Default()
	handleErr(err)
	return i
}

func newAdapter() (*integration.Integration, provider.ListProvider) {
	i := currentIntegration()
	p, err := i.Create(provider.Options{Reauth: promptReauthorization})
	handleErr(err)
	return i, p
}

func addMangaFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("manga", "m", false, "Use the manga list instead of the anime list")
}

func isManga(cmd *cobra.Command) bool {
	return lo.Must(cmd.Flags().GetBool("manga"))
}

func loadAnime(cmd *cobra.Command) *list.List[*entry.Anime] {
	_, p := newAdapter()
	erase := util.PrintErasable(fmt.Sprintf("%s Loading anime list...", icon.Get(icon.Progress)))
	l, err := list.LoadAnimeList(cmd.Context(), p)
	erase()
	handleErr(err)
	return l
}

func loadManga(cmd *cobra.Command) *list.List[*entry.Manga] {
	_, p := newAdapter()
	erase := util.PrintErasable(fmt.Sprintf("%s Loading manga list...", icon.Get(icon.Progress)))
	l, err := list.LoadMangaList(cmd.Context(), p)
	erase()
	handleErr(err)
	return l
}

// resolve finds a list entry by id or by the closest title.
func resolve[E item[E]](l *list.List[E], query string) E {
	if id, err := strconv.Atoi(query); err == nil {
		if e, ok := l.Get(id).Get(); ok {
			return e
		}
	}

	e, ok := l.Closest(query).Get()
	if !ok {
		handleErr(fault.New(fault.Validation, "", "the %s list is empty", l.Kind()))
	}
	return e
}

// finish saves local changes and, unless --no-sync is set, syncs them.
func finish[E item[E]](cmd *cobra.Command, l *list.List[E]) {
	if lo.Must(cmd.Flags().GetBool("no-sync")) {
		handleErr(l.Save())
		fmt.Printf("%s %s queued\n", icon.Get(icon.Pending), util.Quantify(len(l.Pending()), "change", "changes"))
		return
	}
	runSync(cmd, l)
}

func addNoSyncFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("no-sync", false, "Queue the change without synchronizing")
}
