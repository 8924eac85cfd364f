package list

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/filesystem"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/query"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

const fakeID = "fake"

// fakeAnime is an in-memory anime provider.
type fakeAnime struct {
	mu      sync.Mutex
	account provider.Account
	catalog map[int]string
	remote  map[int]*entry.Anime
	fail    map[int]error
	failAdd map[int]error
	updates map[int]int
	pulls   int

	// when set, the next pull reports on pulling and waits for release
	pulling chan struct{}
	release chan struct{}
}

var accounts int

func newFakeAnime() *fakeAnime {
	accounts++
	return &fakeAnime{
		account: provider.Account{Provider: fakeID, Username: fmt.Sprintf("user%d", accounts)},
		catalog: map[int]string{
			1:    "Cowboy Bebop",
			21:   "One Piece",
			42:   "Naruto",
			1535: "Death Note",
		},
		remote:  make(map[int]*entry.Anime),
		fail:    make(map[int]error),
		failAdd: make(map[int]error),
		updates: make(map[int]int),
	}
}

func (f *fakeAnime) ID() string                                          { return fakeID }
func (f *fakeAnime) Name() string                                        { return "Fake" }
func (f *fakeAnime) Account() provider.Account                           { return f.account }
func (f *fakeAnime) VerifyCredentials(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeAnime) anime(id int) *entry.Anime {
	anime := entry.NewAnime(id, fakeID)
	anime.Title = f.catalog[id]
	anime.Episodes = 24
	return anime
}

func (f *fakeAnime) AddAnime(_ context.Context, id int, status entry.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail[id]; err != nil {
		return err
	}
	if err := f.failAdd[id]; err != nil {
		return err
	}
	if _, ok := f.remote[id]; ok {
		return fault.New(fault.Rejected, fakeID, "%d is already listed", id)
	}
	anime := f.anime(id)
	anime.Status = status
	f.remote[id] = anime
	return nil
}

func (f *fakeAnime) RemoveAnime(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.remote, id)
	return nil
}

func (f *fakeAnime) UpdateAnime(ctx context.Context, anime *entry.Anime) (bool, error) {
	if anime.Status == entry.NotInList {
		return true, f.RemoveAnime(ctx, anime.ID())
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates[anime.ID()]++
	if err := f.fail[anime.ID()]; err != nil {
		return false, err
	}
	remote, ok := f.remote[anime.ID()]
	if !ok {
		return false, nil
	}
	remote.Status = anime.Status
	remote.CurrentEpisode = anime.CurrentEpisode
	return true, remote.SetUserScore(anime.UserScore())
}

func (f *fakeAnime) FindAnime(_ context.Context, keywords string) ([]*entry.Anime, error) {
	var found []*entry.Anime
	for id, title := range f.catalog {
		if strings.Contains(strings.ToLower(title), strings.ToLower(keywords)) {
			found = append(found, f.anime(id))
		}
	}
	return found, nil
}

func (f *fakeAnime) PullAnimeList(context.Context) ([]*entry.Anime, error) {
	f.mu.Lock()
	f.pulls++
	pulling, release := f.pulling, f.release
	f.pulling, f.release = nil, nil
	f.mu.Unlock()

	if pulling != nil {
		close(pulling)
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return lo.MapToSlice(f.remote, func(id int, remote *entry.Anime) *entry.Anime {
		anime := entry.NewAnime(id, fakeID)
		_ = anime.Replace(remote)
		return anime
	}), nil
}

func TestSync(t *testing.T) {
	Convey("Given an empty anime list", t, func() {
		ctx := context.Background()
		fake := newFakeAnime()
		l := NewAnimeList(fake)

		So(l.Kind(), ShouldEqual, Anime)
		So(l.State(), ShouldEqual, Loaded)

		Convey("Adding 42 and syncing should list it as current and empty the queue", func() {
			So(l.Add(fake.anime(42), entry.Current), ShouldBeNil)
			So(l.Pending(), ShouldHaveLength, 1)

			report, err := l.Sync(ctx)
			So(err, ShouldBeNil)
			So(report, ShouldResemble, Report{Pushed: 1, Pulled: 1})

			anime, ok := l.Get(42).Get()
			So(ok, ShouldBeTrue)
			So(anime.Status, ShouldEqual, entry.Current)
			So(l.Pending(), ShouldBeEmpty)
			So(fake.remote, ShouldContainKey, 42)
		})

		Convey("Sync should pull twice", func() {
			_, err := l.Sync(ctx)
			So(err, ShouldBeNil)
			So(fake.pulls, ShouldEqual, 2)
		})

		Convey("Adding twice should be rejected", func() {
			So(l.Add(fake.anime(42), entry.Current), ShouldBeNil)
			err := l.Add(fake.anime(42), entry.Planned)
			So(fault.Is(err, fault.Rejected), ShouldBeTrue)
			So(l.Pending(), ShouldHaveLength, 1)
		})

		Convey("Adding as not in list should fail validation", func() {
			err := l.Add(fake.anime(42), entry.NotInList)
			So(fault.Is(err, fault.Validation), ShouldBeTrue)
		})

		Convey("Adding an entry of another provider should fail validation", func() {
			err := l.Add(entry.NewAnime(42, "other"), entry.Current)
			So(fault.Is(err, fault.Validation), ShouldBeTrue)
		})

		Convey("Removing or updating an unknown entry should fail validation", func() {
			So(fault.Is(l.Remove(7), fault.Validation), ShouldBeTrue)
			So(fault.Is(l.Update(fake.anime(7)), fault.Validation), ShouldBeTrue)
		})

		Convey("And a synced remote list", func() {
			So(fake.AddAnime(ctx, 21, entry.Current), ShouldBeNil)
			So(fake.AddAnime(ctx, 1535, entry.Completed), ShouldBeNil)
			_, err := l.Sync(ctx)
			So(err, ShouldBeNil)
			So(l.Len(), ShouldEqual, 2)

			Convey("Removing should drop the entry after Sync", func() {
				So(l.Remove(21), ShouldBeNil)
				So(l.Get(21).MustGet().Status, ShouldEqual, entry.NotInList)

				report, err := l.Sync(ctx)
				So(err, ShouldBeNil)
				So(report.Pushed, ShouldEqual, 1)
				So(l.Get(21).IsAbsent(), ShouldBeTrue)
				So(fake.remote, ShouldNotContainKey, 21)
			})

			Convey("Updating should push user fields and keep the entry's identity", func() {
				anime := l.Get(1535).MustGet()
				edited := fake.anime(1535)
				edited.Status = entry.OnHold
				edited.CurrentEpisode = 5
				So(edited.SetUserScore(8), ShouldBeNil)

				So(l.Update(edited), ShouldBeNil)
				So(anime.CurrentEpisode, ShouldEqual, 5)

				_, err := l.Sync(ctx)
				So(err, ShouldBeNil)
				So(fake.remote[1535].Status, ShouldEqual, entry.OnHold)
				So(fake.remote[1535].UserScore(), ShouldEqual, 8)
				So(l.Get(1535).MustGet(), ShouldPointTo, anime)
			})

			Convey("Queueing the same entry twice should push it once", func() {
				anime := l.Get(21).MustGet()
				anime.CurrentEpisode = 3
				So(l.Update(anime), ShouldBeNil)
				anime.CurrentEpisode = 4
				So(l.Update(anime), ShouldBeNil)
				So(l.Pending(), ShouldHaveLength, 1)

				report, err := l.Sync(ctx)
				So(err, ShouldBeNil)
				So(report.Pushed, ShouldEqual, 1)
				So(fake.remote[21].CurrentEpisode, ShouldEqual, 4)
			})

			Convey("Remote changes should overwrite the cache", func() {
				fake.remote[21].CurrentEpisode = 100
				delete(fake.remote, 1535)

				report, err := l.Sync(ctx)
				So(err, ShouldBeNil)
				So(report.Pulled, ShouldEqual, 1)
				So(l.Get(21).MustGet().CurrentEpisode, ShouldEqual, 100)
				So(l.Get(1535).IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("A failed push should be dropped, not retried", func() {
			fake.fail[1] = fault.New(fault.Transport, fakeID, "connection reset")
			So(l.Add(fake.anime(1), entry.Current), ShouldBeNil)
			So(l.Add(fake.anime(42), entry.Planned), ShouldBeNil)

			report, err := l.Sync(ctx)
			So(err, ShouldBeNil)
			So(report, ShouldResemble, Report{Pushed: 1, Dropped: 1, Pulled: 1})
			So(l.Pending(), ShouldBeEmpty)
			So(l.Get(1).IsAbsent(), ShouldBeTrue)
			So(l.Get(42).IsPresent(), ShouldBeTrue)
		})

		Convey("A failed add should still be followed by an update", func() {
			fake.failAdd[1] = fault.New(fault.Transport, fakeID, "connection reset")
			So(l.Add(fake.anime(1), entry.Current), ShouldBeNil)

			report, err := l.Sync(ctx)
			So(err, ShouldBeNil)
			So(report.Dropped, ShouldEqual, 1)
			So(fake.updates[1], ShouldEqual, 1)
			So(fake.remote, ShouldNotContainKey, 1)
		})

		Convey("A cancelled Sync should fail without touching the cache", func() {
			So(l.Add(fake.anime(42), entry.Current), ShouldBeNil)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := l.Sync(cancelled)
			So(err, ShouldEqual, context.Canceled)
			So(l.Get(42).IsPresent(), ShouldBeTrue)
			So(fake.remote, ShouldBeEmpty)
		})

		Convey("A second Sync should be refused while one runs", func() {
			fake.pulling = make(chan struct{})
			fake.release = make(chan struct{})

			done := make(chan error)
			go func() {
				_, err := l.Sync(ctx)
				done <- err
			}()

			<-fake.pulling
			So(l.State(), ShouldEqual, Syncing)
			_, err := l.Sync(ctx)
			So(err, ShouldEqual, fault.ErrSyncInProgress)

			close(fake.release)
			So(<-done, ShouldBeNil)
			So(l.State(), ShouldEqual, Loaded)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a provider with a remote list", t, func() {
		ctx := context.Background()
		fake := newFakeAnime()
		So(fake.AddAnime(ctx, 21, entry.Current), ShouldBeNil)

		Convey("Loading without a cache should sync", func() {
			l, err := LoadAnimeList(ctx, fake)
			So(err, ShouldBeNil)
			So(fake.pulls, ShouldEqual, 2)
			So(l.Get(21).IsPresent(), ShouldBeTrue)
		})

		Convey("Loading should restore entries and queue from disk", func() {
			l := NewAnimeList(fake)
			anime := fake.anime(42)
			anime.Airing = map[int]time.Time{1: time.Date(2002, 10, 3, 0, 0, 0, 0, time.UTC)}
			So(anime.SetUserScore(7), ShouldBeNil)
			So(l.Add(anime, entry.Planned), ShouldBeNil)
			So(l.Save(), ShouldBeNil)

			restored, err := LoadAnimeList(ctx, fake)
			So(err, ShouldBeNil)
			So(fake.pulls, ShouldEqual, 0)

			got := restored.Get(42).MustGet()
			So(got.Title, ShouldEqual, "Naruto")
			So(got.Status, ShouldEqual, entry.Planned)
			So(got.UserScore(), ShouldEqual, 7)
			So(got.AiredAt(1).IsPresent(), ShouldBeTrue)
			So(restored.Pending(), ShouldHaveLength, 1)
		})

		Convey("A cache holding an unknown status should be replaced by a Sync", func() {
			l := NewAnimeList(fake)
			anime := fake.anime(42)
			So(l.Add(anime, entry.Planned), ShouldBeNil)
			anime.Status = entry.Status(5)
			So(l.Save(), ShouldBeNil)

			restored, err := LoadAnimeList(ctx, fake)
			So(err, ShouldBeNil)
			So(fake.pulls, ShouldEqual, 2)
			So(restored.Get(42).IsAbsent(), ShouldBeTrue)
			So(restored.Get(21).IsPresent(), ShouldBeTrue)
		})

		Convey("The cache should be found whatever the username case", func() {
			l := NewAnimeList(fake)
			So(l.Add(fake.anime(42), entry.Planned), ShouldBeNil)
			So(l.Save(), ShouldBeNil)

			other := newFakeAnime()
			other.account.Username = strings.ToUpper(fake.account.Username)
			restored, err := LoadAnimeList(ctx, other)
			So(err, ShouldBeNil)
			So(other.pulls, ShouldEqual, 0)
			So(restored.Len(), ShouldEqual, 1)
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a list", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		ctx := context.Background()
		fake := newFakeAnime()
		l := NewAnimeList(fake)
		for _, id := range []int{1, 21, 42} {
			So(l.Add(fake.anime(id), entry.Current), ShouldBeNil)
		}

		Convey("Entries should be sorted by title", func() {
			titles := lo.Map(l.Entries(), func(a *entry.Anime, _ int) string { return a.Title })
			So(titles, ShouldResemble, []string{"Cowboy Bebop", "Naruto", "One Piece"})
		})

		Convey("Filter should match fuzzily", func() {
			found := l.Filter("bbop")
			So(found, ShouldHaveLength, 1)
			So(found[0].ID(), ShouldEqual, 1)
		})

		Convey("Closest should tolerate typos", func() {
			So(l.Closest("narto").MustGet().ID(), ShouldEqual, 42)
			So(NewAnimeList(fake).Closest("narto").IsAbsent(), ShouldBeTrue)
		})

		Convey("Find should search the catalog and remember the keywords", func() {
			found, err := l.Find(ctx, "death")
			So(err, ShouldBeNil)
			So(found, ShouldHaveLength, 1)
			So(found[0].Status, ShouldEqual, entry.NotInList)
			So(query.Suggest(string(Anime), "dea").MustGet(), ShouldEqual, "death")
		})
	})
}
