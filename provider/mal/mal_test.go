package mal

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/provider"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

type catalogItem struct {
	title    string
	episodes int
}

// fakeMAL emulates the XML API and the legacy export.
type fakeMAL struct {
	mu       sync.Mutex
	catalog  map[int]catalogItem
	list     map[int]*listEntry
	searches int
	rawState int
}

func newFakeMAL() *fakeMAL {
	return &fakeMAL{
		catalog: map[int]catalogItem{
			21:   {title: "One Piece", episodes: 0},
			1535: {title: "Death Note", episodes: 37},
			42:   {title: "Nichijou", episodes: 26},
		},
		list: make(map[int]*listEntry),
	}
}

func (f *fakeMAL) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/malappinfo.php" {
		f.export(w, r)
		return
	}

	if username, password, ok := r.BasicAuth(); !ok || username != "alice" || password != "hunter2" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Invalid credentials"))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/")
	switch {
	case path == "account/verify_credentials.xml":
		_, _ = w.Write([]byte(xml.Header + "<user><id>7</id><username>alice</username></user>"))

	case path == "anime/search.xml":
		f.searches++
		if r.URL.Query().Get("q") == "nothing" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(xml.Header + `<anime><entry>
			<id>1535</id><title>Death Note</title><english>Death Note</english>
			<synonyms>DN; Desu Noto</synonyms><episodes>37</episodes><score>8.62</score>
			<type>TV</type><status>Finished Airing</status>
			<start_date>2006-10-04</start_date><end_date>2007-06-27</end_date>
			<synopsis>A shinigami, as a god of death, can kill any person.&lt;br /&gt;Light finds a notebook.</synopsis>
			<image>https://example.com/dn.jpg</image>
		</entry></anime>`))

	case strings.HasPrefix(path, "animelist/"):
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(path, "animelist/"), ".xml"), "/")
		action := parts[0]
		id, _ := strconv.Atoi(parts[1])
		_ = r.ParseForm()

		var data listEntry
		if raw := r.PostForm.Get("data"); raw != "" {
			_ = xml.Unmarshal([]byte(raw), &data)
		}

		_, listed := f.list[id]
		switch action {
		case "add":
			if listed {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, "The anime (id: %d) is already in the list.", id)
				return
			}
			f.list[id] = &data
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("Created"))
		case "update":
			if !listed {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("This anime is not on your list."))
				return
			}
			f.list[id] = &data
			_, _ = w.Write([]byte("Updated"))
		case "delete":
			if !listed {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("This anime is not on your list."))
				return
			}
			delete(f.list, id)
			_, _ = w.Write([]byte("Deleted"))
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeMAL) export(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("u") != "alice" {
		_, _ = w.Write([]byte(xml.Header + "<myanimelist><error>Invalid username</error></myanimelist>"))
		return
	}

	ids := lo.Keys(f.list)
	sort.Ints(ids)

	var b strings.Builder
	b.WriteString(xml.Header + "<myanimelist><myinfo><user_id>7</user_id></myinfo>")
	for _, id := range ids {
		e := f.list[id]
		episode := 0
		if e.Episode != nil {
			episode = *e.Episode
		}
		status := e.Status
		if f.rawState != 0 {
			status = f.rawState
		}
		fmt.Fprintf(&b, `<anime>
			<series_animedb_id>%d</series_animedb_id>
			<series_title>%s</series_title>
			<series_synonyms>; Alt Title</series_synonyms>
			<series_type>1</series_type>
			<series_episodes>%d</series_episodes>
			<series_status>2</series_status>
			<series_start>2004-10-00</series_start>
			<series_end>0000-00-00</series_end>
			<series_image>https://example.com/%d.jpg</series_image>
			<my_watched_episodes>%d</my_watched_episodes>
			<my_start_date>0000-00-00</my_start_date>
			<my_finish_date>0000-00-00</my_finish_date>
			<my_score>%d</my_score>
			<my_status>%d</my_status>
			<my_tags>%s</my_tags>
		</anime>`, id, f.catalog[id].title, f.catalog[id].episodes, id, episode, e.Score, status, e.Tags)
	}
	b.WriteString("</myanimelist>")
	_, _ = w.Write([]byte(b.String()))
}

func newTestAdapter(server *httptest.Server, username string) *Adapter {
	adapter := lo.Must(New(provider.Options{
		Account: provider.Account{Username: username},
		Store:   auth.Keyring{},
		Client:  server.Client(),
	}))
	adapter.apiURL = server.URL + "/api"
	adapter.legacyURL = server.URL + "/malappinfo.php"
	return adapter
}

func TestStatusTable(t *testing.T) {
	Convey("Every status should survive a round trip through the numeric encoding", t, func() {
		for _, status := range entry.Statuses {
			native, err := statuses.Native(status)
			So(err, ShouldBeNil)
			So(native, ShouldEqual, int(status))

			back, err := statuses.Generic(native)
			So(err, ShouldBeNil)
			So(back, ShouldEqual, status)
		}
	})

	Convey("The gap at 5 should stay unmapped", t, func() {
		_, err := statuses.Generic(5)
		So(fault.Is(err, fault.Protocol), ShouldBeTrue)
	})
}

func TestDates(t *testing.T) {
	Convey("Legacy dates", t, func() {
		Convey("All zeros should be unset", func() {
			d, err := parseDate("0000-00-00")
			So(err, ShouldBeNil)
			So(d, ShouldResemble, entry.Unset)
		})
		Convey("Unknown month and day should be kept as zero", func() {
			d, err := parseDate("2004-10-00")
			So(err, ShouldBeNil)
			So(d, ShouldResemble, entry.Date{Year: 2004, Month: 10})
		})
		Convey("Garbage should be a protocol error", func() {
			_, err := parseDate("yesterday")
			So(fault.Is(err, fault.Protocol), ShouldBeTrue)
		})
		Convey("Unset should be written as zeros", func() {
			So(formatDate(entry.Unset), ShouldEqual, "00000000")
			So(formatDate(entry.Date{Year: 2007, Month: 6, Day: 27}), ShouldEqual, "06272007")
		})
		Convey("Partial dates should be written back unchanged", func() {
			d, err := parseDate("2004-10-00")
			So(err, ShouldBeNil)
			So(formatDate(d), ShouldEqual, "10002004")

			d, err = parseDate("2004-00-00")
			So(err, ShouldBeNil)
			So(formatDate(d), ShouldEqual, "00002004")
		})
	})
}

func TestAuthentication(t *testing.T) {
	keyring.MockInit()

	Convey("Given a MyAnimeList server", t, func() {
		server := httptest.NewServer(newFakeMAL())
		defer server.Close()

		Convey("The right password should verify", func() {
			_ = auth.Keyring{}.SetSecret(auth.Key(ID, "alice"), "hunter2")
			adapter := newTestAdapter(server, "alice")

			ok, err := adapter.VerifyCredentials(context.Background())
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			id, name := adapter.session.User()
			So(id, ShouldEqual, 7)
			So(name, ShouldEqual, "alice")
		})

		Convey("A wrong password should be an auth error", func() {
			_ = auth.Keyring{}.SetSecret(auth.Key(ID, "alice"), "wrong")
			adapter := newTestAdapter(server, "alice")

			ok, err := adapter.VerifyCredentials(context.Background())
			So(ok, ShouldBeFalse)
			So(fault.Is(err, fault.Auth), ShouldBeTrue)
			So(adapter.session.State(), ShouldEqual, auth.NoToken)
		})
	})
}

func TestList(t *testing.T) {
	keyring.MockInit()

	Convey("Given an adapter for alice", t, func() {
		fake := newFakeMAL()
		server := httptest.NewServer(fake)
		defer server.Close()

		_ = auth.Keyring{}.SetSecret(auth.Key(ID, "alice"), "hunter2")
		adapter := newTestAdapter(server, "alice")
		ctx := context.Background()

		Convey("Adding two titles should list both with their statuses", func() {
			So(adapter.AddAnime(ctx, 21, entry.Current), ShouldBeNil)
			So(adapter.AddAnime(ctx, 1535, entry.Completed), ShouldBeNil)

			animes, err := adapter.PullAnimeList(ctx)
			So(err, ShouldBeNil)

			byID := lo.KeyBy(animes, func(a *entry.Anime) int { return a.ID() })
			So(byID, ShouldContainKey, 21)
			So(byID, ShouldContainKey, 1535)
			So(byID[21].Status, ShouldEqual, entry.Current)
			So(byID[1535].Status, ShouldEqual, entry.Completed)
			So(byID[1535].Title, ShouldEqual, "Death Note")
			So(byID[1535].Synonyms(), ShouldResemble, []string{"Alt Title"})
			So(byID[1535].StartDate, ShouldResemble, entry.Date{Year: 2004, Month: 10})
			So(byID[1535].EndDate.IsSet(), ShouldBeFalse)
			So(byID[1535].Start.IsSet(), ShouldBeFalse)
			So(byID[1535].Synopsis, ShouldBeEmpty)

			Convey("Removing one should drop it from the next pull", func() {
				So(adapter.RemoveAnime(ctx, 21), ShouldBeNil)

				animes, err := adapter.PullAnimeList(ctx)
				So(err, ShouldBeNil)
				ids := lo.Map(animes, func(a *entry.Anime, _ int) int { return a.ID() })
				So(ids, ShouldNotContain, 21)
				So(ids, ShouldContain, 1535)
			})

			Convey("Adding a listed title again should be rejected", func() {
				err := adapter.AddAnime(ctx, 21, entry.Planned)
				So(fault.Is(err, fault.Rejected), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "already in the list")
			})
		})

		Convey("Remove should be idempotent", func() {
			So(adapter.AddAnime(ctx, 42, entry.Current), ShouldBeNil)
			So(adapter.RemoveAnime(ctx, 42), ShouldBeNil)
			So(adapter.RemoveAnime(ctx, 42), ShouldBeNil)
		})

		Convey("Completing an anime should mark every episode watched", func() {
			So(adapter.AddAnime(ctx, 1535, entry.Current), ShouldBeNil)

			anime := entry.NewAnime(1535, ID)
			anime.Episodes = 37
			anime.CurrentEpisode = 12
			anime.Status = entry.Completed
			anime.Notes = "classic"
			So(anime.SetUserScore(9), ShouldBeNil)

			ok, err := adapter.UpdateAnime(ctx, anime)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(*fake.list[1535].Episode, ShouldEqual, 37)

			animes, _ := adapter.PullAnimeList(ctx)
			So(animes[0].CurrentEpisode, ShouldEqual, 37)
			So(animes[0].UserScore(), ShouldEqual, 9)
			So(animes[0].Notes, ShouldEqual, "classic")

			Convey("Setting it to not in list should remove it", func() {
				anime.Status = entry.NotInList
				ok, err := adapter.UpdateAnime(ctx, anime)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(fake.list, ShouldBeEmpty)
			})
		})

		Convey("Update of an unlisted title should report false", func() {
			anime := entry.NewAnime(21, ID)
			anime.Status = entry.Current

			ok, err := adapter.UpdateAnime(ctx, anime)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("An unknown list status should be a protocol error", func() {
			So(adapter.AddAnime(ctx, 21, entry.Current), ShouldBeNil)
			fake.rawState = 5

			_, err := adapter.PullAnimeList(ctx)
			So(fault.Is(err, fault.Protocol), ShouldBeTrue)
		})

		Convey("Find should decode the XML search", func() {
			found, err := adapter.FindAnime(ctx, "death note")
			So(err, ShouldBeNil)
			So(found, ShouldHaveLength, 1)
			So(found[0].Synonyms(), ShouldResemble, []string{"DN", "Desu Noto"})
			So(found[0].PublicScore, ShouldEqual, 8.62)
			So(found[0].RunningStatus, ShouldEqual, entry.FinishedAiring)
			So(found[0].Synopsis, ShouldEqual, "A shinigami, as a god of death, can kill any person.\nLight finds a notebook.")
			So(fake.searches, ShouldEqual, 1)
		})

		Convey("No content should mean no results", func() {
			found, err := adapter.FindAnime(ctx, "nothing")
			So(err, ShouldBeNil)
			So(found, ShouldBeEmpty)
		})
	})
}
