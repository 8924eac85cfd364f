package anilist

import (
	"math"
	"time"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/util"
)

var statuses = provider.StatusTable(ID,
	provider.P(entry.NotInList, ""),
	provider.P(entry.Current, "CURRENT"),
	provider.P(entry.Completed, "COMPLETED"),
	provider.P(entry.OnHold, "PAUSED"),
	provider.P(entry.Dropped, "DROPPED"),
	provider.P(entry.Planned, "PLANNING"),
).Alias("REPEATING", entry.Current)

var showTypes = provider.NewTable(ID, "anime format",
	provider.P(entry.Tv, "TV"),
	provider.P(entry.Movie, "MOVIE"),
	provider.P(entry.Ova, "OVA"),
	provider.P(entry.Ona, "ONA"),
	provider.P(entry.Special, "SPECIAL"),
	provider.P(entry.Music, "MUSIC"),
).Total(entry.Tv, entry.Movie, entry.Ova, entry.Ona, entry.Special, entry.Music).Alias("TV_SHORT", entry.Tv)

// AniList has no format for the regional comic types; they are derived from the country of origin.
var mangaTypes = provider.NewTable(ID, "manga format",
	provider.P(entry.MangaKind, "MANGA"),
	provider.P(entry.Novel, "NOVEL"),
	provider.P(entry.OneShot, "ONE_SHOT"),
)

var airingStatuses = provider.NewTable(ID, "media status",
	provider.P(entry.Airing, "RELEASING"),
	provider.P(entry.FinishedAiring, "FINISHED"),
	provider.P(entry.NotYetAired, "NOT_YET_RELEASED"),
).Alias("CANCELLED", entry.FinishedAiring).Alias("HIATUS", entry.Airing)

var publishingStatuses = provider.NewTable(ID, "media status",
	provider.P(entry.Publishing, "RELEASING"),
	provider.P(entry.FinishedPublishing, "FINISHED"),
	provider.P(entry.NotYetPublished, "NOT_YET_RELEASED"),
).Alias("CANCELLED", entry.FinishedPublishing).Alias("HIATUS", entry.Publishing)

type fuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d fuzzyDate) date() entry.Date {
	if d.Year == 0 {
		return entry.Unset
	}
	return entry.Date{Year: d.Year, Month: d.Month, Day: d.Day}
}

// fuzzyInput encodes d for a mutation; unset clears the remote date.
func fuzzyInput(d entry.Date) map[string]any {
	if !d.IsSet() {
		return map[string]any{"year": nil, "month": nil, "day": nil}
	}
	return map[string]any{"year": d.Year, "month": d.Month, "day": d.Day}
}

type media struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	Synonyms    []string `json:"synonyms"`
	Description string   `json:"description"`
	CoverImage  struct {
		Large string `json:"large"`
	} `json:"coverImage"`
	AverageScore    int       `json:"averageScore"`
	Format          string    `json:"format"`
	Status          string    `json:"status"`
	CountryOfOrigin string    `json:"countryOfOrigin"`
	Episodes        int       `json:"episodes"`
	Chapters        int       `json:"chapters"`
	Volumes         int       `json:"volumes"`
	StartDate       fuzzyDate `json:"startDate"`
	EndDate         fuzzyDate `json:"endDate"`
	AiringSchedule  struct {
		Nodes []struct {
			Episode  int   `json:"episode"`
			AiringAt int64 `json:"airingAt"`
		} `json:"nodes"`
	} `json:"airingSchedule"`
}

type listItem struct {
	Status          string    `json:"status"`
	Score           float64   `json:"score"`
	Progress        int       `json:"progress"`
	ProgressVolumes int       `json:"progressVolumes"`
	Notes           string    `json:"notes"`
	StartedAt       fuzzyDate `json:"startedAt"`
	CompletedAt     fuzzyDate `json:"completedAt"`
	Media           media     `json:"media"`
}

func (m *media) fill(e *entry.Entry) {
	e.Title = m.Title.Romaji
	if e.Title == "" {
		e.Title = m.Title.English
	}
	e.EnglishTitle = m.Title.English
	e.JapaneseTitle = m.Title.Native
	e.AddSynonyms(m.Synonyms...)
	e.Synopsis = util.StripHTML(m.Description)
	e.ImageURL = m.CoverImage.Large
	e.PublicScore = float64(m.AverageScore) / 10
}

func (m *media) anime() (*entry.Anime, error) {
	if m.ID == 0 {
		return nil, fault.New(fault.Protocol, ID, "media without id")
	}

	anime := entry.NewAnime(m.ID, ID)
	m.fill(&anime.Entry)
	anime.Episodes = m.Episodes
	anime.StartDate = m.StartDate.date()
	anime.EndDate = m.EndDate.date()

	if m.Format != "" {
		showType, err := showTypes.Generic(m.Format)
		if err != nil {
			return nil, err
		}
		anime.ShowType = showType
	}

	if m.Status != "" {
		status, err := airingStatuses.Generic(m.Status)
		if err != nil {
			return nil, err
		}
		anime.RunningStatus = status
	}

	if nodes := m.AiringSchedule.Nodes; len(nodes) > 0 {
		anime.Airing = make(map[int]time.Time, len(nodes))
		for _, node := range nodes {
			anime.Airing[node.Episode] = time.Unix(node.AiringAt, 0).UTC()
		}
	}

	return anime, nil
}

func (m *media) manga() (*entry.Manga, error) {
	if m.ID == 0 {
		return nil, fault.New(fault.Protocol, ID, "media without id")
	}

	manga := entry.NewManga(m.ID, ID)
	m.fill(&manga.Entry)
	manga.Chapters = m.Chapters
	manga.Volumes = m.Volumes

	if m.Format != "" {
		mangaType, err := mangaTypes.Generic(m.Format)
		if err != nil {
			return nil, err
		}
		manga.MangaType = mangaType
	}

	if manga.MangaType == entry.MangaKind {
		switch m.CountryOfOrigin {
		case "KR":
			manga.MangaType = entry.Manhwa
		case "CN", "TW":
			manga.MangaType = entry.Manhua
		}
	}

	if m.Status != "" {
		status, err := publishingStatuses.Generic(m.Status)
		if err != nil {
			return nil, err
		}
		manga.RunningStatus = status
	}

	return manga, nil
}

// user copies the list fields of item onto e.
func (item *listItem) user(e *entry.Entry) error {
	status, err := statuses.Generic(item.Status)
	if err != nil {
		return err
	}

	if err := e.SetUserScore(int(math.Round(item.Score))); err != nil {
		return fault.New(fault.Protocol, ID, "list entry score %v is out of range", item.Score)
	}

	e.Status = status
	e.Start = item.StartedAt.date()
	e.End = item.CompletedAt.date()
	e.Notes = item.Notes
	return nil
}
