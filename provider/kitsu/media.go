package kitsu

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/provider"
)

const (
	kindAnime = "anime"
	kindManga = "manga"
)

var statuses = provider.StatusTable(ID,
	provider.P(entry.NotInList, ""),
	provider.P(entry.Current, "current"),
	provider.P(entry.Completed, "completed"),
	provider.P(entry.OnHold, "on_hold"),
	provider.P(entry.Dropped, "dropped"),
	provider.P(entry.Planned, "planned"),
)

var showTypes = provider.NewTable(ID, "anime subtype",
	provider.P(entry.Tv, "TV"),
	provider.P(entry.Movie, "movie"),
	provider.P(entry.Ova, "OVA"),
	provider.P(entry.Ona, "ONA"),
	provider.P(entry.Special, "special"),
	provider.P(entry.Music, "music"),
).Total(entry.Tv, entry.Movie, entry.Ova, entry.Ona, entry.Special, entry.Music)

var mangaTypes = provider.NewTable(ID, "manga subtype",
	provider.P(entry.MangaKind, "manga"),
	provider.P(entry.Novel, "novel"),
	provider.P(entry.OneShot, "oneshot"),
	provider.P(entry.Doujinshi, "doujin"),
	provider.P(entry.Manhwa, "manhwa"),
	provider.P(entry.Manhua, "manhua"),
	provider.P(entry.Comic, "oel"),
).Total(entry.MangaKind, entry.Novel, entry.OneShot, entry.Doujinshi, entry.Manhwa, entry.Manhua, entry.Comic)

var airingStatuses = provider.NewTable(ID, "media status",
	provider.P(entry.Airing, "current"),
	provider.P(entry.FinishedAiring, "finished"),
	provider.P(entry.NotYetAired, "upcoming"),
).Alias("tba", entry.NotYetAired).Alias("unreleased", entry.NotYetAired)

var publishingStatuses = provider.NewTable(ID, "media status",
	provider.P(entry.Publishing, "current"),
	provider.P(entry.FinishedPublishing, "finished"),
	provider.P(entry.NotYetPublished, "upcoming"),
).Alias("tba", entry.NotYetPublished).Alias("unreleased", entry.NotYetPublished)

type mediaAttributes struct {
	CanonicalTitle string `json:"canonicalTitle"`
	Titles         struct {
		En   string `json:"en"`
		EnJp string `json:"en_jp"`
		JaJp string `json:"ja_jp"`
	} `json:"titles"`
	AbbreviatedTitles []string `json:"abbreviatedTitles"`
	Synopsis          string   `json:"synopsis"`
	PosterImage       *struct {
		Large    string `json:"large"`
		Original string `json:"original"`
	} `json:"posterImage"`
	AverageRating string `json:"averageRating"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
	Subtype       string `json:"subtype"`
	EpisodeCount  int    `json:"episodeCount"`
	ChapterCount  int    `json:"chapterCount"`
	VolumeCount   int    `json:"volumeCount"`
}

type entryAttributes struct {
	Status       string  `json:"status"`
	Progress     int     `json:"progress"`
	RatingTwenty *int    `json:"ratingTwenty"`
	Notes        string  `json:"notes"`
	StartedAt    *string `json:"startedAt"`
	FinishedAt   *string `json:"finishedAt"`
}

func decodeAttributes(r resource, out any) error {
	if err := json.Unmarshal(r.Attributes, out); err != nil {
		return fault.Wrap(fault.Protocol, ID, err, "decode "+r.Type+" attributes")
	}
	return nil
}

func resourceID(r resource) (int, error) {
	id, err := strconv.Atoi(r.ID)
	if err != nil {
		return 0, fault.New(fault.Protocol, ID, "%s id %q is not numeric", r.Type, r.ID)
	}
	return id, nil
}

func catalogDate(value string) (entry.Date, error) {
	date, err := entry.ParseDate("2006-01-02", value)
	if err != nil {
		return entry.Unset, fault.Wrap(fault.Protocol, ID, err, "catalog date")
	}
	return date, nil
}

func userDate(value *string) (entry.Date, error) {
	if value == nil || *value == "" {
		return entry.Unset, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return entry.Unset, fault.Wrap(fault.Protocol, ID, err, "list entry date")
	}
	return entry.DateOf(t), nil
}

// dateValue encodes d for a library entry; unset clears the remote date.
func dateValue(d entry.Date) any {
	if !d.IsSet() {
		return nil
	}
	return d.Time().Format(time.RFC3339)
}

func (m *mediaAttributes) fill(e *entry.Entry) error {
	e.Title = m.CanonicalTitle
	e.EnglishTitle = m.Titles.En
	e.JapaneseTitle = m.Titles.JaJp
	e.AddSynonyms(m.Titles.EnJp)
	e.AddSynonyms(m.AbbreviatedTitles...)
	e.Synopsis = m.Synopsis
	if m.PosterImage != nil {
		e.ImageURL = m.PosterImage.Large
		if e.ImageURL == "" {
			e.ImageURL = m.PosterImage.Original
		}
	}

	if m.AverageRating != "" {
		rating, err := strconv.ParseFloat(m.AverageRating, 64)
		if err != nil {
			return fault.Wrap(fault.Protocol, ID, err, "average rating")
		}
		e.PublicScore = rating / 10
	}
	return nil
}

func decodeAnime(r resource) (*entry.Anime, error) {
	id, err := resourceID(r)
	if err != nil {
		return nil, err
	}

	var attrs mediaAttributes
	if err := decodeAttributes(r, &attrs); err != nil {
		return nil, err
	}

	anime := entry.NewAnime(id, ID)
	if err := attrs.fill(&anime.Entry); err != nil {
		return nil, err
	}
	anime.Episodes = attrs.EpisodeCount

	if anime.StartDate, err = catalogDate(attrs.StartDate); err != nil {
		return nil, err
	}
	if anime.EndDate, err = catalogDate(attrs.EndDate); err != nil {
		return nil, err
	}
	if attrs.Subtype != "" {
		if anime.ShowType, err = showTypes.Generic(attrs.Subtype); err != nil {
			return nil, err
		}
	}
	if attrs.Status != "" {
		if anime.RunningStatus, err = airingStatuses.Generic(attrs.Status); err != nil {
			return nil, err
		}
	}

	return anime, nil
}

func decodeManga(r resource) (*entry.Manga, error) {
	id, err := resourceID(r)
	if err != nil {
		return nil, err
	}

	var attrs mediaAttributes
	if err := decodeAttributes(r, &attrs); err != nil {
		return nil, err
	}

	manga := entry.NewManga(id, ID)
	if err := attrs.fill(&manga.Entry); err != nil {
		return nil, err
	}
	manga.Chapters = attrs.ChapterCount
	manga.Volumes = attrs.VolumeCount

	if attrs.Subtype != "" {
		if manga.MangaType, err = mangaTypes.Generic(attrs.Subtype); err != nil {
			return nil, err
		}
	}
	if attrs.Status != "" {
		if manga.RunningStatus, err = publishingStatuses.Generic(attrs.Status); err != nil {
			return nil, err
		}
	}

	return manga, nil
}

// user copies the library entry fields onto e.
func (attrs *entryAttributes) user(e *entry.Entry) error {
	status, err := statuses.Generic(attrs.Status)
	if err != nil {
		return err
	}
	e.Status = status
	e.Notes = attrs.Notes

	if attrs.RatingTwenty != nil {
		if err := e.SetUserScore(*attrs.RatingTwenty / 2); err != nil {
			return fault.New(fault.Protocol, ID, "rating %d is out of range", *attrs.RatingTwenty)
		}
	}

	if e.Start, err = userDate(attrs.StartedAt); err != nil {
		return err
	}
	if e.End, err = userDate(attrs.FinishedAt); err != nil {
		return err
	}
	return nil
}

// ratingTwenty encodes a 0-10 score; 0 clears the rating.
func ratingTwenty(score int) any {
	if score == 0 {
		return nil
	}
	return score * 2
}
