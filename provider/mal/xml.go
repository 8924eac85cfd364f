package mal

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/util"
	"golang.org/x/net/html/charset"
)

const (
	kindAnime = "anime"
	kindManga = "manga"
)

// The legacy export and the list endpoints share the numeric encoding of the generic statuses.
var statuses = provider.StatusTable(ID,
	provider.P(entry.NotInList, 0),
	provider.P(entry.Current, 1),
	provider.P(entry.Completed, 2),
	provider.P(entry.OnHold, 3),
	provider.P(entry.Dropped, 4),
	provider.P(entry.Planned, 6),
)

var exportShowTypes = provider.NewTable(ID, "series type",
	provider.P(entry.Tv, 1),
	provider.P(entry.Ova, 2),
	provider.P(entry.Movie, 3),
	provider.P(entry.Special, 4),
	provider.P(entry.Ona, 5),
	provider.P(entry.Music, 6),
).Total(entry.Tv, entry.Movie, entry.Ova, entry.Ona, entry.Special, entry.Music)

var searchShowTypes = provider.NewTable(ID, "anime type",
	provider.P(entry.Tv, "TV"),
	provider.P(entry.Ova, "OVA"),
	provider.P(entry.Movie, "Movie"),
	provider.P(entry.Special, "Special"),
	provider.P(entry.Ona, "ONA"),
	provider.P(entry.Music, "Music"),
).Total(entry.Tv, entry.Movie, entry.Ova, entry.Ona, entry.Special, entry.Music)

var exportMangaTypes = provider.NewTable(ID, "series type",
	provider.P(entry.MangaKind, 1),
	provider.P(entry.Novel, 2),
	provider.P(entry.OneShot, 3),
	provider.P(entry.Doujinshi, 4),
	provider.P(entry.Manhwa, 5),
	provider.P(entry.Manhua, 6),
	provider.P(entry.Comic, 7),
)

var searchMangaTypes = provider.NewTable(ID, "manga type",
	provider.P(entry.MangaKind, "Manga"),
	provider.P(entry.Novel, "Novel"),
	provider.P(entry.OneShot, "One-shot"),
	provider.P(entry.Doujinshi, "Doujinshi"),
	provider.P(entry.Manhwa, "Manhwa"),
	provider.P(entry.Manhua, "Manhua"),
	provider.P(entry.Comic, "OEL"),
)

var exportAiringStatuses = provider.NewTable(ID, "series status",
	provider.P(entry.Airing, 1),
	provider.P(entry.FinishedAiring, 2),
	provider.P(entry.NotYetAired, 3),
)

var searchAiringStatuses = provider.NewTable(ID, "anime status",
	provider.P(entry.Airing, "Currently Airing"),
	provider.P(entry.FinishedAiring, "Finished Airing"),
	provider.P(entry.NotYetAired, "Not yet aired"),
)

var exportPublishingStatuses = provider.NewTable(ID, "series status",
	provider.P(entry.Publishing, 1),
	provider.P(entry.FinishedPublishing, 2),
	provider.P(entry.NotYetPublished, 3),
)

var searchPublishingStatuses = provider.NewTable(ID, "manga status",
	provider.P(entry.Publishing, "Publishing"),
	provider.P(entry.FinishedPublishing, "Finished"),
	provider.P(entry.NotYetPublished, "Not yet published"),
)

type verifiedUser struct {
	ID       int    `xml:"id"`
	Username string `xml:"username"`
}

// row is the part of a legacy export row shared by anime and manga.
type row struct {
	Title    string `xml:"series_title"`
	Synonyms string `xml:"series_synonyms"`
	Type     int    `xml:"series_type"`
	Status   int    `xml:"series_status"`
	Start    string `xml:"series_start"`
	End      string `xml:"series_end"`
	Image    string `xml:"series_image"`
	MyStart  string `xml:"my_start_date"`
	MyFinish string `xml:"my_finish_date"`
	MyScore  int    `xml:"my_score"`
	MyStatus int    `xml:"my_status"`
	MyTags   string `xml:"my_tags"`
}

type animeRow struct {
	ID int `xml:"series_animedb_id"`
	row
	Episodes int `xml:"series_episodes"`
	Watched  int `xml:"my_watched_episodes"`
}

type mangaRow struct {
	ID int `xml:"series_mangadb_id"`
	row
	Chapters     int `xml:"series_chapters"`
	Volumes      int `xml:"series_volumes"`
	ReadChapters int `xml:"my_read_chapters"`
	ReadVolumes  int `xml:"my_read_volumes"`
}

type export struct {
	XMLName xml.Name   `xml:"myanimelist"`
	Error   string     `xml:"error"`
	Anime   []animeRow `xml:"anime"`
	Manga   []mangaRow `xml:"manga"`
}

// result is one search hit.
type result struct {
	ID        int     `xml:"id"`
	Title     string  `xml:"title"`
	English   string  `xml:"english"`
	Synonyms  string  `xml:"synonyms"`
	Episodes  int     `xml:"episodes"`
	Chapters  int     `xml:"chapters"`
	Volumes   int     `xml:"volumes"`
	Score     float64 `xml:"score"`
	Type      string  `xml:"type"`
	Status    string  `xml:"status"`
	StartDate string  `xml:"start_date"`
	EndDate   string  `xml:"end_date"`
	Synopsis  string  `xml:"synopsis"`
	Image     string  `xml:"image"`
}

type results struct {
	Entries []result `xml:"entry"`
}

// listEntry is the data document sent to the list endpoints.
type listEntry struct {
	XMLName    xml.Name `xml:"entry"`
	Episode    *int     `xml:"episode,omitempty"`
	Chapter    *int     `xml:"chapter,omitempty"`
	Volume     *int     `xml:"volume,omitempty"`
	Status     int      `xml:"status"`
	Score      int      `xml:"score"`
	DateStart  string   `xml:"date_start"`
	DateFinish string   `xml:"date_finish"`
	Tags       string   `xml:"tags"`
}

func decodeXML(raw []byte, out any) error {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	if err := decoder.Decode(out); err != nil {
		return fault.Wrap(fault.Protocol, ID, err, "decode xml")
	}
	return nil
}

func encodeXML(e listEntry) (string, error) {
	raw, err := xml.Marshal(e)
	if err != nil {
		return "", fault.Wrap(fault.Validation, ID, err, "encode entry")
	}
	return xml.Header + string(raw), nil
}

// parseDate reads YYYY-MM-DD where month and day may be 00. All zeros is unset.
func parseDate(value string) (entry.Date, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, "-")
	if value == "" || parts[0] == "0000" {
		return entry.Unset, nil
	}
	if len(parts) != 3 {
		return entry.Unset, fault.New(fault.Protocol, ID, "malformed date %q", value)
	}

	var numbers [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return entry.Unset, fault.New(fault.Protocol, ID, "malformed date %q", value)
		}
		numbers[i] = n
	}

	return entry.Date{Year: numbers[0], Month: numbers[1], Day: numbers[2]}, nil
}

// formatDate writes the MMDDYYYY form the list endpoints take; unset is all zeros.
func formatDate(d entry.Date) string {
	if !d.IsSet() {
		return "00000000"
	}
	return fmt.Sprintf("%02d%02d%04d", d.Month, d.Day, d.Year)
}

func splitSynonyms(value string) []string {
	var synonyms []string
	for _, s := range strings.Split(value, ";") {
		if s = strings.TrimSpace(s); s != "" {
			synonyms = append(synonyms, s)
		}
	}
	return synonyms
}

func (r *row) fill(e *entry.Entry) error {
	status, err := statuses.Generic(r.MyStatus)
	if err != nil {
		return err
	}
	if err := e.SetUserScore(r.MyScore); err != nil {
		return fault.New(fault.Protocol, ID, "score %d is out of range", r.MyScore)
	}

	e.Title = r.Title
	e.AddSynonyms(splitSynonyms(r.Synonyms)...)
	e.ImageURL = r.Image
	e.Status = status
	e.Notes = r.MyTags

	if e.Start, err = parseDate(r.MyStart); err != nil {
		return err
	}
	if e.End, err = parseDate(r.MyFinish); err != nil {
		return err
	}
	return nil
}

func (r *animeRow) anime() (*entry.Anime, error) {
	anime := entry.NewAnime(r.ID, ID)
	if err := r.fill(&anime.Entry); err != nil {
		return nil, err
	}

	var err error
	anime.Episodes = r.Episodes
	anime.CurrentEpisode = r.Watched
	if anime.ShowType, err = exportShowTypes.Generic(r.Type); err != nil {
		return nil, err
	}
	if anime.RunningStatus, err = exportAiringStatuses.Generic(r.Status); err != nil {
		return nil, err
	}
	if anime.StartDate, err = parseDate(r.Start); err != nil {
		return nil, err
	}
	if anime.EndDate, err = parseDate(r.End); err != nil {
		return nil, err
	}
	return anime, nil
}

func (r *mangaRow) manga() (*entry.Manga, error) {
	manga := entry.NewManga(r.ID, ID)
	if err := r.fill(&manga.Entry); err != nil {
		return nil, err
	}

	var err error
	manga.Chapters = r.Chapters
	manga.Volumes = r.Volumes
	manga.CurrentChapter = r.ReadChapters
	manga.CurrentVolume = r.ReadVolumes
	if manga.MangaType, err = exportMangaTypes.Generic(r.Type); err != nil {
		return nil, err
	}
	if manga.RunningStatus, err = exportPublishingStatuses.Generic(r.Status); err != nil {
		return nil, err
	}
	return manga, nil
}

func (r *result) fill(e *entry.Entry) {
	e.Title = r.Title
	e.EnglishTitle = r.English
	e.AddSynonyms(splitSynonyms(r.Synonyms)...)
	e.Synopsis = util.StripHTML(r.Synopsis)
	e.ImageURL = r.Image
	e.PublicScore = r.Score
}

func (r *result) anime() (*entry.Anime, error) {
	anime := entry.NewAnime(r.ID, ID)
	r.fill(&anime.Entry)

	var err error
	anime.Episodes = r.Episodes
	if anime.ShowType, err = searchShowTypes.Generic(r.Type); err != nil {
		return nil, err
	}
	if anime.RunningStatus, err = searchAiringStatuses.Generic(r.Status); err != nil {
		return nil, err
	}
	if anime.StartDate, err = parseDate(r.StartDate); err != nil {
		return nil, err
	}
	if anime.EndDate, err = parseDate(r.EndDate); err != nil {
		return nil, err
	}
	return anime, nil
}

func (r *result) manga() (*entry.Manga, error) {
	manga := entry.NewManga(r.ID, ID)
	r.fill(&manga.Entry)

	var err error
	manga.Chapters = r.Chapters
	manga.Volumes = r.Volumes
	if manga.MangaType, err = searchMangaTypes.Generic(r.Type); err != nil {
		return nil, err
	}
	if manga.RunningStatus, err = searchPublishingStatuses.Generic(r.Status); err != nil {
		return nil, err
	}
	return manga, nil
}
