package entry

import (
	"encoding/json"
	"time"

	"github.com/anisan-cli/anisync/fault"
)

// record is the serialized form of Entry, used by the list cache files.
type record struct {
	ID            int      `json:"id"`
	Provider      string   `json:"provider"`
	Title         string   `json:"title"`
	EnglishTitle  string   `json:"english_title,omitempty"`
	JapaneseTitle string   `json:"japanese_title,omitempty"`
	Synonyms      []string `json:"synonyms,omitempty"`
	Synopsis      string   `json:"synopsis,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	PublicScore   float64  `json:"public_score"`
	Status        Status   `json:"status"`
	UserScore     int      `json:"user_score"`
	Start         Date     `json:"user_start"`
	End           Date     `json:"user_end"`
	Notes         string   `json:"notes,omitempty"`
}

func (e *Entry) record() record {
	return record{
		ID:            e.id,
		Provider:      e.provider,
		Title:         e.Title,
		EnglishTitle:  e.EnglishTitle,
		JapaneseTitle: e.JapaneseTitle,
		Synonyms:      e.synonyms,
		Synopsis:      e.Synopsis,
		ImageURL:      e.ImageURL,
		PublicScore:   e.PublicScore,
		Status:        e.Status,
		UserScore:     e.score,
		Start:         e.Start,
		End:           e.End,
		Notes:         e.Notes,
	}
}

func (r record) entry() (Entry, error) {
	if !r.Status.Valid() {
		return Entry{}, fault.New(fault.Validation, r.Provider, "entry %d has unknown status %d", r.ID, int(r.Status))
	}
	e := Entry{
		id:            r.ID,
		provider:      r.Provider,
		Title:         r.Title,
		EnglishTitle:  r.EnglishTitle,
		JapaneseTitle: r.JapaneseTitle,
		synonyms:      r.Synonyms,
		Synopsis:      r.Synopsis,
		ImageURL:      r.ImageURL,
		PublicScore:   r.PublicScore,
		Status:        r.Status,
		Start:         r.Start,
		End:           r.End,
		Notes:         r.Notes,
	}
	return e, e.SetUserScore(r.UserScore)
}

type animeRecord struct {
	record
	Episodes       int               `json:"episodes"`
	CurrentEpisode int               `json:"current_episode"`
	ShowType       ShowType          `json:"show_type"`
	RunningStatus  AiringStatus      `json:"running_status"`
	StartDate      Date              `json:"start_date"`
	EndDate        Date              `json:"end_date"`
	Airing         map[int]time.Time `json:"airing,omitempty"`
}

// MarshalJSON writes every catalog and user field.
func (a *Anime) MarshalJSON() ([]byte, error) {
	return json.Marshal(animeRecord{
		record:         a.Entry.record(),
		Episodes:       a.Episodes,
		CurrentEpisode: a.CurrentEpisode,
		ShowType:       a.ShowType,
		RunningStatus:  a.RunningStatus,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		Airing:         a.Airing,
	})
}

// UnmarshalJSON restores an anime written by MarshalJSON.
func (a *Anime) UnmarshalJSON(data []byte) error {
	var r animeRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	base, err := r.record.entry()
	if err != nil {
		return err
	}
	if !r.ShowType.Valid() || !r.RunningStatus.Valid() {
		return fault.New(fault.Validation, r.Provider, "anime %d has unknown show type %d or airing status %d", r.ID, int(r.ShowType), int(r.RunningStatus))
	}
	*a = Anime{
		Entry:          base,
		Episodes:       r.Episodes,
		CurrentEpisode: r.CurrentEpisode,
		ShowType:       r.ShowType,
		RunningStatus:  r.RunningStatus,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Airing:         r.Airing,
	}
	return nil
}

type mangaRecord struct {
	record
	Chapters       int              `json:"chapters"`
	Volumes        int              `json:"volumes"`
	CurrentChapter int              `json:"current_chapter"`
	CurrentVolume  int              `json:"current_volume"`
	MangaType      MangaType        `json:"manga_type"`
	RunningStatus  PublishingStatus `json:"running_status"`
}

// MarshalJSON writes every catalog and user field.
func (m *Manga) MarshalJSON() ([]byte, error) {
	return json.Marshal(mangaRecord{
		record:         m.Entry.record(),
		Chapters:       m.Chapters,
		Volumes:        m.Volumes,
		CurrentChapter: m.CurrentChapter,
		CurrentVolume:  m.CurrentVolume,
		MangaType:      m.MangaType,
		RunningStatus:  m.RunningStatus,
	})
}

// UnmarshalJSON restores a manga written by MarshalJSON.
func (m *Manga) UnmarshalJSON(data []byte) error {
	var r mangaRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	base, err := r.record.entry()
	if err != nil {
		return err
	}
	if !r.MangaType.Valid() || !r.RunningStatus.Valid() {
		return fault.New(fault.Validation, r.Provider, "manga %d has unknown manga type %d or publishing status %d", r.ID, int(r.MangaType), int(r.RunningStatus))
	}
	*m = Manga{
		Entry:          base,
		Chapters:       r.Chapters,
		Volumes:        r.Volumes,
		CurrentChapter: r.CurrentChapter,
		CurrentVolume:  r.CurrentVolume,
		MangaType:      r.MangaType,
		RunningStatus:  r.RunningStatus,
	}
	return nil
}
