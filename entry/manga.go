package entry

import "fmt"

// MangaType is the publication format of a manga.
type MangaType int

const (
	MangaKind MangaType = iota
	Novel
	OneShot
	Doujinshi
	Manhwa
	Manhua
	Comic
)

var mangaTypeNames = [...]string{"Manga", "Novel", "One-shot", "Doujinshi", "Manhwa", "Manhua", "Comic"}

func (t MangaType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("manga type(%d)", int(t))
	}
	return mangaTypeNames[t]
}

// Valid reports whether t is a declared manga type.
func (t MangaType) Valid() bool {
	return t >= 0 && int(t) < len(mangaTypeNames)
}

// PublishingStatus is the running status of a manga.
type PublishingStatus int

const (
	Publishing PublishingStatus = iota
	FinishedPublishing
	NotYetPublished
)

var publishingStatusNames = [...]string{"publishing", "finished", "not yet published"}

func (s PublishingStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("publishing status(%d)", int(s))
	}
	return publishingStatusNames[s]
}

// Valid reports whether s is a declared publishing status.
func (s PublishingStatus) Valid() bool {
	return s >= 0 && int(s) < len(publishingStatusNames)
}

// Manga is one manga title with the user's progress.
type Manga struct {
	Entry

	Chapters       int
	Volumes        int
	CurrentChapter int
	CurrentVolume  int
	MangaType      MangaType
	RunningStatus  PublishingStatus
}

// NewManga returns a manga that is not in the list.
func NewManga(id int, provider string) *Manga {
	return &Manga{Entry: newEntry(id, provider)}
}

// Replace copies catalog and user fields from other, keeping m's address.
func (m *Manga) Replace(other *Manga) error {
	if other == nil {
		return m.checkIdentity(nil)
	}
	if err := m.checkIdentity(&other.Entry); err != nil {
		return err
	}
	if m == other {
		return nil
	}
	*m = *other
	m.copyFrom(&other.Entry)
	return nil
}

// Progress is the current chapter.
func (m *Manga) Progress() int { return m.CurrentChapter }

// Total is the known chapter count.
func (m *Manga) Total() int { return m.Chapters }
