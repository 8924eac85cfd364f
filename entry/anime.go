package entry

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ShowType is the broadcast format of an anime.
type ShowType int

const (
	Tv ShowType = iota
	Movie
	Ova
	Ona
	Special
	Music
)

var showTypeNames = [...]string{"TV", "Movie", "OVA", "ONA", "Special", "Music"}

func (t ShowType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("show type(%d)", int(t))
	}
	return showTypeNames[t]
}

// Valid reports whether t is a declared show type.
func (t ShowType) Valid() bool {
	return t >= 0 && int(t) < len(showTypeNames)
}

// AiringStatus is the running status of an anime.
type AiringStatus int

const (
	Airing AiringStatus = iota
	FinishedAiring
	NotYetAired
)

var airingStatusNames = [...]string{"airing", "finished airing", "not yet aired"}

func (s AiringStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("airing status(%d)", int(s))
	}
	return airingStatusNames[s]
}

// Valid reports whether s is a declared airing status.
func (s AiringStatus) Valid() bool {
	return s >= 0 && int(s) < len(airingStatusNames)
}

// Anime is one anime title with the user's progress.
type Anime struct {
	Entry

	// Episodes is the total episode count, 0 when unknown.
	Episodes       int
	CurrentEpisode int
	ShowType       ShowType
	RunningStatus  AiringStatus
	StartDate      Date
	EndDate        Date
	// Airing maps episode numbers to their broadcast time, when the provider knows them.
	Airing map[int]time.Time
}

// NewAnime returns an anime that is not in the list.
func NewAnime(id int, provider string) *Anime {
	return &Anime{Entry: newEntry(id, provider)}
}

// Replace copies catalog and user fields from other, keeping a's address.
func (a *Anime) Replace(other *Anime) error {
	if other == nil {
		return a.checkIdentity(nil)
	}
	if err := a.checkIdentity(&other.Entry); err != nil {
		return err
	}
	if a == other {
		return nil
	}
	*a = *other
	a.copyFrom(&other.Entry)
	if other.Airing != nil {
		a.Airing = lo.Assign(other.Airing)
	}
	return nil
}

// AiredAt returns the broadcast time of episode if known.
func (a *Anime) AiredAt(episode int) mo.Option[time.Time] {
	if t, ok := a.Airing[episode]; ok {
		return mo.Some(t)
	}
	return mo.None[time.Time]()
}

// Progress is the current episode.
func (a *Anime) Progress() int { return a.CurrentEpisode }

// Total is the known episode count.
func (a *Anime) Total() int { return a.Episodes }
