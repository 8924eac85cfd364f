// Package entry defines the normalized list entry shared by every provider adapter:
// immutable catalog facts plus the signed-in user's mutable list facts.
package entry

import (
	"github.com/anisan-cli/anisync/fault"
	"github.com/samber/lo"
)

// MaxScore is the upper bound of a user score.
const MaxScore = 10

// Key identifies an entry. Two entries are the same title iff their keys are equal.
type Key struct {
	ID       int
	Provider string
}

// Entry holds the facts common to anime and manga.
type Entry struct {
	id       int
	provider string

	Title         string
	EnglishTitle  string
	JapaneseTitle string
	synonyms      []string
	Synopsis      string
	ImageURL      string
	// PublicScore is the community score on a 0-10 scale.
	PublicScore float64

	Status Status
	score  int
	Start  Date
	End    Date
	Notes  string
}

func newEntry(id int, provider string) Entry {
	return Entry{id: id, provider: provider}
}

// ID is the provider-scoped identifier.
func (e *Entry) ID() int { return e.id }

// Provider is the tag of the provider the id belongs to.
func (e *Entry) Provider() string { return e.provider }

// Key returns the identity of the entry.
func (e *Entry) Key() Key { return Key{ID: e.id, Provider: e.provider} }

// Base exposes the shared part of an anime or manga.
func (e *Entry) Base() *Entry { return e }

// Same reports whether e and other denote the same title. User fields never matter.
func (e *Entry) Same(other *Entry) bool {
	return other != nil && e.Key() == other.Key()
}

// UserScore returns the user's score, 0 meaning unscored.
func (e *Entry) UserScore() int { return e.score }

// SetUserScore sets the user's score. Values outside [0, MaxScore] fail and leave the score unchanged.
func (e *Entry) SetUserScore(score int) error {
	if score < 0 || score > MaxScore {
		return fault.New(fault.Validation, e.provider, "score %d is out of range [0, %d]", score, MaxScore)
	}
	e.score = score
	return nil
}

// Synonyms returns the alternative titles in insertion order.
func (e *Entry) Synonyms() []string {
	return append([]string(nil), e.synonyms...)
}

// AddSynonyms appends titles that are neither empty nor already present.
func (e *Entry) AddSynonyms(titles ...string) {
	for _, title := range titles {
		if title == "" || lo.Contains(e.synonyms, title) {
			continue
		}
		e.synonyms = append(e.synonyms, title)
	}
}

// Titles returns every known title, main title first.
func (e *Entry) Titles() []string {
	titles := []string{e.Title, e.EnglishTitle, e.JapaneseTitle}
	titles = append(titles, e.synonyms...)
	return lo.Uniq(lo.Compact(titles))
}

// DisplayTitle prefers the English title.
func (e *Entry) DisplayTitle() string {
	if e.EnglishTitle != "" {
		return e.EnglishTitle
	}
	return e.Title
}

func (e *Entry) checkIdentity(other *Entry) error {
	if other == nil {
		return fault.New(fault.Validation, e.provider, "cannot replace entry %d with nothing", e.id)
	}
	if e.Key() != other.Key() {
		return fault.New(fault.Validation, e.provider,
			"identity mismatch: %s/%d cannot be replaced by %s/%d", e.provider, e.id, other.provider, other.id)
	}
	return nil
}

func (e *Entry) copyFrom(other *Entry) {
	*e = *other
	e.synonyms = append([]string(nil), other.synonyms...)
}
