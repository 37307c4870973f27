package entities

import (
	"fmt"
	"time"
)

// EffectiveBonus is a derived bonus window for one artist.
// Exactly one of Members or Song is set: Members for birthday-only bonuses,
// Song for a song bonus combined with any concurrent birthday bonus.
type EffectiveBonus struct {
	Artist          string    `json:"artist"`
	Members         *string   `json:"members,omitempty"`
	Song            *string   `json:"song,omitempty"`
	EffectiveStart  time.Time `json:"effective_start"`
	EffectiveEnd    time.Time `json:"effective_end"`
	EffectiveAmount int       `json:"effective_amount"`
}

// NewBirthdayBonus builds a birthday-type effective bonus
func NewBirthdayBonus(artist, members string, start, end time.Time, amount int) EffectiveBonus {
	return EffectiveBonus{
		Artist:          artist,
		Members:         &members,
		EffectiveStart:  Day(start),
		EffectiveEnd:    Day(end),
		EffectiveAmount: amount,
	}
}

// NewSongBonus builds a song-type effective bonus
func NewSongBonus(artist, song string, start, end time.Time, amount int) EffectiveBonus {
	return EffectiveBonus{
		Artist:          artist,
		Song:            &song,
		EffectiveStart:  Day(start),
		EffectiveEnd:    Day(end),
		EffectiveAmount: amount,
	}
}

// IsBirthday reports whether this is a birthday-type bonus
func (b EffectiveBonus) IsBirthday() bool {
	return b.Members != nil
}

// Label returns the member list for birthday bonuses or the song name for song bonuses
func (b EffectiveBonus) Label() string {
	if b.Members != nil {
		return *b.Members
	}
	if b.Song != nil {
		return *b.Song
	}
	return ""
}

// StartsOn reports whether day is the first day of the bonus
func (b EffectiveBonus) StartsOn(day time.Time) bool {
	return Day(day).Equal(b.EffectiveStart)
}

// EndsOn reports whether day is the last day of the bonus
func (b EffectiveBonus) EndsOn(day time.Time) bool {
	return Day(day).Equal(b.EffectiveEnd)
}

// Key identifies a bonus by value, used for de-duplication
func (b EffectiveBonus) Key() string {
	kind := "song"
	if b.IsBirthday() {
		kind = "birthday"
	}
	return fmt.Sprintf("%q|%s|%q|%s|%s|%d", b.Artist, kind, b.Label(),
		b.EffectiveStart.Format(DateLayout), b.EffectiveEnd.Format(DateLayout), b.EffectiveAmount)
}
