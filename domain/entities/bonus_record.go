package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingArtist      = errors.New("bonus record has no artist")
	ErrInvalidBonusAmount = errors.New("bonus amount must be positive")
	ErrInvalidBonusWindow = errors.New("bonus start is after bonus end")
)

// BonusRecord is one raw bonus row for an artist.
// A record with a member name is a birthday bonus that applies to every song of the artist;
// a record without one is an album bonus that applies to a single song.
type BonusRecord struct {
	ID          int64         `db:"id"`
	ArtistName  string        `db:"artist_name"`
	MemberName  string        `db:"member_name"`
	SongName    string        `db:"song_name"`
	AlbumName   string        `db:"album_name"`
	Duration    time.Duration `db:"duration_seconds"`
	BonusStart  time.Time     `db:"bonus_start"` // inclusive
	BonusEnd    time.Time     `db:"bonus_end"`   // inclusive
	BonusAmount int           `db:"bonus_amount"`
	CreatedAt   time.Time     `db:"created_at"`
}

// IsBirthday reports whether the record is a member-wide birthday bonus
func (r BonusRecord) IsBirthday() bool {
	return r.MemberName != ""
}

// Contains reports whether day lies within the record's inclusive bonus window
func (r BonusRecord) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(Day(r.BonusStart)) && !day.After(Day(r.BonusEnd))
}

// Validate checks the invariants the resolver relies on
func (r BonusRecord) Validate() error {
	if r.ArtistName == "" {
		return ErrMissingArtist
	}
	if r.BonusAmount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBonusAmount, r.BonusAmount)
	}
	if Day(r.BonusStart).After(Day(r.BonusEnd)) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidBonusWindow,
			r.BonusStart.Format(DateLayout), r.BonusEnd.Format(DateLayout))
	}
	return nil
}
