package testutil

import (
	"time"

	"bonusbot/domain/entities"
)

func day(s string) time.Time {
	d, err := entities.ParseDay(entities.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// BirthdayRecord builds a member birthday record for tests
func BirthdayRecord(artist, member, start, end string, amount int) entities.BonusRecord {
	return entities.BonusRecord{
		ArtistName:  artist,
		MemberName:  member,
		BonusStart:  day(start),
		BonusEnd:    day(end),
		BonusAmount: amount,
	}
}

// AlbumRecord builds a single-song album record for tests
func AlbumRecord(artist, album, song, start, end string, amount int) entities.BonusRecord {
	return entities.BonusRecord{
		ArtistName:  artist,
		AlbumName:   album,
		SongName:    song,
		Duration:    3*time.Minute + 30*time.Second,
		BonusStart:  day(start),
		BonusEnd:    day(end),
		BonusAmount: amount,
	}
}
