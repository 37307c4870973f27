package application

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

func birthday(artist, member, start, end string, amount int) entities.BonusRecord {
	return entities.BonusRecord{
		ArtistName:  artist,
		MemberName:  member,
		BonusStart:  day(start),
		BonusEnd:    day(end),
		BonusAmount: amount,
	}
}

func album(artist, song, start, end string, amount int) entities.BonusRecord {
	return entities.BonusRecord{
		ArtistName:  artist,
		SongName:    song,
		AlbumName:   "Album",
		BonusStart:  day(start),
		BonusEnd:    day(end),
		BonusAmount: amount,
	}
}
