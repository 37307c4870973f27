package interfaces

import (
	"context"
	"time"

	"bonusbot/domain/entities"
)

// BonusRecordRepository defines the interface for bonus record data access
type BonusRecordRepository interface {
	// ListByArtist returns an artist's records ordered by bonus start
	ListByArtist(ctx context.Context, artist string) ([]entities.BonusRecord, error)

	// ListAll returns every record ordered by artist then bonus start
	ListAll(ctx context.Context) ([]entities.BonusRecord, error)

	// ListArtists returns the distinct artist names that have records
	ListArtists(ctx context.Context) ([]string, error)

	// ReplaceForArtist swaps all of an artist's records for the given set
	ReplaceForArtist(ctx context.Context, artist string, records []entities.BonusRecord) error
}

// ArtistRepository defines the interface for artist settings
type ArtistRepository interface {
	GetByName(ctx context.Context, name string) (*entities.Artist, error)
	List(ctx context.Context) ([]*entities.Artist, error)
	Upsert(ctx context.Context, artist *entities.Artist) error
}

// NotificationLogRepository records which artist days have been announced
type NotificationLogRepository interface {
	// MarkSent records the announcement and returns false if it was already recorded
	MarkSent(ctx context.Context, artist string, day time.Time) (bool, error)
}
