package application

import (
	"context"

	"bonusbot/application/dto"
	"bonusbot/domain/entities"
)

// BonusAnnouncer delivers a day's bonus transitions downstream.
// The application layer stays unaware of the Discord API behind it.
type BonusAnnouncer interface {
	Announce(ctx context.Context, announcement dto.BonusAnnouncementDTO) error
}

// BonusSource loads every stored bonus record
type BonusSource interface {
	ListAll(ctx context.Context) ([]entities.BonusRecord, error)
}

// RosterReader is the read side of the roster cache
type RosterReader interface {
	Artists() []string
	Get(artist string) []entities.BonusRecord
}
