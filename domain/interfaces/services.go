package interfaces

import (
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/events"
)

// BonusResolver derives effective bonus windows from an artist's raw bonus records
type BonusResolver interface {
	// Resolve returns the bonuses that start or end on day
	Resolve(records []entities.BonusRecord, day time.Time) []entities.EffectiveBonus

	// ActiveOn returns every bonus in force on day
	ActiveOn(records []entities.BonusRecord, day time.Time) []entities.EffectiveBonus

	// ActiveBetween returns every distinct bonus in force on any day of [from, to]
	ActiveBetween(records []entities.BonusRecord, from, to time.Time) []entities.EffectiveBonus
}

// EventPublisher publishes domain events to whatever transport is configured
type EventPublisher interface {
	Publish(event events.Event) error
}
