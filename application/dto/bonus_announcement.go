package dto

import (
	"time"

	"bonusbot/domain/entities"
)

// BonusAnnouncementDTO carries one artist's transitions for a local calendar day
type BonusAnnouncementDTO struct {
	Artist   string
	Day      time.Time
	Timezone string
	Bonuses  []entities.EffectiveBonus
}

// Starting returns the bonuses that begin on Day
func (d BonusAnnouncementDTO) Starting() []entities.EffectiveBonus {
	var out []entities.EffectiveBonus
	for _, b := range d.Bonuses {
		if b.StartsOn(d.Day) {
			out = append(out, b)
		}
	}
	return out
}

// Ending returns the bonuses that finish on Day
func (d BonusAnnouncementDTO) Ending() []entities.EffectiveBonus {
	var out []entities.EffectiveBonus
	for _, b := range d.Bonuses {
		if b.EndsOn(d.Day) {
			out = append(out, b)
		}
	}
	return out
}
