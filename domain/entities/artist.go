package entities

import (
	"fmt"
	"time"
	_ "time/tzdata" // artist zones must resolve on hosts without zoneinfo
)

// Artist holds per-artist settings used when resolving bonuses
type Artist struct {
	Name      string    `db:"name"`
	Timezone  string    `db:"timezone"` // IANA zone the artist's game rolls over in
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Location loads the artist's timezone, falling back to fallback when unset
func (a *Artist) Location(fallback *time.Location) (*time.Location, error) {
	if a == nil || a.Timezone == "" {
		if fallback == nil {
			return time.UTC, nil
		}
		return fallback, nil
	}

	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q for artist %s: %w", a.Timezone, a.Name, err)
	}
	return loc, nil
}
