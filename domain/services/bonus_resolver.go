package services

import (
	"sort"
	"strings"
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/interfaces"
)

// memberSeparator joins the names of members whose birthday bonuses stack
const memberSeparator = " + "

// bonusResolver implements interfaces.BonusResolver on top of the package level functions
type bonusResolver struct{}

// NewBonusResolver creates a bonus resolver
func NewBonusResolver() interfaces.BonusResolver {
	return bonusResolver{}
}

func (bonusResolver) Resolve(records []entities.BonusRecord, day time.Time) []entities.EffectiveBonus {
	return Resolve(records, day)
}

func (bonusResolver) ActiveOn(records []entities.BonusRecord, day time.Time) []entities.EffectiveBonus {
	return ActiveOn(records, day)
}

func (bonusResolver) ActiveBetween(records []entities.BonusRecord, from, to time.Time) []entities.EffectiveBonus {
	return ActiveBetween(records, from, to)
}

// Resolve returns the effective bonuses of one artist that start or end on day.
// records must all belong to the same artist. The result is never nil.
func Resolve(records []entities.BonusRecord, day time.Time) []entities.EffectiveBonus {
	return resolveDay(records, entities.Day(day), true)
}

// ActiveOn returns every effective bonus of one artist in force on day
func ActiveOn(records []entities.BonusRecord, day time.Time) []entities.EffectiveBonus {
	return resolveDay(records, entities.Day(day), false)
}

// ActiveBetween returns every distinct effective bonus in force on at least one day of [from, to],
// ordered by effective start
func ActiveBetween(records []entities.BonusRecord, from, to time.Time) []entities.EffectiveBonus {
	from, to = entities.Day(from), entities.Day(to)
	result := make([]entities.EffectiveBonus, 0)
	if len(records) == 0 || from.After(to) {
		return result
	}

	seen := make(map[string]struct{})
	for day := from; !day.After(to); day = entities.AddDays(day, 1) {
		for _, bonus := range resolveDay(records, day, false) {
			key := bonus.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, bonus)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EffectiveStart.Before(result[j].EffectiveStart)
	})
	return result
}

// birthdayBounds are the nearest birthday window edges around a day, across all birthday records.
// A nil field means no record qualifies.
type birthdayBounds struct {
	lastStart *time.Time // latest start before the day
	lastEnd   *time.Time // day after the latest end before the day
	nextStart *time.Time // day before the earliest start after the day
	nextEnd   *time.Time // earliest end after the day
}

// birthdayGroup is the combined window of every birthday bonus active on a day
type birthdayGroup struct {
	members string
	amount  int
	start   time.Time
	end     time.Time
}

func resolveDay(records []entities.BonusRecord, day time.Time, transitionsOnly bool) []entities.EffectiveBonus {
	result := make([]entities.EffectiveBonus, 0)
	if len(records) == 0 {
		return result
	}

	var birthdays, albums []entities.BonusRecord
	for _, record := range records {
		if !record.Contains(day) {
			continue
		}
		if record.IsBirthday() {
			birthdays = append(birthdays, record)
		} else {
			albums = append(albums, record)
		}
	}

	seen := make(map[string]struct{})
	emit := func(bonus entities.EffectiveBonus) {
		if transitionsOnly && !bonus.StartsOn(day) && !bonus.EndsOn(day) {
			return
		}
		key := bonus.Key()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		result = append(result, bonus)
	}

	var group *birthdayGroup
	if len(birthdays) > 0 {
		group = combineBirthdays(birthdays, scanBirthdayBounds(records, day))
		emit(entities.NewBirthdayBonus(birthdays[0].ArtistName, group.members, group.start, group.end, group.amount))
	}

	for _, album := range albums {
		start := entities.Day(album.BonusStart)
		end := entities.Day(album.BonusEnd)
		amount := album.BonusAmount
		if group != nil {
			start = latest(start, &group.start)
			end = earliest(end, &group.end)
			amount += group.amount
		}
		emit(entities.NewSongBonus(album.ArtistName, album.SongName, start, end, amount))
	}

	return result
}

func scanBirthdayBounds(records []entities.BonusRecord, day time.Time) birthdayBounds {
	var bounds birthdayBounds
	for _, record := range records {
		if !record.IsBirthday() {
			continue
		}
		start := entities.Day(record.BonusStart)
		end := entities.Day(record.BonusEnd)

		if start.Before(day) && (bounds.lastStart == nil || start.After(*bounds.lastStart)) {
			bounds.lastStart = &start
		}
		if end.Before(day) {
			freed := entities.AddDays(end, 1)
			if bounds.lastEnd == nil || freed.After(*bounds.lastEnd) {
				bounds.lastEnd = &freed
			}
		}
		if start.After(day) {
			cutoff := entities.AddDays(start, -1)
			if bounds.nextStart == nil || cutoff.Before(*bounds.nextStart) {
				bounds.nextStart = &cutoff
			}
		}
		if end.After(day) && (bounds.nextEnd == nil || end.Before(*bounds.nextEnd)) {
			bounds.nextEnd = &end
		}
	}
	return bounds
}

// combineBirthdays stacks the active birthday bonuses. The window is the narrowest overlap of the
// active records, clamped so it never reaches into a neighbouring birthday period.
func combineBirthdays(active []entities.BonusRecord, bounds birthdayBounds) *birthdayGroup {
	group := &birthdayGroup{
		start: entities.Day(active[0].BonusStart),
		end:   entities.Day(active[0].BonusEnd),
	}

	var members []string
	seenMembers := make(map[string]struct{})
	for _, record := range active {
		group.amount += record.BonusAmount
		group.start = latest(group.start, ptr(entities.Day(record.BonusStart)))
		group.end = earliest(group.end, ptr(entities.Day(record.BonusEnd)))

		if _, ok := seenMembers[record.MemberName]; !ok {
			seenMembers[record.MemberName] = struct{}{}
			members = append(members, record.MemberName)
		}
	}
	group.members = strings.Join(members, memberSeparator)

	group.start = latest(group.start, bounds.lastEnd, bounds.lastStart)
	group.end = earliest(group.end, bounds.nextEnd, bounds.nextStart)

	return group
}

// latest returns the maximum of base and the non-nil candidates
func latest(base time.Time, candidates ...*time.Time) time.Time {
	for _, c := range candidates {
		if c != nil && c.After(base) {
			base = *c
		}
	}
	return base
}

// earliest returns the minimum of base and the non-nil candidates
func earliest(base time.Time, candidates ...*time.Time) time.Time {
	for _, c := range candidates {
		if c != nil && c.Before(base) {
			base = *c
		}
	}
	return base
}

func ptr(t time.Time) *time.Time {
	return &t
}
