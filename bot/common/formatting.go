package common

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bonusbot/domain/entities"
)

// MaxMessageLength is Discord's limit on message content
const MaxMessageLength = 2000

// FormatBonusDate formats a calendar day the way bonus lines show it, e.g. "Jan 5"
func FormatBonusDate(day time.Time) string {
	return day.Format("Jan 2")
}

// FormatBonusLine renders one effective bonus as "{label} {amount}% | {start} - {end}"
func FormatBonusLine(bonus entities.EffectiveBonus) string {
	return fmt.Sprintf("%s %d%% | %s - %s",
		bonus.Label(),
		bonus.EffectiveAmount,
		FormatBonusDate(bonus.EffectiveStart),
		FormatBonusDate(bonus.EffectiveEnd),
	)
}

// FormatAnnouncement renders an artist's transitions for day as plain text.
// A single-day bonus is listed under both headings.
func FormatAnnouncement(artist string, day time.Time, starting, ending []entities.EffectiveBonus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s bonuses for %s", artist, day.Format(entities.DateLayout))

	writeSection := func(title string, bonuses []entities.EffectiveBonus) {
		if len(bonuses) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:", title)
		for _, bonus := range bonuses {
			b.WriteString("\n")
			b.WriteString(FormatBonusLine(bonus))
		}
	}

	writeSection("Starting", starting)
	writeSection("Ending", ending)
	return b.String()
}

// SplitMessage breaks content on line boundaries into chunks of at most limit characters.
// A single line longer than limit is hard-cut on a rune boundary.
func SplitMessage(content string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(content) <= limit {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}

		extra := len(runes)
		if currentLen > 0 {
			extra++
		}
		if currentLen+extra > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteString("\n")
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += len(runes)
	}
	flush()

	return chunks
}
