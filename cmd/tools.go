package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"bonusbot/application"
	"bonusbot/bot/common"
	"bonusbot/config"
	"bonusbot/database"
	"bonusbot/domain/entities"
	"bonusbot/domain/interfaces"
	"bonusbot/domain/services"
	"bonusbot/repository"
)

// Import loads a CSV export from path and replaces artist's stored records
func Import(ctx context.Context, artist, path string) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	count, err := application.ImportBonusCSV(ctx, repository.NewBonusRecordRepository(db), file, artist, cfg.ImportDateFormat)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d bonus records for %s\n", count, artist)
	return nil
}

// Resolve prints the transitions artist has on the given day
func Resolve(ctx context.Context, artist, dayArg string, out io.Writer) error {
	day, err := entities.ParseDay(entities.DateLayout, dayArg)
	if err != nil {
		return fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", dayArg, err)
	}

	cfg := config.Get()
	ConfigureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	records, err := loadArtistRecords(ctx, repository.NewBonusRecordRepository(db), artist)
	if err != nil {
		return err
	}

	return writeTransitions(out, artist, day, services.Resolve(records, day))
}

func writeTransitions(out io.Writer, artist string, day time.Time, bonuses []entities.EffectiveBonus) error {
	if len(bonuses) == 0 {
		_, err := fmt.Fprintf(out, "No bonus transitions for %s on %s\n", artist, day.Format(entities.DateLayout))
		return err
	}

	var starting, ending []entities.EffectiveBonus
	for _, b := range bonuses {
		if b.StartsOn(day) {
			starting = append(starting, b)
		}
		if b.EndsOn(day) {
			ending = append(ending, b)
		}
	}

	_, err := fmt.Fprintln(out, common.FormatAnnouncement(artist, day, starting, ending))
	return err
}

// List prints the bonuses artist has in force on fromArg, or on any day from fromArg to toArg
// when toArg is set
func List(ctx context.Context, artist, fromArg, toArg string, out io.Writer) error {
	from, to, err := parseDayRange(fromArg, toArg)
	if err != nil {
		return err
	}

	cfg := config.Get()
	ConfigureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	records, err := loadArtistRecords(ctx, repository.NewBonusRecordRepository(db), artist)
	if err != nil {
		return err
	}

	return writeActiveBonuses(out, artist, from, to, activeBonuses(records, from, to))
}

// SetArtistTimezone stores the IANA zone artist's day rolls over in.
// An empty zone prints the current setting instead.
func SetArtistTimezone(ctx context.Context, name, zone string, out io.Writer) error {
	artist := &entities.Artist{Name: name, Timezone: zone}
	if _, err := artist.Location(nil); err != nil {
		return err
	}

	cfg := config.Get()
	ConfigureLogging(cfg)

	defaultLoc, err := cfg.DefaultLocation()
	if err != nil {
		return err
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	artists := repository.NewArtistRepository(db)
	if zone != "" {
		if err := artists.Upsert(ctx, artist); err != nil {
			return err
		}
	}

	return showArtist(ctx, artists, name, defaultLoc, out)
}

var errUnknownArtist = errors.New("no bonus records for artist")

// loadArtistRecords returns artist's records, naming the known artists when there are none
func loadArtistRecords(ctx context.Context, repo interfaces.BonusRecordRepository, artist string) ([]entities.BonusRecord, error) {
	records, err := repo.ListByArtist(ctx, artist)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}

	known, err := repo.ListArtists(ctx)
	if err != nil {
		return nil, err
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("%w %s, nothing has been imported yet", errUnknownArtist, artist)
	}
	return nil, fmt.Errorf("%w %s, known artists: %s", errUnknownArtist, artist, strings.Join(known, ", "))
}

func parseDayRange(fromArg, toArg string) (time.Time, time.Time, error) {
	from, err := entities.ParseDay(entities.DateLayout, fromArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", fromArg, err)
	}
	if toArg == "" {
		return from, from, nil
	}

	to, err := entities.ParseDay(entities.DateLayout, toArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", toArg, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end %s is before start %s", toArg, fromArg)
	}
	return from, to, nil
}

func activeBonuses(records []entities.BonusRecord, from, to time.Time) []entities.EffectiveBonus {
	if from.Equal(to) {
		return services.ActiveOn(records, from)
	}
	return services.ActiveBetween(records, from, to)
}

func writeActiveBonuses(out io.Writer, artist string, from, to time.Time, bonuses []entities.EffectiveBonus) error {
	period := from.Format(entities.DateLayout)
	if !from.Equal(to) {
		period += " to " + to.Format(entities.DateLayout)
	}

	if len(bonuses) == 0 {
		_, err := fmt.Fprintf(out, "No active bonuses for %s on %s\n", artist, period)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s active bonuses on %s", artist, period)
	for _, bonus := range bonuses {
		b.WriteString("\n")
		b.WriteString(common.FormatBonusLine(bonus))
	}

	_, err := fmt.Fprintln(out, b.String())
	return err
}

func showArtist(ctx context.Context, artists interfaces.ArtistRepository, name string, defaultLoc *time.Location, out io.Writer) error {
	artist, err := artists.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if artist == nil {
		return fmt.Errorf("artist %s not found", name)
	}

	loc, err := artist.Location(defaultLoc)
	if err != nil {
		return err
	}
	if artist.Timezone == "" {
		_, err = fmt.Fprintf(out, "%s timezone: %s (default)\n", artist.Name, loc)
		return err
	}
	_, err = fmt.Fprintf(out, "%s timezone: %s\n", artist.Name, loc)
	return err
}
