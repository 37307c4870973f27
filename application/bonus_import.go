package application

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bonusbot/domain/entities"
	"bonusbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

var requiredImportColumns = []string{"start", "end", "amount"}

// ParseBonusCSV reads a bonus export with a header row naming the columns
// member, song, album, duration, start, end and amount (any order, case-insensitive).
// Blank rows are skipped. Dates are parsed with dateLayout.
func ParseBonusCSV(r io.Reader, artist, dateLayout string) ([]entities.BonusRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("bonus export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredImportColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("bonus export is missing the %q column", name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []entities.BonusRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read bonus export: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		record, err := parseImportRow(artist, dateLayout, func(name string) string { return field(row, name) })
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseImportRow(artist, dateLayout string, field func(string) string) (entities.BonusRecord, error) {
	start, err := entities.ParseDay(dateLayout, field("start"))
	if err != nil {
		return entities.BonusRecord{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := entities.ParseDay(dateLayout, field("end"))
	if err != nil {
		return entities.BonusRecord{}, fmt.Errorf("invalid end date: %w", err)
	}
	amount, err := entities.ParseBonusAmount(field("amount"))
	if err != nil {
		return entities.BonusRecord{}, err
	}
	duration, err := entities.ParseSongDuration(field("duration"))
	if err != nil {
		return entities.BonusRecord{}, err
	}

	record := entities.BonusRecord{
		ArtistName:  artist,
		MemberName:  field("member"),
		SongName:    field("song"),
		AlbumName:   field("album"),
		Duration:    duration,
		BonusStart:  start,
		BonusEnd:    end,
		BonusAmount: amount,
	}
	if !record.IsBirthday() && record.SongName == "" {
		return entities.BonusRecord{}, fmt.Errorf("row has neither a member nor a song")
	}
	if err := record.Validate(); err != nil {
		return entities.BonusRecord{}, err
	}
	return record, nil
}

// ImportBonusCSV parses an export and replaces the artist's stored records with it
func ImportBonusCSV(ctx context.Context, repo interfaces.BonusRecordRepository, r io.Reader, artist, dateLayout string) (int, error) {
	if artist == "" {
		return 0, entities.ErrMissingArtist
	}

	records, err := ParseBonusCSV(r, artist, dateLayout)
	if err != nil {
		return 0, err
	}

	if err := repo.ReplaceForArtist(ctx, artist, records); err != nil {
		return 0, fmt.Errorf("failed to store bonus records: %w", err)
	}

	log.WithFields(log.Fields{
		"artist":  artist,
		"records": len(records),
	}).Info("Imported bonus records")
	return len(records), nil
}
