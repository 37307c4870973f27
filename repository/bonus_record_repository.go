package repository

import (
	"context"
	"fmt"
	"time"

	"bonusbot/database"
	"bonusbot/domain/entities"
	"bonusbot/domain/interfaces"
	"bonusbot/infrastructure/observability"

	"github.com/jackc/pgx/v5"
)

const bonusRecordColumns = `
	id, artist_name, member_name, song_name, album_name,
	duration_seconds, bonus_start, bonus_end, bonus_amount, created_at`

// BonusRecordRepository implements interfaces.BonusRecordRepository on Postgres
type BonusRecordRepository struct {
	db *database.DB
}

// NewBonusRecordRepository creates a new bonus record repository
func NewBonusRecordRepository(db *database.DB) *BonusRecordRepository {
	return &BonusRecordRepository{db: db}
}

var _ interfaces.BonusRecordRepository = (*BonusRecordRepository)(nil)

// bonusRecordDB mirrors a bonus_records row
type bonusRecordDB struct {
	ID              int64
	ArtistName      string
	MemberName      string
	SongName        string
	AlbumName       string
	DurationSeconds int
	BonusStart      time.Time
	BonusEnd        time.Time
	BonusAmount     int
	CreatedAt       time.Time
}

func (r *bonusRecordDB) toDomain() entities.BonusRecord {
	return entities.BonusRecord{
		ID:          r.ID,
		ArtistName:  r.ArtistName,
		MemberName:  r.MemberName,
		SongName:    r.SongName,
		AlbumName:   r.AlbumName,
		Duration:    time.Duration(r.DurationSeconds) * time.Second,
		BonusStart:  entities.Day(r.BonusStart),
		BonusEnd:    entities.Day(r.BonusEnd),
		BonusAmount: r.BonusAmount,
		CreatedAt:   r.CreatedAt,
	}
}

// ListByArtist returns an artist's records ordered by bonus start
func (r *BonusRecordRepository) ListByArtist(ctx context.Context, artist string) ([]entities.BonusRecord, error) {
	query := `SELECT ` + bonusRecordColumns + `
		FROM bonus_records
		WHERE artist_name = $1
		ORDER BY bonus_start, id`

	var records []entities.BonusRecord
	err := observability.MeasureDatabaseQuery(ctx, "bonus_records.list_by_artist", func() error {
		var err error
		records, err = queryBonusRecords(ctx, r.db.Pool, query, artist)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus records for %s: %w", artist, err)
	}
	return records, nil
}

// ListAll returns every record ordered by artist then bonus start
func (r *BonusRecordRepository) ListAll(ctx context.Context) ([]entities.BonusRecord, error) {
	query := `SELECT ` + bonusRecordColumns + `
		FROM bonus_records
		ORDER BY artist_name, bonus_start, id`

	var records []entities.BonusRecord
	err := observability.MeasureDatabaseQuery(ctx, "bonus_records.list_all", func() error {
		var err error
		records, err = queryBonusRecords(ctx, r.db.Pool, query)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus records: %w", err)
	}
	return records, nil
}

// ListArtists returns the distinct artist names that have records
func (r *BonusRecordRepository) ListArtists(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT artist_name FROM bonus_records ORDER BY artist_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	artists, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan artists: %w", err)
	}
	return artists, nil
}

// ReplaceForArtist swaps all of an artist's records for records in one transaction.
// The artist row is created when missing so imports work against an empty database.
func (r *BonusRecordRepository) ReplaceForArtist(ctx context.Context, artist string, records []entities.BonusRecord) error {
	for i := range records {
		if records[i].ArtistName != artist {
			return fmt.Errorf("record %d belongs to %q, not %q", i, records[i].ArtistName, artist)
		}
		if err := records[i].Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO artists (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, artist)
		if err != nil {
			return fmt.Errorf("failed to ensure artist %s: %w", artist, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM bonus_records WHERE artist_name = $1`, artist); err != nil {
			return fmt.Errorf("failed to clear bonus records for %s: %w", artist, err)
		}

		if len(records) == 0 {
			return nil
		}

		rows := make([][]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, []any{
				rec.ArtistName,
				rec.MemberName,
				rec.SongName,
				rec.AlbumName,
				int(rec.Duration / time.Second),
				entities.Day(rec.BonusStart),
				entities.Day(rec.BonusEnd),
				rec.BonusAmount,
			})
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"bonus_records"},
			[]string{"artist_name", "member_name", "song_name", "album_name",
				"duration_seconds", "bonus_start", "bonus_end", "bonus_amount"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bonus records for %s: %w", artist, err)
		}
		return nil
	})
}

func queryBonusRecords(ctx context.Context, q Queryable, query string, args ...any) ([]entities.BonusRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entities.BonusRecord, 0)
	for rows.Next() {
		var row bonusRecordDB
		if err := rows.Scan(
			&row.ID,
			&row.ArtistName,
			&row.MemberName,
			&row.SongName,
			&row.AlbumName,
			&row.DurationSeconds,
			&row.BonusStart,
			&row.BonusEnd,
			&row.BonusAmount,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bonus record: %w", err)
		}
		records = append(records, row.toDomain())
	}

	return records, rows.Err()
}
