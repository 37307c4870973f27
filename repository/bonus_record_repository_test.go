package repository

import (
	"context"
	"testing"

	"bonusbot/domain/entities"
	"bonusbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonusRecordRepository_ReplaceAndList(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBonusRecordRepository(testDB.DB)
	ctx := context.Background()

	initial := []entities.BonusRecord{
		testutil.BirthdayRecord("ARTIST", "B", "2024-01-05", "2024-01-06", 10),
		testutil.BirthdayRecord("ARTIST", "A", "2024-01-01", "2024-01-10", 20),
		testutil.AlbumRecord("ARTIST", "Debut", "Intro", "2024-01-03", "2024-01-04", 5),
	}
	require.NoError(t, repo.ReplaceForArtist(ctx, "ARTIST", initial))
	require.NoError(t, repo.ReplaceForArtist(ctx, "OTHER", []entities.BonusRecord{
		testutil.BirthdayRecord("OTHER", "Z", "2024-02-01", "2024-02-01", 15),
	}))

	records, err := repo.ListByArtist(ctx, "ARTIST")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "A", records[0].MemberName)
	assert.Equal(t, "Intro", records[1].SongName)
	assert.Equal(t, "B", records[2].MemberName)
	assert.Equal(t, initial[2].Duration, records[1].Duration)
	assert.True(t, records[0].BonusStart.Equal(initial[1].BonusStart))
	assert.True(t, records[0].BonusEnd.Equal(initial[1].BonusEnd))
	for _, rec := range records {
		assert.NotZero(t, rec.ID)
		assert.NoError(t, rec.Validate())
	}

	artists, err := repo.ListArtists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ARTIST", "OTHER"}, artists)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "OTHER", all[3].ArtistName)

	// Replacing swaps the full set
	require.NoError(t, repo.ReplaceForArtist(ctx, "ARTIST", []entities.BonusRecord{
		testutil.BirthdayRecord("ARTIST", "C", "2024-03-01", "2024-03-02", 30),
	}))
	records, err = repo.ListByArtist(ctx, "ARTIST")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "C", records[0].MemberName)

	// Empty set clears the artist's records
	require.NoError(t, repo.ReplaceForArtist(ctx, "ARTIST", nil))
	records, err = repo.ListByArtist(ctx, "ARTIST")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBonusRecordRepository_ReplaceRejectsInvalid(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBonusRecordRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceForArtist(ctx, "ARTIST", []entities.BonusRecord{
		testutil.BirthdayRecord("ARTIST", "A", "2024-01-01", "2024-01-02", 10),
	}))

	tests := []struct {
		name    string
		records []entities.BonusRecord
		wantErr error
	}{
		{
			name:    "inverted window",
			records: []entities.BonusRecord{testutil.BirthdayRecord("ARTIST", "A", "2024-01-05", "2024-01-01", 10)},
			wantErr: entities.ErrInvalidBonusWindow,
		},
		{
			name:    "zero amount",
			records: []entities.BonusRecord{testutil.BirthdayRecord("ARTIST", "A", "2024-01-01", "2024-01-02", 0)},
			wantErr: entities.ErrInvalidBonusAmount,
		},
		{
			name:    "foreign artist",
			records: []entities.BonusRecord{testutil.BirthdayRecord("OTHER", "A", "2024-01-01", "2024-01-02", 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.ReplaceForArtist(ctx, "ARTIST", tt.records)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	// Rejected replacements leave the stored set untouched
	records, err := repo.ListByArtist(ctx, "ARTIST")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 10, records[0].BonusAmount)
}
