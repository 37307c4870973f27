package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWriteTransitions(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bonuses  []entities.EffectiveBonus
		expected string
	}{
		{
			name:     "quiet day",
			expected: "No bonus transitions for ARTIST on 2024-01-05\n",
		},
		{
			name: "start and end",
			bonuses: []entities.EffectiveBonus{
				entities.NewBirthdayBonus("ARTIST", "A", day.AddDate(0, 0, -4), day, 20),
				entities.NewBirthdayBonus("ARTIST", "A + B", day, day.AddDate(0, 0, 1), 30),
			},
			expected: "ARTIST bonuses for 2024-01-05\nStarting:\nA + B 30% | Jan 5 - Jan 6\nEnding:\nA 20% | Jan 1 - Jan 5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, writeTransitions(&buf, "ARTIST", day, tt.bonuses))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestResolve_InvalidDay(t *testing.T) {
	t.Parallel()

	err := Resolve(t.Context(), "ARTIST", "05/01/2024", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestList_InvalidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		from, to    string
		errContains string
	}{
		{"bad start", "2024/01/05", "", "YYYY-MM-DD"},
		{"bad end", "2024-01-05", "tomorrow", "YYYY-MM-DD"},
		{"end before start", "2024-01-05", "2024-01-04", "before start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := List(t.Context(), "ARTIST", tt.from, tt.to, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestActiveBonuses(t *testing.T) {
	t.Parallel()

	jan := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	records := []entities.BonusRecord{
		{ArtistName: "ARTIST", MemberName: "A", BonusStart: jan(1), BonusEnd: jan(5), BonusAmount: 20},
		{ArtistName: "ARTIST", MemberName: "B", BonusStart: jan(10), BonusEnd: jan(12), BonusAmount: 20},
	}

	single := activeBonuses(records, jan(3), jan(3))
	require.Len(t, single, 1)
	assert.Equal(t, "A", single[0].Label())

	ranged := activeBonuses(records, jan(4), jan(11))
	require.Len(t, ranged, 2)
	assert.Equal(t, "A", ranged[0].Label())
	assert.Equal(t, "B", ranged[1].Label())

	assert.Empty(t, activeBonuses(records, jan(6), jan(9)))
}

func TestWriteActiveBonuses(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	bonus := entities.NewBirthdayBonus("ARTIST", "A", day.AddDate(0, 0, -4), day, 20)

	tests := []struct {
		name     string
		to       time.Time
		bonuses  []entities.EffectiveBonus
		expected string
	}{
		{"nothing active", day, nil, "No active bonuses for ARTIST on 2024-01-05\n"},
		{"single day", day, []entities.EffectiveBonus{bonus}, "ARTIST active bonuses on 2024-01-05\nA 20% | Jan 1 - Jan 5\n"},
		{"range", day.AddDate(0, 0, 2), []entities.EffectiveBonus{bonus}, "ARTIST active bonuses on 2024-01-05 to 2024-01-07\nA 20% | Jan 1 - Jan 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, writeActiveBonuses(&buf, "ARTIST", day, tt.to, tt.bonuses))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestLoadArtistRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("returns records", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockBonusRecordRepository)
		records := []entities.BonusRecord{{ArtistName: "ARTIST", MemberName: "A", BonusStart: day, BonusEnd: day, BonusAmount: 20}}
		repo.On("ListByArtist", ctx, "ARTIST").Return(records, nil)

		got, err := loadArtistRecords(ctx, repo, "ARTIST")
		require.NoError(t, err)
		assert.Equal(t, records, got)
		repo.AssertNotCalled(t, "ListArtists", mock.Anything)
	})

	t.Run("unknown artist names the known ones", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockBonusRecordRepository)
		repo.On("ListByArtist", ctx, "NOBODY").Return([]entities.BonusRecord{}, nil)
		repo.On("ListArtists", ctx).Return([]string{"ARTIST", "OTHER"}, nil)

		_, err := loadArtistRecords(ctx, repo, "NOBODY")
		require.ErrorIs(t, err, errUnknownArtist)
		assert.Contains(t, err.Error(), "known artists: ARTIST, OTHER")
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockBonusRecordRepository)
		repo.On("ListByArtist", ctx, "NOBODY").Return(nil, nil)
		repo.On("ListArtists", ctx).Return(nil, nil)

		_, err := loadArtistRecords(ctx, repo, "NOBODY")
		require.ErrorIs(t, err, errUnknownArtist)
		assert.Contains(t, err.Error(), "nothing has been imported")
	})
}

func TestSetArtistTimezone_InvalidZone(t *testing.T) {
	t.Parallel()

	err := SetArtistTimezone(t.Context(), "ARTIST", "Mars/Olympus", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid timezone "Mars/Olympus"`)
}

func TestShowArtist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	tests := []struct {
		name        string
		artist      *entities.Artist
		lookupErr   error
		expected    string
		errContains string
	}{
		{"own zone", &entities.Artist{Name: "ARTIST", Timezone: "Asia/Tokyo"}, nil, "ARTIST timezone: Asia/Tokyo\n", ""},
		{"default zone", &entities.Artist{Name: "ARTIST"}, nil, "ARTIST timezone: Asia/Seoul (default)\n", ""},
		{"missing", nil, nil, "", "artist ARTIST not found"},
		{"lookup failure", nil, errors.New("connection reset"), "", "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := new(testhelpers.MockArtistRepository)
			if tt.artist != nil {
				repo.On("GetByName", ctx, "ARTIST").Return(tt.artist, tt.lookupErr)
			} else {
				repo.On("GetByName", ctx, "ARTIST").Return(nil, tt.lookupErr)
			}

			var buf bytes.Buffer
			err := showArtist(ctx, repo, "ARTIST", seoul, &buf)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}
