package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBonusRecord_Validate(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  BonusRecord
		wantErr error
	}{
		{
			name:   "valid birthday record",
			record: BonusRecord{ArtistName: "X", MemberName: "Y", BonusStart: jan1, BonusEnd: jan3, BonusAmount: 10},
		},
		{
			name:   "single day window",
			record: BonusRecord{ArtistName: "X", SongName: "Z", BonusStart: jan1, BonusEnd: jan1, BonusAmount: 5},
		},
		{
			name:    "missing artist",
			record:  BonusRecord{MemberName: "Y", BonusStart: jan1, BonusEnd: jan3, BonusAmount: 10},
			wantErr: ErrMissingArtist,
		},
		{
			name:    "zero amount",
			record:  BonusRecord{ArtistName: "X", BonusStart: jan1, BonusEnd: jan3},
			wantErr: ErrInvalidBonusAmount,
		},
		{
			name:    "start after end",
			record:  BonusRecord{ArtistName: "X", BonusStart: jan3, BonusEnd: jan1, BonusAmount: 10},
			wantErr: ErrInvalidBonusWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.record.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestBonusRecord_Contains(t *testing.T) {
	t.Parallel()

	record := BonusRecord{
		BonusStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BonusEnd:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, record.Contains(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, record.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, record.Contains(time.Date(2024, 1, 3, 22, 0, 0, 0, time.UTC)))
	assert.False(t, record.Contains(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)))
}

func TestBonusRecord_IsBirthday(t *testing.T) {
	t.Parallel()

	assert.True(t, BonusRecord{MemberName: "Y"}.IsBirthday())
	assert.False(t, BonusRecord{SongName: "Z"}.IsBirthday())
}
