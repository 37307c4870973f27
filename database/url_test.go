package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{
			name:     "no database name returns base unchanged",
			baseURL:  "postgres://u:p@host:5432/existing",
			expected: "postgres://u:p@host:5432/existing",
		},
		{
			name:     "appends name and sslmode",
			baseURL:  "postgres://u:p@host:5432",
			dbName:   "bonusbot",
			expected: "postgres://u:p@host:5432/bonusbot?sslmode=disable",
		},
		{
			name:     "trailing slash trimmed",
			baseURL:  "postgres://u:p@host:5432/",
			dbName:   "bonusbot",
			expected: "postgres://u:p@host:5432/bonusbot?sslmode=disable",
		},
		{
			name:     "existing query kept",
			baseURL:  "postgres://u:p@host:5432?connect_timeout=5",
			dbName:   "bonusbot",
			expected: "postgres://u:p@host:5432/bonusbot?connect_timeout=5&sslmode=disable",
		},
		{
			name:     "explicit sslmode respected",
			baseURL:  "postgres://u:p@host:5432?sslmode=require",
			dbName:   "bonusbot",
			expected: "postgres://u:p@host:5432/bonusbot?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
