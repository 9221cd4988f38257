package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00+02:00", time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00.123456", time.Date(2024, 3, 15, 10, 30, 0, 123456000, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{" 1990-07-01 ", time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"07/01/1990", time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTimestamp(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "yesterday", "2024-13-45", "15.03.2024"} {
		_, err := ParseTimestamp(raw)
		assert.Error(t, err, raw)
	}
}
