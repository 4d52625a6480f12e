package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"us short with time", "11/14/25 9:30:00", time.Date(2025, 11, 14, 9, 30, 0, 0, time.UTC)},
		{"us long", "11/14/2025", time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"iso datetime", "2025-11-14 09:30:00", time.Date(2025, 11, 14, 9, 30, 0, 0, time.UTC)},
		{"iso date", "2025-11-14", time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"long form", "November 14, 2025", time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			require.NotNil(t, got, "ParseDate(%q)", tt.raw)
			assert.True(t, tt.want.Equal(*got), "ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		})
	}
}

func TestParseDateAbsent(t *testing.T) {
	for _, raw := range []string{"", "N/A", "next month", "TBD"} {
		assert.Nil(t, ParseDate(raw), "ParseDate(%q)", raw)
	}
}
