package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		published time.Time
		want      string
	}{
		{"zero", time.Time{}, "N/A"},
		{"seconds", now.Add(-30 * time.Second), "Just now"},
		{"just under an hour", now.Add(-59 * time.Minute), "Just now"},
		{"future", now.Add(2 * time.Hour), "Just now"},
		{"one hour", now.Add(-time.Hour), "1h ago"},
		{"23 hours", now.Add(-23*time.Hour - 59*time.Minute), "23h ago"},
		{"one day", now.Add(-24 * time.Hour), "1d ago"},
		{"47 hours", now.Add(-47 * time.Hour), "1d ago"},
		{"two days", now.Add(-48 * time.Hour), "2d ago"},
		{"ten days", now.Add(-240 * time.Hour), "10d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeAgo(tt.published, now))
		})
	}
}
