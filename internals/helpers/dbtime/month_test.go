package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBillingMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid month",
			in:   time.Date(2025, 3, 17, 14, 5, 9, 0, time.UTC),
			want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already first day",
			in:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC input normalizes to UTC",
			in:   time.Date(2025, 12, 31, 23, 0, 0, 0, time.FixedZone("ICT", 7*3600)),
			want: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(NormalizeBillingMonth(tt.in)))
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	got := EndOfMonth(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	// 2024 is a leap year.
	assert.Equal(t, 29, got.Day())
	assert.Equal(t, time.February, got.Month())

	got = EndOfMonth(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 30, got.Day())
}

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before due", due.AddDate(0, 0, -1), 0},
		{"exactly due", due, 0},
		{"same day later", due.Add(6 * time.Hour), 0},
		{"three days past", due.AddDate(0, 0, 3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysOverdue(due, tt.now))
		})
	}
}
