package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailyRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before today's slot",
			now:  time.Date(2025, 6, 5, 7, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "after today's slot rolls to tomorrow",
			now:  time.Date(2025, 6, 5, 9, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at the slot rolls to tomorrow",
			now:  time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDailyRun(tt.now, 9, 0))
		})
	}
}

func TestNextMonthlyRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "earlier in the month",
			now:  time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "after this month's slot rolls over",
			now:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into january",
			now:  time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonthlyRun(tt.now, 1, 8, 0))
		})
	}
}
