package mq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffFor(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{0, 2 * time.Second}, // clamped
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BackoffFor(tt.attempt), "attempt %d", tt.attempt)
	}
}
