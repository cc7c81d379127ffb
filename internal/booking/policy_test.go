package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdmit(t *testing.T) {
	tests := []struct {
		name         string
		maxAttendees int
		currentCount int
		want         bool
	}{
		{"empty event", 10, 0, true},
		{"one seat left", 10, 9, true},
		{"exactly full", 10, 10, false},
		{"capacity one, empty", 1, 0, true},
		{"capacity one, full", 1, 1, false},
		{"count past capacity", 10, 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdmit(tt.maxAttendees, tt.currentCount))
		})
	}
}
