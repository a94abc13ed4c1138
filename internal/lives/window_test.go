package lives

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestIsAccepting(t *testing.T) {
	now := *ts("2026-09-10T12:00:00Z")

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"no window set", nil, nil, true},
		{"inside window", ts("2026-09-01T00:00:00Z"), ts("2026-09-20T00:00:00Z"), true},
		{"before start", ts("2026-09-15T00:00:00Z"), nil, false},
		{"after end", nil, ts("2026-09-05T00:00:00Z"), false},
		{"only start, passed", ts("2026-09-01T00:00:00Z"), nil, true},
		{"only end, not reached", nil, ts("2026-09-20T00:00:00Z"), true},
		{"at exact start", ts("2026-09-10T12:00:00Z"), nil, true},
		{"at exact end", nil, ts("2026-09-10T12:00:00Z"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := Live{AcceptStart: tt.start, AcceptEnd: tt.end}
			assert.Equal(t, tt.want, live.IsAccepting(now))
		})
	}
}

func TestIsUpcoming(t *testing.T) {
	now := *ts("2026-09-10T23:30:00Z")

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"future show", "2026-09-20T19:00:00Z", true},
		{"show earlier today still counts", "2026-09-10T08:00:00Z", true},
		{"yesterday", "2026-09-09T19:00:00Z", false},
		{"last year", "2025-09-10T19:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := Live{Date: *ts(tt.date)}
			assert.Equal(t, tt.want, live.IsUpcoming(now))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := *ts("2026-09-10T06:00:00Z")

	tests := []struct {
		name string
		date string
		want int
	}{
		{"same day regardless of hour", "2026-09-10T23:00:00Z", 0},
		{"tomorrow", "2026-09-11T01:00:00Z", 1},
		{"ten days out", "2026-09-20T19:00:00Z", 10},
		{"past show is negative", "2026-09-08T19:00:00Z", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := Live{Date: *ts(tt.date)}
			assert.Equal(t, tt.want, live.DaysUntil(now))
		})
	}
}
