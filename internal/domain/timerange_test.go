package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func rng(h1, m1, h2, m2 int) TimeRange {
	return TimeRange{Start: at(h1, m1), End: at(h2, m2)}
}

func TestNewTimeRange(t *testing.T) {
	r, err := NewTimeRange(at(9, 0), at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, r.Duration())

	_, err = NewTimeRange(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange(at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNewTimeRange_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	r, err := NewTimeRange(time.Date(2025, 10, 15, 9, 0, 0, 0, loc), time.Date(2025, 10, 15, 10, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, r.Start.Location())
	assert.Equal(t, at(6, 0), r.Start)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"touching end to start", rng(9, 0, 10, 0), rng(10, 0, 11, 0), false},
		{"touching start to end", rng(10, 0, 11, 0), rng(9, 0, 10, 0), false},
		{"overlap by one minute", rng(9, 0, 10, 1), rng(10, 0, 11, 0), true},
		{"contained", rng(9, 0, 12, 0), rng(10, 0, 11, 0), true},
		{"identical", rng(14, 0, 15, 0), rng(14, 0, 15, 0), true},
		{"disjoint", rng(9, 0, 10, 0), rng(11, 0, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestTimeRange_Subtract(t *testing.T) {
	base := rng(9, 0, 18, 0)

	tests := []struct {
		name string
		x    TimeRange
		want []TimeRange
	}{
		{"middle splits in two", rng(12, 0, 13, 0), []TimeRange{rng(9, 0, 12, 0), rng(13, 0, 18, 0)}},
		{"cut head", rng(8, 0, 10, 0), []TimeRange{rng(10, 0, 18, 0)}},
		{"cut tail", rng(17, 0, 19, 0), []TimeRange{rng(9, 0, 17, 0)}},
		{"cover all", rng(8, 0, 19, 0), []TimeRange{}},
		{"exact match", rng(9, 0, 18, 0), []TimeRange{}},
		{"disjoint keeps base", rng(19, 0, 20, 0), []TimeRange{base}},
		{"touching keeps base", rng(18, 0, 19, 0), []TimeRange{base}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Subtract(tt.x))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	assert.True(t, rng(9, 0, 18, 0).Contains(rng(9, 0, 18, 0)))
	assert.True(t, rng(9, 0, 18, 0).Contains(rng(10, 0, 11, 0)))
	assert.False(t, rng(9, 0, 18, 0).Contains(rng(17, 30, 18, 30)))
}
