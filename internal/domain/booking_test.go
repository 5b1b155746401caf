package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusCanceled, StatusCanceled, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_Occupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.False(t, StatusCanceled.Occupies())
	assert.False(t, BookingStatus("unknown").Occupies())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("no_show")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBooking_Occupied(t *testing.T) {
	b := Booking{Range: rng(10, 0, 11, 0), BufferMinutes: 15, Status: StatusConfirmed}

	assert.Equal(t, rng(10, 0, 11, 15), b.Occupied())
	assert.True(t, b.IsActive())
}

func TestDaySchedule_Validate(t *testing.T) {
	open := types.MustTimeString("09:00")
	closeAt := types.MustTimeString("18:00")

	assert.NoError(t, DaySchedule{}.Validate())
	assert.NoError(t, DaySchedule{Open: &open, Close: &closeAt}.Validate())
	assert.ErrorIs(t, DaySchedule{Open: &open}.Validate(), ErrInvalidWorkingHours)
	assert.ErrorIs(t, DaySchedule{Open: &closeAt, Close: &open}.Validate(), ErrInvalidWorkingHours)
	assert.ErrorIs(t, DaySchedule{Open: &open, Close: &open}.Validate(), ErrInvalidWorkingHours)
}

func TestResource_Location(t *testing.T) {
	r := Resource{Timezone: "Nowhere/City"}
	_, err := r.Location()
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)

	r = Resource{}
	loc, err := r.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, DefaultSlotIntervalMinutes, r.SlotInterval())
}

func TestServiceSpec_Validate(t *testing.T) {
	assert.NoError(t, ServiceSpec{DurationMinutes: 60}.Validate())
	assert.ErrorIs(t, ServiceSpec{DurationMinutes: 0}.Validate(), ErrInvalidServiceSpec)
	assert.ErrorIs(t, ServiceSpec{DurationMinutes: 30, BufferMinutes: -5}.Validate(), ErrInvalidServiceSpec)
	assert.Equal(t, 105, ServiceSpec{DurationMinutes: 90, BufferMinutes: 15}.OccupiedMinutes())
}
