package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		want  Instant
	}{
		{"valid date and time", "2024-07-01", "14:30", InstantOf(time.Date(2024, 7, 1, 14, 30, 0, 0, time.Local))},
		{"midnight", "2024-02-29", "00:00", InstantOf(time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local))},
		{"date with extra component", "2024-07-01-14", "14:30", InvalidInstant},
		{"time with wrong separator", "2024-07-01", "14-30", InvalidInstant},
		{"empty date", "", "14:30", InvalidInstant},
		{"empty time", "2024-07-01", "", InvalidInstant},
		{"date with slashes", "2024/07/01", "14:30", InvalidInstant},
		{"time with seconds", "2024-07-01", "14:30:00", InvalidInstant},
		{"hour out of range", "2024-07-01", "25:00", InvalidInstant},
		{"month out of range", "2024-13-01", "10:00", InvalidInstant},
		{"day not in month", "2023-02-29", "10:00", InvalidInstant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInstant(tt.date, tt.clock)
			assert.Equal(t, tt.want.Valid(), got.Valid())
			if tt.want.Valid() {
				assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInstant_InvalidNeverOrders(t *testing.T) {
	valid := InstantOf(time.Date(2024, 7, 1, 14, 30, 0, 0, time.Local))

	for _, other := range []Instant{valid, InvalidInstant} {
		assert.False(t, InvalidInstant.Before(other))
		assert.False(t, InvalidInstant.After(other))
		assert.False(t, InvalidInstant.Equal(other))
		assert.False(t, other.Before(InvalidInstant))
		assert.False(t, other.After(InvalidInstant))
		assert.False(t, other.Equal(InvalidInstant))
	}
	assert.False(t, InvalidInstant.Add(time.Hour).Valid())
	assert.True(t, InvalidInstant.Time().IsZero())
	assert.Equal(t, "Invalid Date", InvalidInstant.String())
}

func TestInstant_Ordering(t *testing.T) {
	early := ParseInstant("2024-07-01", "09:00")
	late := ParseInstant("2024-07-01", "10:00")

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.True(t, early.Add(time.Hour).Equal(late))
	assert.Equal(t, "2024-07-01 09:00", early.String())
}

func TestParseDate(t *testing.T) {
	assert.True(t, ParseDate("2024-07-01").Equal(InstantOf(time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local))))
	assert.False(t, ParseDate("2024-7-1").Valid())
	assert.False(t, ParseDate("").Valid())
}

func TestValidateTimes(t *testing.T) {
	assert.NoError(t, ValidateTimes("2024-10-15", "09:00", "10:00"))
	assert.ErrorIs(t, ValidateTimes("2024-10-15", "12:30", "10:00"), ErrStartNotBeforeEnd)
	assert.ErrorIs(t, ValidateTimes("2024-10-15", "10:00", "10:00"), ErrStartNotBeforeEnd)
	assert.ErrorIs(t, ValidateTimes("2024-10-15", "9:00", "10:00"), ErrInvalidTimeFormat)
	assert.ErrorIs(t, ValidateTimes("15.10.2024", "09:00", "10:00"), ErrInvalidDateFormat)
}
