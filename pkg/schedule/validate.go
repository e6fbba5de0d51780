package schedule

import "errors"

var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrStartNotBeforeEnd = errors.New("시작 시간은 종료 시간보다 빨라야 합니다.")
)

// ValidateTimes checks an event's date and times before it is saved. The
// engine operations never call it; they treat malformed values as invalid
// instants instead.
func ValidateTimes(date, startTime, endTime string) error {
	if !ParseDate(date).Valid() {
		return ErrInvalidDateFormat
	}
	start := ParseInstant(date, startTime)
	end := ParseInstant(date, endTime)
	if !start.Valid() || !end.Valid() {
		return ErrInvalidTimeFormat
	}
	if !start.Before(end) {
		return ErrStartNotBeforeEnd
	}
	return nil
}
