package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RashmiFernando/study-sphere/internal/model"
)

// ── booking errors shared by schedules and timetables ──

var (
	ErrDateInPast  = errors.New("date cannot be in the past")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid start time")
)

// RoomMissingError a booking names a room that has no lecture room record.
type RoomMissingError struct {
	RoomName string
}

func (e *RoomMissingError) Error() string {
	return fmt.Sprintf("Room %s does not exist", e.RoomName)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseBookingDate accepts an RFC 3339 timestamp or a calendar date. Calendar
// dates are read in the server's location.
func parseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// checkNotPast rejects dates before the start of today.
func checkNotPast(date, now time.Time) error {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return ErrDateInPast
	}
	return nil
}

// parseClock converts HH:MM into minutes after midnight.
func parseClock(hhmm string) (int, error) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	hours, err1 := strconv.Atoi(h)
	minutes, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	return hours*60 + minutes, nil
}

// endTime is start plus duration on a 24 hour clock, so 23:30 + 60 is 00:30.
func endTime(startTime string, durationMinutes int) (string, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return "", err
	}
	end := (start + durationMinutes) % (24 * 60)
	if end < 0 {
		end += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", end/60, end%60), nil
}

// roomStatus derives a booking status from the room condition. A missing room
// counts as Occupied.
func roomStatus(room *model.LectureRoom) string {
	if room != nil && room.Condition == model.ConditionNeedsToRepair {
		return model.StatusUnderMaintenance
	}
	return model.StatusOccupied
}
