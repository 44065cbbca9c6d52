package service

import (
	"fmt"
	"strconv"
	"strings"

	"creator-ledger/modules/availability/entity"
)

const minutesPerDay = 24 * 60

// ParseClock reads "HH:MM" (24h) into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("time %q has an invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("time %q has an invalid minute", s)
	}
	return h*60 + m, nil
}

// ParseGridClock is ParseClock that also requires the time to fall on the cadence grid,
// counted from midnight.
func ParseGridClock(s string, cadenceMinutes int) (int, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	if cadenceMinutes > 0 && minutes%cadenceMinutes != 0 {
		return 0, fmt.Errorf("time %q is not on the %d-minute grid", s, cadenceMinutes)
	}
	return minutes, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateSlots splits [start, start+duration) into floor(duration/cadence) active slots.
// An undefined start or a non-positive duration or cadence yields no slots.
func GenerateSlots(start string, durationMinutes, cadenceMinutes int) []entity.Slot {
	if start == "" || durationMinutes <= 0 || cadenceMinutes <= 0 {
		return []entity.Slot{}
	}
	from, err := ParseClock(start)
	if err != nil {
		return []entity.Slot{}
	}

	n := durationMinutes / cadenceMinutes
	slots := make([]entity.Slot, 0, n)
	for i := 0; i < n; i++ {
		s := from + i*cadenceMinutes
		slots = append(slots, entity.Slot{
			Start:  FormatClock(s),
			End:    FormatClock(s + cadenceMinutes),
			Active: true,
		})
	}
	return slots
}
