package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	availEntity "creator-ledger/modules/availability/entity"
	availService "creator-ledger/modules/availability/service"

	"github.com/shopspring/decimal"
)

// NextOccurrence returns midnight of the next day matching weekday, strictly after today.
// Booking the current weekday lands on next week.
func NextOccurrence(now time.Time, weekday availEntity.Weekday) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysAhead := (int(weekday.Time()) - int(today.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return today.AddDate(0, 0, daysAhead)
}

// StartsAt places the clock time "HH:MM" on date.
func StartsAt(date time.Time, clock string) (time.Time, error) {
	minutes, err := availService.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// NormalizeSlots parses every slot start, rewrites it as zero-padded "HH:MM", drops
// duplicates and sorts by time. "9:00" and "09:00" are the same slot. Blank entries are
// ignored; a start off the cadence grid is an error.
func NormalizeSlots(slots []string, cadenceMinutes int) ([]string, error) {
	seen := make(map[int]bool, len(slots))
	minutes := make([]int, 0, len(slots))
	for _, s := range slots {
		if strings.TrimSpace(s) == "" {
			continue
		}
		m, err := availService.ParseGridClock(s, cadenceMinutes)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	out := make([]string, len(minutes))
	for i, m := range minutes {
		out[i] = availService.FormatClock(m)
	}
	return out, nil
}

// FallbackID is the deterministic id used when the booking could not be persisted.
func FallbackID(creatorID string, kind availEntity.SessionKind, date time.Time, slots []string) string {
	sorted := append([]string(nil), slots...)
	sort.Strings(sorted)
	return fmt.Sprintf("local-%s-%s-%s-%s", creatorID, kind, date.Format("2006-01-02"), strings.Join(sorted, ","))
}

// SessionTotal is price times slot count, rounded to cents.
func SessionTotal(price decimal.Decimal, count int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(count))).Round(2)
}
