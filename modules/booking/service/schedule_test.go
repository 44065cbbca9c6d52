package service

import (
	"testing"
	"time"

	availEntity "creator-ledger/modules/availability/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-12 is a Monday.
var monday = time.Date(2026, 10, 12, 8, 30, 0, 0, time.UTC)

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		day  availEntity.Weekday
		want string
	}{
		{availEntity.Monday, "2026-10-19"},
		{availEntity.Tuesday, "2026-10-13"},
		{availEntity.Wednesday, "2026-10-14"},
		{availEntity.Sunday, "2026-10-18"},
	}
	for _, tc := range cases {
		got := NextOccurrence(monday, tc.day)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), string(tc.day))
		assert.True(t, got.After(monday))
		assert.Equal(t, tc.day.Time(), got.Weekday())
	}

	saturdayNight := time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19", NextOccurrence(saturdayNight, availEntity.Monday).Format("2006-01-02"))
}

func TestStartsAt(t *testing.T) {
	got, err := StartsAt(NextOccurrence(monday, availEntity.Monday), "09:10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 10, 0, 0, time.UTC), got)

	_, err = StartsAt(monday, "9:1")
	assert.Error(t, err)
}

func TestNormalizeSlots(t *testing.T) {
	got, err := NormalizeSlots([]string{"14:30", "09:10", " 09:00", "09:10", ""}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:10", "14:30"}, got)

	got, err = NormalizeSlots(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalizeSlotsCanonicalizesClockForms(t *testing.T) {
	got, err := NormalizeSlots([]string{"09:00", "9:00"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, got)

	got, err = NormalizeSlots([]string{"10:00", "9:50"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:50", "10:00"}, got)
}

func TestNormalizeSlotsRejectsOffGridAndMalformed(t *testing.T) {
	for _, slots := range [][]string{
		{"09:00", "09:05"},
		{"9am"},
		{"24:00"},
	} {
		_, err := NormalizeSlots(slots, 10)
		assert.Error(t, err, slots)
	}
}

func TestFallbackIDIsOrderIndependent(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	a := FallbackID("creator-1", availEntity.KindVoice, date, []string{"09:10", "09:00"})
	b := FallbackID("creator-1", availEntity.KindVoice, date, []string{"09:00", "09:10"})

	assert.Equal(t, a, b)
	assert.Equal(t, "local-creator-1-voice-2026-10-19-09:00,09:10", a)
	assert.NotEqual(t, a, FallbackID("creator-1", availEntity.KindVideo, date, []string{"09:00", "09:10"}))
}

func TestSessionTotalRoundsToCents(t *testing.T) {
	assert.Equal(t, "3.00", SessionTotal(decimal.RequireFromString("1.50"), 2).StringFixed(2))
	assert.Equal(t, "1.00", SessionTotal(decimal.RequireFromString("0.333"), 3).StringFixed(2))
	assert.True(t, SessionTotal(decimal.RequireFromString("2.5"), 0).IsZero())
}
