package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekOrder is the canonical display order.
var WeekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range WeekOrder {
		if s == string(d) || (len(s) == 3 && strings.HasPrefix(string(d), s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

func (d Weekday) Index() int {
	for i, w := range WeekOrder {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Weekday) Time() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

type Slot struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Active bool   `json:"active"`
}

// ScheduleEntry is one submitted block; only active slot starts are persisted.
type ScheduleEntry struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	CreatorID       string         `db:"creator_id" json:"creator_id"`
	Weekday         Weekday        `db:"weekday" json:"weekday"`
	StartTime       string         `db:"start_time" json:"start_time"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	CadenceMinutes  int            `db:"cadence_minutes" json:"cadence_minutes"`
	ActiveSlots     pq.StringArray `db:"active_slots" json:"active_slots"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

type SessionKind string

const (
	KindVoice SessionKind = "voice"
	KindVideo SessionKind = "video"
)

func ParseSessionKind(s string) (SessionKind, bool) {
	switch SessionKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindVoice:
		return KindVoice, true
	case KindVideo:
		return KindVideo, true
	}
	return "", false
}

// SessionSettings is the creator's pricing for 1:1 sessions.
type SessionSettings struct {
	CreatorID        string              `db:"creator_id" json:"creator_id"`
	CreatorAddr      string              `db:"creator_addr" json:"creator_addr"`
	SlotMinutes      int                 `db:"slot_minutes" json:"slot_minutes"`
	VoicePriceUSD    decimal.NullDecimal `db:"voice_price_usd" json:"voice_price_usd"`
	VideoPriceUSD    decimal.NullDecimal `db:"video_price_usd" json:"video_price_usd"`
	RatePerMinuteUSD decimal.Decimal     `db:"rate_per_minute_usd" json:"rate_per_minute_usd"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
}

// SessionPrice resolves the price of one slot: an explicit per-session price for kind wins,
// otherwise the per-minute rate times slotMinutes.
func (s SessionSettings) SessionPrice(kind SessionKind, slotMinutes int) decimal.Decimal {
	explicit := s.VoicePriceUSD
	if kind == KindVideo {
		explicit = s.VideoPriceUSD
	}
	if explicit.Valid {
		return explicit.Decimal
	}
	return s.RatePerMinuteUSD.Mul(decimal.NewFromInt(int64(slotMinutes)))
}
