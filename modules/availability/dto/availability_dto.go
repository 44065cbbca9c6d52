package dto

import (
	"creator-ledger/modules/availability/entity"
)

// SubmitScheduleRequest carries the draft the creator edited. Slot length is not part of
// it; the server cadence always applies.
type SubmitScheduleRequest struct {
	Days []DayInput `json:"days"`
}

type DayInput struct {
	Weekday string       `json:"weekday"`
	Blocks  []BlockInput `json:"blocks"`
}

type BlockInput struct {
	Start           string        `json:"start"`
	DurationMinutes int           `json:"duration_minutes"`
	Slots           []entity.Slot `json:"slots"`
}

type SubmitScheduleResponse struct {
	CreatorID string `json:"creator_id"`
	Entries   int    `json:"entries"`
}

type SessionSettingsRequest struct {
	CreatorAddr      string  `json:"creator_addr"`
	SlotMinutes      int     `json:"slot_minutes,omitempty"`
	VoicePriceUSD    *string `json:"voice_price_usd"`
	VideoPriceUSD    *string `json:"video_price_usd"`
	RatePerMinuteUSD string  `json:"rate_per_minute_usd"`
}

// SessionsResponse is what the booking page renders.
type SessionsResponse struct {
	CreatorID       string            `json:"creator_id"`
	CreatorAddr     string            `json:"creator_addr,omitempty"`
	SlotMinutes     int               `json:"slotMinutes"`
	PricePerSession map[string]string `json:"pricePerSession"`
	ByDay           []DayAvailability `json:"byDay"`
}

type DayAvailability struct {
	Weekday entity.Weekday      `json:"weekday"`
	Blocks  []BlockAvailability `json:"blocks"`
}

type BlockAvailability struct {
	Start           string   `json:"start"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}
