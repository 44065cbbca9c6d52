package dto

import "time"

// CreateBookingRequest is sent by the booking page. CreatorAddr may be omitted when the
// creator has stored session settings. PricePerSessionUSD overrides the stored price.
type CreateBookingRequest struct {
	CreatorID          string   `json:"creatorId"`
	CreatorAddr        string   `json:"creatorAddr"`
	ParticipantAddr    string   `json:"participantAddr"`
	Kind               string   `json:"kind"`
	Day                string   `json:"day"`
	Slots              []string `json:"slots"`
	PricePerSessionUSD string   `json:"pricePerSessionUsd"`
}

type CreateBookingResponse struct {
	BookingID string    `json:"bookingId"`
	TotalUSD  string    `json:"totalUsd"`
	StartsAt  time.Time `json:"startsAt"`
	TxHash    string    `json:"txHash"`
	Fallback  bool      `json:"fallback"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	CreatorID       string    `json:"creatorId"`
	CreatorAddr     string    `json:"creatorAddr"`
	ParticipantAddr string    `json:"participantAddr"`
	Kind            string    `json:"kind"`
	Slots           []string  `json:"slots"`
	SlotMinutes     int       `json:"slotMinutes"`
	StartsAt        time.Time `json:"startsAt"`
	TotalUSD        string    `json:"totalUsd"`
	Status          string    `json:"status"`
	TxHash          string    `json:"txHash,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
