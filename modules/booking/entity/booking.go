package entity

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusPaid      BookingStatus = "paid"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a purchased 1:1 session. TotalCents is the settled price; Slots are "HH:MM" starts.
type Booking struct {
	ID              string         `db:"id" json:"id"`
	CreatorID       string         `db:"creator_id" json:"creator_id"`
	CreatorAddr     string         `db:"creator_addr" json:"creator_addr"`
	ParticipantAddr string         `db:"participant_addr" json:"participant_addr"`
	Kind            string         `db:"kind" json:"kind"`
	Slots           pq.StringArray `db:"slots" json:"slots"`
	SlotMinutes     int            `db:"slot_minutes" json:"slot_minutes"`
	StartsAt        time.Time      `db:"starts_at" json:"starts_at"`
	TotalCents      int64          `db:"total_cents" json:"total_cents"`
	Status          BookingStatus  `db:"status" json:"status"`
	TxHash          sql.NullString `db:"tx_hash" json:"-"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}
