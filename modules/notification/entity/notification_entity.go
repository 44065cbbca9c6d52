package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"creator-ledger/core/entity"
)

const (
	TypeBookingPaid      = "booking_paid"
	TypeBookingCompleted = "booking_completed"
)

type Notification struct {
	UserAddr string `db:"user_addr" json:"user_addr"`
	Title    string `db:"title" json:"title"`
	Message  string `db:"message" json:"message"`
	Type     string `db:"type" json:"type"`
	Data     JSONB  `db:"data" json:"data"`
	IsRead   bool   `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
