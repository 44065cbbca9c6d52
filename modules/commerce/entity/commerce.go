package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID          string    `db:"id" json:"id"`
	CreatorAddr string    `db:"creator_addr" json:"creatorAddr"`
	Title       string    `db:"title" json:"title"`
	PriceCents  int64     `db:"price_cents" json:"priceCents"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type Purchase struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Buyer      string         `db:"buyer" json:"buyer"`
	VideoID    string         `db:"video_id" json:"videoId"`
	PriceCents int64          `db:"price_cents" json:"priceCents"`
	TxHash     sql.NullString `db:"tx_hash" json:"-"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
}

type Campaign struct {
	ID               uuid.UUID `db:"id" json:"id"`
	CreatorAddr      string    `db:"creator_addr" json:"creatorAddr"`
	Title            string    `db:"title" json:"title"`
	CreationFeeCents int64     `db:"creation_fee_cents" json:"creationFeeCents"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}
