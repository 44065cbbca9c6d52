package entity

// VideoSales is one row of the studio table: a creator's video with its sales totals.
type VideoSales struct {
	VideoID      string `db:"video_id" json:"videoId"`
	Title        string `db:"title" json:"title"`
	PriceCents   int64  `db:"price_cents" json:"priceCents"`
	Buyers       int64  `db:"buyers" json:"buyers"`
	RevenueCents int64  `db:"revenue_cents" json:"revenueCents"`
}
