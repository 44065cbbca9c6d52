package dto

type EarningsResponse struct {
	CreatorAddr       string   `json:"creatorAddr"`
	VideoSalesCents   int64    `json:"videoSalesCents"`
	MeetSalesCents    int64    `json:"meetSalesCents"`
	VideoEarningsUSD  string   `json:"videoEarningsUsd"`
	MeetEarningsUSD   string   `json:"meetEarningsUsd"`
	TotalEarningsUSD  string   `json:"totalEarningsUsd"`
	UnavailableSource []string `json:"unavailableSources,omitempty"`
}

type StudioVideo struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	PriceUSD    string `json:"priceUsd"`
	Buyers      int64  `json:"buyers"`
	RevenueUSD  string `json:"revenueUsd"`
	EarningsUSD string `json:"earningsUsd"`
}

type StudioResponse struct {
	CreatorAddr      string        `json:"creatorAddr"`
	Videos           []StudioVideo `json:"videos"`
	TotalBuyers      int64         `json:"totalBuyers"`
	TotalRevenueUSD  string        `json:"totalRevenueUsd"`
	TotalEarningsUSD string        `json:"totalEarningsUsd"`
}
