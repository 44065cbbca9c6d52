package dto

type CreateVideoRequest struct {
	ID          string `json:"id"`
	CreatorAddr string `json:"creatorAddr"`
	Title       string `json:"title"`
	PriceCents  int64  `json:"priceCents"`
}

type VideoResponse struct {
	ID          string `json:"id"`
	CreatorAddr string `json:"creatorAddr"`
	Title       string `json:"title"`
	PriceUSD    string `json:"priceUsd"`
}

type CreatePurchaseRequest struct {
	Buyer   string `json:"buyer"`
	VideoID string `json:"videoId"`
	TxHash  string `json:"txHash"`
}

// PurchaseResponse reports PointsQueued=false when the purchase row was written but the
// credit task could not be enqueued.
type PurchaseResponse struct {
	PurchaseID   string `json:"purchaseId"`
	VideoID      string `json:"videoId"`
	PriceUSD     string `json:"priceUsd"`
	PointsQueued bool   `json:"pointsQueued"`
}

type CreateCampaignRequest struct {
	CreatorAddr      string `json:"creatorAddr"`
	Title            string `json:"title"`
	CreationFeeCents int64  `json:"creationFeeCents"`
}

type CampaignResponse struct {
	CampaignID   string `json:"campaignId"`
	FeeUSD       string `json:"feeUsd"`
	PointsQueued bool   `json:"pointsQueued"`
}

type RecordClickRequest struct {
	UserAddr string `json:"userAddr"`
}

type ClickResponse struct {
	CampaignID string `json:"campaignId"`
	Clicks     int64  `json:"clicks"`
}
