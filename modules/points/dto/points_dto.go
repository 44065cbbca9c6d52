package dto

import "creator-ledger/modules/points/entity"

type CreditVideoRequest struct {
	UserAddr string `json:"userAddr"`
	VideoID  string `json:"videoId"`
}

// CreditTaskRequest reports a quiz answer; a wrong answer still marks the task done with 0 points.
// Correct is required so that an omitted field is not read as a wrong answer.
type CreditTaskRequest struct {
	UserAddr string `json:"userAddr"`
	VideoID  string `json:"videoId"`
	Correct  *bool  `json:"correct"`
}

type CreditCampaignRequest struct {
	UserAddr   string `json:"userAddr"`
	CampaignID string `json:"campaignId"`
	FeeCents   int64  `json:"feeCents"`
}

type CreditResponse struct {
	Credited      bool             `json:"credited"`
	PointsAwarded int64            `json:"pointsAwarded"`
	Progress      *entity.Progress `json:"progress"`
}

type CampaignCreditResponse struct {
	Credited      bool              `json:"credited"`
	PointsAwarded int64             `json:"pointsAwarded"`
	AdsPoints     *entity.AdsPoints `json:"adsPoints"`
}

type PointsSummary struct {
	UserAddr          string            `json:"userAddr"`
	TotalPointsEarned int64             `json:"totalPointsEarned"`
	AdsPoints         int64             `json:"adsPoints"`
	CampaignsCreated  int               `json:"campaignsCreated"`
	Videos            []entity.Progress `json:"videos"`
}

type LeaderboardResponse struct {
	Entries []entity.LeaderboardEntry `json:"entries"`
}
