package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreditKind is one of the once-per-video point awards.
type CreditKind string

const (
	CreditTask     CreditKind = "task"
	CreditShare    CreditKind = "share"
	CreditPurchase CreditKind = "purchase"
)

func ParseCreditKind(s string) (CreditKind, error) {
	switch CreditKind(s) {
	case CreditTask, CreditShare, CreditPurchase:
		return CreditKind(s), nil
	}
	return "", fmt.Errorf("unknown credit kind %q", s)
}

// Progress is the per (user, video) ledger row. TotalPointsEarned only grows by the points
// of each newly set flag and is never recomputed from the flags.
type Progress struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	UserAddr           string     `db:"user_addr" json:"userAddr"`
	VideoID            string     `db:"video_id" json:"videoId"`
	HasCompletedTask   bool       `db:"has_completed_task" json:"hasCompletedTask"`
	PointsFromTask     int64      `db:"points_from_task" json:"pointsFromTask"`
	TaskCompletedAt    *time.Time `db:"task_completed_at" json:"taskCompletedAt,omitempty"`
	HasShared          bool       `db:"has_shared" json:"hasShared"`
	PointsFromShare    int64      `db:"points_from_share" json:"pointsFromShare"`
	SharedAt           *time.Time `db:"shared_at" json:"sharedAt,omitempty"`
	HasPurchased       bool       `db:"has_purchased" json:"hasPurchased"`
	PointsFromPurchase int64      `db:"points_from_purchase" json:"pointsFromPurchase"`
	PurchasedAt        *time.Time `db:"purchased_at" json:"purchasedAt,omitempty"`
	TotalPointsEarned  int64      `db:"total_points_earned" json:"totalPointsEarned"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// Has reports whether kind was already credited on this row.
func (p Progress) Has(kind CreditKind) bool {
	switch kind {
	case CreditTask:
		return p.HasCompletedTask
	case CreditShare:
		return p.HasShared
	case CreditPurchase:
		return p.HasPurchased
	}
	return false
}

type AdsPoints struct {
	UserAddr         string    `db:"user_addr" json:"userAddr"`
	TotalAdsPoints   int64     `db:"total_ads_points" json:"totalAdsPoints"`
	CampaignsCreated int       `db:"campaigns_created" json:"campaignsCreated"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

type LeaderboardEntry struct {
	UserAddr    string `db:"user_addr" json:"userAddr"`
	VideoPoints int64  `db:"video_points" json:"videoPoints"`
	AdsPoints   int64  `db:"ads_points" json:"adsPoints"`
	TotalPoints int64  `db:"total_points" json:"totalPoints"`
}
