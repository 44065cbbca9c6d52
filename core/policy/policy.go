// Package policy centralizes revenue shares, slot cadence and point formulas.
package policy

import (
	"fmt"

	"creator-ledger/core/config"

	"github.com/shopspring/decimal"
)

type Policy struct {
	VideoCreatorShare decimal.Decimal
	MeetCreatorShare  decimal.Decimal
	// StudioVideoShare is what the studio per-video table uses. It disagrees with
	// VideoCreatorShare on purpose; see DESIGN.md before changing either.
	StudioVideoShare decimal.Decimal

	AdsPointsDivisor   int64
	SlotCadenceMinutes int

	TaskPoints     int64
	SharePoints    int64
	PurchasePoints int64
}

func Default() Policy {
	return Policy{
		VideoCreatorShare:  decimal.RequireFromString("0.70"),
		MeetCreatorShare:   decimal.RequireFromString("0.80"),
		StudioVideoShare:   decimal.RequireFromString("0.60"),
		AdsPointsDivisor:   10,
		SlotCadenceMinutes: 10,
		TaskPoints:         10,
		SharePoints:        5,
		PurchasePoints:     20,
	}
}

func FromConfig(cfg config.PolicyConfig) (Policy, error) {
	p := Default()

	shares := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"video_creator_share", cfg.VideoCreatorShare, &p.VideoCreatorShare},
		{"meet_creator_share", cfg.MeetCreatorShare, &p.MeetCreatorShare},
		{"studio_video_share", cfg.StudioVideoShare, &p.StudioVideoShare},
	}
	for _, s := range shares {
		if s.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(s.raw)
		if err != nil {
			return Policy{}, fmt.Errorf("policy %s: %w", s.name, err)
		}
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return Policy{}, fmt.Errorf("policy %s: %s is outside [0,1]", s.name, s.raw)
		}
		*s.dst = d
	}

	if cfg.AdsPointsDivisor > 0 {
		p.AdsPointsDivisor = cfg.AdsPointsDivisor
	}
	if cfg.SlotCadenceMinutes > 0 {
		p.SlotCadenceMinutes = cfg.SlotCadenceMinutes
	}
	if cfg.TaskPoints > 0 {
		p.TaskPoints = cfg.TaskPoints
	}
	if cfg.SharePoints > 0 {
		p.SharePoints = cfg.SharePoints
	}
	if cfg.PurchasePoints > 0 {
		p.PurchasePoints = cfg.PurchasePoints
	}
	return p, nil
}

// AdsPoints is floor(feeCents / divisor). Negative fees earn nothing.
func (p Policy) AdsPoints(feeCents int64) int64 {
	if feeCents <= 0 || p.AdsPointsDivisor <= 0 {
		return 0
	}
	return feeCents / p.AdsPointsDivisor
}

// ShareOfCents applies share to an integer cent amount and returns dollars rounded to cents.
func ShareOfCents(cents int64, share decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(cents).Mul(share).Div(decimal.NewFromInt(100)).Round(2)
}

// CentsToUSD converts for display only.
func CentsToUSD(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
