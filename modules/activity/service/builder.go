package service

import (
	"sort"

	"creator-ledger/modules/activity/dto"
	"creator-ledger/modules/activity/entity"

	"github.com/shopspring/decimal"
)

// Merge concatenates the sources in order and sorts newest first. Events with equal dates
// keep their source order.
func Merge(sources ...[]entity.Event) []entity.Event {
	n := 0
	for _, s := range sources {
		n += len(s)
	}
	out := make([]entity.Event, 0, n)
	for _, s := range sources {
		out = append(out, s...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return entity.BaseOf(out[i]).Date.After(entity.BaseOf(out[j]).Date)
	})
	return out
}

// Filter keeps events of category, then truncates to limit (limit <= 0 keeps all).
func Filter(events []entity.Event, category entity.Category, limit int) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if category == entity.CategoryAll || entity.CategoryOf(e.Type()) == category {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ComputeStats counts every event type. Task, share and purchase counters only count
// events that actually awarded points.
func ComputeStats(events []entity.Event) dto.Stats {
	var (
		stats    dto.Stats
		earnings = decimal.Zero
	)
	for _, e := range events {
		b := entity.BaseOf(e)
		stats.TotalPointsEarned += b.Points
		earnings = earnings.Add(b.Earnings)

		switch e.(type) {
		case entity.VideoUpload:
			stats.VideosUploaded++
		case entity.TaskCompleted:
			if b.Points > 0 {
				stats.TasksCompleted++
			}
		case entity.VideoShared:
			if b.Points > 0 {
				stats.VideosShared++
			}
		case entity.VideoPurchased:
			if b.Points > 0 {
				stats.VideosPurchased++
			}
		case entity.PostCreated:
			stats.PostsCreated++
		case entity.CommentCreated:
			stats.CommentsCreated++
		case entity.UserFollowed:
			stats.UsersFollowed++
		case entity.CampaignCreated:
			stats.CampaignsCreated++
		case entity.MeetHosted:
			stats.MeetsHosted++
		case entity.MeetBooked:
			stats.MeetsBooked++
		case entity.VideoSold:
			stats.VideosSold++
		}
	}
	stats.TotalEarningsUSD = earnings.StringFixed(2)
	return stats
}

// ToActivity flattens an event for the JSON response.
func ToActivity(e entity.Event) dto.Activity {
	b := entity.BaseOf(e)
	a := dto.Activity{
		Type:   string(e.Type()),
		ID:     b.ID,
		Date:   b.Date,
		Points: b.Points,
	}
	if !b.Earnings.IsZero() {
		a.EarningsUSD = b.Earnings.StringFixed(2)
	}

	switch ev := e.(type) {
	case entity.VideoUpload:
		a.Payload = map[string]any{"videoId": ev.VideoID, "title": ev.Title, "priceUsd": ev.PriceUSD.StringFixed(2)}
	case entity.TaskCompleted:
		a.Payload = map[string]any{"videoId": ev.VideoID, "correct": ev.Points > 0}
	case entity.VideoShared:
		a.Payload = map[string]any{"videoId": ev.VideoID}
	case entity.VideoPurchased:
		a.Payload = map[string]any{"videoId": ev.VideoID}
	case entity.PostCreated:
		a.Payload = map[string]any{"postId": ev.PostID, "title": ev.Title}
	case entity.CommentCreated:
		a.Payload = map[string]any{"postId": ev.PostID, "body": ev.Body}
	case entity.UserFollowed:
		a.Payload = map[string]any{"followee": ev.FolloweeAddr}
	case entity.CampaignCreated:
		a.Payload = map[string]any{"campaignId": ev.CampaignID, "title": ev.Title, "feeUsd": ev.FeeUSD.StringFixed(2)}
	case entity.MeetHosted:
		a.Payload = map[string]any{"bookingId": ev.BookingID, "participant": ev.ParticipantAddr, "kind": ev.Kind}
	case entity.MeetBooked:
		a.Payload = map[string]any{"bookingId": ev.BookingID, "creator": ev.CreatorAddr, "kind": ev.Kind}
	case entity.VideoSold:
		a.Payload = map[string]any{"videoId": ev.VideoID, "title": ev.Title, "buyer": ev.Buyer}
	}
	return a
}
