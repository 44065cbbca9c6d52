package service

import (
	"testing"
	"time"

	"creator-ledger/modules/activity/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time { return t0.Add(time.Duration(minutes) * time.Minute) }

func ids(events []entity.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = entity.BaseOf(e).ID
	}
	return out
}

func TestMergeSortsNewestFirstAndIsStable(t *testing.T) {
	uploads := []entity.Event{
		entity.VideoUpload{Base: entity.Base{ID: "u1", Date: at(0)}},
		entity.VideoUpload{Base: entity.Base{ID: "u2", Date: at(10)}},
	}
	posts := []entity.Event{
		entity.PostCreated{Base: entity.Base{ID: "p1", Date: at(10)}},
		entity.PostCreated{Base: entity.Base{ID: "p2", Date: at(5)}},
	}
	follows := []entity.Event{
		entity.UserFollowed{Base: entity.Base{ID: "f1", Date: at(10)}},
	}

	merged := Merge(uploads, posts, follows)
	assert.Equal(t, []string{"u2", "p1", "f1", "p2", "u1"}, ids(merged))

	for i := 1; i < len(merged); i++ {
		assert.False(t, entity.BaseOf(merged[i]).Date.After(entity.BaseOf(merged[i-1]).Date))
	}
	assert.Equal(t, []string{"p1", "f1", "u2", "p2", "u1"}, ids(Merge(posts, follows, uploads)))
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, []entity.Event{}))
}

func TestStatsCountOnlyPointBearingSuccesses(t *testing.T) {
	events := []entity.Event{
		entity.TaskCompleted{Base: entity.Base{ID: "t-right", Date: at(3), Points: 10}},
		entity.TaskCompleted{Base: entity.Base{ID: "t-wrong", Date: at(2), Points: 0}},
		entity.VideoShared{Base: entity.Base{ID: "s", Date: at(1), Points: 5}},
		entity.VideoPurchased{Base: entity.Base{ID: "b", Date: at(1), Points: 20}},
		entity.CampaignCreated{Base: entity.Base{ID: "c", Date: at(0), Points: 99}},
		entity.VideoSold{Base: entity.Base{ID: "sold", Date: at(0), Earnings: decimal.RequireFromString("7.00")}},
		entity.MeetHosted{Base: entity.Base{ID: "m", Date: at(0), Earnings: decimal.RequireFromString("2.40")}},
		entity.MeetBooked{Base: entity.Base{ID: "mb", Date: at(0)}},
		entity.CommentCreated{Base: entity.Base{ID: "cm", Date: at(0)}},
	}

	stats := ComputeStats(events)
	assert.Equal(t, 1, stats.TasksCompleted)
	assert.Equal(t, 1, stats.VideosShared)
	assert.Equal(t, 1, stats.VideosPurchased)
	assert.Equal(t, 1, stats.CampaignsCreated)
	assert.Equal(t, 1, stats.VideosSold)
	assert.Equal(t, 1, stats.MeetsHosted)
	assert.Equal(t, 1, stats.MeetsBooked)
	assert.Equal(t, 1, stats.CommentsCreated)
	assert.Equal(t, int64(10+5+20+99), stats.TotalPointsEarned)
	assert.Equal(t, "9.40", stats.TotalEarningsUSD)
}

func TestFilterByCategoryAndLimit(t *testing.T) {
	events := Merge([]entity.Event{
		entity.VideoUpload{Base: entity.Base{ID: "upload", Date: at(9)}},
		entity.TaskCompleted{Base: entity.Base{ID: "task", Date: at(8)}},
		entity.MeetBooked{Base: entity.Base{ID: "booked", Date: at(7)}},
		entity.VideoSold{Base: entity.Base{ID: "sold", Date: at(6)}},
		entity.PostCreated{Base: entity.Base{ID: "post", Date: at(5)}},
		entity.CampaignCreated{Base: entity.Base{ID: "campaign", Date: at(4)}},
	})

	assert.Equal(t, []string{"upload", "post"}, ids(Filter(events, entity.CategoryContent, 0)))
	assert.Equal(t, []string{"task"}, ids(Filter(events, entity.CategoryTasks, 0)))
	assert.Equal(t, []string{"booked"}, ids(Filter(events, entity.CategorySocial, 0)))
	assert.Equal(t, []string{"sold", "campaign"}, ids(Filter(events, entity.CategoryEarnings, 0)))
	assert.Equal(t, []string{"upload", "task", "booked"}, ids(Filter(events, entity.CategoryAll, 3)))
}

func TestEveryTypeHasACategory(t *testing.T) {
	all := []entity.Event{
		entity.VideoUpload{}, entity.TaskCompleted{}, entity.VideoShared{}, entity.VideoPurchased{},
		entity.PostCreated{}, entity.CommentCreated{}, entity.UserFollowed{}, entity.CampaignCreated{},
		entity.MeetHosted{}, entity.MeetBooked{}, entity.VideoSold{},
	}
	for _, e := range all {
		assert.NotEmpty(t, entity.CategoryOf(e.Type()), e.Type())
		a := ToActivity(e)
		require.NotNil(t, a.Payload, e.Type())
		assert.Equal(t, string(e.Type()), a.Type)
	}
}
