package dto

import "time"

type Activity struct {
	Type        string         `json:"type"`
	ID          string         `json:"id"`
	Date        time.Time      `json:"date"`
	Points      int64          `json:"points"`
	EarningsUSD string         `json:"earningsUsd,omitempty"`
	Payload     map[string]any `json:"payload"`
}

// Stats are display figures derived from the feed. TotalPointsEarned here is the sum of
// event points and can differ from the ledger total.
type Stats struct {
	TotalPointsEarned int64  `json:"totalPointsEarned"`
	TotalEarningsUSD  string `json:"totalEarningsUsd"`
	VideosUploaded    int    `json:"videosUploaded"`
	TasksCompleted    int    `json:"tasksCompleted"`
	VideosShared      int    `json:"videosShared"`
	VideosPurchased   int    `json:"videosPurchased"`
	PostsCreated      int    `json:"postsCreated"`
	CommentsCreated   int    `json:"commentsCreated"`
	UsersFollowed     int    `json:"usersFollowed"`
	CampaignsCreated  int    `json:"campaignsCreated"`
	MeetsHosted       int    `json:"meetsHosted"`
	MeetsBooked       int    `json:"meetsBooked"`
	VideosSold        int    `json:"videosSold"`
}

type FeedResponse struct {
	UserAddr   string     `json:"userAddr"`
	Type       string     `json:"type"`
	Activities []Activity `json:"activities"`
	Stats      Stats      `json:"stats"`
}
