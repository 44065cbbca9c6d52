// Package entity defines the activity events shown on a user's profile. Event is a closed
// set: every implementation lives in this file and switches over it are exhaustive.
package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeVideoUpload     Type = "video_upload"
	TypeTaskCompleted   Type = "task_completed"
	TypeVideoShared     Type = "video_shared"
	TypeVideoPurchased  Type = "video_purchased"
	TypePostCreated     Type = "post_created"
	TypeCommentCreated  Type = "comment_created"
	TypeUserFollowed    Type = "user_followed"
	TypeCampaignCreated Type = "campaign_created"
	TypeMeetHosted      Type = "meet_hosted"
	TypeMeetBooked      Type = "meet_booked"
	TypeVideoSold       Type = "video_sold"
)

type Category string

const (
	CategoryAll      Category = "all"
	CategoryContent  Category = "content"
	CategoryTasks    Category = "tasks"
	CategorySocial   Category = "social"
	CategoryEarnings Category = "earnings"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case "":
		return CategoryAll, nil
	case CategoryAll, CategoryContent, CategoryTasks, CategorySocial, CategoryEarnings:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

// Base is carried by every event.
type Base struct {
	ID       string
	Date     time.Time
	Points   int64
	Earnings decimal.Decimal
}

func (b Base) base() Base { return b }

type Event interface {
	Type() Type
	base() Base
}

func BaseOf(e Event) Base { return e.base() }

type VideoUpload struct {
	Base
	VideoID  string
	Title    string
	PriceUSD decimal.Decimal
}

type TaskCompleted struct {
	Base
	VideoID string
}

type VideoShared struct {
	Base
	VideoID string
}

type VideoPurchased struct {
	Base
	VideoID string
}

type PostCreated struct {
	Base
	PostID string
	Title  string
}

type CommentCreated struct {
	Base
	PostID string
	Body   string
}

type UserFollowed struct {
	Base
	FolloweeAddr string
}

type CampaignCreated struct {
	Base
	CampaignID string
	Title      string
	FeeUSD     decimal.Decimal
}

type MeetHosted struct {
	Base
	BookingID       string
	ParticipantAddr string
	Kind            string
}

type MeetBooked struct {
	Base
	BookingID   string
	CreatorAddr string
	Kind        string
}

type VideoSold struct {
	Base
	VideoID string
	Title   string
	Buyer   string
}

func (VideoUpload) Type() Type     { return TypeVideoUpload }
func (TaskCompleted) Type() Type   { return TypeTaskCompleted }
func (VideoShared) Type() Type     { return TypeVideoShared }
func (VideoPurchased) Type() Type  { return TypeVideoPurchased }
func (PostCreated) Type() Type     { return TypePostCreated }
func (CommentCreated) Type() Type  { return TypeCommentCreated }
func (UserFollowed) Type() Type    { return TypeUserFollowed }
func (CampaignCreated) Type() Type { return TypeCampaignCreated }
func (MeetHosted) Type() Type      { return TypeMeetHosted }
func (MeetBooked) Type() Type      { return TypeMeetBooked }
func (VideoSold) Type() Type       { return TypeVideoSold }

// CategoryOf maps an event type to its filter tab.
func CategoryOf(t Type) Category {
	switch t {
	case TypeVideoUpload, TypePostCreated:
		return CategoryContent
	case TypeTaskCompleted, TypeVideoShared, TypeVideoPurchased:
		return CategoryTasks
	case TypeCommentCreated, TypeUserFollowed, TypeMeetBooked:
		return CategorySocial
	case TypeVideoSold, TypeMeetHosted, TypeCampaignCreated:
		return CategoryEarnings
	}
	return ""
}
