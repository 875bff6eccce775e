package dto

import (
	"ripple/shared"
	"time"
)

// AuthorView is the identity snapshot attached to drops and ripples.
type AuthorView struct {
	Id          string `json:"id"`
	Handle      string `json:"handle,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarUrl   string `json:"avatar_url,omitempty"`
	ProfileUrl  string `json:"profile_url,omitempty"`
}

type RippleView struct {
	Id        string     `json:"id"`
	DropId    string     `json:"drop_id"`
	Author    AuthorView `json:"author"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
}

// TimelineItem is a drop enriched for one viewer. Ripples are newest first.
type TimelineItem struct {
	Id         string       `json:"id"`
	Author     AuthorView   `json:"author"`
	Body       string       `json:"body"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Slot       shared.Slot  `json:"slot"`
	Url        string       `json:"url,omitempty"`
	HeartCount int          `json:"heart_count"`
	Hearted    bool         `json:"hearted"`
	Ripples    []RippleView `json:"ripples"`
}

type TimelineResp struct {
	Items     []TimelineItem `json:"items"`
	UsedSlots []shared.Slot  `json:"used_slots"`
	// EmptyHint is set only when there are no items.
	EmptyHint string `json:"empty_hint,omitempty"`
}

type ComposerState struct {
	Slot     shared.Slot `json:"slot"`
	SlotUsed bool        `json:"slot_used"`
	Prompt   string      `json:"prompt"`
	// Offered holds the "already offered" lines when the slot is used.
	Offered   []string      `json:"offered,omitempty"`
	UsedSlots []shared.Slot `json:"used_slots"`
}

type ProfilePage struct {
	Author         AuthorView     `json:"author"`
	FollowerCount  int            `json:"follower_count"`
	FollowingCount int            `json:"following_count"`
	IsFollowing    bool           `json:"is_following"`
	IsSelf         bool           `json:"is_self"`
	DailyQuote     string         `json:"daily_quote"`
	Items          []TimelineItem `json:"items"`
}

type ProfileEntry struct {
	Author      AuthorView `json:"author"`
	IsFollowing bool       `json:"is_following"`
}

type FollowingPage struct {
	Author    AuthorView     `json:"author"`
	Following []ProfileEntry `json:"following"`
}

type HeartState struct {
	DropId  string `json:"drop_id"`
	Hearted bool   `json:"hearted"`
	Count   int    `json:"count"`
}

type FollowState struct {
	AccountId   string `json:"account_id"`
	IsFollowing bool   `json:"is_following"`
}

type CreateDropReq struct {
	Body     string `json:"body"`
	TimeZone string `json:"time_zone,omitempty"`
}

type EditDropReq struct {
	Body string `json:"body"`
}

type CreateRippleReq struct {
	Body string `json:"body"`
}

type SetHandleReq struct {
	Handle string `json:"handle"`
}

type UpsertAccountReq struct {
	DisplayName string `json:"display_name"`
	AvatarUrl   string `json:"avatar_url"`
}

type Drop struct {
	Id        string      `json:"id"`
	AuthorId  string      `json:"author_id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Slot      shared.Slot `json:"slot"`
}

type ErrorResp struct {
	Error  string        `json:"error"`
	Status int           `json:"status"`
	Period shared.Period `json:"period,omitempty"`
}
